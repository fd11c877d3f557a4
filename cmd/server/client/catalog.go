package client

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mech-arsenal/internal/handlers/arsenal/v1alpha1"
)

var (
	previewTier  string
	previewLevel int
	previewMaxed bool
)

var getItemCmd = &cobra.Command{
	Use:   "get-item [pack-key] [item-id]",
	Short: "Get an item definition and its stage chain",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		return call(v1alpha1.MethodGetItem, map[string]interface{}{
			"pack_key": args[0],
			"item_id":  id,
		})
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview [pack-key] [item-id]",
	Short: "Preview an item's stats at a tier and level",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		req := map[string]interface{}{
			"pack_key": args[0],
			"item_id":  id,
			"level":    previewLevel,
			"maxed":    previewMaxed,
		}
		if previewTier != "" {
			req["tier"] = previewTier
		}
		return call(v1alpha1.MethodPreviewStats, req)
	},
}

func init() {
	previewCmd.Flags().StringVar(&previewTier, "tier", "", "Tier name or initial (default: first tier)")
	previewCmd.Flags().IntVar(&previewLevel, "level", 0, "Level within the tier")
	previewCmd.Flags().BoolVar(&previewMaxed, "maxed", false, "Preview the final stage at its cap")
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid item id %q", s)
	}
	return id, nil
}
