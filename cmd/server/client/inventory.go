package client

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mech-arsenal/internal/handlers/arsenal/v1alpha1"
)

var (
	acquireMaxed bool
	acquirePaint string
	levelUpBy    int
	powerAmount  int
)

var acquireCmd = &cobra.Command{
	Use:   "acquire [owner-id] [pack-key] [item-id]",
	Short: "Add an item instance to an owner's inventory",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseID(args[2])
		if err != nil {
			return err
		}
		return call(v1alpha1.MethodAcquireItem, map[string]interface{}{
			"owner_id": args[0],
			"pack_key": args[1],
			"item_id":  id,
			"maxed":    acquireMaxed,
			"paint":    acquirePaint,
		})
	},
}

var inventoryCmd = &cobra.Command{
	Use:   "inventory [owner-id]",
	Short: "List an owner's item instances",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(v1alpha1.MethodListInventory, map[string]interface{}{
			"owner_id": args[0],
		})
	},
}

var levelUpCmd = &cobra.Command{
	Use:   "level-up [instance-id]",
	Short: "Invest levels into an instance",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(v1alpha1.MethodLevelUp, map[string]interface{}{
			"instance_id": args[0],
			"levels":      levelUpBy,
		})
	},
}

var addPowerCmd = &cobra.Command{
	Use:   "add-power [instance-id]",
	Short: "Feed power into an instance; the level follows the stage's power curve",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(v1alpha1.MethodAddPower, map[string]interface{}{
			"instance_id": args[0],
			"power":       powerAmount,
		})
	},
}

var transformCmd = &cobra.Command{
	Use:   "transform [instance-id]",
	Short: "Transform a fully leveled instance into its next tier",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(v1alpha1.MethodTransform, map[string]interface{}{
			"instance_id": args[0],
		})
	},
}

func init() {
	acquireCmd.Flags().BoolVar(&acquireMaxed, "maxed", false, "Acquire at the final stage and cap")
	acquireCmd.Flags().StringVar(&acquirePaint, "paint", "", "Paint scheme")
	levelUpCmd.Flags().IntVar(&levelUpBy, "by", 1, "Levels to invest")
	addPowerCmd.Flags().IntVar(&powerAmount, "power", 0, "Power to feed")
	_ = addPowerCmd.MarkFlagRequired("power")
}
