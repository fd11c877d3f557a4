package client

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mech-arsenal/internal/handlers/arsenal/v1alpha1"
)

var (
	loadoutBuffs    map[string]int
	loadoutMaxBuffs bool
)

var loadoutCmd = &cobra.Command{
	Use:   "loadout [owner-id] [instance-id...]",
	Short: "Total the stats of instances mounted on one mech",
	Long: `Sum weight, hit points, energy, heat, resistances, ammo and movement of the
given instances, apply overload penalties and report whether the mech is
overweight. Arena buffs are applied with --buff category=level or --max-buffs.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		ids := make([]interface{}, 0, len(args)-1)
		for _, id := range args[1:] {
			ids = append(ids, id)
		}

		buffs := make(map[string]interface{}, len(loadoutBuffs))
		for category, level := range loadoutBuffs {
			buffs[category] = level
		}

		return call(v1alpha1.MethodSummarizeLoadout, map[string]interface{}{
			"owner_id":     args[0],
			"instance_ids": ids,
			"buffs":        buffs,
			"max_buffs":    loadoutMaxBuffs,
		})
	},
}

func init() {
	loadoutCmd.Flags().StringToIntVar(&loadoutBuffs, "buff", nil, "Arena buff levels, e.g. physical_damage=10,total_hp=11")
	loadoutCmd.Flags().BoolVar(&loadoutMaxBuffs, "max-buffs", false, "Apply every arena buff at its top level")
}
