package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mech-arsenal/internal/buffs"
	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
	"github.com/KirkDiggler/mech-arsenal/internal/pack"
	"github.com/KirkDiggler/mech-arsenal/internal/progression"
)

var (
	statsTier  string
	statsLevel int
	statsMaxed bool
	statsJSON  bool
	statsBuffs bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [pack-file] [item-id]",
	Short: "Print an item's stats from a pack file",
	Long: `Load a pack file and print an item's stats at a tier and level, or at
its final stage when --maxed is set, followed by its stage chain.
--max-buffs shows the stats with every arena buff at its top level.`,
	Args: cobra.ExactArgs(2),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsTier, "tier", "", "Tier name or initial (default: first tier)")
	statsCmd.Flags().IntVar(&statsLevel, "level", 0, "Level within the tier")
	statsCmd.Flags().BoolVar(&statsMaxed, "maxed", false, "Show the final stage at its cap")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsBuffs, "max-buffs", false, "Apply every arena buff at its top level")
}

func runStats(cmd *cobra.Command, args []string) error {
	p, err := pack.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load pack: %w", err)
	}

	id, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[1])
	}

	def, err := p.Get(id)
	if err != nil {
		return err
	}

	tier, err := parseTier(statsTier)
	if err != nil {
		return err
	}

	report, err := buildReport(def, tier, statsLevel, statsMaxed)
	if err != nil {
		return err
	}

	if statsBuffs {
		if err := report.applyBuffs(buffs.Max()); err != nil {
			return err
		}
	}

	if statsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return report.write(cmd.OutOrStdout())
}

func parseTier(s string) (stats.Tier, error) {
	if s == "" {
		return stats.TierUnspecified, nil
	}
	if t, ok := stats.TierFromString(s); ok {
		return t, nil
	}
	if t, ok := stats.TierFromInitial(s); ok {
		return t, nil
	}
	return stats.TierUnspecified, fmt.Errorf("unknown tier %q", s)
}

type stageReport struct {
	Tier           string `json:"tier"`
	MaxLevel       int    `json:"max_level"`
	MaxPower       int    `json:"max_power,omitempty"`
	OverrideLevels []int  `json:"override_levels,omitempty"`
}

type statsReport struct {
	UID          string         `json:"uid"`
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	Element      string         `json:"element"`
	Tags         []string       `json:"tags,omitempty"`
	Tier         string         `json:"tier"`
	Level        int            `json:"level"`
	DisplayLevel string         `json:"display_level"`
	Stats        map[string]int `json:"stats"`
	Buffed       bool           `json:"buffed,omitempty"`
	Chain        []stageReport  `json:"chain"`

	order []stats.Stat
}

func buildReport(def *progression.Definition, tier stats.Tier, level int, maxed bool) (*statsReport, error) {
	var inst *progression.Instance
	if maxed {
		inst = progression.MaxedFrom(def)
	} else {
		if tier == stats.TierUnspecified {
			tier = def.Head().Tier()
		}
		var err error
		inst, err = progression.RestoreInstance(def, tier, level, "")
		if err != nil {
			return nil, err
		}
	}

	current := inst.CurrentStats()
	r := &statsReport{
		UID:          def.UID(),
		Name:         def.Name(),
		Type:         def.Type().String(),
		Element:      def.Element().String(),
		Tags:         def.Tags().Keywords(),
		Tier:         inst.Tier().String(),
		Level:        inst.Level(),
		DisplayLevel: inst.DisplayLevel(),
		Stats:        make(map[string]int, len(current)),
		order:        current.Keys(),
	}
	for k, v := range current {
		r.Stats[k.String()] = v
	}
	for _, st := range def.Stages() {
		r.Chain = append(r.Chain, stageReport{
			Tier:           st.Tier().String(),
			MaxLevel:       st.MaxLevel(),
			MaxPower:       st.MaxPower(),
			OverrideLevels: st.OverrideLevels(),
		})
	}
	return r, nil
}

// applyBuffs replaces the reported stats with their buffed values
func (r *statsReport) applyBuffs(levels buffs.Levels) error {
	current := make(stats.Map, len(r.order))
	for _, k := range r.order {
		current[k] = r.Stats[k.String()]
	}
	buffed, err := buffs.Apply(current, levels)
	if err != nil {
		return err
	}
	for k, v := range buffed {
		r.Stats[k.String()] = v
	}
	r.Buffed = true
	return nil
}

func (r *statsReport) write(w io.Writer) error {
	fmt.Fprintf(w, "%s (%s) %s/%s\n", r.Name, r.UID, r.Type, r.Element)
	if len(r.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(r.Tags, ", "))
	}
	heading := fmt.Sprintf("%s level %s", r.Tier, r.DisplayLevel)
	if r.Buffed {
		heading += " (max arena buffs)"
	}
	fmt.Fprintf(w, "\n%s\n", heading)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range r.order {
		fmt.Fprintf(tw, "  %s\t%d\n", k, r.Stats[k.String()])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nChain:\n")
	for _, st := range r.Chain {
		line := fmt.Sprintf("  %-10s max %d", st.Tier, st.MaxLevel)
		if st.MaxPower > 0 {
			line += fmt.Sprintf(" power %d", st.MaxPower)
		}
		if len(st.OverrideLevels) > 0 {
			levels := make([]string, len(st.OverrideLevels))
			for i, lvl := range st.OverrideLevels {
				levels[i] = strconv.Itoa(lvl)
			}
			line += " overrides at " + strings.Join(levels, ",")
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
