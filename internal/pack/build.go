package pack

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/items"
	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
	"github.com/KirkDiggler/mech-arsenal/internal/errors"
	"github.com/KirkDiggler/mech-arsenal/internal/progression"
)

// problems collects data errors by path, e.g. "items[3].max_epic.phyDmg"
type problems struct {
	vb *errors.ValidationBuilder
	n  int
}

func newProblems() *problems {
	return &problems{vb: errors.NewValidationBuilder().WithReason(ReasonDataError)}
}

func (p *problems) add(path, msg string) {
	p.vb.Field(path, msg)
	p.n++
}

func (p *problems) addf(path, format string, args ...interface{}) {
	p.add(path, fmt.Sprintf(format, args...))
}

func (p *problems) err() error {
	return p.vb.Build()
}

// build turns a decoded pack into definitions. Every item is checked so
// one load reports all problems at once.
func build(raw *rawPack) (*Pack, error) {
	p := newProblems()

	meta := raw.meta()
	if strings.TrimSpace(meta.Key) == "" {
		p.add("key", "is required")
	}

	defs := make(map[int]*progression.Definition, len(raw.Items))
	for i := range raw.Items {
		path := fmt.Sprintf("items[%d]", i)
		input, ok := buildItem(&raw.Items[i], meta.Key, raw, path, p)
		if !ok {
			continue
		}
		if _, dup := defs[input.ID]; dup {
			p.addf(path+".id", "duplicate item id %d", input.ID)
			continue
		}
		def, err := progression.NewDefinition(input)
		if err != nil {
			p.add(path, errors.GetMessage(err))
			continue
		}
		defs[input.ID] = def
	}

	if p.n > 0 {
		return nil, p.err()
	}

	name := meta.Name
	if name == "" {
		name = meta.Key
	}
	return &Pack{
		key:         meta.Key,
		name:        name,
		description: meta.Description,
		items:       defs,
	}, nil
}

// buildItem converts one raw item. It reports false when any problem was
// recorded for the item.
func buildItem(it *rawItem, packKey string, raw *rawPack, path string, p *problems) (progression.DefinitionInput, bool) {
	before := p.n

	first, last, err := parseTransformRange(it.TransformRange)
	if err != nil {
		p.add(path+".transform_range", err.Error())
		return progression.DefinitionInput{}, false
	}

	typ, ok := items.TypeFromString(it.Type)
	if !ok {
		p.addf(path+".type", "unknown item type %q", it.Type)
	}
	element, ok := items.ElementFromString(it.Element)
	if !ok {
		p.addf(path+".element", "unknown element %q", it.Element)
	}

	specs, firstBase := buildStages(it, last, path, p)
	if len(specs) == 0 {
		p.add(path, "item has no stats")
	} else if specs[0].Tier != first || specs[len(specs)-1].Tier != last {
		p.addf(path+".transform_range", "range %s-%s does not match stat blocks %s-%s",
			first.Initial(), last.Initial(), specs[0].Tier.Initial(), specs[len(specs)-1].Tier.Initial())
	}

	applyPowers(it, first, raw.Powers, specs, path, p)

	tags, err := items.TagsFromKeywords(it.Tags)
	if err != nil {
		p.add(path+".tags", err.Error())
	}
	deriveTags(&tags, first, firstBase, raw.Custom)

	if p.n > before {
		return progression.DefinitionInput{}, false
	}

	return progression.DefinitionInput{
		ID:      it.ID,
		PackKey: packKey,
		Name:    it.Name,
		Type:    typ,
		Element: element,
		Tags:    tags,
		Stages:  specs,
	}, true
}

// deriveTags applies the flags implied by tier and stats
func deriveTags(tags *items.Tags, first stats.Tier, firstBase stats.Map, custom bool) {
	if tags.Legacy {
		if first == stats.Mythical {
			tags.Premium = true
		}
	} else if first >= stats.Legendary {
		tags.Premium = true
	}
	if firstBase.Has(stats.Advance) || firstBase.Has(stats.Retreat) {
		tags.RequireJump = true
	}
	if custom {
		tags.Custom = true
	}
}

// buildStages rolls stats forward across tier blocks. A tier block lists
// only what changed; max_<tier> blocks hold absolute values at max level.
// It also returns the first tier's own values for tag derivation.
func buildStages(it *rawItem, last stats.Tier, path string, p *problems) ([]progression.StageSpec, stats.Map) {
	if it.Stats != nil {
		base := it.Stats.toStats(path+".stats", p)
		return []progression.StageSpec{{Tier: last, Base: base}}, base
	}

	var (
		specs     []progression.StageSpec
		firstBase stats.Map
		rolling   = stats.Map{}
	)
	for _, tier := range stats.AllTiers() {
		block, maxBlock := it.blocks(tier)
		if block == nil {
			if maxBlock != nil {
				p.addf(path+".max_"+tier.Lower(), "has no matching %s block", tier.Lower())
			}
			if len(specs) > 0 {
				break
			}
			continue
		}

		values := block.toStats(path+"."+tier.Lower(), p)
		if firstBase == nil {
			firstBase = values
		}
		rolling = rolling.Merge(values)
		spec := progression.StageSpec{Tier: tier, Base: rolling.Clone()}

		if maxBlock != nil {
			spec.Diff = maxDiff(rolling, maxBlock.toStats(path+".max_"+tier.Lower(), p), path+".max_"+tier.Lower(), p)
			spec.MaxLevel = maxLevelFor(it, tier)
			if spec.MaxLevel == 0 {
				p.addf(path+".max_levels."+tier.Lower(), "must be positive when max_%s is present", tier.Lower())
			}
		}

		spec.Overrides = overridesFor(it, tier, path, p)
		specs = append(specs, spec)
	}

	for i := 0; i+1 < len(specs); i++ {
		if specs[i].MaxLevel == 0 {
			p.addf(path+".max_"+specs[i].Tier.Lower(), "is required before transforming to %s", specs[i+1].Tier.Lower())
		}
	}
	if n := len(specs); n > 0 && specs[n-1].MaxLevel == 0 && !staticTerminal(it, specs[n-1].Tier) {
		last := specs[n-1].Tier.Lower()
		p.addf(path+".max_"+last, "is required unless max_levels.%s is 0", last)
	}
	for name := range it.Overrides {
		tier, ok := stats.TierFromString(name)
		if !ok || !containsTier(specs, tier) {
			p.addf(path+".overrides."+name, "tier not in the item's stat blocks")
		}
	}
	return specs, firstBase
}

// maxDiff converts absolute max-level values into differences from base
func maxDiff(base, maxValues stats.Map, path string, p *problems) stats.Map {
	diff := make(stats.Map, len(maxValues))
	for _, k := range maxValues.Keys() {
		if !base.Has(k) {
			p.addf(path, "%s has no base value", k)
			continue
		}
		diff[k] = maxValues[k] - base[k]
	}
	return diff
}

// applyPowers attaches the item's power bank curves to its levelable
// stages. A tier missing from the bank levels by count only.
func applyPowers(it *rawItem, first stats.Tier, powers rawPowers, specs []progression.StageSpec, path string, p *problems) {
	bank := it.PowerBank
	switch {
	case bank != "":
		if _, ok := powers[bank]; !ok {
			p.addf(path+".power_bank", "pack has no %s power bank", bank)
			return
		}
	case first >= stats.Legendary:
		bank = bankPremium
	default:
		bank = bankDefault
	}

	curves := powers[bank]
	for i := range specs {
		curve, ok := curves[specs[i].Tier.Lower()]
		if !ok || specs[i].MaxLevel == 0 {
			continue
		}
		if len(curve) != specs[i].MaxLevel {
			p.addf(path+".power_bank", "%s bank has %d %s steps, item max level is %d",
				bank, len(curve), specs[i].Tier.Lower(), specs[i].MaxLevel)
			continue
		}
		specs[i].Power = curve
	}
}

// staticTerminal reports whether the final tier may stop at level 0 without
// a max block: Divine always, other tiers only when max_levels says 0.
func staticTerminal(it *rawItem, tier stats.Tier) bool {
	if tier == stats.Divine {
		return true
	}
	lvl, ok := it.MaxLevels[tier.Lower()]
	return ok && lvl == 0
}

func maxLevelFor(it *rawItem, tier stats.Tier) int {
	if lvl, ok := it.MaxLevels[tier.Lower()]; ok {
		return lvl
	}
	return defaultMaxLevels[tier]
}

func overridesFor(it *rawItem, tier stats.Tier, path string, p *problems) map[int]stats.Map {
	raw := it.Overrides[tier.Lower()]
	if len(raw) == 0 {
		return nil
	}

	levels := make([]string, 0, len(raw))
	for lvl := range raw {
		levels = append(levels, lvl)
	}
	sort.Strings(levels)

	out := make(map[int]stats.Map, len(raw))
	for _, key := range levels {
		where := fmt.Sprintf("%s.overrides.%s.%s", path, tier.Lower(), key)
		lvl, err := strconv.Atoi(key)
		if err != nil || lvl < 0 {
			p.add(where, "level must be a non-negative integer")
			continue
		}
		out[lvl] = raw[key].toStats(where, p)
	}
	return out
}

func containsTier(specs []progression.StageSpec, tier stats.Tier) bool {
	for _, s := range specs {
		if s.Tier == tier {
			return true
		}
	}
	return false
}

// parseTransformRange reads "L-M" or "M" style tier initials
func parseTransformRange(s string) (stats.Tier, stats.Tier, error) {
	up, down, hasDown := strings.Cut(strings.TrimSpace(s), "-")
	first, ok := stats.TierFromInitial(up)
	if !ok {
		return 0, 0, fmt.Errorf("invalid transform range %q", s)
	}
	if !hasDown {
		return first, first, nil
	}
	last, ok := stats.TierFromInitial(down)
	if !ok || last < first {
		return 0, 0, fmt.Errorf("invalid transform range %q", s)
	}
	return first, last, nil
}
