package progression

import (
	"sort"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
	"github.com/KirkDiggler/mech-arsenal/internal/errors"
)

// Stage is one rung of a transform chain. A stage owns the rest of the
// chain through next and never changes after BuildChain returns.
type Stage struct {
	tier      stats.Tier
	snapshot  Snapshot
	overrides map[int]stats.Map
	power     []int
	next      *Stage
}

// Tier returns the stage's rarity
func (s *Stage) Tier() stats.Tier { return s.tier }

// Stats returns the stage's snapshot. Its Resolve ignores the stage's
// per-level overrides; use Stage.Resolve for the values an item shows.
func (s *Stage) Stats() Snapshot { return s.snapshot }

// Next returns the following stage, or nil at the end of the chain
func (s *Stage) Next() *Stage { return s.next }

// MaxLevel returns the highest level reachable on this stage
func (s *Stage) MaxLevel() int { return s.snapshot.MaxLevel() }

// PowerCurve returns the cumulative power needed for levels 1..MaxLevel,
// or nil when the stage is leveled by count only
func (s *Stage) PowerCurve() []int {
	if len(s.power) == 0 {
		return nil
	}
	out := make([]int, len(s.power))
	copy(out, s.power)
	return out
}

// HasPowerCurve reports whether the stage levels through power
func (s *Stage) HasPowerCurve() bool { return len(s.power) > 0 }

// MaxPower is the power that fully levels the stage, 0 without a curve
func (s *Stage) MaxPower() int {
	if len(s.power) == 0 {
		return 0
	}
	return s.power[len(s.power)-1]
}

// LevelForPower returns the level reached with power
func (s *Stage) LevelForPower(power int) int {
	return sort.Search(len(s.power), func(i int) bool { return s.power[i] > power })
}

// PowerForLevel returns the least power that reaches level
func (s *Stage) PowerForLevel(level int) int {
	if level <= 0 || len(s.power) == 0 {
		return 0
	}
	if level > len(s.power) {
		level = len(s.power)
	}
	return s.power[level-1]
}

// IsTerminal reports whether no further transform exists
func (s *Stage) IsTerminal() bool { return s.next == nil }

// OverrideLevels returns the levels with explicit values, ascending
func (s *Stage) OverrideLevels() []int {
	levels := make([]int, 0, len(s.overrides))
	for lvl := range s.overrides {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)
	return levels
}

// Resolve returns the stage's stats at level. Explicit per-level values
// replace the computed ones for the stats they name.
// Returns ErrInvalidLevel outside [0, MaxLevel()].
func (s *Stage) Resolve(level int) (stats.Map, error) {
	if _, err := s.snapshot.Resolve(level); err != nil {
		return nil, err
	}
	return s.values(level), nil
}

func (s *Stage) values(level int) stats.Map {
	out := s.snapshot.values(level)
	for k, v := range s.overrides[level] {
		out[k] = v
	}
	return out
}

// FindTier walks forward from s to the stage with the given tier.
// Returns ErrTierNotFound when the chain ends first.
func (s *Stage) FindTier(tier stats.Tier) (*Stage, error) {
	for cur := s; cur != nil; cur = cur.next {
		if cur.tier == tier {
			return cur, nil
		}
	}
	return nil, failure(ErrTierNotFound, "tier %s not reachable from %s", tier, s.tier)
}

// Final walks to the terminal stage
func (s *Stage) Final() *Stage {
	cur := s
	for cur.next != nil {
		cur = cur.next
	}
	return cur
}

// Stages returns this stage and every stage after it, in order
func (s *Stage) Stages() []*Stage {
	var out []*Stage
	for cur := s; cur != nil; cur = cur.next {
		out = append(out, cur)
	}
	return out
}

// StageSpec is the raw description of one stage handed over by the pack
// loader. MaxLevel 0 makes a static stage, which may not carry Diff.
// Power, when set, holds one strictly increasing cumulative power value per
// level from 1 to MaxLevel.
type StageSpec struct {
	Tier      stats.Tier
	Base      stats.Map
	Diff      stats.Map
	MaxLevel  int
	Overrides map[int]stats.Map
	Power     []int
}

// BuildChain validates specs and links them head to tail. The chain is built
// from the terminal stage backwards so each stage receives its finished tail.
// Returns ErrMalformedChain when specs are empty, tiers do not strictly
// increase, or a stage's stats are inconsistent.
func BuildChain(specs []StageSpec) (*Stage, error) {
	if len(specs) == 0 {
		return nil, failure(ErrMalformedChain, "chain has no stages")
	}
	for i, spec := range specs {
		if !spec.Tier.IsValid() {
			return nil, failure(ErrMalformedChain, "stage %d has invalid tier %d", i, int(spec.Tier))
		}
		if i > 0 && spec.Tier <= specs[i-1].Tier {
			return nil, failure(ErrMalformedChain, "tier %s follows %s", spec.Tier, specs[i-1].Tier)
		}
	}

	var next *Stage
	for i := len(specs) - 1; i >= 0; i-- {
		stage, err := newStage(specs[i], next)
		if err != nil {
			return nil, err
		}
		next = stage
	}
	return next, nil
}

func newStage(spec StageSpec, next *Stage) (*Stage, error) {
	var snap Snapshot
	switch {
	case spec.MaxLevel < 0:
		return nil, failure(ErrMalformedChain, "%s stage has negative max level %d", spec.Tier, spec.MaxLevel)
	case spec.MaxLevel == 0:
		if len(spec.Diff) > 0 {
			return nil, failure(ErrMalformedChain, "%s stage is static but has a difference block", spec.Tier)
		}
		snap = NewStatic(spec.Base)
	default:
		interp, err := NewInterpolated(spec.Base, spec.Diff, spec.MaxLevel)
		if err != nil {
			return nil, failure(ErrMalformedChain, "%s stage: %s", spec.Tier, errors.GetMessage(err))
		}
		snap = interp
	}

	overrides := make(map[int]stats.Map, len(spec.Overrides))
	for lvl, values := range spec.Overrides {
		if lvl < 0 || lvl > spec.MaxLevel {
			return nil, failure(ErrMalformedChain, "%s stage override at level %d outside [0, %d]", spec.Tier, lvl, spec.MaxLevel)
		}
		for _, k := range values.Keys() {
			if !spec.Base.Has(k) {
				return nil, failure(ErrMalformedChain, "%s stage override stat %s missing from base", spec.Tier, k)
			}
		}
		overrides[lvl] = values.Clone()
	}

	if n := len(spec.Power); n > 0 {
		if n != spec.MaxLevel {
			return nil, failure(ErrMalformedChain, "%s stage has %d power steps for max level %d", spec.Tier, n, spec.MaxLevel)
		}
		for i, v := range spec.Power {
			if v <= 0 || (i > 0 && v <= spec.Power[i-1]) {
				return nil, failure(ErrMalformedChain, "%s stage power must strictly increase from 1, got %d at level %d", spec.Tier, v, i+1)
			}
		}
	}

	var power []int
	if len(spec.Power) > 0 {
		power = append([]int(nil), spec.Power...)
	}

	return &Stage{
		tier:      spec.Tier,
		snapshot:  snap,
		overrides: overrides,
		power:     power,
		next:      next,
	}, nil
}
