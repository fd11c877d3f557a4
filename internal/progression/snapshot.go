package progression

import (
	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
)

// Snapshot is the stat block of one stage. The only implementations are
// *Static and *Interpolated; switch on the concrete type to inspect one.
type Snapshot interface {
	// MaxLevel is the highest level the snapshot resolves. Zero for Static.
	MaxLevel() int
	// Base returns a copy of the level 0 values
	Base() stats.Map
	// Resolve returns the values at level.
	// Returns ErrInvalidLevel outside [0, MaxLevel()].
	Resolve(level int) (stats.Map, error)

	values(level int) stats.Map
}

// Static holds stats that do not change with level
type Static struct {
	base stats.Map
}

// NewStatic creates a static snapshot from a copy of base
func NewStatic(base stats.Map) *Static {
	return &Static{base: base.Clone()}
}

// MaxLevel is always zero
func (s *Static) MaxLevel() int { return 0 }

// Base returns a copy of the values
func (s *Static) Base() stats.Map { return s.base.Clone() }

// Resolve returns the values. Only level 0 is accepted.
func (s *Static) Resolve(level int) (stats.Map, error) {
	if level != 0 {
		return nil, failure(ErrInvalidLevel, "static stats have no level %d", level)
	}
	return s.values(level), nil
}

func (s *Static) values(int) stats.Map {
	return s.base.Clone()
}

// Interpolated holds stats that grow linearly from base at level 0 to
// base+diff at maxLevel.
type Interpolated struct {
	base     stats.Map
	diff     stats.Map
	maxLevel int
}

// NewInterpolated creates an interpolated snapshot. Every diff key must be
// present in base and maxLevel must be at least 1, else ErrMalformedChain.
func NewInterpolated(base, diff stats.Map, maxLevel int) (*Interpolated, error) {
	if maxLevel < 1 {
		return nil, failure(ErrMalformedChain, "interpolated stats need max level >= 1, got %d", maxLevel)
	}
	for _, k := range diff.Keys() {
		if !base.Has(k) {
			return nil, failure(ErrMalformedChain, "difference stat %s missing from base", k)
		}
	}
	return &Interpolated{
		base:     base.Clone(),
		diff:     diff.Clone(),
		maxLevel: maxLevel,
	}, nil
}

// MaxLevel returns the level at which base+diff is reached
func (s *Interpolated) MaxLevel() int { return s.maxLevel }

// Base returns a copy of the level 0 values
func (s *Interpolated) Base() stats.Map { return s.base.Clone() }

// Diff returns a copy of the total change from level 0 to max level
func (s *Interpolated) Diff() stats.Map { return s.diff.Clone() }

// Resolve returns the interpolated values at level
func (s *Interpolated) Resolve(level int) (stats.Map, error) {
	if level < 0 || level > s.maxLevel {
		return nil, failure(ErrInvalidLevel, "level %d outside [0, %d]", level, s.maxLevel)
	}
	return s.values(level), nil
}

func (s *Interpolated) values(level int) stats.Map {
	out := s.base.Clone()
	for k, d := range s.diff {
		out[k] = s.base[k] + scale(d, level, s.maxLevel)
	}
	return out
}

// scale returns d*level/maxLevel rounded half to even. maxLevel must be
// positive.
func scale(d, level, maxLevel int) int {
	return stats.DivRound(d*level, maxLevel)
}
