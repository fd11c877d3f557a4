// Package progression computes item stats by tier and level and drives the
// level-up and transform state machine of owned items.
//
// A Definition owns a chain of Stages built once from StageSpecs. Each stage
// has a Static or Interpolated Snapshot:
//
//	value = base[k] + round_half_even(diff[k] * level / maxLevel)
//
// An Instance sits on one stage at a level in [0, MaxLevel]. LevelUp raises
// the level, Transform moves a fully leveled item to the next stage at
// level 0. Both are all-or-nothing.
//
// Errors carry a reason so callers can tell apart kinds that share a code:
//
//	if errors.Is(err, progression.ErrNotFullyLeveled) { ... }
package progression
