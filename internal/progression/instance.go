package progression

import (
	"fmt"
	"strconv"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
)

// Instance is the mutable state of one owned item: the stage it occupies,
// its level there and an optional paint. On stages with a power curve the
// level follows the accumulated power. Instances are not safe for
// concurrent mutation; callers serialize access per instance.
type Instance struct {
	def   *Definition
	stage *Stage
	level int
	power int
	paint string
}

// NewInstance returns a freshly acquired item at the head stage, level 0
func NewInstance(def *Definition) *Instance {
	return &Instance{def: def, stage: def.Head()}
}

// MaxedFrom returns an item at the terminal stage and its max level
func MaxedFrom(def *Definition) *Instance {
	final := def.FinalStage()
	return &Instance{def: def, stage: final, level: final.MaxLevel(), power: final.MaxPower()}
}

// RestoreInstance rebuilds an instance from stored state.
// Returns ErrTierNotFound if the chain has no such tier and ErrInvalidLevel
// if level is outside that stage's range.
func RestoreInstance(def *Definition, tier stats.Tier, level int, paint string) (*Instance, error) {
	stage, err := def.StageFor(tier)
	if err != nil {
		return nil, err
	}
	if level < 0 || level > stage.MaxLevel() {
		return nil, failure(ErrInvalidLevel, "level %d outside [0, %d] for %s", level, stage.MaxLevel(), tier)
	}
	return &Instance{def: def, stage: stage, level: level, paint: paint}, nil
}

// Definition returns the item definition
func (i *Instance) Definition() *Definition { return i.def }

// Stage returns the current stage
func (i *Instance) Stage() *Stage { return i.stage }

// Tier returns the current stage's tier
func (i *Instance) Tier() stats.Tier { return i.stage.Tier() }

// Level returns the level on the current stage
func (i *Instance) Level() int { return i.level }

// Paint returns the cosmetic paint, if any
func (i *Instance) Paint() string { return i.paint }

// SetPaint replaces the cosmetic paint
func (i *Instance) SetPaint(paint string) { i.paint = paint }

// Power returns the power accumulated on the current stage
func (i *Instance) Power() int { return i.power }

// MaxPower returns the power that fully levels the current stage
func (i *Instance) MaxPower() int { return i.stage.MaxPower() }

// RestorePower sets stored power on a restored instance. The power must
// fall inside the current level's band of the stage's curve; stages
// without a curve only accept 0.
func (i *Instance) RestorePower(power int) error {
	if !i.stage.HasPowerCurve() {
		if power != 0 {
			return failure(ErrInvalidPower, "%s stage has no power curve, got power %d", i.stage.Tier(), power)
		}
		return nil
	}
	if power < 0 || power > i.stage.MaxPower() || i.stage.LevelForPower(power) != i.level {
		return failure(ErrInvalidPower, "power %d does not match level %d on %s", power, i.level, i.stage.Tier())
	}
	i.power = power
	return nil
}

// AddPower feeds power into the current stage and raises the level to
// match. Power past the stage's maximum is not kept and is returned as
// overflow. Nothing changes on failure.
// Returns ErrInvalidPower for a non-positive amount, ErrNoPowerCurve when
// the stage levels by count only and ErrMaxPower when it is already full.
func (i *Instance) AddPower(amount int) (overflow int, err error) {
	if amount <= 0 {
		return 0, failure(ErrInvalidPower, "power must be positive, got %d", amount)
	}
	if !i.stage.HasPowerCurve() {
		return 0, failure(ErrNoPowerCurve, "%s stage of %s has no power curve", i.stage.Tier(), i.def.Name())
	}
	maxPower := i.stage.MaxPower()
	if i.power == maxPower {
		return 0, failure(ErrMaxPower, "%s stage of %s already has %d power", i.stage.Tier(), i.def.Name(), maxPower)
	}

	if room := maxPower - i.power; amount > room {
		overflow = amount - room
		i.power = maxPower
	} else {
		i.power += amount
	}
	i.level = i.stage.LevelForPower(i.power)
	return overflow, nil
}

// LevelUp raises the level by `by`. Nothing changes on failure.
// Returns ErrInvalidLevel when by is not positive and ErrLevelCapExceeded
// when the result would pass the stage's max level.
func (i *Instance) LevelUp(by int) error {
	if by <= 0 {
		return failure(ErrInvalidLevel, "level increment must be positive, got %d", by)
	}
	maxLevel := i.stage.MaxLevel()
	if by > maxLevel-i.level {
		return failure(ErrLevelCapExceeded, "level %d+%d exceeds %s cap %d", i.level, by, i.stage.Tier(), maxLevel)
	}
	i.level += by
	if i.stage.HasPowerCurve() {
		i.power = i.stage.PowerForLevel(i.level)
	}
	return nil
}

// Transform moves a fully leveled item to the next stage at level 0.
// Nothing changes on failure.
// Returns ErrAlreadyMaxed at the terminal stage and ErrNotFullyLeveled
// before the stage's max level.
func (i *Instance) Transform() error {
	if i.stage.IsTerminal() {
		return failure(ErrAlreadyMaxed, "%s is the final stage of %s", i.stage.Tier(), i.def.Name())
	}
	if i.level != i.stage.MaxLevel() {
		return failure(ErrNotFullyLeveled, "level %d of %d reached on %s", i.level, i.stage.MaxLevel(), i.stage.Tier())
	}
	i.stage = i.stage.Next()
	i.level = 0
	i.power = 0
	return nil
}

// CurrentStats returns the stats at the current stage and level
func (i *Instance) CurrentStats() stats.Map {
	return i.stage.values(i.level)
}

// IsMaxed reports whether the item is at its terminal stage and max level
func (i *Instance) IsMaxed() bool {
	return i.stage.IsTerminal() && i.level == i.stage.MaxLevel()
}

// CanTransform reports whether Transform would succeed
func (i *Instance) CanTransform() bool {
	return !i.stage.IsTerminal() && i.level == i.stage.MaxLevel()
}

// DisplayLevel is "max" for a maxed item, otherwise the one-based level
func (i *Instance) DisplayLevel() string {
	if i.IsMaxed() {
		return "max"
	}
	return strconv.Itoa(i.level + 1)
}

// String renders the item as "[L] Name lvl 10"
func (i *Instance) String() string {
	return fmt.Sprintf("[%s] %s lvl %s", i.stage.Tier().Initial(), i.def.Name(), i.DisplayLevel())
}
