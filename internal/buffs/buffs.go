// Package buffs applies arena shop upgrades to item stats. Each category
// raises its stats by a percentage, or by a flat amount for hit points,
// chosen by the category's level.
package buffs

import (
	"fmt"
	"sort"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
	"github.com/KirkDiggler/mech-arsenal/internal/errors"
)

// Category is one arena shop upgrade line
type Category string

// Arena shop categories
const (
	EnergyCapacity      Category = "energy_capacity"
	EnergyRegeneration  Category = "energy_regeneration"
	EnergyDamage        Category = "energy_damage"
	HeatCapacity        Category = "heat_capacity"
	HeatCooling         Category = "heat_cooling"
	HeatDamage          Category = "heat_damage"
	PhysicalDamage      Category = "physical_damage"
	ExplosiveDamage     Category = "explosive_damage"
	ElectricDamage      Category = "electric_damage"
	PhysicalResistance  Category = "physical_resistance"
	ExplosiveResistance Category = "explosive_resistance"
	ElectricResistance  Category = "electric_resistance"
	TotalHP             Category = "total_hp"
	BackfireReduction   Category = "backfire_reduction"
)

// Reasons attached to buff errors
const (
	ReasonUnknownCategory = "UNKNOWN_BUFF_CATEGORY"
	ReasonInvalidLevel    = "INVALID_BUFF_LEVEL"
)

// Sentinels for errors.Is
var (
	ErrUnknownCategory = errors.InvalidArgument("unknown buff category").WithReason(ReasonUnknownCategory)
	ErrInvalidLevel    = errors.OutOfRange("buff level out of range").WithReason(ReasonInvalidLevel)
)

var (
	typical = []int{0, 1, 3, 5, 7, 9, 11, 13, 15, 17, 20}
	hpSteps = []int{0, 10, 30, 60, 90, 120, 150, 180, 220, 260, 300, 350}
)

type modifier struct {
	steps    []int
	factor   int
	absolute bool
}

func (m modifier) apply(value, level int) int {
	step := m.steps[level] * m.factor
	if m.absolute {
		return value + step
	}
	return stats.DivRound(value*(100+step), 100)
}

var modifiers = map[Category]modifier{
	EnergyCapacity:      {steps: typical, factor: 1},
	EnergyRegeneration:  {steps: typical, factor: 1},
	EnergyDamage:        {steps: typical, factor: 1},
	HeatCapacity:        {steps: typical, factor: 1},
	HeatCooling:         {steps: typical, factor: 1},
	HeatDamage:          {steps: typical, factor: 1},
	PhysicalDamage:      {steps: typical, factor: 1},
	ExplosiveDamage:     {steps: typical, factor: 1},
	ElectricDamage:      {steps: typical, factor: 1},
	PhysicalResistance:  {steps: typical, factor: 2},
	ExplosiveResistance: {steps: typical, factor: 2},
	ElectricResistance:  {steps: typical, factor: 2},
	TotalHP:             {steps: hpSteps, factor: 1, absolute: true},
	BackfireReduction:   {steps: typical, factor: -1},
}

// statCategory maps buffable stats to their category. Damage addons share
// the category of their damage stat so both ends of a range move.
var statCategory = map[stats.Stat]Category{
	stats.EnergyCapacity:       EnergyCapacity,
	stats.Regeneration:         EnergyRegeneration,
	stats.EnergyDamage:         EnergyDamage,
	stats.HeatCapacity:         HeatCapacity,
	stats.Cooling:              HeatCooling,
	stats.HeatDamage:           HeatDamage,
	stats.PhysicalDamage:       PhysicalDamage,
	stats.PhysicalDamageAddon:  PhysicalDamage,
	stats.ExplosiveDamage:      ExplosiveDamage,
	stats.ExplosiveDamageAddon: ExplosiveDamage,
	stats.ElectricDamage:       ElectricDamage,
	stats.ElectricDamageAddon:  ElectricDamage,
	stats.PhysicalResistance:   PhysicalResistance,
	stats.ExplosiveResistance:  ExplosiveResistance,
	stats.ElectricResistance:   ElectricResistance,
	stats.HitPoints:            TotalHP,
	stats.Backfire:             BackfireReduction,
}

// AllCategories returns every category in a stable order
func AllCategories() []Category {
	out := make([]Category, 0, len(modifiers))
	for c := range modifiers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CategoryFromString converts a string to a Category
func CategoryFromString(s string) (Category, bool) {
	c := Category(s)
	_, ok := modifiers[c]
	return c, ok
}

// MaxLevel returns the highest level of a category, 0 if unknown
func (c Category) MaxLevel() int {
	m, ok := modifiers[c]
	if !ok {
		return 0
	}
	return len(m.steps) - 1
}

// Modifier describes the effect at level: a signed percentage, or a flat
// amount when absolute is true.
func (c Category) Modifier(level int) (value int, absolute bool, err error) {
	m, ok := modifiers[c]
	if !ok {
		return 0, false, unknownCategory(c)
	}
	if level < 0 || level >= len(m.steps) {
		return 0, false, invalidLevel(c, level)
	}
	return m.steps[level] * m.factor, m.absolute, nil
}

// Levels holds the bought level of each category; missing means 0
type Levels map[Category]int

// Max returns every category at its highest level
func Max() Levels {
	out := make(Levels, len(modifiers))
	for c, m := range modifiers {
		out[c] = len(m.steps) - 1
	}
	return out
}

// Validate checks every entry names a category and stays within its range
func (l Levels) Validate() error {
	keys := make([]string, 0, len(l))
	for c := range l {
		keys = append(keys, string(c))
	}
	sort.Strings(keys)

	for _, k := range keys {
		c := Category(k)
		if _, ok := modifiers[c]; !ok {
			return unknownCategory(c)
		}
		if lvl := l[c]; lvl < 0 || lvl > c.MaxLevel() {
			return invalidLevel(c, lvl)
		}
	}
	return nil
}

// IsZero reports whether no category has a level above 0
func (l Levels) IsZero() bool {
	for _, lvl := range l {
		if lvl != 0 {
			return false
		}
	}
	return true
}

type options struct {
	hitPoints bool
}

// Option changes how Apply buffs stats
type Option func(*options)

// WithHitPoints includes the total HP category, which Apply skips by
// default since it belongs to the mech rather than one item.
func WithHitPoints() Option {
	return func(o *options) { o.hitPoints = true }
}

// Apply returns a buffed copy of m. Stats without a category are copied
// unchanged.
// Returns ErrUnknownCategory or ErrInvalidLevel for bad levels.
func Apply(m stats.Map, levels Levels, opts ...Option) (stats.Map, error) {
	if err := levels.Validate(); err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	out := m.Clone()
	for stat, value := range m {
		c, ok := statCategory[stat]
		if !ok || (c == TotalHP && !o.hitPoints) {
			continue
		}
		out[stat] = modifiers[c].apply(value, levels[c])
	}
	return out, nil
}

func unknownCategory(c Category) *errors.Error {
	return &errors.Error{
		Code:    ErrUnknownCategory.Code,
		Reason:  ReasonUnknownCategory,
		Message: fmt.Sprintf("unknown buff category %q", string(c)),
	}
}

func invalidLevel(c Category, level int) *errors.Error {
	return &errors.Error{
		Code:    ErrInvalidLevel.Code,
		Reason:  ReasonInvalidLevel,
		Message: fmt.Sprintf("%s buff level %d outside [0, %d]", c, level, c.MaxLevel()),
	}
}
