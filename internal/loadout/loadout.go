// Package loadout totals the stats of the items mounted on one mech and
// checks the build rules: slot counts, weight and overload, exclusive
// module stats and jump requirements.
package loadout

import (
	"fmt"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/items"
	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
	"github.com/KirkDiggler/mech-arsenal/internal/errors"
)

// Reasons attached to loadout errors
const (
	ReasonSlotsExceeded = "SLOTS_EXCEEDED"
	ReasonExclusiveStat = "EXCLUSIVE_STAT"
	ReasonJumpRequired  = "JUMP_REQUIRED"
)

// Sentinels for errors.Is
var (
	ErrSlotsExceeded = errors.InvalidArgument("too many items for a slot").WithReason(ReasonSlotsExceeded)
	ErrExclusiveStat = errors.InvalidArgument("stat carried by more than one module").WithReason(ReasonExclusiveStat)
	ErrJumpRequired  = errors.InvalidArgument("item needs legs that can jump").WithReason(ReasonJumpRequired)
)

// SummaryStats are the stats a mech total reports, in workshop order
var SummaryStats = []stats.Stat{
	stats.Weight,
	stats.HitPoints,
	stats.EnergyCapacity,
	stats.Regeneration,
	stats.HeatCapacity,
	stats.Cooling,
	stats.PhysicalResistance,
	stats.ExplosiveResistance,
	stats.ElectricResistance,
	stats.BulletsCapacity,
	stats.RocketsCapacity,
	stats.Walk,
	stats.Jump,
}

// Rules are the build limits of a mech
type Rules struct {
	// MaxWeight is the weight a mech carries without penalty
	MaxWeight int
	// Overload is the extra weight allowed past MaxWeight at a penalty
	Overload int
	// PenaltiesPerKg is subtracted from the totals per kg over MaxWeight
	PenaltiesPerKg stats.Map
	// ExclusiveModuleStats may appear on at most one module
	ExclusiveModuleStats []stats.Stat
	// Slots is how many items of each type fit; a missing type fits none
	Slots map[items.Type]int
}

// DefaultRules returns the standard build rules
func DefaultRules() Rules {
	return Rules{
		MaxWeight:      1000,
		Overload:       10,
		PenaltiesPerKg: stats.Map{stats.HitPoints: 15},
		ExclusiveModuleStats: []stats.Stat{
			stats.PhysicalResistance,
			stats.ExplosiveResistance,
			stats.ElectricResistance,
		},
		Slots: map[items.Type]int{
			items.TypeTorso:      1,
			items.TypeLegs:       1,
			items.TypeDrone:      1,
			items.TypeTeleporter: 1,
			items.TypeCharge:     1,
			items.TypeHook:       1,
			items.TypeSideWeapon: 4,
			items.TypeTopWeapon:  2,
			items.TypeModule:     8,
		},
	}
}

// OverloadedMaxWeight is the heaviest a mech may be before it is overweight
func (r Rules) OverloadedMaxWeight() int {
	return r.MaxWeight + r.Overload
}

// Part is one mounted item with the stats it contributes
type Part struct {
	Name  string
	Type  items.Type
	Tags  items.Tags
	Stats stats.Map
}

// Summary is the total of a loadout
type Summary struct {
	// Stats holds every summary stat, penalties applied
	Stats stats.Map
	// Weight is the raw total weight
	Weight int
	// Overload is the weight past MaxWeight, 0 when within
	Overload int
	// Overweight is set past OverloadedMaxWeight; such a mech cannot fight
	Overweight bool
	// Penalties holds what the overload took off each stat
	Penalties stats.Map
}

// Summarize checks the build and totals its stats.
// Returns ErrSlotsExceeded, ErrExclusiveStat or ErrJumpRequired when the
// parts cannot be mounted together.
func Summarize(parts []Part, rules Rules) (*Summary, error) {
	if err := check(parts, rules); err != nil {
		return nil, err
	}

	total := make(stats.Map, len(SummaryStats))
	for _, stat := range SummaryStats {
		total[stat] = 0
	}
	for _, part := range parts {
		for _, stat := range SummaryStats {
			total[stat] += part.Stats[stat]
		}
	}

	out := &Summary{
		Weight:    total[stats.Weight],
		Penalties: stats.Map{},
	}
	if over := out.Weight - rules.MaxWeight; over > 0 {
		out.Overload = over
		for stat, perKg := range rules.PenaltiesPerKg {
			out.Penalties[stat] = over * perKg
			total[stat] -= over * perKg
		}
	}
	out.Overweight = out.Weight > rules.OverloadedMaxWeight()
	out.Stats = total
	return out, nil
}

func check(parts []Part, rules Rules) error {
	counts := make(map[items.Type]int)
	for _, part := range parts {
		counts[part.Type]++
		if limit := rules.Slots[part.Type]; counts[part.Type] > limit {
			return violation(ErrSlotsExceeded, "%s: at most %d %s items fit", part.Name, limit, part.Type)
		}
	}

	carriedBy := make(map[stats.Stat]string)
	for _, part := range parts {
		if part.Type != items.TypeModule {
			continue
		}
		for _, stat := range rules.ExclusiveModuleStats {
			if !part.Stats.Has(stat) {
				continue
			}
			if other, ok := carriedBy[stat]; ok {
				return violation(ErrExclusiveStat, "%s and %s both carry %s", other, part.Name, stat)
			}
			carriedBy[stat] = part.Name
		}
	}

	// No legs passes; a mech may be built up piece by piece
	for _, legs := range parts {
		if legs.Type != items.TypeLegs || legs.Stats.Has(stats.Jump) {
			continue
		}
		for _, part := range parts {
			if part.Tags.RequireJump {
				return violation(ErrJumpRequired, "%s needs to jump but %s cannot", part.Name, legs.Name)
			}
		}
	}
	return nil
}

func violation(kind *errors.Error, format string, args ...interface{}) *errors.Error {
	return &errors.Error{
		Code:    kind.Code,
		Reason:  kind.Reason,
		Message: fmt.Sprintf(format, args...),
	}
}
