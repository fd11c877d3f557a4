package pack

import (
	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
)

// Stat names used by the item feed. Scalar keys map to one stat.
var scalarKeys = map[string]stats.Stat{
	"weight":      stats.Weight,
	"health":      stats.HitPoints,
	"eneCap":      stats.EnergyCapacity,
	"eneReg":      stats.Regeneration,
	"heaCap":      stats.HeatCapacity,
	"heaCol":      stats.Cooling,
	"bulletsCap":  stats.BulletsCapacity,
	"rocketsCap":  stats.RocketsCapacity,
	"phyRes":      stats.PhysicalResistance,
	"expRes":      stats.ExplosiveResistance,
	"eleRes":      stats.ElectricResistance,
	"phyResDmg":   stats.PhysicalResistanceDamage,
	"eneDmg":      stats.EnergyDamage,
	"eneCapDmg":   stats.EnergyCapacityDamage,
	"eneRegDmg":   stats.RegenerationDamage,
	"eleResDmg":   stats.ElectricResistanceDamage,
	"heaDmg":      stats.HeatDamage,
	"heaCapDmg":   stats.HeatCapacityDamage,
	"heaColDmg":   stats.CoolingDamage,
	"expResDmg":   stats.ExplosiveResistanceDamage,
	"walk":        stats.Walk,
	"jump":        stats.Jump,
	"push":        stats.Push,
	"pull":        stats.Pull,
	"recoil":      stats.Recoil,
	"advance":     stats.Advance,
	"retreat":     stats.Retreat,
	"uses":        stats.Uses,
	"backfire":    stats.Backfire,
	"heaCost":     stats.HeatGeneration,
	"eneCost":     stats.EnergyCost,
	"bulletsCost": stats.BulletsCost,
	"rocketsCost": stats.RocketsCost,
}

// Pair keys hold [value, addon] lists
var pairKeys = map[string][2]stats.Stat{
	"phyDmg": {stats.PhysicalDamage, stats.PhysicalDamageAddon},
	"eleDmg": {stats.ElectricDamage, stats.ElectricDamageAddon},
	"expDmg": {stats.ExplosiveDamage, stats.ExplosiveDamageAddon},
	"range":  {stats.Range, stats.RangeAddon},
}

// defaultMaxLevels are the level caps of each tier when a pack does not
// set max_levels
var defaultMaxLevels = map[stats.Tier]int{
	stats.Common:    9,
	stats.Rare:      19,
	stats.Epic:      29,
	stats.Legendary: 39,
	stats.Mythical:  49,
	stats.Divine:    0,
}

// Power banks picked when an item does not name one. Items starting at
// Legendary or above draw from the premium bank.
const (
	bankDefault = "default"
	bankPremium = "premium"
)
