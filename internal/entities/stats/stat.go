// Package stats defines the closed vocabularies of item statistics and
// rarity tiers, and the integer stat mapping used throughout the engine.
package stats

// Stat identifies one numeric combat statistic
type Stat string

// Durability and resources
const (
	Weight          Stat = "weight"
	HitPoints       Stat = "hit_points"
	EnergyCapacity  Stat = "energy_capacity"
	Regeneration    Stat = "regeneration"
	HeatCapacity    Stat = "heat_capacity"
	Cooling         Stat = "cooling"
	BulletsCapacity Stat = "bullets_capacity"
	RocketsCapacity Stat = "rockets_capacity"
)

// Resistances
const (
	PhysicalResistance  Stat = "physical_resistance"
	ExplosiveResistance Stat = "explosive_resistance"
	ElectricResistance  Stat = "electric_resistance"
)

// Damage
const (
	PhysicalDamage            Stat = "physical_damage"
	PhysicalDamageAddon       Stat = "physical_damage_addon"
	ElectricDamage            Stat = "electric_damage"
	ElectricDamageAddon       Stat = "electric_damage_addon"
	ExplosiveDamage           Stat = "explosive_damage"
	ExplosiveDamageAddon      Stat = "explosive_damage_addon"
	PhysicalResistanceDamage  Stat = "physical_resistance_damage"
	EnergyDamage              Stat = "energy_damage"
	EnergyCapacityDamage      Stat = "energy_capacity_damage"
	RegenerationDamage        Stat = "regeneration_damage"
	ElectricResistanceDamage  Stat = "electric_resistance_damage"
	HeatDamage                Stat = "heat_damage"
	HeatCapacityDamage        Stat = "heat_capacity_damage"
	CoolingDamage             Stat = "cooling_damage"
	ExplosiveResistanceDamage Stat = "explosive_resistance_damage"
)

// Movement and handling
const (
	Walk       Stat = "walk"
	Jump       Stat = "jump"
	Range      Stat = "range"
	RangeAddon Stat = "range_addon"
	Push       Stat = "push"
	Pull       Stat = "pull"
	Recoil     Stat = "recoil"
	Advance    Stat = "advance"
	Retreat    Stat = "retreat"
	Uses       Stat = "uses"
	Backfire   Stat = "backfire"
)

// Costs
const (
	HeatGeneration Stat = "heat_generation"
	EnergyCost     Stat = "energy_cost"
	BulletsCost    Stat = "bullets_cost"
	RocketsCost    Stat = "rockets_cost"
)

var allStats = []Stat{
	Weight, HitPoints, EnergyCapacity, Regeneration, HeatCapacity, Cooling,
	BulletsCapacity, RocketsCapacity,
	PhysicalResistance, ExplosiveResistance, ElectricResistance,
	PhysicalDamage, PhysicalDamageAddon, ElectricDamage, ElectricDamageAddon,
	ExplosiveDamage, ExplosiveDamageAddon,
	PhysicalResistanceDamage, EnergyDamage, EnergyCapacityDamage, RegenerationDamage,
	ElectricResistanceDamage, HeatDamage, HeatCapacityDamage, CoolingDamage,
	ExplosiveResistanceDamage,
	Walk, Jump, Range, RangeAddon, Push, Pull, Recoil, Advance, Retreat, Uses, Backfire,
	HeatGeneration, EnergyCost, BulletsCost, RocketsCost,
}

// statOrder is the display position of each stat
var statOrder = func() map[Stat]int {
	m := make(map[Stat]int, len(allStats))
	for i, s := range allStats {
		m[s] = i
	}
	return m
}()

// String returns the string representation of the stat
func (s Stat) String() string {
	return string(s)
}

// IsValid checks if the stat is part of the vocabulary
func (s Stat) IsValid() bool {
	_, ok := statOrder[s]
	return ok
}

// AllStats returns every stat in display order
func AllStats() []Stat {
	out := make([]Stat, len(allStats))
	copy(out, allStats)
	return out
}

// StatFromString converts a string to a Stat
// Returns the stat and true if valid, empty stat and false if invalid
func StatFromString(s string) (Stat, bool) {
	stat := Stat(s)
	if stat.IsValid() {
		return stat, true
	}
	return "", false
}
