// Package items defines the taxonomy of mech items: slot type, damage
// element and capability tags.
package items

import "strings"

// Type is the functional slot an item occupies
type Type string

// Item types
const (
	TypeTorso      Type = "TORSO"
	TypeLegs       Type = "LEGS"
	TypeDrone      Type = "DRONE"
	TypeSideWeapon Type = "SIDE_WEAPON"
	TypeTopWeapon  Type = "TOP_WEAPON"
	TypeTeleporter Type = "TELEPORTER"
	TypeCharge     Type = "CHARGE"
	TypeHook       Type = "HOOK"
	TypeModule     Type = "MODULE"
	TypeShield     Type = "SHIELD"
)

// typeAliases are names the item feed uses for the same slots
var typeAliases = map[string]Type{
	"CHARGE_ENGINE":  TypeCharge,
	"GRAPPLING_HOOK": TypeHook,
	"TELEPORT":       TypeTeleporter,
}

// String returns the string representation of the type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the type is valid
func (t Type) IsValid() bool {
	switch t {
	case TypeTorso, TypeLegs, TypeDrone, TypeSideWeapon, TypeTopWeapon,
		TypeTeleporter, TypeCharge, TypeHook, TypeModule, TypeShield:
		return true
	default:
		return false
	}
}

// IsWeapon reports whether the type is a weapon slot
func (t Type) IsWeapon() bool {
	return t == TypeSideWeapon || t == TypeTopWeapon
}

// AllTypes returns every canonical type
func AllTypes() []Type {
	return []Type{
		TypeTorso,
		TypeLegs,
		TypeDrone,
		TypeSideWeapon,
		TypeTopWeapon,
		TypeTeleporter,
		TypeCharge,
		TypeHook,
		TypeModule,
		TypeShield,
	}
}

// TypeFromString converts a string to a Type, accepting feed aliases
func TypeFromString(s string) (Type, bool) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if alias, ok := typeAliases[upper]; ok {
		return alias, true
	}
	t := Type(upper)
	if t.IsValid() {
		return t, true
	}
	return "", false
}

// Element is the damage typing of an item
type Element string

// Elements
const (
	ElementPhysical  Element = "PHYSICAL"
	ElementExplosive Element = "EXPLOSIVE"
	ElementElectric  Element = "ELECTRIC"
	ElementCombined  Element = "COMBINED"
)

// String returns the string representation of the element
func (e Element) String() string {
	return string(e)
}

// IsValid checks if the element is valid
func (e Element) IsValid() bool {
	switch e {
	case ElementPhysical, ElementExplosive, ElementElectric, ElementCombined:
		return true
	default:
		return false
	}
}

// ElementFromString converts a string to an Element
func ElementFromString(s string) (Element, bool) {
	e := Element(strings.ToUpper(strings.TrimSpace(s)))
	if e.IsValid() {
		return e, true
	}
	return "", false
}
