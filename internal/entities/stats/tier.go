package stats

import (
	"fmt"
	"strings"
)

// Tier is the rarity rank of an item stage. Tiers compare with the usual
// integer operators: Common < Rare < Epic < Legendary < Mythical < Divine.
type Tier int

// Tier values. The zero value is not a valid tier.
const (
	TierUnspecified Tier = iota
	Common
	Rare
	Epic
	Legendary
	Mythical
	Divine
)

var tierNames = map[Tier]string{
	Common:    "COMMON",
	Rare:      "RARE",
	Epic:      "EPIC",
	Legendary: "LEGENDARY",
	Mythical:  "MYTHICAL",
	Divine:    "DIVINE",
}

// String returns the upper-case tier name
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TIER(%d)", int(t))
}

// IsValid checks if the tier is one of the six ranks
func (t Tier) IsValid() bool {
	return t >= Common && t <= Divine
}

// Initial returns the single upper-case letter used in tier ranges ("L-M")
func (t Tier) Initial() string {
	if !t.IsValid() {
		return "?"
	}
	return tierNames[t][:1]
}

// Lower returns the lower-case tier name used as a pack field prefix
func (t Tier) Lower() string {
	return strings.ToLower(t.String())
}

// AllTiers returns the tiers in increasing order
func AllTiers() []Tier {
	return []Tier{Common, Rare, Epic, Legendary, Mythical, Divine}
}

// TierFromString parses a tier name, case-insensitively
func TierFromString(s string) (Tier, bool) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for t, name := range tierNames {
		if name == upper {
			return t, true
		}
	}
	return TierUnspecified, false
}

// TierFromInitial parses a tier from its first letter, case-insensitively
func TierFromInitial(s string) (Tier, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 1 {
		return TierUnspecified, false
	}
	upper := strings.ToUpper(s)
	for _, t := range AllTiers() {
		if t.Initial() == upper {
			return t, true
		}
	}
	return TierUnspecified, false
}

// MarshalText implements encoding.TextMarshaler
func (t Tier) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, ok := TierFromString(string(text))
	if !ok {
		return fmt.Errorf("unknown tier %q", string(text))
	}
	*t = parsed
	return nil
}
