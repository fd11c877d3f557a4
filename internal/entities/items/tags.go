package items

import (
	"fmt"
	"strings"
)

// Tag keywords as they appear in item packs
const (
	TagPremium          = "premium"
	TagSword            = "sword"
	TagMelee            = "melee"
	TagRoller           = "roller"
	TagLegacy           = "legacy"
	TagRequireJump      = "require_jump"
	TagReducedPowerCost = "reduced_power_cost"
	TagCustom           = "custom"
)

// Tags are boolean capability flags of an item
type Tags struct {
	Premium          bool `json:"premium,omitempty"`
	Sword            bool `json:"sword,omitempty"`
	Melee            bool `json:"melee,omitempty"`
	Roller           bool `json:"roller,omitempty"`
	Legacy           bool `json:"legacy,omitempty"`
	RequireJump      bool `json:"require_jump,omitempty"`
	ReducedPowerCost bool `json:"reduced_power_cost,omitempty"`
	Custom           bool `json:"custom,omitempty"`
}

func (t *Tags) flag(keyword string) *bool {
	switch keyword {
	case TagPremium:
		return &t.Premium
	case TagSword:
		return &t.Sword
	case TagMelee:
		return &t.Melee
	case TagRoller:
		return &t.Roller
	case TagLegacy:
		return &t.Legacy
	case TagRequireJump:
		return &t.RequireJump
	case TagReducedPowerCost:
		return &t.ReducedPowerCost
	case TagCustom:
		return &t.Custom
	default:
		return nil
	}
}

// TagsFromKeywords sets the flags named by keywords. Unknown keywords are
// rejected.
func TagsFromKeywords(keywords []string) (Tags, error) {
	var tags Tags
	var unknown []string
	for _, kw := range keywords {
		f := tags.flag(strings.ToLower(strings.TrimSpace(kw)))
		if f == nil {
			unknown = append(unknown, kw)
			continue
		}
		*f = true
	}
	if len(unknown) > 0 {
		return Tags{}, fmt.Errorf("unknown tags: %s", strings.Join(unknown, ", "))
	}
	return tags, nil
}

// Keywords returns the names of the set flags in a fixed order
func (t Tags) Keywords() []string {
	all := []string{
		TagPremium, TagSword, TagMelee, TagRoller,
		TagLegacy, TagRequireJump, TagReducedPowerCost, TagCustom,
	}
	var out []string
	for _, kw := range all {
		if *t.flag(kw) {
			out = append(out, kw)
		}
	}
	return out
}
