package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/mech-arsenal/internal/pack"
)

// Fixture ids in TestPackJSON
const (
	TestPackKey = "@test"

	// TestItemCleaver is Legendary (max 9) to a static Mythical
	TestItemCleaver = 1
	// TestItemStrider is Epic to Mythical and keeps leveling at Mythical
	TestItemStrider = 2
	// TestItemGrapple is a single static Divine stage
	TestItemGrapple = 3
	// TestItemDrone is Rare (max 3, power 100/250/450) to a static Epic
	TestItemDrone = 4
)

// TestPackJSON is a small pack covering the chain shapes the engine supports
const TestPackJSON = `{
  "version": "3",
  "key": "@test",
  "name": "Test pack",
  "powers": {"default": {"rare": [100, 250, 450]}},
  "items": [
    {
      "id": 1, "name": "Bulwark Cleaver", "type": "SIDE_WEAPON", "element": "PHYSICAL",
      "transform_range": "L-M", "tags": ["sword", "melee"],
      "legendary": {"weight": 63, "phyDmg": [103, 10], "heaCost": 12},
      "max_legendary": {"phyDmg": [154, 15]},
      "mythical": {"phyDmg": [154, 15]},
      "max_levels": {"legendary": 9, "mythical": 0}
    },
    {
      "id": 2, "name": "Strider", "type": "LEGS", "element": "PHYSICAL",
      "transform_range": "E-M",
      "epic": {"weight": 40, "health": 100, "walk": 5, "jump": 3},
      "max_epic": {"health": 130},
      "legendary": {"health": 140},
      "max_legendary": {"health": 180},
      "mythical": {"health": 190},
      "max_mythical": {"health": 240}
    },
    {
      "id": 3, "name": "Old Grapple", "type": "GRAPPLING_HOOK", "element": "PHYSICAL",
      "transform_range": "D", "tags": ["legacy"],
      "stats": {"weight": 20, "range": [1, 3], "retreat": 2}
    },
    {
      "id": 4, "name": "Volt Drone", "type": "DRONE", "element": "ELECTRIC",
      "transform_range": "R-E",
      "rare": {"weight": 20, "eleDmg": [30, 4]},
      "max_rare": {"eleDmg": [42, 6]},
      "epic": {"eleDmg": [48, 7]},
      "max_levels": {"rare": 3, "epic": 0}
    }
  ]
}`

// TestPack decodes TestPackJSON
func TestPack(t *testing.T) *pack.Pack {
	t.Helper()
	p, err := pack.Decode([]byte(TestPackJSON), pack.FormatJSON)
	require.NoError(t, err, "failed to decode test pack")
	return p
}

// TestRegistry returns a registry holding TestPack
func TestRegistry(t *testing.T) *pack.Registry {
	t.Helper()
	reg := pack.NewRegistry()
	require.NoError(t, reg.Register(TestPack(t)))
	return reg
}
