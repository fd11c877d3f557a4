package items

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
)

// Event types published when an owned instance changes
const (
	EventTypeLeveled     = "item.leveled"
	EventTypeTransformed = "item.transformed"
)

// EntityTypeInstance is the entity type of an owned item instance
const EntityTypeInstance = "item_instance"

// Change describes an instance before and after a mutation. It is the
// source entity of item events.
type Change struct {
	InstanceID string
	OwnerID    string
	ItemUID    string
	Name       string
	FromTier   stats.Tier
	FromLevel  int
	ToTier     stats.Tier
	ToLevel    int
}

// GetID returns the instance id
func (c *Change) GetID() string { return c.InstanceID }

// GetType returns the entity type for rpg-toolkit
func (c *Change) GetType() string { return EntityTypeInstance }

var _ core.Entity = (*Change)(nil)
