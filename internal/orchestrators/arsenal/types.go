package arsenal

import (
	"time"

	"github.com/KirkDiggler/mech-arsenal/internal/buffs"
	"github.com/KirkDiggler/mech-arsenal/internal/entities/items"
	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
)

// ItemView summarizes a definition and its transform chain
type ItemView struct {
	UID     string
	PackKey string
	ID      int
	Name    string
	Type    items.Type
	Element items.Element
	Tags    items.Tags
	Stages  []*StageView
}

// StageView describes one tier of a chain
type StageView struct {
	Tier           stats.Tier
	MaxLevel       int
	MaxPower       int
	Terminal       bool
	OverrideLevels []int
	// Start and Max are the resolved stats at level 0 and at MaxLevel
	Start stats.Map
	Max   stats.Map
}

// InstanceView is an owned instance with its resolved stats
type InstanceView struct {
	InstanceID   string
	OwnerID      string
	PackKey      string
	ItemID       int
	ItemUID      string
	Name         string
	Tier         stats.Tier
	Level        int
	MaxLevel     int
	Power        int
	MaxPower     int
	DisplayLevel string
	Paint        string
	IsMaxed      bool
	CanTransform bool
	Stats        stats.Map
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GetItemInput defines the request for a definition summary
type GetItemInput struct {
	PackKey string
	ItemID  int
}

// GetItemOutput defines the response for a definition summary
type GetItemOutput struct {
	Item *ItemView
}

// PreviewStatsInput asks for stats without an instance. An unspecified
// tier means the item's first tier. Maxed ignores Tier and Level and
// resolves the final stage at its cap.
type PreviewStatsInput struct {
	PackKey string
	ItemID  int
	Tier    stats.Tier
	Level   int
	Maxed   bool
}

// PreviewStatsOutput defines the response for a stat preview
type PreviewStatsOutput struct {
	Tier  stats.Tier
	Level int
	Stats stats.Map
}

// AcquireItemInput defines the request for adding an item to an inventory
type AcquireItemInput struct {
	OwnerID string
	PackKey string
	ItemID  int
	Maxed   bool
	Paint   string
}

// AcquireItemOutput defines the response for acquiring an item
type AcquireItemOutput struct {
	Instance *InstanceView
}

// GetInstanceInput defines the request for one instance
type GetInstanceInput struct {
	InstanceID string
}

// GetInstanceOutput defines the response for one instance
type GetInstanceOutput struct {
	Instance *InstanceView
}

// ListInventoryInput defines the request for an owner's inventory
type ListInventoryInput struct {
	OwnerID string
}

// ListInventoryOutput defines the response for an owner's inventory
type ListInventoryOutput struct {
	Instances []*InstanceView
}

// LevelUpInput defines the request for investing levels
type LevelUpInput struct {
	InstanceID string
	Levels     int
}

// LevelUpOutput defines the response for investing levels
type LevelUpOutput struct {
	Instance      *InstanceView
	PreviousLevel int
}

// AddPowerInput defines the request for feeding power into an instance
type AddPowerInput struct {
	InstanceID string
	Power      int
}

// AddPowerOutput defines the response for feeding power. Overflow is the
// part of the power the stage could not take.
type AddPowerOutput struct {
	Instance      *InstanceView
	PreviousLevel int
	Overflow      int
}

// TransformInput defines the request for a tier upgrade
type TransformInput struct {
	InstanceID string
}

// TransformOutput defines the response for a tier upgrade
type TransformOutput struct {
	Instance     *InstanceView
	PreviousTier stats.Tier
}

// PaintInstanceInput defines the request for repainting an instance
type PaintInstanceInput struct {
	InstanceID string
	Paint      string
}

// PaintInstanceOutput defines the response for repainting an instance
type PaintInstanceOutput struct {
	Instance *InstanceView
}

// DeleteInstanceInput defines the request for removing an instance
type DeleteInstanceInput struct {
	InstanceID string
}

// DeleteInstanceOutput defines the response for removing an instance
type DeleteInstanceOutput struct{}

// SummarizeLoadoutInput lists the owned instances mounted on one mech and
// the owner's arena buffs
type SummarizeLoadoutInput struct {
	OwnerID     string
	InstanceIDs []string
	Buffs       buffs.Levels
}

// SummarizeLoadoutOutput holds the mech totals. Instances carry buffed stats.
type SummarizeLoadoutOutput struct {
	Instances  []*InstanceView
	Stats      stats.Map
	Weight     int
	Overload   int
	Overweight bool
	Penalties  stats.Map
}

// AuditInventoryInput defines the request for a full inventory check.
// With Delete set, every problem record is removed.
type AuditInventoryInput struct {
	Delete    bool
	BatchSize int64
}

// AuditProblem is one record that cannot be restored against the loaded packs
type AuditProblem struct {
	InstanceID string
	OwnerID    string
	PackKey    string
	ItemID     int
	// Reason is CORRUPT for undecodable records, otherwise the reason of
	// the lookup or restore failure
	Reason  string
	Message string
	Deleted bool
}

// AuditInventoryOutput defines the response for an inventory check
type AuditInventoryOutput struct {
	Checked  int
	Problems []*AuditProblem
	Deleted  int
}
