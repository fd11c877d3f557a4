// Package inventory persists the state of owned item instances.
// Definitions are never stored; a record points at its pack item and holds
// only what changes as the owner plays.
package inventory

//go:generate mockgen -destination=mock/mock_repository.go -package=inventorymock github.com/KirkDiggler/mech-arsenal/internal/repositories/inventory Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
	"github.com/KirkDiggler/mech-arsenal/internal/errors"
)

// ReasonVersionConflict marks an update based on a stale read
const ReasonVersionConflict = "VERSION_CONFLICT"

// ErrVersionConflict is returned by Update when the stored record moved on
// since the caller read it. Reload and retry.
var ErrVersionConflict = errors.New(errors.CodeAborted, "inventory record changed concurrently").
	WithReason(ReasonVersionConflict)

// Record is the stored state of one item instance. Version starts at 1 and
// grows with every update.
type Record struct {
	InstanceID string     `json:"instance_id"`
	OwnerID    string     `json:"owner_id"`
	PackKey    string     `json:"pack_key"`
	ItemID     int        `json:"item_id"`
	Tier       stats.Tier `json:"tier"`
	Level      int        `json:"level"`
	Power      int        `json:"power,omitempty"`
	Paint      string     `json:"paint,omitempty"`
	Version    int64      `json:"version"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Repository stores inventory records
type Repository interface {
	// Create stores a new record and indexes it under its owner
	// Returns errors.InvalidArgument for missing fields
	// Returns errors.AlreadyExists if the instance id is taken
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a record by instance id
	// Returns errors.NotFound if it doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces tier, level, power and paint of an existing record and bumps
	// its version. The input's Version must match the stored one, so writers
	// on different processes cannot overwrite each other.
	// Owner, pack and item are fixed at creation.
	// Returns errors.NotFound if it doesn't exist
	// Returns ErrVersionConflict (errors.CodeAborted) on a stale version
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a record and its owner index entry. A record that can
	// no longer be decoded is removed too; its index entry is dropped on the
	// owner's next listing.
	// Returns errors.NotFound if it doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByOwner returns an owner's records, oldest first. Records that
	// cannot be decoded are skipped; Scan reports them.
	ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error)

	// Scan walks all records one batch at a time. Start with a zero cursor
	// and stop when the returned cursor is zero again.
	Scan(ctx context.Context, input ScanInput) (*ScanOutput, error)
}

// CreateInput defines the input for creating a record
type CreateInput struct {
	Record *Record
}

// CreateOutput defines the output for creating a record
type CreateOutput struct {
	Record *Record
}

// GetInput defines the input for getting a record
type GetInput struct {
	InstanceID string
}

// GetOutput defines the output for getting a record
type GetOutput struct {
	Record *Record
}

// UpdateInput defines the input for updating a record
type UpdateInput struct {
	Record *Record
}

// UpdateOutput defines the output for updating a record
type UpdateOutput struct {
	Record *Record
}

// DeleteInput defines the input for deleting a record
type DeleteInput struct {
	InstanceID string
}

// DeleteOutput defines the output for deleting a record
type DeleteOutput struct{}

// ListByOwnerInput defines the input for listing an owner's records
type ListByOwnerInput struct {
	OwnerID string
}

// ListByOwnerOutput defines the output for listing an owner's records
type ListByOwnerOutput struct {
	Records []*Record
}

// ScanInput defines one step of a full scan
type ScanInput struct {
	Cursor uint64
	// Count is a batch size hint; zero uses the store default
	Count int64
}

// ScanOutput holds one batch of a full scan
type ScanOutput struct {
	Records []*Record
	// Corrupt lists instance ids whose stored value could not be decoded
	Corrupt []string
	Cursor  uint64
}
