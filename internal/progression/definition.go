package progression

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/mech-arsenal/internal/entities/items"
	"github.com/KirkDiggler/mech-arsenal/internal/entities/stats"
)

// DefinitionInput is the finalized per-item table produced by a pack loader
type DefinitionInput struct {
	ID      int
	PackKey string
	Name    string
	Type    items.Type
	Element items.Element
	Tags    items.Tags
	Stages  []StageSpec
}

// Definition is an immutable item description shared by all of its
// instances
type Definition struct {
	id      int
	packKey string
	name    string
	typ     items.Type
	element items.Element
	tags    items.Tags
	head    *Stage
}

// NewDefinition validates input and builds the stage chain.
// Returns ErrInvalidDefinition for bad identity or taxonomy fields and
// ErrMalformedChain for a bad chain.
func NewDefinition(input DefinitionInput) (*Definition, error) {
	switch {
	case input.ID < 1:
		return nil, failure(ErrInvalidDefinition, "item id must be positive, got %d", input.ID)
	case strings.TrimSpace(input.Name) == "":
		return nil, failure(ErrInvalidDefinition, "item %d has no name", input.ID)
	case !input.Type.IsValid():
		return nil, failure(ErrInvalidDefinition, "item %d has invalid type %q", input.ID, input.Type)
	case !input.Element.IsValid():
		return nil, failure(ErrInvalidDefinition, "item %d has invalid element %q", input.ID, input.Element)
	}

	head, err := BuildChain(input.Stages)
	if err != nil {
		return nil, err
	}

	return &Definition{
		id:      input.ID,
		packKey: input.PackKey,
		name:    input.Name,
		typ:     input.Type,
		element: input.Element,
		tags:    input.Tags,
		head:    head,
	}, nil
}

// ID returns the numeric id, unique within the pack
func (d *Definition) ID() int { return d.id }

// PackKey returns the key of the owning pack
func (d *Definition) PackKey() string { return d.packKey }

// Name returns the display name
func (d *Definition) Name() string { return d.name }

// Type returns the slot type
func (d *Definition) Type() items.Type { return d.typ }

// Element returns the damage element
func (d *Definition) Element() items.Element { return d.element }

// Tags returns the capability flags
func (d *Definition) Tags() items.Tags { return d.tags }

// Head returns the first stage of the chain
func (d *Definition) Head() *Stage { return d.head }

// Stages returns every stage, head first
func (d *Definition) Stages() []*Stage { return d.head.Stages() }

// FinalStage returns the terminal stage
func (d *Definition) FinalStage() *Stage { return d.head.Final() }

// StageFor returns the stage with the given tier
func (d *Definition) StageFor(tier stats.Tier) (*Stage, error) {
	return d.head.FindTier(tier)
}

// StatsAt resolves the stats of a hypothetical instance without creating one
func (d *Definition) StatsAt(tier stats.Tier, level int) (stats.Map, error) {
	stage, err := d.StageFor(tier)
	if err != nil {
		return nil, err
	}
	return stage.Resolve(level)
}

// UID identifies the item across packs as "<id>@<pack>"
func (d *Definition) UID() string {
	return fmt.Sprintf("%d@%s", d.id, d.packKey)
}

// TierRange returns the tiers of the first and last stage
func (d *Definition) TierRange() (stats.Tier, stats.Tier) {
	return d.head.Tier(), d.FinalStage().Tier()
}

// String returns "<name> <start initial>-<end initial>"
func (d *Definition) String() string {
	first, last := d.TierRange()
	return fmt.Sprintf("%s %s-%s", d.name, first.Initial(), last.Initial())
}
