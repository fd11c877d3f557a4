// Package pack turns item pack files into validated item definitions and
// keeps the loaded packs addressable by key.
package pack

import (
	"sort"

	"github.com/KirkDiggler/mech-arsenal/internal/errors"
	"github.com/KirkDiggler/mech-arsenal/internal/progression"
)

// Reasons attached to pack errors
const (
	ReasonDataError      = "DATA_ERROR"
	ReasonUnknownItemID  = "UNKNOWN_ITEM_ID"
	ReasonUnknownPackKey = "UNKNOWN_PACK_KEY"
)

// Sentinels for errors.Is
var (
	ErrDataError      = errors.InvalidArgument("malformed pack data").WithReason(ReasonDataError)
	ErrUnknownItemID  = errors.NotFound("unknown item id").WithReason(ReasonUnknownItemID)
	ErrUnknownPackKey = errors.NotFound("unknown pack key").WithReason(ReasonUnknownPackKey)
)

// Pack is an immutable set of item definitions sharing a key
type Pack struct {
	key         string
	name        string
	description string
	items       map[int]*progression.Definition
}

// Key returns the pack key, e.g. "@Eneg"
func (p *Pack) Key() string { return p.key }

// Name returns the display name
func (p *Pack) Name() string { return p.name }

// Description returns the pack description
func (p *Pack) Description() string { return p.description }

// Len returns the number of items
func (p *Pack) Len() int { return len(p.items) }

// Get returns the definition with the given id
func (p *Pack) Get(id int) (*progression.Definition, error) {
	def, ok := p.items[id]
	if !ok {
		return nil, errors.NotFoundf("item %d not in pack %s", id, p.key).
			WithReason(ReasonUnknownItemID).
			WithMeta("item_id", id).
			WithMeta("pack_key", p.key)
	}
	return def, nil
}

// Items returns every definition ordered by id
func (p *Pack) Items() []*progression.Definition {
	out := make([]*progression.Definition, 0, len(p.items))
	for _, def := range p.items {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
