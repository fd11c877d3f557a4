package pack

import (
	"sort"
	"sync"

	"github.com/KirkDiggler/mech-arsenal/internal/errors"
)

// Registry holds loaded packs by key. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	packs map[string]*Pack
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{packs: make(map[string]*Pack)}
}

// Register adds a pack.
// Returns errors.AlreadyExists if a pack with the same key is present.
func (r *Registry) Register(p *Pack) error {
	if p == nil {
		return errors.InvalidArgument("pack is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.packs[p.Key()]; ok {
		return errors.AlreadyExistsf("pack %s already registered", p.Key())
	}
	r.packs[p.Key()] = p
	return nil
}

// Get returns the pack with the given key
func (r *Registry) Get(key string) (*Pack, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.packs[key]
	if !ok {
		return nil, errors.NotFoundf("pack %s not loaded", key).
			WithReason(ReasonUnknownPackKey).
			WithMeta("pack_key", key)
	}
	return p, nil
}

// Keys returns the registered pack keys in sorted order
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.packs))
	for k := range r.packs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
