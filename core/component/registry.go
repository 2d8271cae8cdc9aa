// Package component indexes exported components by key and by owning actor.
package component

import (
	"log/slog"
)

// Registry is the per-document component index. It is built once and only read
// afterwards; it is not safe for concurrent mutation but may be read from
// multiple goroutines.
type Registry struct {
	byKey   map[Key]*Definition
	byOwner map[string][]*Definition
	owners  []string
}

// Build indexes records in order. Records with a blank owner or name are
// skipped. A repeated key replaces the earlier definition in the key index
// while both stay listed under their owner.
func Build(records []Record, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Registry{
		byKey:   make(map[Key]*Definition, len(records)),
		byOwner: make(map[string][]*Definition),
	}

	skipped := 0
	for _, rec := range records {
		def, ok := NewDefinition(rec)
		if !ok {
			skipped++
			continue
		}
		r.add(&def)
	}

	if skipped > 0 {
		logger.Debug("skipped components without owner or name",
			slog.Int("skipped", skipped),
			slog.Int("registered", len(r.byKey)))
	}

	return r
}

func (r *Registry) add(def *Definition) {
	owner := def.Key.Owner
	if _, seen := r.byOwner[owner]; !seen {
		r.owners = append(r.owners, owner)
	}
	r.byKey[def.Key] = def
	r.byOwner[owner] = append(r.byOwner[owner], def)
}

// Get returns the definition registered under key.
func (r *Registry) Get(key Key) (*Definition, bool) {
	def, ok := r.byKey[key]
	return def, ok
}

// ComponentsOf returns owner's components in registration order. The slice
// must not be modified.
func (r *Registry) ComponentsOf(owner string) []*Definition {
	return r.byOwner[owner]
}

// Owners returns every owner in first-seen order.
func (r *Registry) Owners() []string {
	out := make([]string, len(r.owners))
	copy(out, r.owners)
	return out
}

// Len returns the number of distinct keys.
func (r *Registry) Len() int {
	return len(r.byKey)
}
