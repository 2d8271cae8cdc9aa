// Package transform composes registered components into world-space transforms.
package transform

import (
	"log/slog"

	"github.com/adalundhe/layerkit/core/component"
	"github.com/adalundhe/layerkit/core/spatial"
)

// Resolved is a world-space transform.
type Resolved struct {
	Location spatial.Vector3  `json:"location"`
	Rotation spatial.Rotation `json:"rotation"`
	Scale    spatial.Vector3  `json:"scale"`
}

// Identity is the transform of an unattached root.
var Identity = Resolved{
	Location: spatial.Zero,
	Rotation: spatial.NoRotation,
	Scale:    spatial.One,
}

// Config tunes a Resolver.
type Config struct {
	// CacheSize bounds the memo with an LRU. Zero or less keeps every result.
	CacheSize int

	// RootComponents is the preference order used to pick an actor's root
	// component. Defaults to DefaultRootComponents.
	RootComponents []string
}

// DefaultRootComponents lists the component names tried, in order, when an
// actor's root is needed.
var DefaultRootComponents = []string{"DefaultSceneRoot", "Root"}

// Resolver computes and memoizes world transforms for one registry. It is not
// safe for concurrent use; build one per document.
type Resolver struct {
	registry *component.Registry
	cache    cache
	roots    []string
	logger   *slog.Logger

	// stack and inFlight track the keys of the current resolution chain.
	stack    []component.Key
	inFlight map[component.Key]int

	cyclic map[component.Key]bool
	cycles [][]component.Key
}

// NewResolver returns a resolver over registry.
func NewResolver(registry *component.Registry, cfg Config, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	roots := cfg.RootComponents
	if len(roots) == 0 {
		roots = DefaultRootComponents
	}
	return &Resolver{
		registry: registry,
		cache:    newCache(cfg.CacheSize),
		roots:    roots,
		logger:   logger,
		inFlight: make(map[component.Key]int),
		cyclic:   make(map[component.Key]bool),
	}
}

// Resolve returns the world transform of key. A nil key, an unregistered key
// and every key on a parent cycle resolve to Identity.
func (r *Resolver) Resolve(key *component.Key) Resolved {
	if key == nil {
		return Identity
	}
	return r.resolve(*key)
}

// ResolveKey is Resolve for a key value.
func (r *Resolver) ResolveKey(key component.Key) Resolved {
	return r.resolve(key)
}

func (r *Resolver) resolve(key component.Key) Resolved {
	if cached, ok := r.cache.Get(key); ok {
		return cached
	}
	if r.cyclic[key] {
		return Identity
	}

	if at, busy := r.inFlight[key]; busy {
		r.markCycle(at)
		return Identity
	}

	def, ok := r.registry.Get(key)
	if !ok {
		r.logger.Debug("component not registered, using identity",
			slog.String("key", key.String()))
		r.cache.Add(key, Identity)
		return Identity
	}

	r.inFlight[key] = len(r.stack)
	r.stack = append(r.stack, key)

	parent := r.Resolve(def.Parent)

	r.stack = r.stack[:len(r.stack)-1]
	delete(r.inFlight, key)

	resolved := Identity
	if !r.cyclic[key] {
		resolved = compose(parent, def)
	}
	r.cache.Add(key, resolved)
	return resolved
}

// compose places def's local transform inside parent.
func compose(parent Resolved, def *component.Definition) Resolved {
	scaled := def.Location.Multiply(parent.Scale)
	rotated := parent.Rotation.Rotate(scaled)

	return Resolved{
		Location: parent.Location.Add(rotated),
		Rotation: parent.Rotation.Compose(def.Rotation),
		Scale:    parent.Scale.Multiply(def.Scale),
	}
}

// markCycle flags every key from stack[at] to the top of the stack as part of
// a parent cycle.
func (r *Resolver) markCycle(at int) {
	members := make([]component.Key, len(r.stack)-at)
	copy(members, r.stack[at:])
	for _, k := range members {
		r.cyclic[k] = true
	}
	r.cycles = append(r.cycles, members)

	r.logger.Warn("attach parent cycle, resolving members as identity",
		slog.String("entry", members[0].String()),
		slog.Int("length", len(members)))
}

// Cycles returns the parent cycles found so far, each listed from the key at
// which it was entered.
func (r *Resolver) Cycles() [][]component.Key {
	out := make([][]component.Key, len(r.cycles))
	for i, c := range r.cycles {
		out[i] = append([]component.Key(nil), c...)
	}
	return out
}

// Registry returns the registry the resolver reads from.
func (r *Resolver) Registry() *component.Registry {
	return r.registry
}
