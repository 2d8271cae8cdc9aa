package transform

import (
	"github.com/adalundhe/layerkit/core/component"
)

// RootOf picks the component that stands for owner's own transform: the first
// configured root name present, else the first component registered for owner.
// It returns nil when owner has no components.
func (r *Resolver) RootOf(owner string) *component.Definition {
	defs := r.registry.ComponentsOf(owner)
	if len(defs) == 0 {
		return nil
	}
	for _, name := range r.roots {
		for _, def := range defs {
			if def.Key.Name == name {
				return def
			}
		}
	}
	return defs[0]
}

// ResolveActor returns the world transform of owner's root component, or
// Identity when owner is unknown.
func (r *Resolver) ResolveActor(owner string) Resolved {
	root := r.RootOf(owner)
	if root == nil {
		return Identity
	}
	return r.resolve(root.Key)
}
