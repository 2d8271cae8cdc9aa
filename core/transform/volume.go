package transform

import (
	"math"
	"sort"

	"github.com/adalundhe/layerkit/core/component"
	"github.com/adalundhe/layerkit/core/spatial"
)

// Volume is a collision component placed in world space.
type Volume struct {
	Name     string           `json:"name"`
	Kind     component.Kind   `json:"kind"`
	Location spatial.Vector3  `json:"location"`
	Rotation spatial.Rotation `json:"rotation"`
	Scale    spatial.Vector3  `json:"scale"`

	// Extent holds world half-extents: the scaled box extent, the sphere
	// radius on every axis, or the rotated bounding box of a capsule.
	Extent spatial.Vector3 `json:"extent"`

	// Radius is the bounding radius used to order volumes.
	Radius float64 `json:"radius"`

	CapsuleRadius float64 `json:"capsule_radius,omitempty"`
	CapsuleLength float64 `json:"capsule_length,omitempty"`
}

// VolumeOf builds the world volume of def placed at t. It returns false for
// components without collision extents.
func VolumeOf(def *component.Definition, t Resolved) (Volume, bool) {
	v := Volume{
		Name:     def.Key.Name,
		Kind:     def.Kind,
		Location: t.Location,
		Rotation: t.Rotation,
		Scale:    t.Scale,
	}

	switch def.Kind {
	case component.KindBox:
		v.Extent = def.BoxExtent.Multiply(t.Scale)
		v.Radius = v.Extent.Norm()
	case component.KindSphere:
		radius := def.SphereRadius * t.Scale.X
		v.Extent = spatial.Vec(radius, radius, radius)
		v.Radius = radius
	case component.KindCapsule:
		rx := def.CapsuleRadius * t.Scale.X
		ry := def.CapsuleRadius * t.Scale.Y
		radius := math.Max(rx, ry)
		halfHeight := def.CapsuleHalfHeight * t.Scale.Z

		v.Extent = t.Rotation.RotateExtents(spatial.Vec(rx, ry, halfHeight+radius))
		v.CapsuleRadius = radius
		v.CapsuleLength = 2 * halfHeight
		v.Radius = math.Max(radius, halfHeight)
	default:
		return Volume{}, false
	}
	return v, true
}

// ActorVolumes resolves every collision component of owner, ordered by radius
// and then name. Components named in skip are left out.
func (r *Resolver) ActorVolumes(owner string, skip ...string) []Volume {
	skipped := make(map[string]struct{}, len(skip))
	for _, name := range skip {
		skipped[name] = struct{}{}
	}

	var volumes []Volume
	for _, def := range r.registry.ComponentsOf(owner) {
		if !def.Kind.IsVolume() {
			continue
		}
		if _, ok := skipped[def.Key.Name]; ok {
			continue
		}
		if v, ok := VolumeOf(def, r.resolve(def.Key)); ok {
			volumes = append(volumes, v)
		}
	}

	sort.SliceStable(volumes, func(i, j int) bool {
		if volumes[i].Radius != volumes[j].Radius {
			return volumes[i].Radius < volumes[j].Radius
		}
		return volumes[i].Name < volumes[j].Name
	})
	return volumes
}
