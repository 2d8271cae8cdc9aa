package component

import (
	"github.com/adalundhe/layerkit/core/spatial"
)

// =============================================================================
// Kind
// =============================================================================

// Kind is the engine class of a component.
type Kind int

const (
	// KindScene is a plain scene node carrying only a transform.
	KindScene Kind = iota
	// KindBox is a box collision volume.
	KindBox
	// KindSphere is a sphere collision volume.
	KindSphere
	// KindCapsule is a capsule collision volume.
	KindCapsule
)

var kindNames = map[Kind]string{
	KindScene:   "scene",
	KindBox:     "box",
	KindSphere:  "sphere",
	KindCapsule: "capsule",
}

var kindsByType = map[string]Kind{
	"SceneComponent":   KindScene,
	"BoxComponent":     KindBox,
	"SphereComponent":  KindSphere,
	"CapsuleComponent": KindCapsule,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsVolume reports whether the kind has collision extents.
func (k Kind) IsVolume() bool {
	return k == KindBox || k == KindSphere || k == KindCapsule
}

// KindFromType maps an exported type tag to a Kind.
func KindFromType(typeName string) (Kind, bool) {
	k, ok := kindsByType[typeName]
	return k, ok
}

// =============================================================================
// Record and Definition
// =============================================================================

// Record is one component as handed over by the export adapter. Scale is nil
// when the export omitted it.
type Record struct {
	Type         string
	Owner        string
	Name         string
	AttachParent string
	Location     spatial.Vector3
	Rotation     spatial.Rotation
	Scale        *spatial.Vector3

	BoxExtent         spatial.Vector3
	SphereRadius      float64
	CapsuleRadius     float64
	CapsuleHalfHeight float64
}

// Definition is a registered component. Definitions are immutable once built.
type Definition struct {
	Key      Key
	Parent   *Key
	Kind     Kind
	Location spatial.Vector3
	Rotation spatial.Rotation
	Scale    spatial.Vector3

	BoxExtent         spatial.Vector3
	SphereRadius      float64
	CapsuleRadius     float64
	CapsuleHalfHeight float64
}

// NewDefinition converts a record into a definition. It returns false when the
// record has no usable key.
func NewDefinition(rec Record) (Definition, bool) {
	key := NewKey(rec.Owner, rec.Name)
	if key == nil {
		return Definition{}, false
	}

	scale := spatial.One
	if rec.Scale != nil {
		scale = *rec.Scale
	}

	kind, _ := KindFromType(rec.Type)

	return Definition{
		Key:               *key,
		Parent:            ParseAttachParent(rec.AttachParent),
		Kind:              kind,
		Location:          rec.Location,
		Rotation:          rec.Rotation,
		Scale:             scale,
		BoxExtent:         rec.BoxExtent,
		SphereRadius:      rec.SphereRadius,
		CapsuleRadius:     rec.CapsuleRadius,
		CapsuleHalfHeight: rec.CapsuleHalfHeight,
	}, true
}
