package component

import (
	"strings"
)

// persistentLevel marks the start of the actor path inside a level object path.
const persistentLevel = "PersistentLevel."

// Key identifies a component by its owning actor and component name.
type Key struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// NewKey returns a Key, or nil when either part is blank.
func NewKey(owner, name string) *Key {
	if strings.TrimSpace(owner) == "" || strings.TrimSpace(name) == "" {
		return nil
	}
	return &Key{Owner: owner, Name: name}
}

func (k Key) String() string {
	return k.Owner + "." + k.Name
}

// ParseAttachParent turns an attach-parent object reference such as
//
//	SceneComponent'/Game/Maps/X.X:PersistentLevel.BP_Spawner_3.DefaultSceneRoot'
//
// into the Key of the referenced component. It returns nil when the reference
// cannot be split into an owner and a component name.
func ParseAttachParent(ref string) *Key {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}

	path := unquote(ref)
	if i := strings.Index(path, persistentLevel); i >= 0 {
		path = path[i+len(persistentLevel):]
	}

	dot := strings.LastIndexByte(path, '.')
	if dot < 0 {
		return nil
	}

	return NewKey(NormalizeOwner(path[:dot]), path[dot+1:])
}

// NormalizeOwner drops namespace ("pkg:") and enclosing scope ("Outer.") qualifiers
// from an owner path, leaving the bare actor name.
func NormalizeOwner(owner string) string {
	if i := strings.LastIndexByte(owner, ':'); i >= 0 && i < len(owner)-1 {
		owner = owner[i+1:]
	}
	if i := strings.LastIndexByte(owner, '.'); i >= 0 && i < len(owner)-1 {
		owner = owner[i+1:]
	}
	return owner
}

// unquote returns the text between the first and last single quote, or ref
// unchanged when it is not quoted.
func unquote(ref string) string {
	first := strings.IndexByte(ref, '\'')
	last := strings.LastIndexByte(ref, '\'')
	if first >= 0 && last > first {
		return ref[first+1 : last]
	}
	return ref
}
