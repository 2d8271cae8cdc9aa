// Package export reads FModel JSON exports into the component and link
// records consumed by the transform and capture packages.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/adalundhe/layerkit/core/capture"
	"github.com/adalundhe/layerkit/core/component"
	"github.com/adalundhe/layerkit/core/spatial"
)

// Object type tags that carry graph links.
const (
	GraphInitializerType = "SQGraphRAASInitializerComponent"
	LaneInitializerType  = "SQRAASLaneInitializer"
)

var (
	// ErrNotArray means the export is not a JSON array of objects.
	ErrNotArray = errors.New("export is expected to be a JSON array of objects")

	// ErrMalformedReference means an object reference could not be reduced
	// to a bare name.
	ErrMalformedReference = errors.New("malformed object reference")
)

// Export holds the records of one exported level document.
type Export struct {
	Components []component.Record
	Links      []capture.Link
	Lanes      capture.LaneGraph

	// Actors lists the names of every non-component object by type, in
	// document order.
	Actors map[string][]string
}

// HasGraph reports whether the export carries layer-wide capture links.
func (e *Export) HasGraph() bool {
	return len(e.Links) > 0
}

// HasLanes reports whether the export carries lane definitions.
func (e *Export) HasLanes() bool {
	return len(e.Lanes.Lanes) > 0
}

// =============================================================================
// Wire shapes
// =============================================================================

type object struct {
	Type       string          `json:"Type"`
	Name       string          `json:"Name"`
	Outer      string          `json:"Outer"`
	Properties json.RawMessage `json:"Properties"`
}

type vector struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
	Z float64 `json:"Z"`
}

type rotator struct {
	Pitch float64 `json:"Pitch"`
	Yaw   float64 `json:"Yaw"`
	Roll  float64 `json:"Roll"`
}

type objectRef struct {
	ObjectName string `json:"ObjectName"`
	ObjectPath string `json:"ObjectPath"`
}

type componentProps struct {
	RelativeLocation  *vector    `json:"RelativeLocation"`
	RelativeRotation  *rotator   `json:"RelativeRotation"`
	RelativeScale3D   *vector    `json:"RelativeScale3D"`
	AttachParent      *objectRef `json:"AttachParent"`
	BoxExtent         *vector    `json:"BoxExtent"`
	SphereRadius      float64    `json:"SphereRadius"`
	CapsuleRadius     float64    `json:"CapsuleRadius"`
	CapsuleHalfHeight float64    `json:"CapsuleHalfHeight"`
}

type linkProps struct {
	NodeA objectRef `json:"NodeA"`
	NodeB objectRef `json:"NodeB"`
}

type graphProps struct {
	DesignOutgoingLinks []linkProps `json:"DesignOutgoingLinks"`
}

type laneProps struct {
	AASLanes []struct {
		LaneName     string      `json:"LaneName"`
		AASLaneLinks []linkProps `json:"AASLaneLinks"`
	} `json:"AASLanes"`
}

// =============================================================================
// Decoding
// =============================================================================

// ReadFile decodes the export at path.
func ReadFile(path string) (*Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	exp, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return exp, nil
}

// Decode reads an export from r, one object at a time.
func Decode(r io.Reader) (*Export, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotArray, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, ErrNotArray
	}

	exp := &Export{Actors: make(map[string][]string)}
	var sawGraph, sawLanes bool

	for i := 0; dec.More(); i++ {
		var obj object
		if err := dec.Decode(&obj); err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}

		switch {
		case isComponentType(obj.Type):
			rec, err := decodeComponent(obj)
			if err != nil {
				return nil, fmt.Errorf("object %d (%s): %w", i, obj.Name, err)
			}
			exp.Components = append(exp.Components, rec)
		case obj.Type == GraphInitializerType && !sawGraph:
			sawGraph = true
			if exp.Links, err = decodeGraph(obj); err != nil {
				return nil, fmt.Errorf("object %d (%s): %w", i, obj.Name, err)
			}
		case obj.Type == LaneInitializerType && !sawLanes:
			sawLanes = true
			if exp.Lanes, err = decodeLanes(obj); err != nil {
				return nil, fmt.Errorf("object %d (%s): %w", i, obj.Name, err)
			}
		case obj.Type != "":
			exp.Actors[obj.Type] = append(exp.Actors[obj.Type], obj.Name)
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotArray, err)
	}
	return exp, nil
}

func isComponentType(t string) bool {
	_, ok := component.KindFromType(t)
	return ok
}

func decodeComponent(obj object) (component.Record, error) {
	rec := component.Record{Type: obj.Type, Owner: obj.Outer, Name: obj.Name}

	var props componentProps
	if len(obj.Properties) > 0 {
		if err := json.Unmarshal(obj.Properties, &props); err != nil {
			return rec, err
		}
	}

	if v := props.RelativeLocation; v != nil {
		rec.Location = spatial.Vec(v.X, v.Y, v.Z)
	}
	if r := props.RelativeRotation; r != nil {
		rec.Rotation = spatial.Rot(r.Pitch, r.Yaw, r.Roll)
	}
	if s := props.RelativeScale3D; s != nil {
		scale := spatial.Vec(s.X, s.Y, s.Z)
		rec.Scale = &scale
	}
	if p := props.AttachParent; p != nil {
		rec.AttachParent = p.ObjectName
	}
	if e := props.BoxExtent; e != nil {
		rec.BoxExtent = spatial.Vec(e.X, e.Y, e.Z)
	}
	rec.SphereRadius = props.SphereRadius
	rec.CapsuleRadius = props.CapsuleRadius
	rec.CapsuleHalfHeight = props.CapsuleHalfHeight
	return rec, nil
}

func decodeGraph(obj object) ([]capture.Link, error) {
	var props graphProps
	if err := json.Unmarshal(obj.Properties, &props); err != nil {
		return nil, err
	}
	return decodeLinks(props.DesignOutgoingLinks)
}

func decodeLanes(obj object) (capture.LaneGraph, error) {
	var props laneProps
	if err := json.Unmarshal(obj.Properties, &props); err != nil {
		return capture.LaneGraph{}, err
	}

	lg := capture.LaneGraph{Lanes: make([]capture.Lane, 0, len(props.AASLanes))}
	for _, lane := range props.AASLanes {
		links, err := decodeLinks(lane.AASLaneLinks)
		if err != nil {
			return capture.LaneGraph{}, fmt.Errorf("lane %q: %w", lane.LaneName, err)
		}
		lg.Lanes = append(lg.Lanes, capture.Lane{Name: lane.LaneName, Links: links})
	}
	return lg, nil
}

func decodeLinks(raw []linkProps) ([]capture.Link, error) {
	links := make([]capture.Link, 0, len(raw))
	for i, l := range raw {
		a, err := NodeName(l.NodeA.ObjectName)
		if err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		b, err := NodeName(l.NodeB.ObjectName)
		if err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
		links = append(links, capture.Link{Name: fmt.Sprintf("Link%d", i), NodeA: a, NodeB: b})
	}
	return links, nil
}
