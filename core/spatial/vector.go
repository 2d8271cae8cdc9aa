// Package spatial provides the vector and rotation value types used to compose
// engine-space transforms.
package spatial

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Vector3 is a point, offset, scale or half-extent in engine units.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

var (
	// Zero is the origin.
	Zero = Vector3{}
	// One is the neutral scale.
	One = Vector3{X: 1, Y: 1, Z: 1}
)

// Vec constructs a Vector3.
func Vec(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3(r3.Add(r3.Vec(v), r3.Vec(o)))
}

// Multiply returns the component-wise (Hadamard) product of v and o.
func (v Vector3) Multiply(o Vector3) Vector3 {
	return Vector3{X: v.X * o.X, Y: v.Y * o.Y, Z: v.Z * o.Z}
}

// Norm returns the Euclidean length of v.
func (v Vector3) Norm() float64 {
	return r3.Norm(r3.Vec(v))
}
