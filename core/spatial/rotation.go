package spatial

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// gimbalEpsilon is the |cos(pitch)| threshold below which yaw and roll are
// no longer separable and roll is forced to zero.
const gimbalEpsilon = 1e-6

// Rotation is an engine rotator in degrees. Pitch turns about the local Y axis,
// yaw about Z and roll about X; the direction-cosine matrix is Rz(yaw)·Ry(pitch)·Rx(roll).
type Rotation struct {
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
	Roll  float64 `json:"roll"`
}

// NoRotation is the zero rotator.
var NoRotation = Rotation{}

// Rot constructs a Rotation from pitch, yaw and roll in degrees.
func Rot(pitch, yaw, roll float64) Rotation {
	return Rotation{Pitch: pitch, Yaw: yaw, Roll: roll}
}

// Matrix builds the 3×3 direction-cosine matrix of r.
func (r Rotation) Matrix() *mat.Dense {
	sp, cp := math.Sincos(radians(r.Pitch))
	sy, cy := math.Sincos(radians(r.Yaw))
	sr, cr := math.Sincos(radians(r.Roll))

	return mat.NewDense(3, 3, []float64{
		cy * cp, cy*sp*sr - sy*cr, cy*sp*cr + sy*sr,
		sy * cp, sy*sp*sr + cy*cr, sy*sp*cr - cy*sr,
		-sp, cp * sr, cp * cr,
	})
}

// Rotate applies r to v.
func (r Rotation) Rotate(v Vector3) Vector3 {
	return apply(r.Matrix(), v)
}

// RotateExtents projects the half-extents v through the absolute entries of
// r's matrix, giving the axis-aligned half-extents of the rotated box.
func (r Rotation) RotateExtents(v Vector3) Vector3 {
	abs := mat.NewDense(3, 3, nil)
	abs.Apply(func(_, _ int, x float64) float64 { return math.Abs(x) }, r.Matrix())
	return apply(abs, v)
}

// Compose returns the rotation whose matrix is r·other, i.e. other expressed in
// r's frame. The result goes through Euler extraction and is therefore lossy
// near gimbal lock.
func (r Rotation) Compose(other Rotation) Rotation {
	var product mat.Dense
	product.Mul(r.Matrix(), other.Matrix())
	return FromMatrix(&product)
}

// FromMatrix extracts pitch, yaw and roll in degrees from a direction-cosine
// matrix. When |cos(pitch)| <= 1e-6 yaw is taken from the first two columns
// and roll is set to zero.
func FromMatrix(m mat.Matrix) Rotation {
	pitch := math.Asin(clampUnit(-m.At(2, 0)))

	var yaw, roll float64
	if math.Abs(math.Cos(pitch)) > gimbalEpsilon {
		yaw = math.Atan2(m.At(1, 0), m.At(0, 0))
		roll = math.Atan2(m.At(2, 1), m.At(2, 2))
	} else {
		yaw = math.Atan2(-m.At(0, 1), m.At(1, 1))
		roll = 0
	}

	return Rotation{
		Pitch: degrees(pitch),
		Yaw:   degrees(yaw),
		Roll:  degrees(roll),
	}
}

func apply(m mat.Matrix, v Vector3) Vector3 {
	var out mat.VecDense
	out.MulVec(m, mat.NewVecDense(3, []float64{v.X, v.Y, v.Z}))
	return Vector3{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

// clampUnit keeps asin in its domain when rounding pushes |x| just past 1.
func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
