// Package geometry holds the small amount of 3-D math shared by the
// generators. Y is up and Z is forward.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	Up      = mgl64.Vec3{0, 1, 0}
	Down    = mgl64.Vec3{0, -1, 0}
	Right   = mgl64.Vec3{1, 0, 0}
	Left    = mgl64.Vec3{-1, 0, 0}
	Forward = mgl64.Vec3{0, 0, 1}
	Back    = mgl64.Vec3{0, 0, -1}

	Zero = mgl64.Vec3{}
	One  = mgl64.Vec3{1, 1, 1}
)

// Euler returns the rotation for the given angles in degrees about the X, Y,
// and Z axes. Z is applied first, then X, then Y.
func Euler(x, y, z float64) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(x), Right)
	qy := mgl64.QuatRotate(mgl64.DegToRad(y), Up)
	qz := mgl64.QuatRotate(mgl64.DegToRad(z), Forward)

	return qy.Mul(qx).Mul(qz).Normalize()
}

// UpAxis is the direction q rotates Up into.
func UpAxis(q mgl64.Quat) mgl64.Vec3 {
	return q.Rotate(Up)
}

// Scale multiplies v component-wise by s.
func Scale(v, s mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0] * s[0], v[1] * s[1], v[2] * s[2]}
}

// A Transform is an absolute placement in the world.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// Identity is the transform at the origin with unit scale.
func Identity() Transform {
	return Transform{
		Position: Zero,
		Rotation: mgl64.QuatIdent(),
		Scale:    One,
	}
}

// Place converts a point in the transform's local frame to world space.
func (t Transform) Place(local mgl64.Vec3) mgl64.Vec3 {
	return t.Position.Add(t.Rotation.Rotate(Scale(local, t.Scale)))
}

// Child composes a local rotation and scale onto the transform, placing the
// child's origin at local.
func (t Transform) Child(local mgl64.Vec3, rotation mgl64.Quat, scale mgl64.Vec3) Transform {
	return Transform{
		Position: t.Place(local),
		Rotation: t.Rotation.Mul(rotation).Normalize(),
		Scale:    Scale(t.Scale, scale),
	}
}

// HorizontalDistance is the distance between a and b ignoring height.
func HorizontalDistance(a, b mgl64.Vec3) float64 {
	dx := a.X() - b.X()
	dz := a.Z() - b.Z()
	return math.Sqrt(dx*dx + dz*dz)
}

// PolarAngle is the angle of v measured from Up, in radians.
func PolarAngle(v mgl64.Vec3) float64 {
	l := v.Len()
	if l == 0 {
		return 0
	}
	return math.Acos(math.Max(-1, math.Min(1, v.Y()/l)))
}

// Near reports whether a and b are within tol of each other, measured as the
// absolute distance between them.
func Near(a, b mgl64.Vec3, tol float64) bool {
	return a.Sub(b).Len() <= tol
}
