package geometry

import "math"

// XY is a point on a 2-D image plane.
type XY struct {
	X, Y float64
}

// Rescale scales xy, rotates it counter-clockwise by angle radians, and then
// translates it by offset.
func Rescale(xy XY, scale float64, angle float64, offset XY) XY {
	x := xy.X * scale
	y := xy.Y * scale

	x2 := x*math.Cos(angle) - y*math.Sin(angle) + offset.X
	y2 := x*math.Sin(angle) + y*math.Cos(angle) + offset.Y

	return XY{X: x2, Y: y2}
}
