package fractal

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/willbeason/procedural-trees/pkg/geometry"
)

// A Placement is where one child sits relative to its parent, in the
// parent's frame.
type Placement struct {
	Direction   mgl64.Vec3
	Orientation mgl64.Quat

	// The child's origin is Direction * (Base + Factor*childScale).
	Base, Factor float64
}

// Offset is the child's local position for the given child scale.
func (p Placement) Offset(childScale float64) mgl64.Vec3 {
	return p.Direction.Mul(p.Base + p.Factor*childScale)
}

// A Table lists a parent's children in spawn order.
type Table []Placement

// FractalTable grows one child on each face of the parent except the bottom,
// each child turned so its own up axis points away from the parent.
func FractalTable() Table {
	return Table{
		{Direction: geometry.Up, Orientation: mgl64.QuatIdent(), Base: 0.5, Factor: 0.5},
		{Direction: geometry.Right, Orientation: geometry.Euler(0, 0, -90), Base: 0.5, Factor: 0.5},
		{Direction: geometry.Left, Orientation: geometry.Euler(0, 0, 90), Base: 0.5, Factor: 0.5},
		{Direction: geometry.Forward, Orientation: geometry.Euler(90, 0, 0), Base: 0.5, Factor: 0.5},
		{Direction: geometry.Back, Orientation: geometry.Euler(-90, 0, 0), Base: 0.5, Factor: 0.5},
	}
}

// KochCubeTable extends FractalTable with four children pushed one further
// child-width out along the horizontal axes.
func KochCubeTable() Table {
	t := FractalTable()
	return append(t,
		Placement{Direction: geometry.Right, Orientation: geometry.Euler(0, 0, -90), Base: 0.5, Factor: 1.5},
		Placement{Direction: geometry.Left, Orientation: geometry.Euler(0, 0, 90), Base: 0.5, Factor: 1.5},
		Placement{Direction: geometry.Forward, Orientation: geometry.Euler(90, 0, 0), Base: 0.5, Factor: 1.5},
		Placement{Direction: geometry.Back, Orientation: geometry.Euler(-90, 0, 0), Base: 0.5, Factor: 1.5},
	)
}

// Size is the number of nodes in a full tree of the given depth when every
// child spawns.
func (t Table) Size(maxDepth int) int {
	if maxDepth < 0 {
		return 1
	}
	total, level := 0, 1
	for d := 0; d <= maxDepth; d++ {
		total += level
		level *= len(t)
	}
	return total
}
