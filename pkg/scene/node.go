// Package scene is the output of every generator: an arena of structure
// nodes addressed by NodeID.
//
// Nodes store their absolute placement. A node's parent is only an index used
// for attachment and traversal; the graph owns every node.
package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/willbeason/procedural-trees/pkg/geometry"
)

// NodeID addresses a node within one Graph.
type NodeID int

// None is the parent of a root.
const None NodeID = -1

// GeometryRef names a mesh owned by the renderer.
type GeometryRef string

// MaterialRef names a material owned by the renderer.
type MaterialRef string

// Appearance is the pair of handles a renderer needs to draw a node.
type Appearance struct {
	Geometry GeometryRef `yaml:"geometry"`
	Material MaterialRef `yaml:"material"`
}

// Role is what a node represents in the generated structure.
type Role string

const (
	RoleRoot      Role = "root"
	RoleConnector Role = "connector"
	RoleTrunk     Role = "trunk"
	RoleBranch    Role = "branch"
	RoleLeaf      Role = "leaf"
	RoleCell      Role = "cell"
)

// Params fully describe a node to build.
type Params struct {
	Role     Role
	Geometry GeometryRef
	Material MaterialRef

	Position mgl64.Vec3
	Rotation mgl64.Quat
	// Scale.Y is the length of linear segments.
	Scale mgl64.Vec3
}

// Transform is the placement described by p.
func (p Params) Transform() geometry.Transform {
	return geometry.Transform{
		Position: p.Position,
		Rotation: p.Rotation,
		Scale:    p.Scale,
	}
}

// Node is one structure node.
type Node struct {
	Params

	ID     NodeID
	Depth  int
	Parent NodeID
	// Children are in creation order.
	Children []NodeID
}

// Drawable reports whether the renderer has anything to draw for n.
// Connectors and bare roots carry no geometry.
func (n Node) Drawable() bool {
	return n.Geometry != ""
}

// Up is the node's length axis.
func (n Node) Up() mgl64.Vec3 {
	return geometry.UpAxis(n.Rotation)
}

// Base is the end of the node's length axis nearest its origin side.
func (n Node) Base() mgl64.Vec3 {
	return n.Position.Sub(n.Up().Mul(n.Scale.Y() / 2))
}

// Tip is the far end of the node's length axis.
func (n Node) Tip() mgl64.Vec3 {
	return n.Position.Add(n.Up().Mul(n.Scale.Y() / 2))
}
