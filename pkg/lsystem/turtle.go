package lsystem

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/willbeason/procedural-trees/pkg/geometry"
)

// State is the turtle's cursor.
type State struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Heading is the direction the turtle moves in.
func (s State) Heading() mgl64.Vec3 {
	return geometry.UpAxis(s.Rotation)
}

// Turn rotates the turtle by degrees about axis in its own frame.
func (s State) Turn(axis mgl64.Vec3, degrees float64) State {
	s.Rotation = s.Rotation.Mul(mgl64.QuatRotate(mgl64.DegToRad(degrees), axis)).Normalize()
	return s
}

// Move advances the turtle distance along its heading.
func (s State) Move(distance float64) State {
	s.Position = s.Position.Add(s.Heading().Mul(distance))
	return s
}

type stack []State

func (s *stack) push(st State) {
	*s = append(*s, st)
}

func (s *stack) pop() (State, bool) {
	if len(*s) == 0 {
		return State{}, false
	}
	st := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return st, true
}
