package lsystem

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/willbeason/procedural-trees/pkg/geometry"
	"github.com/willbeason/procedural-trees/pkg/noise"
	"github.com/willbeason/procedural-trees/pkg/scene"
)

// Symbols understood by the turtle. Anything else, including X, is skipped.
const (
	SymbolForward   = 'F'
	SymbolGrow      = 'X'
	SymbolTurnLeft  = '+'
	SymbolTurnRight = '-'
	SymbolSpinLeft  = '*'
	SymbolSpinRight = '/'
	SymbolPush      = '['
	SymbolPop       = ']'
)

// spinAngle is the turn about the vertical for '*' and '/'.
const spinAngle = 120.0

// A Segment is one drawn F.
type Segment struct {
	// Index is the position of the F in the sequence.
	Index int
	Role  scene.Role

	Start    mgl64.Vec3
	Rotation mgl64.Quat
	Length   float64
}

// Tip is where the segment ends.
func (s Segment) Tip() mgl64.Vec3 {
	return s.Start.Add(geometry.UpAxis(s.Rotation).Mul(s.Length))
}

// Center is the segment's midpoint.
func (s Segment) Center() mgl64.Vec3 {
	return s.Start.Add(geometry.UpAxis(s.Rotation).Mul(s.Length / 2))
}

func symbolAt(seq string, i int) byte {
	if i < 0 || i >= len(seq) {
		return 0
	}
	return seq[i]
}

// Classify decides whether the F at position k is a leaf. It looks at fixed
// offsets into the whole sequence without regard to bracket nesting: the F is
// a leaf if the next symbol is X, or if the symbols three and four ahead are
// F and X. Positions past the end never match.
func Classify(seq string, k int) scene.Role {
	if symbolAt(seq, k+1) == SymbolGrow ||
		(symbolAt(seq, k+3) == SymbolForward && symbolAt(seq, k+4) == SymbolGrow) {
		return scene.RoleLeaf
	}
	return scene.RoleBranch
}

// An interpreter walks a sequence with one turtle and one saved-state stack.
type interpreter struct {
	cfg    Config
	jitter JitterTable
	src    noise.Source
}

func (in interpreter) turn(k int, degrees float64) float64 {
	return degrees * (1 + in.cfg.Variance/100*in.jitter.At(k))
}

func (in interpreter) length(role scene.Role) float64 {
	if role == scene.RoleLeaf {
		return 2 * noise.Range(in.src, in.cfg.MinLeafLength, in.cfg.MaxLeafLength)
	}
	return 2 * noise.Range(in.src, in.cfg.MinBranchLength, in.cfg.MaxBranchLength)
}

// run interprets seq from start. It fails without partial output if the
// brackets are unbalanced.
func (in interpreter) run(seq string, start State) ([]Segment, error) {
	var (
		segments []Segment
		saved    stack
		turtle   = start
	)

	for k := 0; k < len(seq); k++ {
		switch seq[k] {
		case SymbolForward:
			role := Classify(seq, k)
			length := in.length(role)
			segments = append(segments, Segment{
				Index:    k,
				Role:     role,
				Start:    turtle.Position,
				Rotation: turtle.Rotation,
				Length:   length,
			})
			turtle = turtle.Move(length)

		case SymbolTurnLeft:
			turtle = turtle.Turn(geometry.Forward, in.turn(k, in.cfg.Angle))

		case SymbolTurnRight:
			turtle = turtle.Turn(geometry.Back, in.turn(k, in.cfg.Angle))

		case SymbolSpinLeft:
			turtle = turtle.Turn(geometry.Up, in.turn(k, spinAngle))

		case SymbolSpinRight:
			turtle = turtle.Turn(geometry.Down, in.turn(k, spinAngle))

		case SymbolPush:
			saved.push(turtle)

		case SymbolPop:
			restored, ok := saved.pop()
			if !ok {
				return nil, &StructuralError{Position: k}
			}
			turtle = restored
		}
	}

	if len(saved) > 0 {
		return nil, &StructuralError{Position: len(seq), Open: len(saved)}
	}

	return segments, nil
}
