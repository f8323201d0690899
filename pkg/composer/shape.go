package composer

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/willbeason/procedural-trees/pkg/noise"
	"github.com/willbeason/procedural-trees/pkg/validate"
)

// Shape is the volume leaves are scattered in.
type Shape int

const (
	Cone Shape = iota
	Cube
	Cylinder
	Sphere
)

var shapeNames = [...]string{
	Cone:     "cone",
	Cube:     "cube",
	Cylinder: "cylinder",
	Sphere:   "sphere",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// ParseShape reads a shape name.
func ParseShape(name string) (Shape, error) {
	for i, n := range shapeNames {
		if strings.EqualFold(name, n) {
			return Shape(i), nil
		}
	}
	return 0, &validate.ConfigurationError{Field: "shape", Reason: "unknown shape", Value: name}
}

// MarshalText writes the shape name.
func (s Shape) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText reads a shape name, so YAML and flags may use names.
func (s *Shape) UnmarshalText(text []byte) error {
	parsed, err := ParseShape(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Validate rejects values outside the enumeration.
func (s Shape) Validate() error {
	if s < 0 || int(s) >= len(shapeNames) {
		return &validate.ConfigurationError{Field: "shape", Reason: "unknown shape", Value: int(s)}
	}
	return nil
}

// ConeBound is the largest horizontal offset allowed at height h in the cone
// filler. It shrinks linearly from radius at the bottom (h = -radius/2) to
// zero at the apex (h = radius).
func ConeBound(radius, h float64) float64 {
	if radius == 0 {
		return 0
	}
	bottom := -radius / 2
	return math.Max(0, radius*(h-radius)/(bottom-radius))
}

// Scatter returns a random offset inside shape sized by radius. A zero
// radius always yields the zero offset.
func Scatter(shape Shape, src noise.Source, radius float64) mgl64.Vec3 {
	switch shape {
	case Cone:
		h := noise.Range(src, -radius/2, radius)
		rho := noise.Range(src, 0, ConeBound(radius, h))
		phi := noise.Range(src, 0, 2) * math.Pi
		return mgl64.Vec3{rho * math.Cos(phi), h, rho * math.Sin(phi)}

	case Cube:
		return mgl64.Vec3{
			noise.Range(src, -radius, radius),
			noise.Range(src, -radius/2, radius),
			noise.Range(src, -radius, radius),
		}

	case Cylinder:
		rho := noise.Range(src, 0, radius)
		phi := noise.Range(src, 0, 2) * math.Pi
		return mgl64.Vec3{
			rho * math.Cos(phi),
			noise.Range(src, -radius/2, radius),
			rho * math.Sin(phi),
		}

	case Sphere:
		rho := noise.Range(src, 0, radius)
		theta := noise.Range(src, 0, 0.7) * math.Pi
		phi := noise.Range(src, 0, 2) * math.Pi
		return mgl64.Vec3{
			rho * math.Sin(theta) * math.Cos(phi),
			rho * math.Cos(theta),
			rho * math.Sin(theta) * math.Sin(phi),
		}
	}

	return mgl64.Vec3{}
}
