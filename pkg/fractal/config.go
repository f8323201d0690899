package fractal

import (
	"time"

	"github.com/willbeason/procedural-trees/pkg/scene"
	"github.com/willbeason/procedural-trees/pkg/validate"
)

// Variant selects the child table.
type Variant string

const (
	VariantFractal  Variant = "fractal"
	VariantKochCube Variant = "kochcube"
)

// Config parameterizes a self-similar tree. Every node shares one mesh and
// material and is ChildScale times the size of its parent.
type Config struct {
	Variant Variant `yaml:"variant"`

	// MaxDepth is the depth of the deepest nodes. Zero or less grows only the
	// root.
	MaxDepth   int     `yaml:"max_depth"`
	ChildScale float64 `yaml:"child_scale"`
	BaseScale  float64 `yaml:"base_scale"`

	// SpawnProbability gates each child. At 1 no draw is made.
	SpawnProbability float64 `yaml:"spawn_probability"`

	// Each child waits a uniform delay in [MinDelay, MaxDelay) before it is
	// created.
	MinDelay time.Duration `yaml:"min_delay"`
	MaxDelay time.Duration `yaml:"max_delay"`

	Geometry scene.GeometryRef `yaml:"geometry"`
	Material scene.MaterialRef `yaml:"material"`
}

// DefaultFractalConfig is the five-way fractal that grows with visible
// pauses between children.
func DefaultFractalConfig() Config {
	return Config{
		Variant:          VariantFractal,
		MaxDepth:         4,
		ChildScale:       0.5,
		BaseScale:        1,
		SpawnProbability: 1,
		MinDelay:         100 * time.Millisecond,
		MaxDelay:         500 * time.Millisecond,
		Geometry:         "sphere",
		Material:         "default",
	}
}

// DefaultKochCubeConfig is the nine-way cube growth with randomly skipped
// children and no delay.
func DefaultKochCubeConfig() Config {
	return Config{
		Variant:          VariantKochCube,
		MaxDepth:         3,
		ChildScale:       1.0 / 3.0,
		BaseScale:        1,
		SpawnProbability: 0.7,
		Geometry:         "cube",
		Material:         "default",
	}
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs validate.Errors

	switch c.Variant {
	case VariantFractal, VariantKochCube, "":
	default:
		errs.Add(&validate.ConfigurationError{Field: "variant", Reason: "unknown variant", Value: c.Variant})
	}

	errs.Add(validate.NonNegative("child_scale", c.ChildScale))
	errs.Add(validate.NonNegative("base_scale", c.BaseScale))
	errs.Add(validate.Probability("spawn_probability", c.SpawnProbability))
	errs.Add(validate.NonNegative("min_delay", c.MinDelay.Seconds()))
	errs.Add(validate.Ordered("delay", c.MinDelay.Seconds(), c.MaxDelay.Seconds()))

	return errs.Err()
}

// Table returns the child table for the configured variant. An empty variant
// is the plain fractal.
func (c Config) Table() (Table, error) {
	switch c.Variant {
	case VariantFractal, "":
		return FractalTable(), nil
	case VariantKochCube:
		return KochCubeTable(), nil
	default:
		return nil, &validate.ConfigurationError{Field: "variant", Reason: "unknown variant", Value: c.Variant}
	}
}
