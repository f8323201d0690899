package composer

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/willbeason/procedural-trees/pkg/noise"
	"github.com/willbeason/procedural-trees/pkg/scene"
	"github.com/willbeason/procedural-trees/pkg/validate"
)

// TrunkConfig sizes the single trunk.
type TrunkConfig struct {
	scene.Appearance `yaml:",inline"`

	Height   noise.Normal `yaml:"height"`
	Diameter noise.Normal `yaml:"diameter"`
}

// BranchConfig sizes and counts branches.
type BranchConfig struct {
	scene.Appearance `yaml:",inline"`

	Count    int          `yaml:"count"`
	Length   noise.Normal `yaml:"length"`
	Diameter noise.Normal `yaml:"diameter"`
}

// LeafConfig sizes and counts leaves.
type LeafConfig struct {
	scene.Appearance `yaml:",inline"`

	Count int          `yaml:"count"`
	Width noise.Normal `yaml:"width"`
	Depth noise.Normal `yaml:"depth"`
	// Thickness is the fixed flat extent of every leaf.
	Thickness float64 `yaml:"thickness"`
}

// Config describes one composed tree.
type Config struct {
	// Origin is where the base of the trunk sits.
	Origin mgl64.Vec3 `yaml:"-"`

	Trunk  TrunkConfig  `yaml:"trunk"`
	Branch BranchConfig `yaml:"branch"`
	Leaf   LeafConfig   `yaml:"leaf"`
	Shape  Shape        `yaml:"shape"`
}

// DefaultConfig is a medium tree with a spherical crown.
func DefaultConfig() Config {
	return Config{
		Trunk: TrunkConfig{
			Appearance: scene.Appearance{Geometry: "cylinder", Material: "bark"},
			Height:     noise.Normal{Mean: 5, StdDev: 0.5},
			Diameter:   noise.Normal{Mean: 0.6, StdDev: 0.1},
		},
		Branch: BranchConfig{
			Appearance: scene.Appearance{Geometry: "cylinder", Material: "bark"},
			Count:      6,
			Length:     noise.Normal{Mean: 2, StdDev: 0.4},
			Diameter:   noise.Normal{Mean: 0.2, StdDev: 0.05},
		},
		Leaf: LeafConfig{
			Appearance: scene.Appearance{Geometry: "quad", Material: "leaf"},
			Count:      200,
			Width:      noise.Normal{Mean: 0.3, StdDev: 0.05},
			Depth:      noise.Normal{Mean: 0.4, StdDev: 0.05},
			Thickness:  0.01,
		},
		Shape: Sphere,
	}
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs validate.Errors

	errs.Add(c.Trunk.Height.Validate("trunk.height"))
	errs.Add(c.Trunk.Diameter.Validate("trunk.diameter"))

	errs.Add(validate.NonNegativeInt("branch.count", c.Branch.Count))
	errs.Add(c.Branch.Length.Validate("branch.length"))
	errs.Add(c.Branch.Diameter.Validate("branch.diameter"))

	errs.Add(validate.NonNegativeInt("leaf.count", c.Leaf.Count))
	errs.Add(c.Leaf.Width.Validate("leaf.width"))
	errs.Add(c.Leaf.Depth.Validate("leaf.depth"))
	errs.Add(validate.NonNegative("leaf.thickness", c.Leaf.Thickness))

	errs.Add(c.Shape.Validate())

	return errs.Err()
}
