// Package config reads the YAML file that parameterizes every generator.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/willbeason/procedural-trees/pkg/composer"
	"github.com/willbeason/procedural-trees/pkg/fractal"
	"github.com/willbeason/procedural-trees/pkg/lsystem"
	"github.com/willbeason/procedural-trees/pkg/validate"
)

// File is one configuration file. Sections left out of the file keep their
// defaults.
type File struct {
	Seed int64 `yaml:"seed"`

	Fractal     fractal.Config  `yaml:"fractal"`
	KochCube    fractal.Config  `yaml:"kochcube"`
	LSystem     lsystem.Config  `yaml:"lsystem"`
	Composition composer.Config `yaml:"composition"`

	Forest ForestConfig `yaml:"forest"`
}

// ForestConfig lays out several grammar plants sharing one jitter table.
type ForestConfig struct {
	Count   int     `yaml:"count"`
	Spacing float64 `yaml:"spacing"`
	// Workers bounds how many plants grow at once. Zero means one per plant.
	Workers int `yaml:"workers"`
}

// Default returns every section at its default.
func Default() *File {
	return &File{
		Seed:        1,
		Fractal:     fractal.DefaultFractalConfig(),
		KochCube:    fractal.DefaultKochCubeConfig(),
		LSystem:     lsystem.DefaultConfig(),
		Composition: composer.DefaultConfig(),
		Forest: ForestConfig{
			Count:   8,
			Spacing: 3,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*File, error) {
	f := Default()
	if path == "" {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return f, nil
}

// Validate fills in missing variants and reports every invalid field.
func (f *File) Validate() error {
	if f.Fractal.Variant == "" {
		f.Fractal.Variant = fractal.VariantFractal
	}
	if f.KochCube.Variant == "" {
		f.KochCube.Variant = fractal.VariantKochCube
	}

	var errs validate.Errors
	errs.Add(section("fractal", f.Fractal.Validate()))
	errs.Add(section("kochcube", f.KochCube.Validate()))
	errs.Add(section("lsystem", f.LSystem.Validate()))
	errs.Add(section("composition", f.Composition.Validate()))

	errs.Add(validate.NonNegativeInt("forest.count", f.Forest.Count))
	errs.Add(validate.NonNegative("forest.spacing", f.Forest.Spacing))
	errs.Add(validate.NonNegativeInt("forest.workers", f.Forest.Workers))

	return errs.Err()
}

func section(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}
