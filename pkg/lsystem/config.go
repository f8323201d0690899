package lsystem

import (
	"fmt"

	"github.com/willbeason/procedural-trees/pkg/scene"
	"github.com/willbeason/procedural-trees/pkg/validate"
)

// MaxIterations bounds the rewrite passes. The default grammar roughly
// triples in length per pass; ten passes yield close to half a million
// symbols.
const MaxIterations = 10

// Config parameterizes grammar growth and its interpretation.
type Config struct {
	// Iterations is the number of rewrite passes over the axiom.
	Iterations int `yaml:"iterations"`

	// Angle is the turn in degrees for '+' and '-'.
	Angle float64 `yaml:"angle"`
	// Variance is the percentage by which jitter may stretch or shrink a
	// turn.
	Variance float64 `yaml:"variance"`
	// JitterSize is the jitter table length. Zero means DefaultJitterSize.
	JitterSize int `yaml:"jitter_size"`

	Width           float64 `yaml:"width"`
	MinLeafLength   float64 `yaml:"min_leaf_length"`
	MaxLeafLength   float64 `yaml:"max_leaf_length"`
	MinBranchLength float64 `yaml:"min_branch_length"`
	MaxBranchLength float64 `yaml:"max_branch_length"`

	Branch scene.Appearance `yaml:"branch"`
	Leaf   scene.Appearance `yaml:"leaf"`

	// Axiom and Rules replace DefaultGrammar when set.
	Axiom string            `yaml:"axiom"`
	Rules map[string]string `yaml:"rules"`
}

// DefaultConfig is a thin, slightly irregular three-way plant.
func DefaultConfig() Config {
	return Config{
		Iterations:      3,
		Angle:           5,
		Variance:        10,
		JitterSize:      DefaultJitterSize,
		Width:           0.01,
		MinLeafLength:   0.2,
		MaxLeafLength:   0.5,
		MinBranchLength: 1,
		MaxBranchLength: 2,
		Branch:          scene.Appearance{Geometry: "line", Material: "bark"},
		Leaf:            scene.Appearance{Geometry: "line", Material: "leaf"},
	}
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs validate.Errors

	errs.Add(validate.NonNegativeInt("iterations", c.Iterations))
	if c.Iterations > MaxIterations {
		errs.Add(&validate.ConfigurationError{
			Field:  "iterations",
			Reason: fmt.Sprintf("must be at most %d", MaxIterations),
			Value:  c.Iterations,
		})
	}
	errs.Add(validate.Finite("angle", c.Angle))
	errs.Add(validate.NonNegative("variance", c.Variance))
	errs.Add(validate.NonNegativeInt("jitter_size", c.JitterSize))
	errs.Add(validate.NonNegative("width", c.Width))
	errs.Add(validate.NonNegative("min_leaf_length", c.MinLeafLength))
	errs.Add(validate.Ordered("leaf_length", c.MinLeafLength, c.MaxLeafLength))
	errs.Add(validate.NonNegative("min_branch_length", c.MinBranchLength))
	errs.Add(validate.Ordered("branch_length", c.MinBranchLength, c.MaxBranchLength))

	if _, err := c.Grammar(); err != nil {
		errs.Add(&validate.ConfigurationError{Field: "rules", Reason: err.Error()})
	}

	return errs.Err()
}

// Grammar is the configured grammar, or DefaultGrammar if none is set.
func (c Config) Grammar() (Grammar, error) {
	g := DefaultGrammar()
	if c.Axiom != "" {
		g.Axiom = c.Axiom
	}
	if len(c.Rules) > 0 {
		rules, err := ParseRules(c.Rules)
		if err != nil {
			return Grammar{}, err
		}
		g.Rules = rules
	}
	return g, nil
}
