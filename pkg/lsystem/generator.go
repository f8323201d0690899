// Package lsystem grows plants from a rewriting grammar. The expanded symbol
// sequence is read once, left to right, by a turtle that emits one segment
// node per F and saves and restores its state at brackets.
package lsystem

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/willbeason/procedural-trees/internal/logging"
	"github.com/willbeason/procedural-trees/pkg/noise"
	"github.com/willbeason/procedural-trees/pkg/scene"
)

// Generator expands a grammar and interprets the result.
type Generator struct {
	cfg     Config
	grammar Grammar
	jitter  JitterTable
	src     noise.Source
	logger  *slog.Logger
}

// Option customizes a Generator.
type Option func(*Generator)

// WithGrammar replaces the configured grammar.
func WithGrammar(g Grammar) Option {
	return func(gen *Generator) { gen.grammar = g }
}

// WithJitter uses a shared jitter table instead of drawing a new one.
func WithJitter(t JitterTable) Option {
	return func(gen *Generator) { gen.jitter = t }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(gen *Generator) { gen.logger = l }
}

// New validates cfg and, unless one is supplied, draws the jitter table
// from src.
func New(cfg Config, src noise.Source, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grammar, err := cfg.Grammar()
	if err != nil {
		return nil, err
	}

	gen := &Generator{
		cfg:     cfg,
		grammar: grammar,
		src:     src,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(gen)
	}

	if gen.jitter == nil {
		size := cfg.JitterSize
		if size == 0 {
			size = DefaultJitterSize
		}
		gen.jitter = NewJitterTable(src, size)
	}

	return gen, nil
}

// Jitter is the table in use, for sharing with other generators.
func (gen *Generator) Jitter() JitterTable {
	return gen.jitter
}

// Expand rewrites the axiom the configured number of times.
func (gen *Generator) Expand() string {
	return gen.grammar.Expand(gen.cfg.Iterations)
}

// Result is a grown plant. Every segment hangs directly off Root.
type Result struct {
	Graph    *scene.Graph
	Root     scene.NodeID
	Segments []scene.NodeID
	Sequence string
}

// Generate expands the grammar and grows the plant from origin, pointing up.
func (gen *Generator) Generate(origin mgl64.Vec3) (*Result, error) {
	return gen.GenerateSequence(gen.Expand(), origin)
}

// GenerateSequence grows a plant from an already expanded sequence. Nothing
// is built if the sequence's brackets are unbalanced.
func (gen *Generator) GenerateSequence(seq string, origin mgl64.Vec3) (*Result, error) {
	in := interpreter{cfg: gen.cfg, jitter: gen.jitter, src: gen.src}

	segments, err := in.run(seq, State{Position: origin, Rotation: mgl64.QuatIdent()})
	if err != nil {
		return nil, err
	}

	g := scene.New()
	root, err := g.AddRoot(scene.Params{
		Role:     scene.RoleRoot,
		Position: origin,
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	})
	if err != nil {
		return nil, err
	}

	res := &Result{
		Graph:    g,
		Root:     root,
		Segments: make([]scene.NodeID, 0, len(segments)),
		Sequence: seq,
	}

	for _, s := range segments {
		appearance := gen.cfg.Branch
		if s.Role == scene.RoleLeaf {
			appearance = gen.cfg.Leaf
		}

		id, err := g.AddChild(root, scene.Params{
			Role:     s.Role,
			Geometry: appearance.Geometry,
			Material: appearance.Material,
			Position: s.Center(),
			Rotation: s.Rotation,
			Scale:    mgl64.Vec3{gen.cfg.Width, s.Length, gen.cfg.Width},
		})
		if err != nil {
			return nil, err
		}
		res.Segments = append(res.Segments, id)
	}

	gen.logger.Debug("grew plant",
		"symbols", len(seq),
		"segments", len(segments),
	)

	return res, nil
}
