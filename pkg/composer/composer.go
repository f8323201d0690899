// Package composer builds a tree in one pass: a trunk, branches radiating
// from its lower half, and leaves scattered in a crown volume above it.
// Every dimension is drawn from a normal distribution.
package composer

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/willbeason/procedural-trees/internal/logging"
	"github.com/willbeason/procedural-trees/pkg/geometry"
	"github.com/willbeason/procedural-trees/pkg/noise"
	"github.com/willbeason/procedural-trees/pkg/scene"
)

// MinDiameter is the thinnest trunk or branch built.
const MinDiameter = 0.1

const (
	maxBranchDiameterRatio = 1.5
	maxBranchLengthRatio   = 1.1
	maxBranchTilt          = 90.0
)

// Composer builds trees from one validated Config.
type Composer struct {
	cfg    Config
	logger *slog.Logger
}

// Option customizes a Composer.
type Option func(*Composer)

// WithLogger sets the logger clamped dimensions are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(c *Composer) { c.logger = l }
}

// New validates cfg.
func New(cfg Config, opts ...Option) (*Composer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Composer{cfg: cfg, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Result is one composed tree.
type Result struct {
	Graph *scene.Graph
	Root  scene.NodeID
	Trunk scene.NodeID

	Branches []scene.NodeID
	Leaves   []scene.NodeID
	// LeafConnector is None when no leaves were requested.
	LeafConnector scene.NodeID

	// Radius is the longest branch, which sizes the leaf crown.
	Radius float64
	// Clamped counts dimensions that were forced into range.
	Clamped int
}

type build struct {
	*Composer
	src noise.Source
	res *Result

	trunkHeight, trunkDiameter float64
}

// Compose builds a tree drawing every random value from src.
func (c *Composer) Compose(src noise.Source) (*Result, error) {
	g := scene.New()
	root, err := g.AddRoot(scene.Params{
		Role:     scene.RoleRoot,
		Position: c.cfg.Origin,
		Rotation: mgl64.QuatIdent(),
		Scale:    geometry.One,
	})
	if err != nil {
		return nil, err
	}

	b := &build{
		Composer: c,
		src:      src,
		res: &Result{
			Graph:         g,
			Root:          root,
			LeafConnector: scene.None,
		},
	}

	if err := b.trunk(); err != nil {
		return nil, err
	}
	for i := 0; i < c.cfg.Branch.Count; i++ {
		if err := b.branch(); err != nil {
			return nil, err
		}
	}
	for i := 0; i < c.cfg.Leaf.Count; i++ {
		if err := b.leaf(); err != nil {
			return nil, err
		}
	}

	return b.res, nil
}

func (b *build) clamp(role scene.Role, field string, sampled, value float64) float64 {
	if sampled != value {
		b.res.Clamped++
		b.logger.Debug("clamped dimension",
			"role", role,
			"field", field,
			"sampled", sampled,
			"value", value,
		)
	}
	return value
}

func (b *build) trunk() error {
	sampled := b.cfg.Trunk.Diameter.Sample(b.src)
	b.trunkDiameter = b.clamp(scene.RoleTrunk, "diameter", sampled, math.Max(MinDiameter, sampled))

	sampled = b.cfg.Trunk.Height.Sample(b.src)
	b.trunkHeight = b.clamp(scene.RoleTrunk, "height", sampled, math.Max(0, sampled))

	id, err := b.res.Graph.AddChild(b.res.Root, scene.Params{
		Role:     scene.RoleTrunk,
		Geometry: b.cfg.Trunk.Geometry,
		Material: b.cfg.Trunk.Material,
		Position: b.cfg.Origin.Add(geometry.Up.Mul(b.trunkHeight / 2)),
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{b.trunkDiameter, b.trunkHeight, b.trunkDiameter},
	})
	if err != nil {
		return err
	}

	b.res.Trunk = id
	return nil
}

func (b *build) connector(height float64) (scene.NodeID, mgl64.Vec3, error) {
	position := b.cfg.Origin.Add(geometry.Up.Mul(height))
	id, err := b.res.Graph.AddChild(b.res.Trunk, scene.Params{
		Role:     scene.RoleConnector,
		Position: position,
		Rotation: mgl64.QuatIdent(),
		Scale:    geometry.One,
	})
	return id, position, err
}

func (b *build) branch() error {
	connector, anchor, err := b.connector(noise.Range(b.src, 0, b.trunkHeight/2))
	if err != nil {
		return err
	}

	sampled := b.cfg.Branch.Diameter.Sample(b.src)
	diameter := b.clamp(scene.RoleBranch, "diameter", sampled,
		math.Min(maxBranchDiameterRatio*b.trunkDiameter, math.Max(MinDiameter, sampled)))

	sampled = b.cfg.Branch.Length.Sample(b.src)
	length := math.Min(maxBranchLengthRatio*b.trunkHeight, b.trunkDiameter/2+sampled)
	length = b.clamp(scene.RoleBranch, "length", b.trunkDiameter/2+sampled, math.Max(0, length))

	rotation := geometry.Euler(
		maxBranchTilt*noise.Range(b.src, -1, 1),
		0,
		maxBranchTilt*noise.Range(b.src, -1, 1),
	)

	// Shift by half the length so the base, not the centre, is at the anchor.
	position := anchor.Add(geometry.UpAxis(rotation).Mul(length / 2))

	id, err := b.res.Graph.AddChild(connector, scene.Params{
		Role:     scene.RoleBranch,
		Geometry: b.cfg.Branch.Geometry,
		Material: b.cfg.Branch.Material,
		Position: position,
		Rotation: rotation,
		Scale:    mgl64.Vec3{diameter, length, diameter},
	})
	if err != nil {
		return err
	}

	b.res.Branches = append(b.res.Branches, id)
	if length > b.res.Radius {
		b.res.Radius = length
	}
	return nil
}

func (b *build) leaf() error {
	if b.res.LeafConnector == scene.None {
		id, _, err := b.connector(b.trunkHeight)
		if err != nil {
			return err
		}
		b.res.LeafConnector = id
	}
	anchor := b.cfg.Origin.Add(geometry.Up.Mul(b.trunkHeight))

	sampled := b.cfg.Leaf.Width.Sample(b.src)
	width := b.clamp(scene.RoleLeaf, "width", sampled, math.Max(0, sampled))
	sampled = b.cfg.Leaf.Depth.Sample(b.src)
	depth := b.clamp(scene.RoleLeaf, "depth", sampled, math.Max(0, sampled))

	rotation := geometry.Euler(
		noise.Range(b.src, 0, 360),
		noise.Range(b.src, 0, 360),
		noise.Range(b.src, 0, 360),
	)

	id, err := b.res.Graph.AddChild(b.res.LeafConnector, scene.Params{
		Role:     scene.RoleLeaf,
		Geometry: b.cfg.Leaf.Geometry,
		Material: b.cfg.Leaf.Material,
		Position: anchor.Add(Scatter(b.cfg.Shape, b.src, b.res.Radius)),
		Rotation: rotation,
		Scale:    mgl64.Vec3{width, b.cfg.Leaf.Thickness, depth},
	})
	if err != nil {
		return err
	}

	b.res.Leaves = append(b.res.Leaves, id)
	return nil
}
