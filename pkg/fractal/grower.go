// Package fractal grows depth-bounded self-similar trees. Every node shares
// one mesh and material; children are scaled copies of their parent placed
// according to a Table.
//
// Children are not created all at once. Each node spawns its children one at
// a time in table order, pausing a random delay before each, on a
// spawn.Scheduler.
package fractal

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/willbeason/procedural-trees/internal/logging"
	"github.com/willbeason/procedural-trees/pkg/geometry"
	"github.com/willbeason/procedural-trees/pkg/noise"
	"github.com/willbeason/procedural-trees/pkg/scene"
	"github.com/willbeason/procedural-trees/pkg/spawn"
)

// A Grower owns the incremental construction of one or more trees.
type Grower struct {
	cfg   Config
	table Table
	src   noise.Source

	graph  *scene.Graph
	sched  *spawn.Scheduler
	logger *slog.Logger

	err error
}

// Option customizes a Grower.
type Option func(*Grower)

// WithLogger sets the logger used for spawn and cancellation events.
func WithLogger(l *slog.Logger) Option {
	return func(g *Grower) { g.logger = l }
}

// WithScheduler shares a host scheduler so several trees grow interleaved.
func WithScheduler(s *spawn.Scheduler) Option {
	return func(g *Grower) { g.sched = s }
}

// WithGraph builds into an existing graph.
func WithGraph(sg *scene.Graph) Option {
	return func(g *Grower) { g.graph = sg }
}

// NewGrower validates cfg before anything is created.
func NewGrower(cfg Config, table Table, src noise.Source, opts ...Option) (*Grower, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Grower{
		cfg:    cfg,
		table:  table,
		src:    src,
		graph:  scene.New(),
		sched:  spawn.New(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// Graph is the graph nodes are built into.
func (g *Grower) Graph() *scene.Graph {
	return g.graph
}

// Scheduler is the scheduler pending spawns wait on.
func (g *Grower) Scheduler() *spawn.Scheduler {
	return g.sched
}

// Start creates a root at origin and queues its first child.
func (g *Grower) Start(origin mgl64.Vec3) (scene.NodeID, error) {
	root, err := g.graph.AddRoot(scene.Params{
		Role:     scene.RoleCell,
		Geometry: g.cfg.Geometry,
		Material: g.cfg.Material,
		Position: origin,
		Rotation: mgl64.QuatIdent(),
		Scale:    geometry.One.Mul(g.cfg.BaseScale),
	})
	if err != nil {
		return scene.None, err
	}

	if g.cfg.MaxDepth > 0 {
		g.next(root, 0)
	}

	return root, nil
}

// Advance lets d of virtual time pass, creating every child that comes due.
func (g *Grower) Advance(d time.Duration) (int, error) {
	n := g.sched.Advance(d)
	return n, g.err
}

// Run grows until nothing is pending or ctx is done.
func (g *Grower) Run(ctx context.Context) error {
	if err := g.sched.Run(ctx); err != nil {
		return err
	}
	return g.err
}

// Discard removes id's subtree and cancels every spawn still pending inside
// it.
func (g *Grower) Discard(id scene.NodeID) error {
	cancelled := g.sched.CancelSubtree(g.graph, id)
	if err := g.graph.Discard(id); err != nil {
		return err
	}

	g.logger.Debug("discarded subtree", "node", id, "cancelled_spawns", cancelled)
	return nil
}

// next queues the first child at or after index from that passes the spawn
// gate.
func (g *Grower) next(owner scene.NodeID, from int) {
	for i := from; i < len(g.table); i++ {
		if g.cfg.SpawnProbability < 1 && g.src.Float64() >= g.cfg.SpawnProbability {
			continue
		}

		g.sched.Schedule(spawn.Request{
			Owner: owner,
			Child: i,
			Delay: g.delay(),
		}, g.spawn)
		return
	}
}

func (g *Grower) delay() time.Duration {
	if g.cfg.MaxDelay <= g.cfg.MinDelay {
		return g.cfg.MinDelay
	}
	return time.Duration(noise.Range(g.src, float64(g.cfg.MinDelay), float64(g.cfg.MaxDelay)))
}

func (g *Grower) spawn(req spawn.Request) {
	parent, ok := g.graph.Node(req.Owner)
	if !ok {
		g.logger.Debug("owner gone before spawn", "node", req.Owner, "child", req.Child)
		return
	}

	placement := g.table[req.Child]
	child := parent.Transform().Child(
		placement.Offset(g.cfg.ChildScale),
		placement.Orientation,
		geometry.One.Mul(g.cfg.ChildScale),
	)

	id, err := g.graph.AddChild(req.Owner, scene.Params{
		Role:     scene.RoleCell,
		Geometry: g.cfg.Geometry,
		Material: g.cfg.Material,
		Position: child.Position,
		Rotation: child.Rotation,
		Scale:    child.Scale,
	})
	if err != nil {
		if g.err == nil {
			g.err = err
		}
		return
	}

	if parent.Depth+1 < g.cfg.MaxDepth {
		g.next(id, 0)
	}
	g.next(req.Owner, req.Child+1)
}

// Generate grows a complete tree for cfg's variant at the origin.
func Generate(ctx context.Context, cfg Config, src noise.Source, opts ...Option) (*scene.Graph, scene.NodeID, error) {
	if err := cfg.Validate(); err != nil {
		return nil, scene.None, err
	}

	table, err := cfg.Table()
	if err != nil {
		return nil, scene.None, err
	}

	g, err := NewGrower(cfg, table, src, opts...)
	if err != nil {
		return nil, scene.None, err
	}

	root, err := g.Start(geometry.Zero)
	if err != nil {
		return nil, scene.None, err
	}

	if err := g.Run(ctx); err != nil {
		return nil, scene.None, err
	}

	return g.graph, root, nil
}
