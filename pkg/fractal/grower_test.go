package fractal

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willbeason/procedural-trees/pkg/geometry"
	"github.com/willbeason/procedural-trees/pkg/scene"
	"github.com/willbeason/procedural-trees/pkg/spawn"
	"github.com/willbeason/procedural-trees/pkg/validate"
)

func TestGenerateDepthZeroIsSingleNode(t *testing.T) {
	cfg := DefaultFractalConfig()
	cfg.MaxDepth = 0

	g, root, err := Generate(context.Background(), cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	assert.Equal(t, 1, g.Len())
	assert.Empty(t, g.Children(root))
}

func TestGenerateNegativeDepthIsSingleNode(t *testing.T) {
	cfg := DefaultFractalConfig()
	cfg.MaxDepth = -3

	g, _, err := Generate(context.Background(), cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
}

func TestGenerateFullTreeSizeAndScale(t *testing.T) {
	tests := map[string]struct {
		cfg   Config
		table Table
	}{
		"fractal": {
			cfg:   DefaultFractalConfig(),
			table: FractalTable(),
		},
		"kochcube": {
			cfg: func() Config {
				c := DefaultKochCubeConfig()
				c.SpawnProbability = 1
				return c
			}(),
			table: KochCubeTable(),
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			for depth := 1; depth <= 3; depth++ {
				cfg := tc.cfg
				cfg.MaxDepth = depth
				cfg.BaseScale = 2

				g, root, err := Generate(context.Background(), cfg, rand.New(rand.NewSource(int64(depth))))
				require.NoError(t, err)

				k := len(tc.table)
				want := (int(math.Pow(float64(k), float64(depth+1))) - 1) / (k - 1)
				assert.Equal(t, want, g.Len())
				assert.Equal(t, want, tc.table.Size(depth))

				err = g.Walk(root, func(n scene.Node) error {
					want := 2 * math.Pow(cfg.ChildScale, float64(n.Depth))
					assert.InDelta(t, want, n.Scale.X(), 1e-9)
					assert.InDelta(t, want, n.Scale.Y(), 1e-9)
					assert.LessOrEqual(t, n.Depth, depth)
					assert.Equal(t, cfg.Geometry, n.Geometry)
					return nil
				})
				require.NoError(t, err)
			}
		})
	}
}

func TestChildrenFollowTableOrderAndPlacement(t *testing.T) {
	cfg := DefaultFractalConfig()
	cfg.MaxDepth = 1

	g, root, err := Generate(context.Background(), cfg, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	children := g.Children(root)
	table := FractalTable()
	require.Len(t, children, len(table))

	for i, id := range children {
		n, ok := g.Node(id)
		require.True(t, ok)

		want := table[i].Direction.Mul(0.5 + 0.5*cfg.ChildScale)
		assert.True(t, geometry.Near(n.Position, want, 1e-9), "child %d at %v, want %v", i, n.Position, want)

		// Each child grows away from its parent.
		assert.True(t, geometry.Near(n.Up(), table[i].Direction, 1e-9), "child %d up %v", i, n.Up())
	}
}

func TestGrandchildrenComposeParentTransform(t *testing.T) {
	cfg := DefaultFractalConfig()
	cfg.MaxDepth = 2

	g, root, err := Generate(context.Background(), cfg, rand.New(rand.NewSource(4)))
	require.NoError(t, err)

	right := g.Children(root)[1]
	up := g.Children(right)[0]
	n, _ := g.Node(up)

	// The right child sits at (0.75, 0, 0) with scale 0.5 and up pointing +X;
	// its own up child is 0.75 * 0.5 further along +X.
	assert.True(t, geometry.Near(n.Position, mgl64.Vec3{0.75 + 0.375, 0, 0}, 1e-9), "got %v", n.Position)
	assert.True(t, geometry.Near(n.Up(), geometry.Right, 1e-9))
}

func TestKochCubeFaceCentredOffsets(t *testing.T) {
	table := KochCubeTable()
	require.Len(t, table, 9)

	s := 1.0 / 3.0
	assert.True(t, geometry.Near(table[1].Offset(s), mgl64.Vec3{0.5 + 0.5*s, 0, 0}, 1e-9))
	assert.True(t, geometry.Near(table[5].Offset(s), mgl64.Vec3{0.5 + 1.5*s, 0, 0}, 1e-9))
	assert.True(t, geometry.Near(table[8].Offset(s), mgl64.Vec3{0, 0, -(0.5 + 1.5*s)}, 1e-9))
}

func TestSpawnProbabilityZeroGrowsNothing(t *testing.T) {
	cfg := DefaultKochCubeConfig()
	cfg.SpawnProbability = 0

	g, _, err := Generate(context.Background(), cfg, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
}

func TestSpawnProbabilityThinsTree(t *testing.T) {
	cfg := DefaultKochCubeConfig()
	cfg.SpawnProbability = 0.5

	g, _, err := Generate(context.Background(), cfg, rand.New(rand.NewSource(6)))
	require.NoError(t, err)
	assert.Greater(t, g.Len(), 1)
	assert.Less(t, g.Len(), KochCubeTable().Size(cfg.MaxDepth))
}

func TestEmptyTableSchedulesNothing(t *testing.T) {
	g, err := NewGrower(DefaultFractalConfig(), Table{}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	_, err = g.Start(geometry.Zero)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Scheduler().Pending())
	assert.Equal(t, 1, g.Graph().Len())
}

func TestGrowthIsThrottled(t *testing.T) {
	cfg := DefaultFractalConfig()
	cfg.MaxDepth = 1

	g, err := NewGrower(cfg, FractalTable(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	root, err := g.Start(geometry.Zero)
	require.NoError(t, err)

	// One child is pending at a time, each after at least MinDelay.
	assert.Equal(t, 1, g.Scheduler().Pending())
	n, err := g.Advance(cfg.MinDelay - time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 1, g.Graph().Len())

	var prev time.Duration
	for i := 0; i < len(FractalTable()); i++ {
		require.Equal(t, 1, g.Scheduler().Pending())
		require.True(t, g.Scheduler().Step())

		gap := g.Scheduler().Now() - prev
		assert.GreaterOrEqual(t, gap, cfg.MinDelay)
		assert.Less(t, gap, cfg.MaxDelay)
		prev = g.Scheduler().Now()

		assert.Equal(t, i+2, g.Graph().Len())
	}

	assert.Equal(t, 0, g.Scheduler().Pending())
	assert.Len(t, g.Graph().Children(root), len(FractalTable()))
}

func TestDiscardCancelsPendingSpawns(t *testing.T) {
	cfg := DefaultFractalConfig()
	cfg.MaxDepth = 3

	g, err := NewGrower(cfg, FractalTable(), rand.New(rand.NewSource(8)))
	require.NoError(t, err)
	root, err := g.Start(geometry.Zero)
	require.NoError(t, err)

	_, err = g.Advance(time.Second)
	require.NoError(t, err)
	require.Greater(t, g.Graph().Len(), 1)
	require.Greater(t, g.Scheduler().Pending(), 0)

	require.NoError(t, g.Discard(root))

	assert.Equal(t, 0, g.Scheduler().Pending())
	assert.Greater(t, g.Scheduler().Cancelled(), 0)

	require.NoError(t, g.Run(context.Background()))
	assert.Equal(t, 0, g.Graph().Len())
}

func TestDiscardSubtreeKeepsSiblingsGrowing(t *testing.T) {
	cfg := DefaultFractalConfig()
	cfg.MaxDepth = 2

	g, err := NewGrower(cfg, FractalTable(), rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	root, err := g.Start(geometry.Zero)
	require.NoError(t, err)

	// Step until the root has its first child, then drop that child.
	for len(g.Graph().Children(root)) == 0 {
		require.True(t, g.Scheduler().Step())
	}
	first := g.Graph().Children(root)[0]
	require.NoError(t, g.Discard(first))

	require.NoError(t, g.Run(context.Background()))

	// The root's remaining four children each grew a full set of five.
	assert.Len(t, g.Graph().Children(root), 4)
	assert.Equal(t, 1+4+4*5, g.Graph().Len())
	assert.False(t, g.Graph().Contains(first))
}

func TestSharedSchedulerInterleavesTrees(t *testing.T) {
	cfg := DefaultFractalConfig()
	cfg.MaxDepth = 1

	graph := scene.New()
	sched := spawn.New()
	r := rand.New(rand.NewSource(10))

	a, err := NewGrower(cfg, FractalTable(), r, WithGraph(graph), WithScheduler(sched))
	require.NoError(t, err)
	b, err := NewGrower(cfg, FractalTable(), r, WithGraph(graph), WithScheduler(sched))
	require.NoError(t, err)

	rootA, err := a.Start(geometry.Zero)
	require.NoError(t, err)
	rootB, err := b.Start(mgl64.Vec3{10, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 2, sched.Pending())

	require.NoError(t, a.Run(context.Background()))

	assert.Len(t, graph.Children(rootA), 5)
	assert.Len(t, graph.Children(rootB), 5)
	assert.Equal(t, []scene.NodeID{rootA, rootB}, graph.Roots())
}

func TestConfigValidate(t *testing.T) {
	tests := map[string]func(*Config){
		"negative child scale":  func(c *Config) { c.ChildScale = -0.5 },
		"negative base scale":   func(c *Config) { c.BaseScale = -1 },
		"probability above one": func(c *Config) { c.SpawnProbability = 1.5 },
		"negative delay":        func(c *Config) { c.MinDelay = -time.Second },
		"inverted delays":       func(c *Config) { c.MinDelay, c.MaxDelay = time.Second, time.Millisecond },
		"unknown variant":       func(c *Config) { c.Variant = "spiral" },
		"NaN child scale":       func(c *Config) { c.ChildScale = math.NaN() },
		"infinite base scale":   func(c *Config) { c.BaseScale = math.Inf(1) },
		"NaN probability":       func(c *Config) { c.SpawnProbability = math.NaN() },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultFractalConfig()
			mutate(&cfg)

			_, err := NewGrower(cfg, FractalTable(), rand.New(rand.NewSource(1)))
			var cfgErr *validate.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
		})
	}

	require.NoError(t, DefaultFractalConfig().Validate())
	require.NoError(t, DefaultKochCubeConfig().Validate())
}

func TestEmptyVariantIsFractal(t *testing.T) {
	cfg := DefaultFractalConfig()
	cfg.Variant = ""
	cfg.MaxDepth = 1

	g, _, err := Generate(context.Background(), cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, FractalTable().Size(1), g.Len())

	cfg.Variant = "spiral"
	_, err = cfg.Table()
	var cfgErr *validate.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "variant", cfgErr.Field)
}
