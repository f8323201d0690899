package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/willbeason/procedural-trees/pkg/config"
	"github.com/willbeason/procedural-trees/pkg/geometry"
	"github.com/willbeason/procedural-trees/pkg/lsystem"
	"github.com/willbeason/procedural-trees/pkg/scene"
)

func forestCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forest",
		Short: "Grow a grid of grammar plants in parallel, all sharing one jitter table",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := f.setup(cmd)
			if err != nil {
				return err
			}

			start := time.Now()

			g, root, err := e.growForest(cmd, e.file.Forest, e.file.LSystem)
			if err != nil {
				return err
			}
			e.metrics.Since("forest", start)

			return e.finish(cmd, "forest", g, root)
		},
	}

	return cmd
}

// plot is where the i-th plant of a square grid stands.
func plot(i, count int, spacing float64) mgl64.Vec3 {
	side := int(math.Ceil(math.Sqrt(float64(count))))
	return mgl64.Vec3{float64(i%side) * spacing, 0, float64(i/side) * spacing}
}

func (e *env) growForest(cmd *cobra.Command, forest config.ForestConfig, cfg lsystem.Config) (*scene.Graph, scene.NodeID, error) {
	size := cfg.JitterSize
	if size == 0 {
		size = lsystem.DefaultJitterSize
	}
	jitter := lsystem.NewJitterTable(e.rng, size)

	// Seeds are drawn up front so the forest does not depend on goroutine
	// scheduling.
	seeds := make([]int64, forest.Count)
	for i := range seeds {
		seeds[i] = e.rng.Int63()
	}

	results := make([]*lsystem.Result, forest.Count)

	grp, ctx := errgroup.WithContext(cmd.Context())
	if forest.Workers > 0 {
		grp.SetLimit(forest.Workers)
	}

	for i := range results {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			gen, err := lsystem.New(cfg, rand.New(rand.NewSource(seeds[i])),
				lsystem.WithJitter(jitter),
				lsystem.WithLogger(e.logger.With("plant", i)),
			)
			if err != nil {
				return err
			}

			results[i], err = gen.Generate(plot(i, forest.Count, forest.Spacing))
			return err
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, scene.None, err
	}

	g := scene.New()
	root, err := g.AddRoot(scene.Params{
		Role:     scene.RoleRoot,
		Rotation: mgl64.QuatIdent(),
		Scale:    geometry.One,
	})
	if err != nil {
		return nil, scene.None, err
	}

	for _, res := range results {
		if _, err := g.Graft(root, res.Graph, res.Root); err != nil {
			return nil, scene.None, err
		}
	}

	e.logger.Info("grew forest", "plants", forest.Count, "nodes", g.Len())

	return g, root, nil
}
