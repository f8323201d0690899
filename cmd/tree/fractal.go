package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/willbeason/procedural-trees/pkg/fractal"
	"github.com/willbeason/procedural-trees/pkg/geometry"
)

func fractalCmd(f *flags, variant fractal.Variant) *cobra.Command {
	var pruneAfter time.Duration

	cmd := &cobra.Command{
		Use:   string(variant),
		Short: "Grow a self-similar " + string(variant) + " tree",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := f.setup(cmd)
			if err != nil {
				return err
			}

			cfg := e.file.Fractal
			if variant == fractal.VariantKochCube {
				cfg = e.file.KochCube
			}
			return e.runFractal(cmd, string(variant), cfg, pruneAfter)
		},
	}

	cmd.Flags().DurationVar(&pruneAfter, "prune-after", 0,
		"discard the root's first child after this much growth time, cancelling its pending spawns")

	return cmd
}

func (e *env) runFractal(cmd *cobra.Command, name string, cfg fractal.Config, pruneAfter time.Duration) error {
	start := time.Now()

	table, err := cfg.Table()
	if err != nil {
		return err
	}

	grower, err := fractal.NewGrower(cfg, table, e.rng, fractal.WithLogger(e.logger))
	if err != nil {
		return err
	}

	root, err := grower.Start(geometry.Zero)
	if err != nil {
		return err
	}

	if pruneAfter > 0 {
		if _, err := grower.Advance(pruneAfter); err != nil {
			return err
		}

		if children := grower.Graph().Children(root); len(children) > 0 {
			before := grower.Scheduler().Cancelled()
			if err := grower.Discard(children[0]); err != nil {
				return err
			}
			e.metrics.Cancelled(name, grower.Scheduler().Cancelled()-before)
		}
	}

	if err := grower.Run(cmd.Context()); err != nil {
		return err
	}
	e.metrics.Since(name, start)

	e.logger.Info("grew tree",
		"variant", cfg.Variant,
		"nodes", grower.Graph().Len(),
		"growth_time", grower.Scheduler().Now(),
	)

	return e.finish(cmd, name, grower.Graph(), root)
}
