package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/willbeason/procedural-trees/pkg/geometry"
	"github.com/willbeason/procedural-trees/pkg/lsystem"
)

func lsystemCmd(f *flags) *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:   "lsystem",
		Short: "Grow a plant from a rewriting grammar",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := f.setup(cmd)
			if err != nil {
				return err
			}

			cfg := e.file.LSystem
			if cmd.Flags().Changed("iterations") {
				cfg.Iterations = iterations
			}

			start := time.Now()

			gen, err := lsystem.New(cfg, e.rng, lsystem.WithLogger(e.logger))
			if err != nil {
				return err
			}

			res, err := gen.Generate(geometry.Zero)
			if err != nil {
				return err
			}
			e.metrics.Since("lsystem", start)

			e.logger.Info("grew plant", "symbols", len(res.Sequence), "segments", len(res.Segments))

			return e.finish(cmd, "lsystem", res.Graph, res.Root)
		},
	}

	cmd.Flags().IntVar(&iterations, "iterations", 0, "rewrite passes, overriding the configuration file")

	return cmd
}
