package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/willbeason/procedural-trees/pkg/composer"
)

func composeCmd(f *flags) *cobra.Command {
	var shape string

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose a trunk, branches, and a leaf crown",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := f.setup(cmd)
			if err != nil {
				return err
			}

			cfg := e.file.Composition
			if cmd.Flags().Changed("shape") {
				if cfg.Shape, err = composer.ParseShape(shape); err != nil {
					return err
				}
			}

			start := time.Now()

			c, err := composer.New(cfg, composer.WithLogger(e.logger))
			if err != nil {
				return err
			}

			res, err := c.Compose(e.rng)
			if err != nil {
				return err
			}
			e.metrics.Since("compose", start)

			e.logger.Info("composed tree",
				"shape", cfg.Shape,
				"crown_radius", res.Radius,
				"clamped", res.Clamped,
			)

			return e.finish(cmd, "compose", res.Graph, res.Root)
		},
	}

	cmd.Flags().StringVar(&shape, "shape", "", "leaf crown shape: cone, cube, cylinder, or sphere")

	return cmd
}
