package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/willbeason/procedural-trees/internal/logging"
	"github.com/willbeason/procedural-trees/internal/preview"
	"github.com/willbeason/procedural-trees/internal/telemetry"
	"github.com/willbeason/procedural-trees/pkg/config"
	"github.com/willbeason/procedural-trees/pkg/fractal"
	"github.com/willbeason/procedural-trees/pkg/scene"
)

type flags struct {
	config      string
	seed        int64
	out         string
	width       int
	height      int
	metricsFile string
	logLevel    string
}

func mainCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Generate procedural 3-D trees",
		Args:  cobra.ExactArgs(0),
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "YAML configuration file; defaults are used for anything it leaves out")
	pf.Int64Var(&f.seed, "seed", 0, "random seed, overriding the configuration file")
	pf.StringVar(&f.out, "out", "", "write a PNG density preview to this path")
	pf.IntVar(&f.width, "width", 1280, "preview width in pixels")
	pf.IntVar(&f.height, "height", 720, "preview height in pixels")
	pf.StringVar(&f.metricsFile, "metrics-file", "", "write generation metrics in the Prometheus text format to this path")
	pf.StringVar(&f.logLevel, "log-level", "info", "one of debug, info, warn, or error")

	cmd.AddCommand(
		fractalCmd(f, fractal.VariantFractal),
		fractalCmd(f, fractal.VariantKochCube),
		lsystemCmd(f),
		composeCmd(f),
		forestCmd(f),
	)

	return cmd
}

// env is what every generator command needs once flags are parsed.
type env struct {
	flags   *flags
	file    *config.File
	logger  *slog.Logger
	metrics *telemetry.Recorder
	rng     *rand.Rand
}

func (f *flags) setup(cmd *cobra.Command) (*env, error) {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	level, err := logging.ParseLevel(f.logLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWriter(cmd.ErrOrStderr(), level)

	file, err := config.Load(f.config)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("seed") {
		file.Seed = f.seed
	}

	logger.Debug("loaded configuration", "path", f.config, "seed", file.Seed)

	return &env{
		flags:   f,
		file:    file,
		logger:  logger,
		metrics: telemetry.New(),
		rng:     rand.New(rand.NewSource(file.Seed)),
	}, nil
}

// finish reports a generated structure and writes whatever outputs were
// requested.
func (e *env) finish(cmd *cobra.Command, generator string, g *scene.Graph, root scene.NodeID) error {
	counts := scene.CountRoles(g, root)
	e.metrics.ObserveGraph(generator, g, root)
	printSummary(cmd.OutOrStdout(), generator, counts)

	if e.flags.out != "" {
		canvas, err := preview.New(e.flags.width, e.flags.height)
		if err != nil {
			return err
		}
		if err := preview.Render(canvas, g, root); err != nil {
			return err
		}
		if err := canvas.Save(e.flags.out); err != nil {
			return err
		}
		e.logger.Info("wrote preview", "path", e.flags.out, "clipped", canvas.Clipped)
	}

	if e.flags.metricsFile != "" {
		if err := e.metrics.WriteFile(e.flags.metricsFile); err != nil {
			return err
		}
		e.logger.Debug("wrote metrics", "path", e.flags.metricsFile)
	}

	return nil
}

func printSummary(w io.Writer, generator string, counts map[scene.Role]int) {
	roles := make([]scene.Role, 0, len(counts))
	total := 0
	for role, n := range counts {
		roles = append(roles, role)
		total += n
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })

	fmt.Fprintf(w, "%s: %d nodes\n", generator, total)
	for _, role := range roles {
		fmt.Fprintf(w, "  %-10s %d\n", role, counts[role])
	}
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
