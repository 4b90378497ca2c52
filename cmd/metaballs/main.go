package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/san-kum/metaballs/internal/compute"
	"github.com/san-kum/metaballs/internal/config"
	"github.com/san-kum/metaballs/internal/field"
	"github.com/san-kum/metaballs/internal/metrics"
	"github.com/san-kum/metaballs/internal/physics"
	"github.com/san-kum/metaballs/internal/sim"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configFile string
	preset     string
	backend    string
	random     int
	seed       uint64
	logFormat  string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

// newRootCmd builds a fresh command tree. Each subcommand owns its flag
// variables so defaults registered by one command never leak into another.
func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "metaballs",
		Short:         "2D metaball field simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd.ErrOrStderr(), g)
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&g.preset, "preset", "", "scene preset")
	rootCmd.PersistentFlags().StringVar(&g.backend, "backend", "", "sampling backend (auto, cpu, serial)")
	rootCmd.PersistentFlags().IntVar(&g.random, "random", 0, "use N random circles instead of a preset")
	rootCmd.PersistentFlags().Uint64Var(&g.seed, "seed", 1, "random scene seed")
	rootCmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newRunCmd(g),
		newFieldCmd(g),
		newPreviewCmd(g),
		newWatchCmd(g),
		newPresetsCmd(),
		newConfigCmd(g),
		newBenchCmd(g),
	)
	return rootCmd
}

func setupLogging(w io.Writer, g *globalOptions) error {
	level := slog.LevelInfo
	if g.verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch g.logFormat {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return fmt.Errorf("unknown log format: %s", g.logFormat)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// loadConfig resolves the config file, preset argument and global flags into
// one Config. apply, when non-nil, layers command flags on top before validation.
func loadConfig(g *globalOptions, args []string, apply func(*config.Config)) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if g.configFile != "" {
		loaded, err := config.Load(g.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	name := g.preset
	if len(args) > 0 {
		name = args[0]
	}
	if name != "" {
		if err := cfg.ApplyPreset(name); err != nil {
			return nil, err
		}
	}
	if g.random > 0 {
		cfg.Preset = fmt.Sprintf("random-%d", g.random)
		cfg.Seed = g.seed
		cfg.Circles = config.RandomScene(g.random, g.seed)
	}
	if g.backend != "" {
		cfg.Backend = g.backend
	}
	if apply != nil {
		apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := compute.Lookup(cfg.Backend)
	if b == nil {
		return nil, fmt.Errorf("unknown backend: %s (available: auto, cpu, serial)", cfg.Backend)
	}
	compute.SetBackend(b)

	slog.Debug("config resolved",
		"preset", cfg.Preset,
		"circles", len(cfg.Circles),
		"backend", b.Name(),
		"resolution", cfg.Field.Resolution,
		"frames", cfg.Run.Frames,
	)
	return cfg, nil
}

func newSimulator(cfg *config.Config) *sim.Simulator {
	integ := physics.NewIntegrator()
	integ.Attraction = cfg.Physics.Attraction
	integ.MaxSpeed = cfg.Physics.MaxSpeed
	integ.LegacyAccumulation = cfg.Physics.Legacy

	sampler := field.NewSampler()
	sampler.Resolution = cfg.Field.Resolution
	sampler.Ceiling = cfg.Field.Ceiling

	s := sim.New(integ, field.NewMesher(sampler))
	s.SetLogger(slog.Default().With("preset", cfg.Preset))
	for _, m := range metrics.Standard(cfg.Field.Threshold) {
		s.AddMetric(m)
	}
	return s
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		FrameDt:    cfg.Run.FrameDt,
		MaxElapsed: cfg.Run.MaxElapsed,
		Speed:      cfg.Run.Speed,
		Frames:     cfg.Run.Frames,
	}
}
