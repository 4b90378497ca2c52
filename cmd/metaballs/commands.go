package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/san-kum/metaballs/internal/compute"
	"github.com/san-kum/metaballs/internal/config"
	"github.com/san-kum/metaballs/internal/dynamo"
	"github.com/san-kum/metaballs/internal/export"
	"github.com/san-kum/metaballs/internal/field"
	"github.com/san-kum/metaballs/internal/physics"
	"github.com/san-kum/metaballs/internal/sim"
	"github.com/san-kum/metaballs/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRunCmd(g *globalOptions) *cobra.Command {
	var (
		frames int
		speed  float64
		format string
		legacy bool
	)
	cmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run headless frames and report metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g, args, func(c *config.Config) {
				// CLI flags override config
				if cmd.Flags().Changed("frames") {
					c.Run.Frames = frames
				}
				if cmd.Flags().Changed("speed") {
					c.Run.Speed = speed
				}
				if legacy {
					c.Physics.Legacy = true
				}
			})
			if err != nil {
				return err
			}
			return runSimulation(cmd.Context(), cmd.OutOrStdout(), cfg, format)
		},
	}
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames (overrides run.frames)")
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "simulation speed multiplier (overrides run.speed)")
	cmd.Flags().StringVar(&format, "format", "table", "output format (table, csv, json)")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "reproduce the shared force accumulator")
	return cmd
}

func runSimulation(parent context.Context, w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case "table", "csv", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	s := newSimulator(cfg)
	runCfg := simConfig(cfg)
	runCfg.Record = format == "csv"

	start := time.Now()
	result, err := s.Run(ctx, cfg.Scene(), runCfg)
	if err != nil {
		return err
	}
	slog.Info("run complete", "result", result, "wall", time.Since(start))

	switch format {
	case "csv":
		return export.WriteTrajectoryCSV(w, result)
	case "json":
		return export.WriteSummaryJSON(w, cfg.Preset, result)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "preset\t%s\n", cfg.Preset)
	fmt.Fprintf(tw, "frames\t%d\n", result.Frames)
	fmt.Fprintf(tw, "time\t%.1f ms\n", result.Time)
	for _, name := range result.MetricNames() {
		fmt.Fprintf(tw, "%s\t%.6g\n", name, result.Metrics[name])
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "CIRCLE\tX\tY\tR\tDX\tDY")
	for i, c := range result.Final {
		fmt.Fprintf(tw, "%d\t%.4f\t%.4f\t%.3f\t%.6f\t%.6f\n", i, c.X, c.Y, c.R, c.DX, c.DY)
	}
	return tw.Flush()
}

// advance runs n frames and returns the simulator, the resulting scene and its
// packed weights.
func advance(cfg *config.Config, n int) (*sim.Simulator, dynamo.Scene, []float32, error) {
	s := newSimulator(cfg)
	scene := cfg.Scene()
	if n > 0 {
		runCfg := simConfig(cfg)
		runCfg.Frames = n
		result, err := s.Run(context.Background(), scene, runCfg)
		if err != nil {
			return nil, nil, nil, err
		}
		scene = result.Final
	}
	return s, scene, s.Mesher().Weights(scene.Sources()), nil
}

func newFieldCmd(g *globalOptions) *cobra.Command {
	var (
		frames int
		format string
		legacy bool
	)
	cmd := &cobra.Command{
		Use:   "field [preset]",
		Short: "emit the packed weight buffer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g, args, func(c *config.Config) {
				if legacy {
					c.Physics.Legacy = true
				}
			})
			if err != nil {
				return err
			}
			return emitField(cmd.OutOrStdout(), cfg, frames, format)
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 0, "frames to advance before sampling")
	cmd.Flags().StringVar(&format, "format", "stats", "output format (json, bin, stats)")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "reproduce the shared force accumulator")
	return cmd
}

func emitField(w io.Writer, cfg *config.Config, frames int, format string) error {
	switch format {
	case "json", "bin", "stats":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	s, scene, weights, err := advance(cfg, frames)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return export.WriteFrameJSON(w, s.Mesher().Sampler, scene.Sources(), weights)
	case "bin":
		return export.WriteWeightsBinary(w, weights)
	}

	grid := s.Mesher().Grid()
	inside := 0
	for _, v := range grid.Samples {
		if v >= cfg.Field.Threshold {
			inside++
		}
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "resolution\t%d\n", grid.N)
	fmt.Fprintf(tw, "frames\t%d\n", frames)
	fmt.Fprintf(tw, "samples\t%d\n", len(grid.Samples))
	fmt.Fprintf(tw, "weights\t%d\n", len(weights))
	fmt.Fprintf(tw, "inside\t%d (%.1f%%)\n", inside, 100*float64(inside)/float64(len(grid.Samples)))
	fmt.Fprintf(tw, "backend\t%s\n", s.Mesher().Sampler.BackendName())
	return tw.Flush()
}

func newPreviewCmd(g *globalOptions) *cobra.Command {
	var (
		frames     int
		cols, rows int
		palette    string
	)
	cmd := &cobra.Command{
		Use:   "preview [preset]",
		Short: "render the field in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g, args, nil)
			if err != nil {
				return err
			}
			s, _, _, err := advance(cfg, frames)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			grid := s.Mesher().Grid()
			fmt.Fprint(w, viz.RenderField(grid, cfg.Field.Threshold, cols, rows, viz.PaletteByName(palette)))
			fmt.Fprintln(w)
			fmt.Fprintln(w, viz.CrossSection(grid, grid.N/2, 4*cfg.Field.Threshold, cols, 8))
			return nil
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 0, "frames to advance before rendering")
	cmd.Flags().IntVar(&cols, "cols", 60, "preview width in cells")
	cmd.Flags().IntVar(&rows, "rows", 30, "preview height in cells")
	cmd.Flags().StringVar(&palette, "palette", "classic", "colour palette")
	return cmd
}

func newWatchCmd(g *globalOptions) *cobra.Command {
	var (
		speed      float64
		cols, rows int
		palette    string
		legacy     bool
	)
	cmd := &cobra.Command{
		Use:   "watch [preset]",
		Short: "animate the scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g, args, func(c *config.Config) {
				if cmd.Flags().Changed("speed") {
					c.Run.Speed = speed
				}
				if legacy {
					c.Physics.Legacy = true
				}
			})
			if err != nil {
				return err
			}

			opts := viz.DefaultWatchOptions()
			opts.Title = cfg.Preset
			opts.FrameDt = cfg.Run.FrameDt
			opts.MaxElapsed = cfg.Run.MaxElapsed
			opts.Speed = cfg.Run.Speed
			opts.Threshold = cfg.Field.Threshold
			opts.Cols, opts.Rows = cols, rows
			opts.Palette = palette

			return viz.Watch(viz.NewWatchModel(newSimulator(cfg), cfg.Scene(), opts))
		},
	}
	cmd.Flags().Float64Var(&speed, "speed", config.DefaultSpeed, "simulation speed multiplier")
	cmd.Flags().IntVar(&cols, "cols", 50, "view width in cells")
	cmd.Flags().IntVar(&rows, "rows", 25, "view height in cells")
	cmd.Flags().StringVar(&palette, "palette", "classic", "colour palette")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "reproduce the shared force accumulator")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list scene presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "PRESET\tCIRCLES\tMIN SEPARATION")
			for _, name := range config.ListPresets() {
				scene := config.GetPreset(name)
				fmt.Fprintf(tw, "%s\t%d\t%.3f\n", name, len(scene), physics.MinSeparation(scene))
			}
			return tw.Flush()
		},
	}
}

func newConfigCmd(g *globalOptions) *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "config [preset]",
		Short: "print the effective config as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g, args, nil)
			if err != nil {
				return err
			}
			if outFile != "" {
				if err := config.Save(outFile, cfg); err != nil {
					return err
				}
				slog.Info("config written", "path", outFile)
				return nil
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "write the config to a file instead")
	return cmd
}

func newBenchCmd(g *globalOptions) *cobra.Command {
	var frames, ensemble int
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark field sampling backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(g, args, nil)
			if err != nil {
				return err
			}
			return benchBackends(cmd.OutOrStdout(), cfg, frames, ensemble)
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 120, "frames per measurement")
	cmd.Flags().IntVar(&ensemble, "ensemble", 0, "also time N concurrent scenes")
	return cmd
}

func benchBackends(w io.Writer, cfg *config.Config, n, ensemble int) error {
	sources := cfg.Scene().Sources()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BACKEND\tRESOLUTION\tFRAMES\tTIME\tFRAMES/SEC")
	for _, b := range []compute.Backend{compute.NewSerialBackend(), compute.NewCPUBackend()} {
		for _, res := range []int{50, 100, 200} {
			sampler := &field.Sampler{Resolution: res, Ceiling: cfg.Field.Ceiling, Backend: b}
			mesher := field.NewMesher(sampler)

			start := time.Now()
			for i := 0; i < n; i++ {
				mesher.Weights(sources)
			}
			elapsed := time.Since(start)
			fmt.Fprintf(tw, "%s\t%d\t%d\t%v\t%.0f\n", b.Name(), res, n, elapsed, float64(n)/elapsed.Seconds())
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if ensemble <= 0 {
		return nil
	}
	scenes := make([]dynamo.Scene, ensemble)
	for i := range scenes {
		scenes[i] = config.RandomScene(len(sources), cfg.Seed+uint64(i))
	}
	runCfg := simConfig(cfg)
	runCfg.Frames = n

	start := time.Now()
	results, err := sim.NewEnsemble(func() *sim.Simulator { return newSimulator(cfg) }).Run(context.Background(), scenes, runCfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nensemble: %d scenes x %d frames in %v\n", len(results), n, time.Since(start))
	return nil
}
