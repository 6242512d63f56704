package main

import (
	"fmt"
	"os"

	"github.com/san-kum/wavefield/internal/config"
	"github.com/san-kum/wavefield/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	logFile    string

	realtime  bool
	outFile   string
	noSave    bool
	framesDir string
	every     int
	autopilot bool
	scale     float64
	theme     string
	field     string
	height    int
	dumpName  string
	benchRuns int
	noiseCols int
	noiseRows int
	noiseStep float64
	noisePlot bool
)

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"preset":        "preset",
	"seed":          "seed",
	"width":         "width",
	"height":        "height",
	"fps":           "fps",
	"frames":        "frames",
	"cursor":        "cursor.path",
	"cursor-speed":  "cursor.speed",
	"cursor-radius": "cursor.radius",
	"stroke":        "render.stroke",
	"stroke-width":  "render.stroke_width",
	"workers":       "waves.workers",
	"log-level":     "logger.level",
	"log-file":      "logger.log_file",
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "wavefield",
		Short:         "noise-driven wave field renderer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".wavefield", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames headlessly and record the run",
		Args:  cobra.NoArgs,
		RunE:  renderRun,
	}
	fieldFlags(renderCmd)
	renderCmd.Flags().Int("frames", config.DefaultFrames, "number of frames")
	renderCmd.Flags().String("cursor", "circle", "cursor path (none, circle, sweep, zigzag)")
	renderCmd.Flags().Float64("cursor-speed", 1.0, "cursor path tempo")
	renderCmd.Flags().Float64("cursor-radius", 0.3, "cursor path extent as a fraction of the surface")
	renderCmd.Flags().String("stroke", config.DefaultStroke, "line color")
	renderCmd.Flags().Float64("stroke-width", 1, "line width")
	renderCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames against the wall clock")
	renderCmd.Flags().StringVar(&outFile, "out", "", "also write the last frame to this SVG file")
	renderCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run")
	renderCmd.Flags().StringVar(&framesDir, "frames-dir", "", "write an SVG sequence into this directory")
	renderCmd.Flags().IntVar(&every, "every", 1, "keep every Nth frame of the sequence")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the field in the terminal, driven by the mouse",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	fieldFlags(liveCmd)
	liveCmd.Flags().String("cursor", "circle", "cursor path used with --autopilot")
	liveCmd.Flags().BoolVar(&autopilot, "autopilot", false, "move the cursor along the configured path")
	liveCmd.Flags().Float64Var(&scale, "scale", 4, "field units per braille dot")
	liveCmd.Flags().StringVar(&theme, "theme", "ocean", "color theme")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a per-frame statistic",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&field, "field", "energy", "statistic to plot")
	plotCmd.Flags().IntVar(&height, "plot-height", 15, "plot height in rows")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a per-frame statistic",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&field, "field", "energy", "statistic to analyze")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export per-frame stats as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and stats as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets or dump one as a config file",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}
	presetsCmd.Flags().StringVar(&dumpName, "dump", "", "print the named preset as YAML")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the frame step",
		Args:  cobra.NoArgs,
		RunE:  benchField,
	}
	fieldFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchRuns, "runs", 500, "frames per measurement")

	noiseCmd := &cobra.Command{
		Use:   "noise",
		Short: "print a sample of the noise field",
		Args:  cobra.NoArgs,
		RunE:  printNoise,
	}
	noiseCmd.Flags().Float64("seed", 0, "noise seed (random when unset)")
	noiseCmd.Flags().IntVar(&noiseCols, "cols", 64, "columns")
	noiseCmd.Flags().IntVar(&noiseRows, "rows", 20, "rows")
	noiseCmd.Flags().Float64Var(&noiseStep, "step", 0.1, "lattice units per character")
	noiseCmd.Flags().BoolVar(&noisePlot, "plot", false, "plot the first row as a graph")

	rootCmd.AddCommand(renderCmd, liveCmd, listCmd, showCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, presetsCmd, benchCmd, noiseCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// fieldFlags registers the flags shared by every command that builds a field.
func fieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("preset", config.DefaultPreset, "preset name")
	cmd.Flags().Float64("seed", 0, "noise seed (random when unset)")
	cmd.Flags().Float64("width", config.DefaultWidth, "surface width")
	cmd.Flags().Float64("height", config.DefaultHeight, "surface height")
	cmd.Flags().Float64("fps", config.DefaultFPS, "frames per second")
	cmd.Flags().Int("workers", 0, "goroutines per simulation step")
}

// loadConfig merges defaults, preset, config file, WAVEFIELD_* environment
// and flags, then starts the logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := config.NewViper(configFile)
	if err != nil {
		return nil, err
	}
	if err := bindFlags(cmd, v); err != nil {
		return nil, err
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.InitializeLogger(cfg.Logger)
	return cfg, nil
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
