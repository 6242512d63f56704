package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/wavefield/internal/analysis"
	"github.com/san-kum/wavefield/internal/config"
	"github.com/san-kum/wavefield/internal/metrics"
	"github.com/san-kum/wavefield/internal/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSIZE\tFRAMES\tCURSOR\tPEAK ENERGY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%gx%g\t%d\t%s\t%.4f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width,
			run.Height,
			run.Frames,
			run.Cursor,
			run.Summary.PeakEnergy,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "id:\t%s\n", meta.ID)
	fmt.Fprintf(w, "preset:\t%s\n", meta.Preset)
	fmt.Fprintf(w, "time:\t%s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "seed:\t%g\n", meta.Seed)
	fmt.Fprintf(w, "size:\t%gx%g\n", meta.Width, meta.Height)
	fmt.Fprintf(w, "grid:\t%d lines, %d points\n", meta.Lines, meta.Points)
	fmt.Fprintf(w, "frames:\t%d @ %g fps\n", meta.Frames, meta.FPS)
	fmt.Fprintf(w, "cursor:\t%s\n", meta.Cursor)
	fmt.Fprintf(w, "peak energy:\t%.6f\n", meta.Summary.PeakEnergy)
	fmt.Fprintf(w, "max offset:\t%.6f\n", meta.Summary.MaxOffset)
	fmt.Fprintf(w, "mean offset:\t%.6f\n", meta.Summary.MeanOffset)
	fmt.Fprintf(w, "frame:\t%s\n", st.FramePath(meta.ID))
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	stats, err := st.LoadStats(args[0])
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return fmt.Errorf("run %s has no frames", args[0])
	}

	series := metrics.Series(stats, field)
	if series == nil {
		return fmt.Errorf("unknown field: %s (available: %s)", field, strings.Join(metrics.Fields, ", "))
	}

	graph := asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s - %s", args[0], field)))
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	stats, err := st.LoadStats(runID)
	if err != nil {
		return err
	}

	series := metrics.Series(stats, field)
	if series == nil {
		return fmt.Errorf("unknown field: %s (available: %s)", field, strings.Join(metrics.Fields, ", "))
	}
	if len(series) < 4 {
		return fmt.Errorf("run %s has too few frames to analyze", runID)
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("field: %s\n\n", field)

	ps := analysis.PowerSpectrum(series)
	plotData := ps[:max(len(ps)/4, 2)]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", field)),
	)
	fmt.Println(graph)
	fmt.Println()

	peak, ok := analysis.Dominant(series, meta.FPS)
	if !ok {
		fmt.Println("no dominant frequency")
		return nil
	}
	fmt.Printf("dominant frequency: %.3f hz\n", peak.Frequency)
	fmt.Printf("period: %.3f s\n", 1/peak.Frequency)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if _, err := st.Load(args[0]); err != nil {
		return err
	}

	in, err := os.Open(st.StatsPath(args[0]))
	if err != nil {
		return err
	}
	defer in.Close()

	var out io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	if outFile != "" {
		fmt.Fprintf(os.Stderr, "exported to %s\n", outFile)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(os.Stdout, args[0])
}

func listPresets(cmd *cobra.Command, args []string) error {
	if dumpName != "" {
		cfg := config.GetPreset(dumpName)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", dumpName, config.ListPresets())
		}
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		return enc.Close()
	}

	fmt.Println("presets:")
	for _, p := range config.ListPresets() {
		fmt.Printf("  %s\n", p)
	}
	return nil
}
