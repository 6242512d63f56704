package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/wavefield/internal/config"
	"github.com/san-kum/wavefield/internal/driver"
	"github.com/san-kum/wavefield/internal/export"
	"github.com/san-kum/wavefield/internal/logging"
	"github.com/san-kum/wavefield/internal/metrics"
	"github.com/san-kum/wavefield/internal/noise"
	"github.com/san-kum/wavefield/internal/render"
	"github.com/san-kum/wavefield/internal/storage"
	"github.com/san-kum/wavefield/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// noiseShades maps noise values in [-1, 1] onto characters, darkest first.
const noiseShades = " .:-=+*#%@"

func fieldOptions(cfg *config.Config, extra ...driver.Option) []driver.Option {
	opts := []driver.Option{
		driver.WithParams(cfg.Waves),
		driver.WithLogger(logging.Named("driver")),
	}
	if cfg.Seed != nil {
		opts = append(opts, driver.WithSeed(*cfg.Seed))
	}
	return append(opts, extra...)
}

func renderRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.ValidateRender(realtime); err != nil {
		return err
	}
	log := logging.Named("render")

	script, err := driver.ParseScript(cfg.Cursor.Path, cfg.Cursor.Speed, cfg.Cursor.Radius)
	if err != nil {
		return err
	}

	doc := render.NewDocument(cfg.Width, cfg.Height)
	doc.Style(cfg.Render.Stroke, cfg.Render.StrokeWidth)
	rec := metrics.NewRecorder(0)

	opts := []driver.Option{driver.WithObserver(rec), driver.WithScript(script)}
	var seq *export.FrameWriter
	if framesDir != "" {
		seq, err = export.NewFrameWriter(doc, framesDir, every)
		if err != nil {
			return err
		}
		opts = append(opts, driver.WithObserver(seq))
	}

	d, err := driver.Attach(doc, fieldOptions(cfg, opts...)...)
	if err != nil {
		return err
	}

	var frames driver.FrameSource = driver.NewFixedFrames(cfg.FPS, cfg.Frames)
	if realtime {
		frames = driver.NewRateFrames(cfg.FPS).Limit(cfg.Frames)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	loop := driver.NewLoop(d, frames)
	fmt.Printf("rendering %d frames (%gx%g, %d lines)...\n", cfg.Frames, cfg.Width, cfg.Height, d.Grid().Columns())
	start := time.Now()

	if err := loop.Start(ctx); err != nil {
		return err
	}
	if err := loop.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)
	log.Info("render finished", zap.Int("frames", d.Frames()), zap.Duration("elapsed", elapsed))

	if seq != nil {
		if err := seq.Err(); err != nil {
			return err
		}
		fmt.Printf("%d frames written to %s\n", seq.Written(), framesDir)
	}

	if outFile != "" {
		if err := writeSVG(outFile, doc); err != nil {
			return err
		}
		fmt.Printf("frame written to %s\n", outFile)
	}

	summary := rec.Summary()
	if !noSave {
		st := storage.New(dataDir).WithLogger(logging.Named("storage"))
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Preset:  cfg.Preset,
			Seed:    d.Noise().Seed(),
			Width:   cfg.Width,
			Height:  cfg.Height,
			FPS:     cfg.FPS,
			Frames:  d.Frames(),
			Cursor:  cfg.Cursor.Path,
			Lines:   d.Grid().Columns(),
			Points:  d.Grid().NumPoints(),
			Summary: summary,
		}, rec.History(), doc)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	if err := loop.Stop(); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d\n", summary.Frames)
	fmt.Printf("seed: %g\n", d.Noise().Seed())
	fmt.Println("\nmetrics:")
	fmt.Printf("  peak_energy: %.6f\n", summary.PeakEnergy)
	fmt.Printf("  max_offset: %.6f\n", summary.MaxOffset)
	fmt.Printf("  mean_offset: %.6f\n", summary.MeanOffset)
	return nil
}

func writeSVG(path string, doc *render.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := doc.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	doc := render.NewDocument(cfg.Width, cfg.Height)
	rec := viz.NewRecorder()
	opts := []driver.Option{driver.WithObserver(rec)}
	if autopilot {
		script, err := driver.ParseScript(cfg.Cursor.Path, cfg.Cursor.Speed, cfg.Cursor.Radius)
		if err != nil {
			return err
		}
		opts = append(opts, driver.WithScript(script))
	}

	d, err := driver.Attach(doc, fieldOptions(cfg, opts...)...)
	if err != nil {
		return err
	}
	defer d.Detach()

	m := viz.NewLiveModel(d, doc, rec, cfg.FPS, scale)
	m.SetTheme(theme)
	return viz.RunLive(m)
}

func benchField(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sizes := [][2]float64{{320, 180}, {cfg.Width, cfg.Height}, {2560, 1440}}
	fmt.Printf("benchmarking %d frames per size...\n\n", benchRuns)
	fmt.Printf("%-12s %8s %8s %14s %12s\n", "SIZE", "LINES", "POINTS", "PER FRAME", "FPS")

	for _, sz := range sizes {
		doc := render.NewDocument(sz[0], sz[1])
		d, err := driver.Attach(doc, fieldOptions(cfg)...)
		if err != nil {
			return err
		}
		d.PointerMove(sz[0]/2, sz[1]/2)

		loop := driver.NewLoop(d, driver.NewFixedFrames(cfg.FPS, benchRuns))
		start := time.Now()
		if err := loop.Start(context.Background()); err != nil {
			return err
		}
		if err := loop.Wait(); err != nil {
			return err
		}
		elapsed := time.Since(start)
		if err := loop.Stop(); err != nil {
			return err
		}

		per := elapsed / time.Duration(max(benchRuns, 1))
		fmt.Printf("%-12s %8d %8d %14v %12.0f\n",
			fmt.Sprintf("%gx%g", sz[0], sz[1]),
			d.Grid().Columns(),
			d.Grid().NumPoints(),
			per,
			float64(time.Second)/math.Max(float64(per), 1))
	}
	return nil
}

func printNoise(cmd *cobra.Command, args []string) error {
	var n *noise.Noise
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		seed, err := cmd.Flags().GetFloat64("seed")
		if err != nil {
			return err
		}
		n = noise.New(seed)
	} else {
		n = noise.NewRandom()
	}

	fmt.Printf("seed: %g\n\n", n.Seed())

	if noisePlot {
		row := make([]float64, noiseCols)
		for x := range row {
			row[x] = n.Perlin2(float64(x)*noiseStep, 0)
		}
		fmt.Println(asciigraph.Plot(row,
			asciigraph.Height(10),
			asciigraph.Caption("perlin2(x, 0)")))
		return nil
	}

	last := len(noiseShades) - 1
	var b strings.Builder
	for y := 0; y < noiseRows; y++ {
		for x := 0; x < noiseCols; x++ {
			v := n.Perlin2(float64(x)*noiseStep, float64(y)*noiseStep)
			i := int((v + 1) / 2 * float64(last))
			b.WriteByte(noiseShades[min(max(i, 0), last)])
		}
		b.WriteByte('\n')
	}
	fmt.Print(b.String())
	return nil
}
