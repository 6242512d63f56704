// Package export writes rendered frames to disk as an SVG sequence.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/san-kum/wavefield/internal/waves"
)

// FrameWriter saves every Nth frame of a surface as frame_NNNNN.svg. It
// satisfies the driver's Observer interface.
type FrameWriter struct {
	src     io.WriterTo
	dir     string
	every   int
	frame   int
	written int
	err     error
}

// NewFrameWriter writes src every `every` frames into dir, which is created
// if needed. every <= 0 is treated as 1.
func NewFrameWriter(src io.WriterTo, dir string, every int) (*FrameWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FrameWriter{src: src, dir: dir, every: max(every, 1)}, nil
}

func (w *FrameWriter) OnFrame(_ *waves.Grid, _ *waves.Cursor, _ float64) {
	n := w.frame
	w.frame++
	if w.err != nil || n%w.every != 0 {
		return
	}
	if err := w.write(n); err != nil {
		w.err = fmt.Errorf("export frame %d: %w", n, err)
	}
}

func (w *FrameWriter) write(n int) error {
	f, err := os.Create(w.Path(n))
	if err != nil {
		return err
	}
	if _, err := w.src.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	w.written++
	return f.Close()
}

// Path is the file name used for frame n.
func (w *FrameWriter) Path(n int) string {
	return filepath.Join(w.dir, fmt.Sprintf("frame_%05d.svg", n))
}

func (w *FrameWriter) Written() int { return w.written }

// Err reports the first write failure. Frames after it are skipped.
func (w *FrameWriter) Err() error { return w.err }
