package driver

import (
	"fmt"

	"github.com/san-kum/wavefield/internal/noise"
	"github.com/san-kum/wavefield/internal/render"
	"github.com/san-kum/wavefield/internal/waves"
	"go.uber.org/zap"
)

// Observer is notified after every rendered frame.
type Observer interface {
	OnFrame(g *waves.Grid, c *waves.Cursor, t float64)
}

type Option func(*Driver)

func WithParams(p waves.Params) Option {
	return func(d *Driver) { d.params = p }
}

// WithSeed fixes the noise seed. Without it the field is seeded randomly.
func WithSeed(seed float64) Option {
	return func(d *Driver) { d.noise = noise.New(seed) }
}

func WithNoise(n *noise.Noise) Option {
	return func(d *Driver) { d.noise = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) { d.log = l }
}

func WithObserver(o Observer) Option {
	return func(d *Driver) { d.observers = append(d.observers, o) }
}

// Driver binds one wave field to one surface.
type Driver struct {
	surface   render.Surface
	params    waves.Params
	noise     *noise.Noise
	sim       *waves.Simulator
	cursor    *waves.Cursor
	renderer  *render.PathRenderer
	grid      *waves.Grid
	paths     []render.Path
	observers []Observer
	script    Script
	log       *zap.Logger
	frames    int
	detached  bool
}

// Attach validates its inputs, builds the grid for the surface bounds and
// creates one path per line. It refuses to start without a surface.
func Attach(s render.Surface, opts ...Option) (*Driver, error) {
	if s == nil {
		return nil, ErrNoSurface
	}

	d := &Driver{
		surface:  s,
		params:   waves.DefaultParams(),
		renderer: render.NewPathRenderer(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.params.Validate(); err != nil {
		return nil, fmt.Errorf("attach: %w", err)
	}
	if d.noise == nil {
		d.noise = noise.NewRandom()
	}

	d.sim = waves.NewSimulator(d.noise, d.params)
	d.cursor = waves.NewCursor(d.params)
	d.rebuild()

	d.log.Debug("attached",
		zap.Float64("seed", d.noise.Seed()),
		zap.Int("lines", d.grid.Columns()),
		zap.Int("points", d.grid.NumPoints()))
	return d, nil
}

// Tick runs one frame at timestamp t (milliseconds).
func (d *Driver) Tick(t float64) error {
	if d.detached {
		return ErrDetached
	}

	if d.script != nil {
		b := d.surface.Bounds()
		if x, y, ok := d.script.Position(t, b); ok {
			d.cursor.PointerMove(b.Left+x, b.Top+y)
		}
	}
	d.cursor.Tick()
	d.sim.Step(d.grid, d.cursor.Snapshot(), t)
	d.renderer.Render(d.grid, d.paths)
	d.surface.SetCursor(d.cursor.SmoothX, d.cursor.SmoothY)
	d.frames++

	for _, o := range d.observers {
		o.OnFrame(d.grid, d.cursor, t)
	}
	return nil
}

// Resize rereads the surface bounds and rebuilds grid and paths from scratch.
func (d *Driver) Resize() {
	if d.detached {
		return
	}
	d.rebuild()
	d.log.Debug("resized",
		zap.Float64("width", d.grid.Width),
		zap.Float64("height", d.grid.Height),
		zap.Int("lines", d.grid.Columns()))
}

func (d *Driver) PointerMove(x, y float64) {
	d.cursor.PointerMove(x, y)
}

func (d *Driver) TouchMove(x, y, scrollY float64) {
	d.cursor.TouchMove(x, y, scrollY)
}

// Detach removes every path from the surface. Further ticks fail.
func (d *Driver) Detach() {
	if d.detached {
		return
	}
	d.removePaths()
	d.detached = true
	d.log.Debug("detached", zap.Int("frames", d.frames))
}

func (d *Driver) Grid() *waves.Grid     { return d.grid }
func (d *Driver) Cursor() *waves.Cursor { return d.cursor }
func (d *Driver) Noise() *noise.Noise   { return d.noise }
func (d *Driver) Params() waves.Params  { return d.params }
func (d *Driver) Frames() int           { return d.frames }
func (d *Driver) Detached() bool        { return d.detached }

func (d *Driver) rebuild() {
	b := d.surface.Bounds()
	d.cursor.SetOrigin(b.Left, b.Top)

	d.removePaths()
	d.grid = waves.BuildGrid(b.Width, b.Height, d.params)
	d.paths = make([]render.Path, len(d.grid.Lines))
	for i := range d.paths {
		d.paths[i] = d.surface.NewPath()
	}
}

func (d *Driver) removePaths() {
	for _, p := range d.paths {
		p.Remove()
	}
	d.paths = nil
}
