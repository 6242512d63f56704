package driver

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/san-kum/wavefield/internal/render"
	"github.com/san-kum/wavefield/internal/waves"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachWithoutSurface(t *testing.T) {
	_, err := Attach(nil)
	assert.ErrorIs(t, err, ErrNoSurface)
}

func TestAttachInvalidParams(t *testing.T) {
	p := waves.DefaultParams()
	p.XGap = 0
	_, err := Attach(render.NewDocument(100, 100), WithParams(p))
	assert.ErrorIs(t, err, waves.ErrInvalidParams)
}

func TestAttachBuildsPaths(t *testing.T) {
	doc := render.NewDocument(100, 100)
	d, err := Attach(doc, WithSeed(42))
	require.NoError(t, err)

	assert.Equal(t, 26, d.Grid().Columns())
	assert.Equal(t, 21, d.Grid().Rows())
	assert.Len(t, doc.Paths(), 26)
	assert.Equal(t, 42.0, d.Noise().Seed())
}

func TestTickWithoutInputRendersUndisturbedWave(t *testing.T) {
	doc := render.NewDocument(100, 100)
	d, err := Attach(doc, WithSeed(42))
	require.NoError(t, err)

	require.NoError(t, d.Tick(0))

	paths := doc.Paths()
	for i, line := range d.Grid().Lines {
		var want strings.Builder
		for j, pt := range line {
			require.Equal(t, waves.Vec{}, pt.Cursor, "line %d point %d", i, j)

			pos := pt.Position(false)
			if j == 0 {
				want.WriteString("M ")
			} else {
				want.WriteString(" L ")
			}
			want.WriteString(num(pos.X) + " " + num(pos.Y))
		}
		assert.Equal(t, want.String(), paths[i])
	}
	assert.Equal(t, 0.0, d.Cursor().SmoothVel)
	assert.Equal(t, "--x: 0px; --y: 0px", doc.CursorStyle())
	assert.Equal(t, 1, d.Frames())
}

func TestPointerMovesCursorStyle(t *testing.T) {
	doc := render.NewDocument(400, 300)
	doc.SetOrigin(20, 30)
	d, err := Attach(doc, WithSeed(1))
	require.NoError(t, err)

	d.PointerMove(120, 130)
	require.NoError(t, d.Tick(16))

	assert.Equal(t, "--x: 100px; --y: 100px", doc.CursorStyle())
}

func TestResizeRebuilds(t *testing.T) {
	doc := render.NewDocument(100, 100)
	d, err := Attach(doc, WithSeed(42))
	require.NoError(t, err)
	require.NoError(t, d.Tick(0))

	doc.SetSize(400, 100)
	d.Resize()

	assert.Equal(t, 64, d.Grid().Columns())
	assert.Len(t, doc.Paths(), 64, "old paths must be removed")

	require.NoError(t, d.Tick(16))
	for _, p := range doc.Paths() {
		assert.True(t, strings.HasPrefix(p, "M "))
	}
}

func TestResizeToZero(t *testing.T) {
	doc := render.NewDocument(300, 300)
	d, err := Attach(doc, WithSeed(42))
	require.NoError(t, err)

	doc.SetSize(0, 0)
	d.Resize()
	require.NoError(t, d.Tick(0))

	assert.Equal(t, 14, d.Grid().Columns())
	assert.Len(t, doc.Paths(), 14)
}

func TestDetach(t *testing.T) {
	doc := render.NewDocument(100, 100)
	d, err := Attach(doc, WithSeed(42))
	require.NoError(t, err)

	d.Detach()
	assert.Empty(t, doc.Paths())
	assert.True(t, d.Detached())
	assert.ErrorIs(t, d.Tick(0), ErrDetached)

	// second detach is a no-op
	d.Detach()
}

type countingObserver struct {
	frames []float64
}

func (c *countingObserver) OnFrame(_ *waves.Grid, _ *waves.Cursor, t float64) {
	c.frames = append(c.frames, t)
}

func TestObserverCalledPerFrame(t *testing.T) {
	obs := &countingObserver{}
	d, err := Attach(render.NewDocument(50, 50), WithSeed(7), WithObserver(obs))
	require.NoError(t, err)

	loop := NewLoop(d, NewFixedFrames(50, 5))
	require.NoError(t, loop.Start(context.Background()))
	require.NoError(t, loop.Wait())

	assert.Equal(t, []float64{0, 20, 40, 60, 80}, obs.frames)
}

func num(v float64) string {
	return strconv.FormatFloat(render.Round1(v), 'f', -1, 64)
}
