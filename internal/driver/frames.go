package driver

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// FrameSource yields frame timestamps in milliseconds. Next blocks until the
// next frame is due.
type FrameSource interface {
	Next(ctx context.Context) (float64, error)
}

// FixedFrames produces evenly spaced timestamps without waiting. A count of
// zero or less never runs out.
type FixedFrames struct {
	interval float64
	count    int
	i        int
}

func NewFixedFrames(fps float64, count int) *FixedFrames {
	if fps <= 0 {
		fps = 60
	}
	return &FixedFrames{interval: 1000 / fps, count: count}
}

func (f *FixedFrames) Next(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if f.count > 0 && f.i >= f.count {
		return 0, ErrFramesExhausted
	}
	t := float64(f.i) * f.interval
	f.i++
	return t, nil
}

// RateFrames paces frames against the wall clock. Timestamps are
// milliseconds since the source was created.
type RateFrames struct {
	limiter *rate.Limiter
	start   time.Time
	count   int
	i       int
}

func NewRateFrames(fps float64) *RateFrames {
	if fps <= 0 {
		fps = 60
	}
	return &RateFrames{
		limiter: rate.NewLimiter(rate.Limit(fps), 1),
		start:   time.Now(),
	}
}

// Limit stops the source after n frames.
func (f *RateFrames) Limit(n int) *RateFrames {
	f.count = n
	return f
}

func (f *RateFrames) Next(ctx context.Context) (float64, error) {
	if f.count > 0 && f.i >= f.count {
		return 0, ErrFramesExhausted
	}
	if err := f.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	f.i++
	return float64(time.Since(f.start)) / float64(time.Millisecond), nil
}
