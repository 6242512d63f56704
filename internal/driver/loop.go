package driver

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

const eventBuffer = 256

// Loop drives a Driver from its own goroutine.
type Loop struct {
	d         *Driver
	frames    FrameSource
	events    chan func(*Driver)
	done      chan struct{}
	closeOnce sync.Once
	log       *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	started bool
	err     error

	// pointer samples are coalesced: only the latest one is applied
	pending       pointerSample
	pointerQueued bool
}

type pointerSample struct {
	x, y, scrollY float64
	touch         bool
}

func NewLoop(d *Driver, frames FrameSource) *Loop {
	return &Loop{
		d:      d,
		frames: frames,
		events: make(chan func(*Driver), eventBuffer),
		done:   make(chan struct{}),
		log:    d.log,
	}
}

// Start launches the frame loop. It returns immediately.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return ErrAlreadyStarted
	}
	l.started = true

	ctx, l.cancel = context.WithCancel(ctx)
	go l.run(ctx)
	return nil
}

func (l *Loop) run(ctx context.Context) {
	defer l.closeDone()

	for {
		t, err := l.frames.Next(ctx)
		if err != nil {
			l.finish(err)
			return
		}
		l.drain()
		if err := l.d.Tick(t); err != nil {
			l.finish(err)
			return
		}
	}
}

func (l *Loop) drain() {
	for {
		select {
		case fn := <-l.events:
			fn(l.d)
		default:
			return
		}
	}
}

func (l *Loop) finish(err error) {
	if errors.Is(err, ErrFramesExhausted) || errors.Is(err, context.Canceled) {
		err = nil
	}
	if err != nil {
		l.log.Warn("frame loop stopped", zap.Error(err))
	}
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()
}

// Do queues fn to run on the loop goroutine before the next frame. It never
// blocks: it reports false when the loop has finished or the queue is full.
func (l *Loop) Do(fn func(*Driver)) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.events <- fn:
		return true
	default:
		l.log.Debug("event queue full, dropping event")
		return false
	}
}

func (l *Loop) PointerMove(x, y float64) {
	l.move(pointerSample{x: x, y: y})
}

func (l *Loop) TouchMove(x, y, scrollY float64) {
	l.move(pointerSample{x: x, y: y, scrollY: scrollY, touch: true})
}

// move records the latest sample and queues at most one event to apply it.
func (l *Loop) move(s pointerSample) {
	l.mu.Lock()
	l.pending = s
	queued := l.pointerQueued
	l.pointerQueued = true
	l.mu.Unlock()

	if !queued && !l.Do(l.applyPointer) {
		l.mu.Lock()
		l.pointerQueued = false
		l.mu.Unlock()
	}
}

func (l *Loop) applyPointer(d *Driver) {
	l.mu.Lock()
	s := l.pending
	l.pointerQueued = false
	l.mu.Unlock()

	if s.touch {
		d.TouchMove(s.x, s.y, s.scrollY)
		return
	}
	d.PointerMove(s.x, s.y)
}

func (l *Loop) Resize() {
	l.Do(func(d *Driver) { d.Resize() })
}

// Wait blocks until the frame source runs out or the loop is stopped.
func (l *Loop) Wait() error {
	<-l.done
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Stop cancels the pending frame, waits for the goroutine and detaches the
// driver. Events still queued are dropped. A loop that was never started
// is closed as well and can no longer be started.
func (l *Loop) Stop() error {
	l.mu.Lock()
	cancel, started := l.cancel, l.started
	l.started = true
	l.mu.Unlock()

	var err error
	if started {
		cancel()
		err = l.Wait()
	} else {
		l.closeDone()
	}
	l.d.Detach()
	return err
}

func (l *Loop) closeDone() {
	l.closeOnce.Do(func() { close(l.done) })
}
