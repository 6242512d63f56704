// Package driver runs the wave field against a render surface.
//
// [Driver] is the explicit replacement for a self-registering visual
// element: [Attach] builds the grid and paths, [Driver.Tick] runs one frame,
// [Driver.Resize] rebuilds, [Driver.Detach] tears everything down. It is NOT
// thread-safe.
//
// [Loop] owns a goroutine that pulls timestamps from a [FrameSource] and
// ticks the driver. Input events posted to the loop are applied on that
// goroutine between two frames, so a resize always completes before the
// next frame reads the grid.
//
//	d, err := driver.Attach(doc, driver.WithSeed(42))
//	loop := driver.NewLoop(d, driver.NewRateFrames(60))
//	loop.Start(ctx)
//	loop.PointerMove(x, y)
//	...
//	loop.Stop()
package driver
