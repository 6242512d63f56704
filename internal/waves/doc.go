// Package waves holds the wave field simulation: the point grid, the
// cursor model and the per-frame simulator.
//
// The simulation is frame-based, not time-step based. Every call to
// [Simulator.Step] advances the spring integration by exactly one frame;
// the timestamp only scrolls the noise field.
//
// # Thread Safety
//
// Grid and Cursor are NOT thread-safe. They are owned by a single driver
// goroutine; see package driver for the frame loop that serializes input
// events with frames.
package waves
