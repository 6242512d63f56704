// Package viz renders the wave field in a terminal.
//
// The live view maps each braille sub-pixel to a fixed number of field
// units and forwards terminal mouse motion to the driver as pointer input.
package viz
