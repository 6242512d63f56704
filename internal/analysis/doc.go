// Package analysis provides spectral analysis of recorded frame statistics.
package analysis
