// Package colorutil generates colors and palettes and grades them for
// accessibility using the WCAG 2 luminance and contrast formulas.
//
// Everything here is a pure function of its inputs except CopyToClipboard.
// Randomness comes from a Source so callers can seed it.
package colorutil
