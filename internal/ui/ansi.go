package ui

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// SGR (Select Graphic Rendition) codes, including 24-bit ones: ESC[...m
var ansiSGRPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripAnsi removes all ANSI escape codes from a string
func StripAnsi(input string) string {
	return ansiSGRPattern.ReplaceAllString(input, "")
}

// VisibleWidth returns the display width of a string, ignoring ANSI codes
// This counts runes, not bytes
func VisibleWidth(input string) int {
	return utf8.RuneCountInString(StripAnsi(input))
}

// PadRight pads a string to a minimum visible width
func PadRight(input string, width int) string {
	visible := VisibleWidth(input)
	if visible >= width {
		return input
	}
	return input + spaces(width-visible)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
