package ui

import (
	"strings"

	"github.com/fatih/color"
)

// Swatch renders a block of width cells in the given color. Text is drawn
// on top in textR/G/B when label is non-empty. Without color support the
// label (or the bare width in spaces) is returned unstyled.
func Swatch(r, g, b uint8, width int, label string, textR, textG, textB uint8) string {
	body := label
	if pad := width - VisibleWidth(label); pad > 0 {
		left := pad / 2
		body = spaces(left) + label + spaces(pad-left)
	}
	if !IsRich() {
		if strings.TrimSpace(body) == "" {
			return "[" + body + "]"
		}
		return body
	}

	c := color.BgRGB(int(r), int(g), int(b))
	if label != "" {
		c.AddRGB(int(textR), int(textG), int(textB))
	}
	return c.Sprint(body)
}

// SwatchStrip renders colors side by side, each block width cells wide.
func SwatchStrip(colors [][3]uint8, width int) string {
	var sb strings.Builder
	for _, c := range colors {
		sb.WriteString(Swatch(c[0], c[1], c[2], width, "", 0, 0, 0))
	}
	return sb.String()
}
