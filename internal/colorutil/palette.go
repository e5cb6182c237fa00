package colorutil

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// PaletteSize is the number of colors in a palette, base included.
	PaletteSize = 5

	// maxVariation bounds the per-channel offset applied to each variant.
	maxVariation = 25
)

// Palette is a base color followed by four variants of it.
type Palette [PaletteSize]string

// Base returns the color the palette was built from.
func (p Palette) Base() string {
	return p[0]
}

// HarmoniousPalette builds a palette around base. An empty base is replaced by
// a random color. Each variant shifts every channel of the base by its own
// offset in [-25, 25], clamped to 0-255.
func HarmoniousPalette(src Source, base string) (Palette, error) {
	if src == nil {
		src = DefaultSource()
	}
	if base == "" {
		base = RandomColor(src)
	}

	rgb, err := HexToRGB(base)
	if err != nil {
		return Palette{}, err
	}

	var p Palette
	p[0] = base
	for i := 1; i < PaletteSize; i++ {
		p[i] = vary(src, rgb).Hex()
	}
	return p, nil
}

func vary(src Source, c RGB) RGB {
	return RGB{
		R: clampChannel(int(c.R) + offset(src)),
		G: clampChannel(int(c.G) + offset(src)),
		B: clampChannel(int(c.B) + offset(src)),
	}
}

// offset is uniform over [-maxVariation, maxVariation].
func offset(src Source) int {
	return src.IntN(2*maxVariation+1) - maxVariation
}

// Spread is the largest CIEDE2000 distance between the base and a variant.
// Palettes built by HarmoniousPalette stay small here; it is a measure of
// how "near" the variants are, not of hue harmony.
func (p Palette) Spread() (float64, error) {
	base, err := HexToRGB(p[0])
	if err != nil {
		return 0, err
	}
	bc := toColorful(base)

	var spread float64
	for _, h := range p[1:] {
		v, err := HexToRGB(h)
		if err != nil {
			return 0, err
		}
		if d := bc.DistanceCIEDE2000(toColorful(v)); d > spread {
			spread = d
		}
	}
	return spread, nil
}

// ContrastGrid returns the pairwise contrast ratios of the palette colors.
func (p Palette) ContrastGrid() ([PaletteSize][PaletteSize]float64, error) {
	var grid [PaletteSize][PaletteSize]float64

	var colors [PaletteSize]RGB
	for i, h := range p {
		c, err := HexToRGB(h)
		if err != nil {
			return grid, err
		}
		colors[i] = c
	}

	for i := range colors {
		for j := range colors {
			grid[i][j] = ContrastRGB(colors[i], colors[j])
		}
	}
	return grid, nil
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}
