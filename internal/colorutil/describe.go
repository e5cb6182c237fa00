package colorutil

import (
	"math"
)

var (
	black = RGB{0, 0, 0}
	white = RGB{255, 255, 255}
)

// HSL is a color in hue (degrees), saturation and lightness (percent).
type HSL struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// Description is everything the generator view shows for a single color.
type Description struct {
	Hex       string  `json:"hex"`
	RGB       RGB     `json:"rgb"`
	HSL       HSL     `json:"hsl"`
	Luminance float64 `json:"luminance"`
	TextColor string  `json:"textColor"`
}

// Describe parses a hex color and reports its other representations.
func Describe(hex string) (Description, error) {
	c, err := HexToRGB(hex)
	if err != nil {
		return Description{}, err
	}

	h, s, l := toColorful(c).Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return Description{
		Hex:       c.Hex(),
		RGB:       c,
		HSL:       HSL{H: int(math.Round(h)) % 360, S: int(math.Round(s * 100)), L: int(math.Round(l * 100))},
		Luminance: Luminance(c),
		TextColor: ReadableText(c).Hex(),
	}, nil
}

// ReadableText picks black or white, whichever contrasts more with bg.
// Ties go to black.
func ReadableText(bg RGB) RGB {
	if ContrastRGB(black, bg) >= ContrastRGB(white, bg) {
		return black
	}
	return white
}
