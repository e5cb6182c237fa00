package colorutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidColorFormat is returned for anything that is not a 6-digit hex color.
var ErrInvalidColorFormat = errors.New("invalid color format")

// hexPattern matches "#RRGGBB" or "RRGGBB", any case. No shorthand.
var hexPattern = regexp.MustCompile(`^#?([a-fA-F\d]{2})([a-fA-F\d]{2})([a-fA-F\d]{2})$`)

// RGB is a color as three 0-255 channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the canonical uppercase "#RRGGBB" form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// String implements fmt.Stringer
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// HexToRGB parses a hex color string. The leading '#' is optional.
func HexToRGB(s string) (RGB, error) {
	m := hexPattern.FindStringSubmatch(s)
	if m == nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}

	var ch [3]uint8
	for i := range ch {
		v, err := strconv.ParseUint(m[i+1], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
		}
		ch[i] = uint8(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// MustHex is HexToRGB for constants known to be valid. It panics otherwise.
func MustHex(s string) RGB {
	c, err := HexToRGB(s)
	if err != nil {
		panic(err)
	}
	return c
}

// clampChannel limits v to a single byte.
func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
