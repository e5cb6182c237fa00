package colorutil

import (
	"fmt"
	"math"
)

// Level is a WCAG conformance level for a color pair.
type Level string

const (
	LevelAAA  Level = "AAA"
	LevelAA   Level = "AA"
	LevelFail Level = "FAIL"
)

// WCAG contrast thresholds for normal text.
const (
	ThresholdAA  = 4.5
	ThresholdAAA = 7.0
)

// Verdict is the accessibility result for a foreground/background pair.
// Contrast is a display string with two decimals; use Contrast or
// ContrastRGB when a number is needed.
type Verdict struct {
	Contrast  string `json:"contrast"`
	PassesAA  bool   `json:"passesAA"`
	PassesAAA bool   `json:"passesAAA"`
	Level     Level  `json:"level"`
}

// Luminance returns the WCAG relative luminance of c, in [0, 1].
func Luminance(c RGB) float64 {
	r := linearize(float64(c.R) / 255)
	g := linearize(float64(c.G) / 255)
	b := linearize(float64(c.B) / 255)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRGB returns the contrast ratio of two colors, in [1, 21].
// Argument order does not matter.
func ContrastRGB(a, b RGB) float64 {
	l1, l2 := Luminance(a), Luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// Contrast parses two hex colors and returns their contrast ratio.
func Contrast(a, b string) (float64, error) {
	ca, err := HexToRGB(a)
	if err != nil {
		return 0, err
	}
	cb, err := HexToRGB(b)
	if err != nil {
		return 0, err
	}
	return ContrastRGB(ca, cb), nil
}

// CheckAccessibility grades the contrast between two hex colors.
func CheckAccessibility(a, b string) (Verdict, error) {
	ratio, err := Contrast(a, b)
	if err != nil {
		return Verdict{}, err
	}
	return Classify(ratio), nil
}

// Classify grades a contrast ratio against the AA and AAA thresholds.
func Classify(ratio float64) Verdict {
	v := Verdict{
		Contrast:  fmt.Sprintf("%.2f", ratio),
		PassesAA:  ratio >= ThresholdAA,
		PassesAAA: ratio >= ThresholdAAA,
	}
	switch {
	case v.PassesAAA:
		v.Level = LevelAAA
	case v.PassesAA:
		v.Level = LevelAA
	default:
		v.Level = LevelFail
	}
	return v
}
