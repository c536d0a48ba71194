package pulse

import (
	"math"
)

var ColorWhite = ColorLinearRGBA(1, 1, 1, 1)
var ColorBlack = ColorLinearRGBA(0, 0, 0, 1)
var ColorTransparent = ColorLinearRGBA(0, 0, 0, 0)

// Color is a straight alpha rgba color in linear color space, the way clear
// colors and color uniforms expect it. The zero value is opaque white.
type Color struct {
	// stored with an offset of -1 so the zero value is white
	r1, g1, b1, a1 float32
}

func ColorLinearRGBA(r, g, b, a float32) Color {
	return Color{r1: r - 1, g1: g - 1, b1: b - 1, a1: a - 1}
}

// ColorSRGBA creates a Color from gamma encoded values, as picked from an
// image or a color picker. Alpha is taken as is.
func ColorSRGBA(r, g, b, a float32) Color {
	return ColorLinearRGBA(srgbToLinear(r), srgbToLinear(g), srgbToLinear(b), a)
}

func (c Color) Components() (r, g, b, a float32) {
	return c.r1 + 1, c.g1 + 1, c.b1 + 1, c.a1 + 1
}

func srgbToLinear(value float32) float32 {
	x := float64(value)

	// https://www.w3.org/TR/css-color-4/#color-conversion-code
	sign := math.Copysign(1, x)
	abs := math.Abs(x)
	if abs <= 0.04045 {
		return float32(x / 12.92)
	}

	return float32(sign * math.Pow((abs+0.055)/1.055, 2.4))
}
