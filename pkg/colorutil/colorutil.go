// Package colorutil provides shared color helpers for the sketcher UI.
package colorutil

import (
	"image/color"
	"math"
)

// Common overlay colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// Fade returns the color with its channels scaled by factor (0..1),
// dimming it toward black while keeping full opacity.
func Fade(c color.RGBA, factor float64) color.RGBA {
	factor = math.Max(0, math.Min(1, factor))
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lerp linearly interpolates between two colors, t in 0..1.
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: mix(a.A, b.A),
	}
}

// HSVToRGB converts HSV (H 0-360, S and V 0-1) to an opaque RGBA color.
func HSVToRGB(h, s, v float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}

// goldenAngle spaces successive hues far apart so neighboring layer
// indices get visually distinct colors.
const goldenAngle = 137.5

// LayerColor returns a stable, distinct color for the nth drawing layer.
// Index 0 is the default layer and keeps a neutral tone.
func LayerColor(index int) color.RGBA {
	if index <= 0 {
		return color.RGBA{R: 0xD8, G: 0xDE, B: 0xE4, A: 0xFF}
	}
	hue := math.Mod(float64(index)*goldenAngle, 360)
	return HSVToRGB(hue, 0.55, 0.92)
}
