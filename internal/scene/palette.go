package scene

import (
	"image/color"
	"math"
)

// Palette holds the flat colors used by the shading pass.
type Palette struct {
	Wall      color.RGBA
	Ceiling   color.RGBA
	Floor     color.RGBA
	Crosshair color.RGBA
}

// DefaultPalette returns the stock sand wall, white ceiling and mauve floor.
func DefaultPalette() Palette {
	return Palette{
		Wall:      color.RGBA{R: 0xF9, G: 0xD4, B: 0xA4, A: 0xFF},
		Ceiling:   color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Floor:     color.RGBA{R: 0xBC, G: 0x78, B: 0xA2, A: 0xFF},
		Crosshair: color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF},
	}
}

// lit scales each color channel of c by light, flooring the result.
// Alpha is always fully opaque.
func lit(c color.RGBA, light float64) color.RGBA {
	if light >= 1 {
		return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
	}
	if light < 0 {
		light = 0
	}
	scale := func(v uint8) uint8 {
		return uint8(math.Floor(float64(v) * light))
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: 0xFF}
}
