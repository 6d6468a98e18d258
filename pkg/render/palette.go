package render

import "image/color"

// Colors used as defaults by bodies and hosts.
var (
	Black      = color.RGBA{0, 0, 0, 255}
	White      = color.RGBA{255, 255, 255, 255}
	Background = color.RGBA{20, 20, 30, 255}
	Red        = color.RGBA{255, 50, 50, 255}
	Blue       = color.RGBA{50, 100, 255, 255}
	Green      = color.RGBA{60, 200, 90, 255}
	Yellow     = color.RGBA{240, 210, 60, 255}
	Grey       = color.RGBA{150, 150, 150, 255}
)

// Palette cycles through a fixed set of body colors.
var Palette = []color.RGBA{Blue, Red, Green, Yellow, White, Grey}

// PaletteColor returns the i-th palette entry, wrapping around.
func PaletteColor(i int) color.RGBA {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}
