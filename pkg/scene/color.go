package scene

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render"
	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]color.RGBA{
	"black":  render.Black,
	"white":  render.White,
	"red":    render.Red,
	"blue":   render.Blue,
	"green":  render.Green,
	"yellow": render.Yellow,
	"grey":   render.Grey,
	"gray":   render.Grey,
}

// ParseColor accepts a palette name ("red"), a palette index ("palette:3"),
// a hex triplet ("#ff8800") or an HSV triple ("hsv:200,0.6,0.9").
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	if idx, ok := strings.CutPrefix(s, "palette:"); ok {
		i, err := strconv.Atoi(idx)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: bad palette index %q", ErrInvalidScene, idx)
		}
		return render.PaletteColor(i), nil
	}

	if hsv, ok := strings.CutPrefix(s, "hsv:"); ok {
		parts := strings.Split(hsv, ",")
		if len(parts) != 3 {
			return color.RGBA{}, fmt.Errorf("%w: hsv needs 3 components in %q", ErrInvalidScene, s)
		}
		var v [3]float64
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("%w: bad hsv component %q", ErrInvalidScene, p)
			}
			v[i] = f
		}
		return toRGBA(colorful.Hsv(v[0], v[1], v[2]).Clamped()), nil
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: unknown color %q", ErrInvalidScene, s)
	}
	return toRGBA(c), nil
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
