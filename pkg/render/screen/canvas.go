// Package screen draws on ebiten images. World y grows upward, so every
// coordinate is flipped against the target height.
package screen

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render"
)

// Canvas implements render.Canvas on an *ebiten.Image.
type Canvas struct {
	dst       *ebiten.Image
	height    float64
	antialias bool
}

var _ render.Canvas = (*Canvas)(nil)

func NewCanvas(dst *ebiten.Image) *Canvas {
	return &Canvas{dst: dst, height: float64(dst.Bounds().Dy()), antialias: true}
}

// Target switches to another image, typically the screen of the current frame.
func (c *Canvas) Target(dst *ebiten.Image) {
	c.dst = dst
	c.height = float64(dst.Bounds().Dy())
}

func (c *Canvas) toScreen(p geometry.Vec2d) (float32, float32) {
	return float32(p.X), float32(c.height - p.Y)
}

func (c *Canvas) Clear(col color.Color) {
	c.dst.Fill(col)
}

func (c *Canvas) Circle(center geometry.Vec2d, radius float64, col color.Color) {
	x, y := c.toScreen(center)
	vector.FillCircle(c.dst, x, y, float32(radius), col, c.antialias)
}

func (c *Canvas) Rect(left, bottom, width, height float64, col color.Color) {
	// the top-left corner on screen is the world top-left
	x, y := c.toScreen(geometry.Vec2d{X: left, Y: bottom + height})
	vector.FillRect(c.dst, x, y, float32(width), float32(height), col, c.antialias)
}

func (c *Canvas) Line(a, b geometry.Vec2d, width float64, col color.Color) {
	x0, y0 := c.toScreen(a)
	x1, y1 := c.toScreen(b)
	vector.StrokeLine(c.dst, x0, y0, x1, y1, float32(width), col, c.antialias)
}

func (c *Canvas) Point(p geometry.Vec2d, col color.Color) {
	x, y := c.toScreen(p)
	vector.FillRect(c.dst, x, y, 1, 1, col, false)
}

// StrokeCircle outlines a circle; hosts use it for overlays the Canvas
// interface does not cover.
func (c *Canvas) StrokeCircle(center geometry.Vec2d, radius, width float64, col color.Color) {
	x, y := c.toScreen(center)
	vector.StrokeCircle(c.dst, x, y, float32(radius), float32(width), col, c.antialias)
}
