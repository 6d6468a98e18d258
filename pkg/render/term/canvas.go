// Package term draws on a tcell terminal screen. The world rectangle
// [0, Width] × [0, Height] is stretched over the whole screen, y up.
package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render"
)

const (
	fillRune  = '█'
	lineRune  = '•'
	pointRune = '+'
)

// Canvas implements render.Canvas on a tcell.Screen.
type Canvas struct {
	screen tcell.Screen
	world  render.Display
	bg     tcell.Color
}

var _ render.Canvas = (*Canvas)(nil)

func NewCanvas(screen tcell.Screen, world render.Display) *Canvas {
	return &Canvas{screen: screen, world: world, bg: tcell.ColorBlack}
}

// SetWorld changes the world rectangle, e.g. after a resize.
func (c *Canvas) SetWorld(world render.Display) { c.world = world }

// Cell maps a world point to a screen cell. Points beyond the screen,
// including NaN, saturate to the row or column just outside it.
func (c *Canvas) Cell(p geometry.Vec2d) (col, row int) {
	x, y := c.cellF(p)
	cols, rows := c.screen.Size()
	return saturate(x, cols), saturate(y, rows)
}

// cellF maps a world point to fractional cell coordinates.
func (c *Canvas) cellF(p geometry.Vec2d) (x, y float64) {
	cols, rows := c.screen.Size()
	x = p.X / c.world.Width * float64(cols)
	y = c.world.FlipY(p.Y) / c.world.Height * float64(rows)
	return x, y
}

func saturate(v float64, n int) int {
	if !(v >= -1) {
		return -1
	}
	if v >= float64(n) {
		return n
	}
	return int(math.Floor(v))
}

// cellCenter maps a cell back to the world point at its centre.
func (c *Canvas) cellCenter(col, row int) geometry.Vec2d {
	cols, rows := c.screen.Size()
	x := (float64(col) + 0.5) / float64(cols) * c.world.Width
	y := (float64(row) + 0.5) / float64(rows) * c.world.Height
	return geometry.Vec2d{X: x, Y: c.world.FlipY(y)}
}

func (c *Canvas) set(cl, row int, r rune, fg color.Color) {
	cols, rows := c.screen.Size()
	if cl < 0 || row < 0 || cl >= cols || row >= rows {
		return
	}
	style := tcell.StyleDefault.Foreground(toTcell(fg)).Background(c.bg)
	c.screen.SetContent(cl, row, r, nil, style)
}

func (c *Canvas) Clear(col color.Color) {
	c.bg = toTcell(col)
	c.screen.Fill(' ', tcell.StyleDefault.Background(c.bg))
}

func (c *Canvas) Circle(center geometry.Vec2d, radius float64, col color.Color) {
	if !(radius >= 0) {
		return
	}
	cols, rows := c.screen.Size()
	c0, r0 := c.Cell(center.Add(geometry.Vec2d{X: -radius, Y: radius}))
	c1, r1 := c.Cell(center.Add(geometry.Vec2d{X: radius, Y: -radius}))
	filled := false
	for row := max(r0, 0); row <= min(r1, rows-1); row++ {
		for cl := max(c0, 0); cl <= min(c1, cols-1); cl++ {
			if c.cellCenter(cl, row).GetDistSqrd(center) <= radius*radius {
				c.set(cl, row, fillRune, col)
				filled = true
			}
		}
	}
	if !filled {
		cl, row := c.Cell(center)
		c.set(cl, row, fillRune, col)
	}
}

func (c *Canvas) Rect(left, bottom, width, height float64, col color.Color) {
	cols, rows := c.screen.Size()
	c0, r0 := c.Cell(geometry.Vec2d{X: left, Y: bottom + height})
	c1, r1 := c.Cell(geometry.Vec2d{X: left + width, Y: bottom})
	for row := max(r0, 0); row <= min(r1, rows-1); row++ {
		for cl := max(c0, 0); cl <= min(c1, cols-1); cl++ {
			c.set(cl, row, fillRune, col)
		}
	}
}

// Line plots cells along a→b; the width is ignored below one cell.
// The segment is clipped to the screen first.
func (c *Canvas) Line(a, b geometry.Vec2d, _ float64, col color.Color) {
	cols, rows := c.screen.Size()
	ax, ay := c.cellF(a)
	bx, by := c.cellF(b)
	ax, ay, bx, by, ok := clip(ax, ay, bx, by, -1, -1, float64(cols), float64(rows))
	if !ok {
		return
	}
	ca, ra := saturate(ax, cols), saturate(ay, rows)
	cb, rb := saturate(bx, cols), saturate(by, rows)
	steps := max(abs(cb-ca), abs(rb-ra))
	if steps == 0 {
		c.set(ca, ra, lineRune, col)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		cl := ca + int(math.Round(t*float64(cb-ca)))
		row := ra + int(math.Round(t*float64(rb-ra)))
		c.set(cl, row, lineRune, col)
	}
}

// clip trims the segment (ax, ay)→(bx, by) to the box [minX, maxX]×[minY, maxY]
// (Liang-Barsky). ok is false when nothing is left or a coordinate is not finite.
func clip(ax, ay, bx, by, minX, minY, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	for _, v := range []float64{ax, ay, bx, by} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, 0, 0, false
		}
	}
	dx, dy := bx-ax, by-ay
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{{-dx, ax - minX}, {dx, maxX - ax}, {-dy, ay - minY}, {dy, maxY - ay}} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return ax + t0*dx, ay + t0*dy, ax + t1*dx, ay + t1*dy, true
}

func (c *Canvas) Point(p geometry.Vec2d, col color.Color) {
	cl, row := c.Cell(p)
	c.set(cl, row, pointRune, col)
}

func toTcell(col color.Color) tcell.Color {
	r, g, b, _ := col.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
