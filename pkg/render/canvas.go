// Package render holds the drawing capability the physics layer calls outward.
// Coordinates are world coordinates with y growing upward; implementations
// map them to their own pixel or cell grid.
package render

import (
	"image/color"

	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
)

// Canvas is implemented by hosts able to draw primitives.
type Canvas interface {
	// Clear fills the whole surface.
	Clear(col color.Color)
	// Circle draws a filled disc.
	Circle(center geometry.Vec2d, radius float64, col color.Color)
	// Rect draws a filled rectangle from its lower-left corner.
	Rect(left, bottom, width, height float64, col color.Color)
	// Line draws a straight stroke of the given width.
	Line(a, b geometry.Vec2d, width float64, col color.Color)
	// Point marks a single location.
	Point(p geometry.Vec2d, col color.Color)
}

// Polyline strokes the closed outline through vertices.
func Polyline(c Canvas, vertices []geometry.Vec2d, width float64, col color.Color) {
	n := len(vertices)
	for i := range n {
		c.Line(vertices[i], vertices[(i+1)%n], width, col)
	}
}

// Recorder is a Canvas that only remembers what was drawn.
// Tests and headless runs use it.
type Recorder struct {
	Ops []Op
}

// Op is one recorded drawing call.
type Op struct {
	Kind   string
	Points []geometry.Vec2d
	Size   []float64
	Color  color.Color
}

func (r *Recorder) Clear(col color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "clear", Color: col})
}

func (r *Recorder) Circle(center geometry.Vec2d, radius float64, col color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "circle", Points: []geometry.Vec2d{center}, Size: []float64{radius}, Color: col})
}

func (r *Recorder) Rect(left, bottom, width, height float64, col color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "rect", Points: []geometry.Vec2d{{X: left, Y: bottom}}, Size: []float64{width, height}, Color: col})
}

func (r *Recorder) Line(a, b geometry.Vec2d, width float64, col color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "line", Points: []geometry.Vec2d{a, b}, Size: []float64{width}, Color: col})
}

func (r *Recorder) Point(p geometry.Vec2d, col color.Color) {
	r.Ops = append(r.Ops, Op{Kind: "point", Points: []geometry.Vec2d{p}, Color: col})
}

// Count returns how many ops of the given kind were recorded.
func (r *Recorder) Count(kind string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset forgets all recorded ops.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
