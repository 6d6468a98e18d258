package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render"
)

// Circle is a disc centred on its position.
type Circle struct {
	BaseBody
	Radius float64
}

// NewCircle creates a circle. The radius must be positive.
func NewCircle(radius float64, opts ...BodyOption) (*Circle, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("circle radius %g: %w", radius, ErrInvalidGeometry)
	}
	base, err := newBaseBody(opts)
	if err != nil {
		return nil, fmt.Errorf("circle: %w", err)
	}
	return &Circle{BaseBody: base, Radius: radius}, nil
}

func (c *Circle) Kind() Kind { return KindCircle }
func (c *Circle) Base() *BaseBody { return &c.BaseBody }
func (c *Circle) Left() float64 { return c.Position.X - c.Radius }
func (c *Circle) Right() float64 { return c.Position.X + c.Radius }
func (c *Circle) Top() float64 { return c.Position.Y + c.Radius }
func (c *Circle) Bottom() float64 { return c.Position.Y - c.Radius }
func (c *Circle) Area() float64 { return cp.AreaForCircle(0, c.Radius) }
func (c *Circle) Draw(r render.Canvas) { r.Circle(c.Position, c.Radius, c.Color) }

func (c *Circle) Moment() float64 {
	return cp.MomentForCircle(c.Mass, 0, c.Radius, cp.Vector{})
}

func (c *Circle) Clone() Body {
	return &Circle{BaseBody: c.clone(), Radius: c.Radius}
}

func (c *Circle) hull() hull {
	return hull{verts: []geometry.Vec2d{c.Position}, radius: c.Radius}
}
