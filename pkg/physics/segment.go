package physics

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render"
)

// Segment is a capsule: every point within Thickness/2 of the line A-B.
// A and B are offsets from the body position.
type Segment struct {
	BaseBody
	A, B      geometry.Vec2d
	Thickness float64
}

// NewSegment creates a segment between the world points a and b.
// The position defaults to the midpoint.
func NewSegment(a, b geometry.Vec2d, thickness float64, opts ...BodyOption) (*Segment, error) {
	if a.Equal(b) {
		return nil, fmt.Errorf("segment endpoints coincide at %s: %w", a, ErrInvalidGeometry)
	}
	if thickness < 0 {
		return nil, fmt.Errorf("segment thickness %g: %w", thickness, ErrInvalidGeometry)
	}
	mid := a.InterpolateTo(b, 0.5)
	base, err := newBaseBody(append([]BodyOption{At(mid)}, opts...))
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}
	return &Segment{BaseBody: base, A: a.Sub(mid), B: b.Sub(mid), Thickness: thickness}, nil
}

// Radius is half the thickness.
func (s *Segment) Radius() float64 {
	return s.Thickness / 2
}

// Endpoints returns A and B in world coordinates.
func (s *Segment) Endpoints() (geometry.Vec2d, geometry.Vec2d) {
	return s.Position.Add(s.A), s.Position.Add(s.B)
}

// Length is the distance between the endpoints.
func (s *Segment) Length() float64 {
	return s.A.GetDistance(s.B)
}

func (s *Segment) Kind() Kind { return KindSegment }
func (s *Segment) Base() *BaseBody { return &s.BaseBody }

func (s *Segment) Left() float64 {
	return s.Position.X + math.Min(s.A.X, s.B.X) - s.Radius()
}

func (s *Segment) Right() float64 {
	return s.Position.X + math.Max(s.A.X, s.B.X) + s.Radius()
}

func (s *Segment) Top() float64 {
	return s.Position.Y + math.Max(s.A.Y, s.B.Y) + s.Radius()
}

func (s *Segment) Bottom() float64 {
	return s.Position.Y + math.Min(s.A.Y, s.B.Y) - s.Radius()
}

func (s *Segment) Area() float64 {
	return cp.AreaForSegment(s.A.CP(), s.B.CP(), s.Radius())
}

func (s *Segment) Moment() float64 {
	return cp.MomentForSegment(s.Mass, s.A.CP(), s.B.CP(), s.Radius())
}

func (s *Segment) Draw(r render.Canvas) {
	a, b := s.Endpoints()
	r.Line(a, b, math.Max(s.Thickness, 1), s.Color)
	if s.Thickness > 0 {
		r.Circle(a, s.Radius(), s.Color)
		r.Circle(b, s.Radius(), s.Color)
	}
}

func (s *Segment) Clone() Body {
	return &Segment{BaseBody: s.clone(), A: s.A, B: s.B, Thickness: s.Thickness}
}

func (s *Segment) hull() hull {
	a, b := s.Endpoints()
	return hull{verts: []geometry.Vec2d{a, b}, radius: s.Radius()}
}
