package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render"
)

// AABB is an axis-aligned box stored as half extents around its position.
type AABB struct {
	BaseBody
	HalfWidth, HalfHeight float64
}

// NewAABB creates a box from its world bounds. The position defaults to the
// box centre; At moves the whole box.
func NewAABB(left, bottom, right, top float64, opts ...BodyOption) (*AABB, error) {
	if left > right || bottom > top {
		return nil, fmt.Errorf("aabb bounds (%g, %g, %g, %g): %w", left, bottom, right, top, ErrInvalidGeometry)
	}
	centre := geometry.Vec2d{X: (left + right) / 2, Y: (bottom + top) / 2}
	base, err := newBaseBody(append([]BodyOption{At(centre)}, opts...))
	if err != nil {
		return nil, fmt.Errorf("aabb: %w", err)
	}
	return &AABB{BaseBody: base, HalfWidth: (right - left) / 2, HalfHeight: (top - bottom) / 2}, nil
}

func (a *AABB) Kind() Kind { return KindAABB }
func (a *AABB) Base() *BaseBody { return &a.BaseBody }
func (a *AABB) Left() float64 { return a.Position.X - a.HalfWidth }
func (a *AABB) Right() float64 { return a.Position.X + a.HalfWidth }
func (a *AABB) Top() float64 { return a.Position.Y + a.HalfHeight }
func (a *AABB) Bottom() float64 { return a.Position.Y - a.HalfHeight }
func (a *AABB) Width() float64 { return 2 * a.HalfWidth }
func (a *AABB) Height() float64 { return 2 * a.HalfHeight }
func (a *AABB) Area() float64 { return a.Width() * a.Height() }

func (a *AABB) Moment() float64 {
	return cp.MomentForBox(a.Mass, a.Width(), a.Height())
}

func (a *AABB) Draw(r render.Canvas) {
	r.Rect(a.Left(), a.Bottom(), a.Width(), a.Height(), a.Color)
}

func (a *AABB) Clone() Body {
	return &AABB{BaseBody: a.clone(), HalfWidth: a.HalfWidth, HalfHeight: a.HalfHeight}
}

// BB returns the bounds as a chipmunk bounding box.
func (a *AABB) BB() cp.BB {
	return cp.BB{L: a.Left(), B: a.Bottom(), R: a.Right(), T: a.Top()}
}

func (a *AABB) hull() hull {
	l, b, r, t := a.Left(), a.Bottom(), a.Right(), a.Top()
	return hull{verts: []geometry.Vec2d{{X: l, Y: b}, {X: r, Y: b}, {X: r, Y: t}, {X: l, Y: t}}}
}
