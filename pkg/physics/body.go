// Package physics is a small rigid-body layer: bodies of a closed set of
// shapes, pairwise collision detection and a Space that integrates them.
//
// World coordinates have y growing upward, so Top() >= Bottom() for every body.
package physics

import (
	"image/color"
	"math"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render"
)

// Kind identifies the shape of a body.
type Kind uint8

const (
	KindCircle Kind = iota
	KindAABB
	KindSegment
	KindPoly
	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindAABB:
		return "aabb"
	case KindSegment:
		return "segment"
	case KindPoly:
		return "poly"
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k := range kindCount {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// ForceFunc returns the external force acting on b at simulation time t.
// It is called once per step, before velocities are integrated.
type ForceFunc func(b Body, t float64) geometry.Vec2d

// Body is implemented by Circle, AABB, Segment and Poly only.
type Body interface {
	Kind() Kind
	Base() *BaseBody

	Left() float64
	Right() float64
	Top() float64
	Bottom() float64

	Area() float64
	// Moment is the moment of inertia around the body position.
	Moment() float64

	Draw(c render.Canvas)
	// Clone returns a deep copy with the same ID.
	Clone() Body

	hull() hull
}

// BaseBody carries the kinematic state shared by all shapes.
// Nil overrides fall back to the Space defaults.
type BaseBody struct {
	ID       uuid.UUID
	Position geometry.Vec2d
	Velocity geometry.Vec2d
	// Force accumulates until the next UpdateVelocity.
	Force geometry.Vec2d
	Mass  float64
	Color color.RGBA

	Damping     *float64
	Gravity     *geometry.Vec2d
	Restitution *float64
	ForceFunc   ForceFunc
}

func newBaseBody(opts []BodyOption) (BaseBody, error) {
	b := BaseBody{
		ID:    uuid.New(),
		Mass:  1,
		Color: render.Blue,
	}
	for _, opt := range opts {
		opt(&b)
	}
	if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
		return BaseBody{}, ErrInvalidMass
	}
	return b, nil
}

// ApplyForce adds f to the force accumulator.
func (b *BaseBody) ApplyForce(f geometry.Vec2d) {
	b.Force.AddInPlace(f)
}

// ApplyForceXY is ApplyForce with separate components.
func (b *BaseBody) ApplyForceXY(fx, fy float64) {
	b.ApplyForce(geometry.Vec2d{X: fx, Y: fy})
}

// UpdateVelocity integrates the accumulated force over dt and clears it.
func (b *BaseBody) UpdateVelocity(dt float64) {
	b.Velocity.AddInPlace(b.Force.Mul(dt / b.Mass))
	b.Force = geometry.Vec2d{}
}

// UpdatePosition moves the body along its velocity for dt.
func (b *BaseBody) UpdatePosition(dt float64) {
	b.Position.AddInPlace(b.Velocity.Mul(dt))
}

// Momentum is mass times velocity.
func (b *BaseBody) Momentum() geometry.Vec2d {
	return b.Velocity.Mul(b.Mass)
}

// KineticEnergy is m·|v|²/2.
func (b *BaseBody) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity.LengthSqrd()
}

func (b *BaseBody) clone() BaseBody {
	c := *b
	if b.Damping != nil {
		d := *b.Damping
		c.Damping = &d
	}
	if b.Gravity != nil {
		g := *b.Gravity
		c.Gravity = &g
	}
	if b.Restitution != nil {
		e := *b.Restitution
		c.Restitution = &e
	}
	return c
}

// Density is mass over area, +Inf for bodies without area.
func Density(b Body) float64 {
	area := b.Area()
	if area == 0 {
		return math.Inf(1)
	}
	return b.Base().Mass / area
}

// Overlaps reports whether the bounding boxes of a and b intersect.
func Overlaps(a, b Body) bool {
	return a.Left() <= b.Right() && b.Left() <= a.Right() &&
		a.Bottom() <= b.Top() && b.Bottom() <= a.Top()
}
