package physics

import (
	"image/color"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"go.uber.org/zap"
)

// ---- Body options ----

// BodyOption configures a body at construction.
type BodyOption func(*BaseBody)

// At sets the body position. For shapes built from world coordinates
// (AABB, Segment, Poly) it moves the shape so its position lands on p.
func At(p geometry.Vec2d) BodyOption {
	return func(b *BaseBody) { b.Position = p }
}

func WithVelocity(v geometry.Vec2d) BodyOption {
	return func(b *BaseBody) { b.Velocity = v }
}

func WithMass(m float64) BodyOption {
	return func(b *BaseBody) { b.Mass = m }
}

func WithColor(c color.RGBA) BodyOption {
	return func(b *BaseBody) { b.Color = c }
}

func WithForceFunc(f ForceFunc) BodyOption {
	return func(b *BaseBody) { b.ForceFunc = f }
}

// WithID replaces the generated ID.
func WithID(id uuid.UUID) BodyOption {
	return func(b *BaseBody) { b.ID = id }
}

// WithBodyDamping overrides the Space damping for this body.
func WithBodyDamping(d float64) BodyOption {
	return func(b *BaseBody) { b.Damping = &d }
}

// WithBodyGravity overrides the Space gravity for this body.
func WithBodyGravity(g geometry.Vec2d) BodyOption {
	return func(b *BaseBody) { b.Gravity = &g }
}

// WithBodyRestitution overrides the Space restitution for this body.
func WithBodyRestitution(e float64) BodyOption {
	return func(b *BaseBody) { b.Restitution = &e }
}

// ---- Space options ----

// Option configures a Space.
type Option func(*Space)

func WithDamping(d float64) Option {
	return func(s *Space) { s.damping = d }
}

func WithGravity(g geometry.Vec2d) Option {
	return func(s *Space) { s.gravity = g }
}

func WithRestitution(e float64) Option {
	return func(s *Space) { s.restitution = e }
}

func WithMarginLeft(x float64) Option {
	return func(s *Space) { s.margins.Left = &x }
}

func WithMarginRight(x float64) Option {
	return func(s *Space) { s.margins.Right = &x }
}

func WithMarginTop(y float64) Option {
	return func(s *Space) { s.margins.Top = &y }
}

func WithMarginBottom(y float64) Option {
	return func(s *Space) { s.margins.Bottom = &y }
}

// WithMargins sets all four boundaries at once.
func WithMargins(m Margins) Option {
	return func(s *Space) { s.margins = m.clone() }
}

// WithLogger sets the logger used for step diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Space) {
		if l != nil {
			s.logger = l
		}
	}
}
