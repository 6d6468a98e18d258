package physics

import (
	"fmt"
	"image/color"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render"
	"go.uber.org/zap"
)

// Margins are optional world boundaries. A nil field disables that side.
type Margins struct {
	Left, Right, Top, Bottom *float64
}

func (m Margins) clone() Margins {
	dup := func(p *float64) *float64 {
		if p == nil {
			return nil
		}
		v := *p
		return &v
	}
	return Margins{Left: dup(m.Left), Right: dup(m.Right), Top: dup(m.Top), Bottom: dup(m.Bottom)}
}

// CollisionHandler holds callbacks run around the resolution of a collision.
type CollisionHandler struct {
	// PreSolve may veto the resolution by returning false.
	PreSolve  func(c *Collision) bool
	PostSolve func(c *Collision)
}

// Space owns a group of interacting bodies and advances them in time.
// It is not safe for concurrent use.
type Space struct {
	bodies []Body
	byID   map[uuid.UUID]Body

	time     float64
	lastStep float64

	damping     float64
	gravity     geometry.Vec2d
	restitution float64
	margins     Margins

	logger *zap.Logger
}

// NewSpace creates an empty space. Without options there is no damping,
// no gravity, perfectly elastic restitution and no margins.
func NewSpace(opts ...Option) *Space {
	s := &Space{
		byID:        make(map[uuid.UUID]Body),
		restitution: 1,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ---------------------------------------------------------------------
// Bodies
// ---------------------------------------------------------------------

// Add appends body to the space. Bodies collide in insertion order.
func (s *Space) Add(body Body) error {
	if body == nil {
		return fmt.Errorf("add nil body: %w", ErrInvalidGeometry)
	}
	id := body.Base().ID
	if _, ok := s.byID[id]; ok {
		return fmt.Errorf("add %s %s: %w", body.Kind(), id, ErrDuplicateBody)
	}
	s.bodies = append(s.bodies, body)
	s.byID[id] = body
	s.logger.Debug("body added",
		zap.Stringer("kind", body.Kind()),
		zap.Stringer("id", id),
		zap.Int("count", len(s.bodies)))
	return nil
}

// AddCircle creates a circle and adds it to the space.
func (s *Space) AddCircle(radius float64, opts ...BodyOption) (*Circle, error) {
	c, err := NewCircle(radius, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Add(c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddAABB creates a box from its bounds and adds it to the space.
func (s *Space) AddAABB(left, bottom, right, top float64, opts ...BodyOption) (*AABB, error) {
	a, err := NewAABB(left, bottom, right, top, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Add(a); err != nil {
		return nil, err
	}
	return a, nil
}

// AddPoly creates a convex polygon and adds it to the space.
func (s *Space) AddPoly(vertices []geometry.Vec2d, opts ...BodyOption) (*Poly, error) {
	p, err := NewPoly(vertices, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Add(p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddSegment creates a segment and adds it to the space.
func (s *Space) AddSegment(a, b geometry.Vec2d, thickness float64, opts ...BodyOption) (*Segment, error) {
	seg, err := NewSegment(a, b, thickness, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Add(seg); err != nil {
		return nil, err
	}
	return seg, nil
}

// Remove is not supported yet.
func (s *Space) Remove(body Body) error {
	return fmt.Errorf("remove body: %w", ErrNotImplemented)
}

// PointQuery is not supported yet.
func (s *Space) PointQuery(p geometry.Vec2d) ([]Body, error) {
	return nil, fmt.Errorf("point query at %s: %w", p, ErrNotImplemented)
}

// AddDefaultCollisionHandler is not supported yet.
func (s *Space) AddDefaultCollisionHandler(h CollisionHandler) error {
	return fmt.Errorf("default collision handler: %w", ErrNotImplemented)
}

// AddWildcardCollisionHandler is not supported yet.
func (s *Space) AddWildcardCollisionHandler(k Kind, h CollisionHandler) error {
	return fmt.Errorf("wildcard collision handler for %s: %w", k, ErrNotImplemented)
}

// AddCollisionHandler is not supported yet.
func (s *Space) AddCollisionHandler(ka, kb Kind, h CollisionHandler) error {
	return fmt.Errorf("collision handler for (%s, %s): %w", ka, kb, ErrNotImplemented)
}

// Bodies returns the bodies in insertion order. The slice is a copy but the
// bodies are shared with the space.
func (s *Space) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

func (s *Space) Len() int {
	return len(s.bodies)
}

// Contains reports whether this very body was added to the space.
func (s *Space) Contains(body Body) bool {
	if body == nil {
		return false
	}
	b, ok := s.byID[body.Base().ID]
	return ok && b == body
}

// Body looks a body up by ID.
func (s *Space) Body(id uuid.UUID) (Body, bool) {
	b, ok := s.byID[id]
	return b, ok
}

// Time is the simulated time elapsed so far.
func (s *Space) Time() float64 { return s.time }

// LastStep is the dt of the latest Step.
func (s *Space) LastStep() float64 { return s.lastStep }

// ---------------------------------------------------------------------
// Parameters
// ---------------------------------------------------------------------

func (s *Space) Damping() float64 { return s.damping }
func (s *Space) Gravity() geometry.Vec2d { return s.gravity }
func (s *Space) Restitution() float64 { return s.restitution }
func (s *Space) Margins() Margins { return s.margins.clone() }
func (s *Space) SetDamping(d float64) { s.damping = d }
func (s *Space) SetGravity(g geometry.Vec2d) { s.gravity = g }
func (s *Space) SetRestitution(e float64) { s.restitution = e }
func (s *Space) SetMargins(m Margins) { s.margins = m.clone() }

func (s *Space) effectiveDamping(b *BaseBody) float64 {
	if b.Damping != nil {
		return *b.Damping
	}
	return s.damping
}

func (s *Space) effectiveGravity(b *BaseBody) geometry.Vec2d {
	if b.Gravity != nil {
		return *b.Gravity
	}
	return s.gravity
}

func (s *Space) effectiveRestitution(b *BaseBody) float64 {
	if b.Restitution != nil {
		return *b.Restitution
	}
	return s.restitution
}

// ---------------------------------------------------------------------
// Simulation
// ---------------------------------------------------------------------

// Step advances the simulation by dt. The phases always run in this order:
// damping and gravity, external forces and velocity integration, collision
// resolution, position integration, margins, clock.
// Contacts only depend on positions, so they are detected first: a collision
// dispatch error aborts the step before any body, the clock or LastStep changes.
func (s *Space) Step(dt float64) error {
	collisions, err := s.Collisions()
	if err != nil {
		return fmt.Errorf("step at t=%g: %w", s.time, err)
	}
	s.lastStep = dt

	for _, b := range s.bodies {
		base := b.Base()
		g := s.effectiveGravity(base)
		d := s.effectiveDamping(base)
		base.Velocity.AddInPlace(g.Sub(base.Velocity.Mul(d)).Mul(dt))
	}

	for _, b := range s.bodies {
		base := b.Base()
		if base.ForceFunc != nil {
			base.ApplyForce(base.ForceFunc(b, s.time))
		}
		base.UpdateVelocity(dt)
	}

	for i := range collisions {
		c := &collisions[i]
		c.Resolve(s.effectiveRestitution(c.A.Base()), s.effectiveRestitution(c.B.Base()))
	}

	for _, b := range s.bodies {
		b.Base().UpdatePosition(dt)
	}

	for _, b := range s.bodies {
		s.applyMargins(b)
	}

	s.time += dt

	if ce := s.logger.Check(zap.DebugLevel, "step"); ce != nil {
		ce.Write(
			zap.Float64("time", s.time),
			zap.Float64("dt", dt),
			zap.Int("bodies", len(s.bodies)),
			zap.Int("collisions", len(collisions)))
	}
	return nil
}

// Collisions runs detection over every pair i<j in insertion order without
// resolving anything.
func (s *Space) Collisions() ([]Collision, error) {
	var out []Collision
	for i, a := range s.bodies {
		for _, b := range s.bodies[i+1:] {
			c, err := GetCollision(a, b)
			if err != nil {
				return nil, err
			}
			if c != nil {
				out = append(out, *c)
			}
		}
	}
	return out, nil
}

// applyMargins reflects the velocity component normal to every boundary the
// body has reached while still moving outward.
func (s *Space) applyMargins(b Body) {
	base := b.Base()
	e := s.effectiveRestitution(base)
	v := &base.Velocity
	m := s.margins
	if m.Left != nil && b.Left() <= *m.Left && v.X < 0 {
		v.X = -e * v.X
	}
	if m.Right != nil && b.Right() >= *m.Right && v.X > 0 {
		v.X = -e * v.X
	}
	if m.Bottom != nil && b.Bottom() <= *m.Bottom && v.Y < 0 {
		v.Y = -e * v.Y
	}
	if m.Top != nil && b.Top() >= *m.Top && v.Y > 0 {
		v.Y = -e * v.Y
	}
}

// Draw clears the canvas with background when given, then draws every body.
func (s *Space) Draw(c render.Canvas, background *color.RGBA) {
	if background != nil {
		c.Clear(*background)
	}
	for _, b := range s.bodies {
		b.Draw(c)
	}
}
