package physics

import (
	"bytes"
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
)

// Collision describes the contact between two overlapping bodies.
// Normal is a unit vector pointing from A to B and Depth is the overlap
// measured along it. Collisions are only valid for the step that found them.
type Collision struct {
	A, B   Body
	Point  geometry.Vec2d
	Normal geometry.Vec2d
	Depth  float64
}

// Flipped returns the same contact seen from B.
func (c Collision) Flipped() Collision {
	return Collision{A: c.B, B: c.A, Point: c.Point, Normal: c.Normal.Neg(), Depth: c.Depth}
}

// Resolve applies an impulse along the normal so that the bodies stop
// approaching each other. The restitution used is the smaller of eA and eB.
// Bodies already moving apart are left untouched.
func (c *Collision) Resolve(eA, eB float64) {
	a, b := c.A.Base(), c.B.Base()
	approach := b.Velocity.Sub(a.Velocity).Dot(c.Normal)
	if approach > 0 {
		return
	}
	e := math.Min(eA, eB)
	j := -(1 + e) * approach / (1/a.Mass + 1/b.Mass)
	a.Velocity.SubInPlace(c.Normal.Mul(j / a.Mass))
	b.Velocity.AddInPlace(c.Normal.Mul(j / b.Mass))
}

// ---- Dispatch ----

// Collider tests two bodies whose kinds match its table cell and returns
// nil when they do not touch.
type Collider func(a, b Body) *Collision

// colliders is indexed [lo][hi] with lo <= hi. Cells below the diagonal
// are never read.
var colliders = [kindCount][kindCount]Collider{
	KindCircle: {
		KindCircle:  collideCircles,
		KindAABB:    collideHulls,
		KindSegment: collideHulls,
		KindPoly:    collideHulls,
	},
	KindAABB: {
		KindAABB:    collideAABBs,
		KindSegment: collideHulls,
		KindPoly:    collideHulls,
	},
	KindSegment: {
		KindSegment: collideHulls,
		KindPoly:    collideHulls,
	},
	KindPoly: {
		KindPoly: collideHulls,
	},
}

func init() {
	if missing := missingColliders(); len(missing) > 0 {
		panic(fmt.Sprintf("physics: no collider registered for %v", missing))
	}
}

func missingColliders() [][2]Kind {
	var missing [][2]Kind
	for lo := range kindCount {
		for hi := lo; hi < kindCount; hi++ {
			if colliders[lo][hi] == nil {
				missing = append(missing, [2]Kind{lo, hi})
			}
		}
	}
	return missing
}

// RegisterCollider replaces the test used for the pair (ka, kb); fn receives
// bodies in that order. A nil fn removes the test, after which GetCollision
// reports ErrCollisionNotImplemented for the pair.
// It must not be called while a Space is stepping.
func RegisterCollider(ka, kb Kind, fn Collider) error {
	if ka >= kindCount || kb >= kindCount {
		return fmt.Errorf("%w for (%s, %s)", ErrCollisionNotImplemented, ka, kb)
	}
	if ka > kb {
		ka, kb = kb, ka
		if fn != nil {
			fn = swapped(fn)
		}
	}
	colliders[ka][kb] = fn
	return nil
}

// swapped adapts a collider written for (kb, ka) to the table order.
func swapped(fn Collider) Collider {
	return func(a, b Body) *Collision {
		c := fn(b, a)
		if c == nil {
			return nil
		}
		flipped := c.Flipped()
		return &flipped
	}
}

// GetCollision tests a against b. The result is nil when they do not touch.
// GetCollision(b, a) reports the same contact with the normal reversed.
func GetCollision(a, b Body) (*Collision, error) {
	ka, kb := a.Kind(), b.Kind()
	if ka >= kindCount || kb >= kindCount {
		return nil, fmt.Errorf("%w for (%s, %s)", ErrCollisionNotImplemented, ka, kb)
	}
	swap := ka > kb || (ka == kb && after(a.Base(), b.Base()))
	lo, hi, first, second := ka, kb, a, b
	if swap {
		lo, hi, first, second = kb, ka, b, a
	}
	fn := colliders[lo][hi]
	if fn == nil {
		return nil, fmt.Errorf("%w for (%s, %s)", ErrCollisionNotImplemented, ka, kb)
	}
	c := fn(first, second)
	if c == nil || !swap {
		return c, nil
	}
	flipped := c.Flipped()
	return &flipped, nil
}

// after orders bodies of the same kind by position, then ID, so that a pair
// is always tested the same way round whatever the call order.
func after(a, b *BaseBody) bool {
	switch {
	case a.Position.X != b.Position.X:
		return a.Position.X > b.Position.X
	case a.Position.Y != b.Position.Y:
		return a.Position.Y > b.Position.Y
	}
	return bytes.Compare(a.ID[:], b.ID[:]) > 0
}

// collideCircles touches when the centres are at most r1+r2 apart.
// Coincident centres use the x axis as normal.
func collideCircles(a, b Body) *Collision {
	ca, cb := a.(*Circle), b.(*Circle)
	delta := cb.Position.Sub(ca.Position)
	dist := delta.Length()
	reach := ca.Radius + cb.Radius
	if dist > reach {
		return nil
	}
	normal := geometry.UnitX()
	if dist > 0 {
		normal = delta.Div(dist)
	}
	sa := ca.Position.Add(normal.Mul(ca.Radius))
	sb := cb.Position.Sub(normal.Mul(cb.Radius))
	return &Collision{A: a, B: b, Point: sa.InterpolateTo(sb, 0.5), Normal: normal, Depth: reach - dist}
}

// collideAABBs intersects the two boxes; both overlap intervals must be
// non-empty. The normal follows the axis of least overlap, the x axis on ties.
func collideAABBs(a, b Body) *Collision {
	left, right := math.Max(a.Left(), b.Left()), math.Min(a.Right(), b.Right())
	bottom, top := math.Max(a.Bottom(), b.Bottom()), math.Min(a.Top(), b.Top())
	if !(left < right && bottom < top) {
		return nil
	}
	dx, dy := right-left, top-bottom
	centre := b.Base().Position.Sub(a.Base().Position)
	var normal geometry.Vec2d
	var depth float64
	if dx <= dy {
		normal, depth = geometry.Vec2d{X: sign(centre.X)}, dx
	} else {
		normal, depth = geometry.Vec2d{Y: sign(centre.Y)}, dy
	}
	point := geometry.Vec2d{X: (left + right) / 2, Y: (bottom + top) / 2}
	return &Collision{A: a, B: b, Point: point, Normal: normal, Depth: depth}
}

// sign is -1 for negative values and 1 otherwise.
func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
