package physics

import (
	"math"

	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
)

// hull is a rounded convex shape: every point within radius of the convex
// core spanned by verts. A circle has one vertex, a segment two, boxes and
// polygons three or more, wound counter-clockwise.
type hull struct {
	verts  []geometry.Vec2d
	radius float64
}

// axes returns the candidate separating directions of the core.
func (h hull) axes() []geometry.Vec2d {
	switch n := len(h.verts); n {
	case 0, 1:
		return nil
	case 2:
		d, err := h.verts[1].Sub(h.verts[0]).Normalized()
		if err != nil {
			return nil
		}
		return []geometry.Vec2d{d.Perpendicular(), d}
	default:
		out := make([]geometry.Vec2d, 0, n)
		for i := range n {
			edge := h.verts[(i+1)%n].Sub(h.verts[i])
			// outward normal of a counter-clockwise edge
			if normal, err := (geometry.Vec2d{X: edge.Y, Y: -edge.X}).Normalized(); err == nil {
				out = append(out, normal)
			}
		}
		return out
	}
}

// project returns the extent of the core along axis.
func (h hull) project(axis geometry.Vec2d) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range h.verts {
		d := v.Dot(axis)
		lo, hi = math.Min(lo, d), math.Max(hi, d)
	}
	return lo, hi
}

// support returns the core vertex farthest along dir.
func (h hull) support(dir geometry.Vec2d) geometry.Vec2d {
	best, bestDot := h.verts[0], math.Inf(-1)
	for _, v := range h.verts {
		if d := v.Dot(dir); d > bestDot {
			best, bestDot = v, d
		}
	}
	return best
}

// closest returns the point of the core nearest to p.
func (h hull) closest(p geometry.Vec2d) geometry.Vec2d {
	n := len(h.verts)
	if n == 1 {
		return h.verts[0]
	}
	edges := n
	if n == 2 {
		edges = 1
	}
	best, bestDist := h.verts[0], math.Inf(1)
	for i := range edges {
		q := closestOnSegment(h.verts[i], h.verts[(i+1)%n], p)
		if d := q.GetDistSqrd(p); d < bestDist {
			best, bestDist = q, d
		}
	}
	return best
}

func closestOnSegment(a, b, p geometry.Vec2d) geometry.Vec2d {
	ab := b.Sub(a)
	lenSq := ab.LengthSqrd()
	if lenSq == 0 {
		return a
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Mul(t))
}

// coreClosestPoints returns the nearest pair of points between two disjoint cores.
// For convex cores one of them is always a vertex.
func coreClosestPoints(a, b hull) (pa, pb geometry.Vec2d) {
	bestDist := math.Inf(1)
	for _, v := range a.verts {
		q := b.closest(v)
		if d := q.GetDistSqrd(v); d < bestDist {
			pa, pb, bestDist = v, q, d
		}
	}
	for _, v := range b.verts {
		q := a.closest(v)
		if d := q.GetDistSqrd(v); d < bestDist {
			pa, pb, bestDist = q, v, d
		}
	}
	return pa, pb
}

// corePenetration runs a separating-axis test on the cores. When they
// intersect it returns the axis of least penetration, oriented from a to b,
// and the penetration depth along it.
func corePenetration(a, b hull) (normal geometry.Vec2d, depth float64, ok bool) {
	axes := append(a.axes(), b.axes()...)
	if len(axes) == 0 {
		return geometry.Vec2d{}, 0, false
	}
	depth = math.Inf(1)
	for _, axis := range axes {
		loA, hiA := a.project(axis)
		loB, hiB := b.project(axis)
		forward, backward := hiA-loB, hiB-loA
		if forward < 0 || backward < 0 {
			return geometry.Vec2d{}, 0, false
		}
		if forward < depth {
			normal, depth = axis, forward
		}
		if backward < depth {
			normal, depth = axis.Neg(), backward
		}
	}
	return normal, depth, true
}

// collideHulls handles every pair without a dedicated test.
func collideHulls(a, b Body) *Collision {
	ha, hb := a.hull(), b.hull()
	reach := ha.radius + hb.radius

	if normal, depth, ok := corePenetration(ha, hb); ok {
		sa := ha.support(normal).Add(normal.Mul(ha.radius))
		sb := hb.support(normal.Neg()).Sub(normal.Mul(hb.radius))
		return &Collision{A: a, B: b, Point: sa.InterpolateTo(sb, 0.5), Normal: normal, Depth: depth + reach}
	}

	pa, pb := coreClosestPoints(ha, hb)
	dist := pa.GetDistance(pb)
	if dist > reach {
		return nil
	}
	normal := geometry.UnitX()
	if dist > geometry.Epsilon {
		normal = pb.Sub(pa).Div(dist)
	}
	sa := pa.Add(normal.Mul(ha.radius))
	sb := pb.Sub(normal.Mul(hb.radius))
	return &Collision{A: a, B: b, Point: sa.InterpolateTo(sb, 0.5), Normal: normal, Depth: reach - dist}
}
