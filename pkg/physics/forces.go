package physics

import (
	"math"

	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
)

// GravityPair returns the force functions for a and b attracting each other
// with magnitude G·mA·mB / r^alpha. Typical use:
//
//	planet.ForceFunc, sun.ForceFunc = GravityPair(planet, sun, G, 2)
func GravityPair(a, b Body, G, alpha float64) (onA, onB ForceFunc) {
	pull := func(other Body) ForceFunc {
		return func(self Body, _ float64) geometry.Vec2d {
			s, o := self.Base(), other.Base()
			delta := o.Position.Sub(s.Position)
			r := delta.Length()
			if r < geometry.Epsilon {
				return geometry.Vec2d{}
			}
			magnitude := G * s.Mass * o.Mass / math.Pow(r, alpha)
			return delta.Mul(magnitude / r)
		}
	}
	return pull(b), pull(a)
}

// CentralForce pulls bodies toward center with magnitude k·m/r.
func CentralForce(center geometry.Vec2d, k float64) ForceFunc {
	return func(b Body, _ float64) geometry.Vec2d {
		base := b.Base()
		delta := base.Position.Sub(center)
		r := delta.Length()
		if r < geometry.Epsilon {
			return geometry.Vec2d{}
		}
		return delta.Mul(-k * base.Mass / (r * r))
	}
}

// Spring pulls b toward anchor with stiffness k (Hooke's law).
func Spring(anchor geometry.Vec2d, k float64) ForceFunc {
	return func(b Body, _ float64) geometry.Vec2d {
		return anchor.Sub(b.Base().Position).Mul(k)
	}
}

// SumForces adds the outputs of several force functions.
func SumForces(fns ...ForceFunc) ForceFunc {
	return func(b Body, t float64) geometry.Vec2d {
		var total geometry.Vec2d
		for _, fn := range fns {
			if fn != nil {
				total.AddInPlace(fn(b, t))
			}
		}
		return total
	}
}
