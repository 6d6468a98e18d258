package physics

import (
	"fmt"
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColliderTableIsComplete(t *testing.T) {
	assert.Empty(t, missingColliders())
}

func TestCollision_CircleCircle(t *testing.T) {
	tests := []struct {
		name    string
		b       geometry.Vec2d
		collide bool
	}{
		{"Overlapping", vec(5, 0), true},
		{"Touching", vec(6, 0), true},
		{"Apart", vec(7, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustCircle(t, 3, At(vec(0, 0)))
			b := mustCircle(t, 3, At(tt.b))
			c, err := GetCollision(a, b)
			require.NoError(t, err)
			assert.Equal(t, tt.collide, c != nil)
		})
	}

	t.Run("ContactGeometry", func(t *testing.T) {
		a := mustCircle(t, 3, At(vec(0, 0)))
		b := mustCircle(t, 3, At(vec(5, 0)))
		c, err := GetCollision(a, b)
		require.NoError(t, err)
		require.NotNil(t, c)

		assert.Same(t, a, c.A)
		assert.Same(t, b, c.B)
		assert.Equal(t, vec(1, 0), c.Normal)
		assert.InDelta(t, 1, c.Depth, delta)
		assert.InDelta(t, 2.5, c.Point.X, delta)
		assert.InDelta(t, 0, c.Point.Y, delta)
	})

	t.Run("CoincidentCentres", func(t *testing.T) {
		a := mustCircle(t, 2, At(vec(1, 1)))
		b := mustCircle(t, 1, At(vec(1, 1)))
		c, err := GetCollision(a, b)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, 1.0, math.Abs(c.Normal.X))
		assert.Equal(t, 0.0, c.Normal.Y)
		assert.InDelta(t, 3, c.Depth, delta)
	})
}

func TestCollision_AABBs(t *testing.T) {
	tests := []struct {
		name   string
		b      [4]float64
		normal geometry.Vec2d
		depth  float64
		point  geometry.Vec2d
	}{
		{"XAxis", [4]float64{3, 1, 7, 3}, vec(1, 0), 1, vec(3.5, 2)},
		{"NegativeX", [4]float64{-3, 1, 1, 3}, vec(-1, 0), 1, vec(0.5, 2)},
		{"YAxis", [4]float64{1, 3, 3, 6}, vec(0, 1), 1, vec(2, 3.5)},
		{"NegativeY", [4]float64{1, -2, 3, 1}, vec(0, -1), 1, vec(2, 0.5)},
		{"TieGoesToX", [4]float64{3, 3, 5, 5}, vec(1, 0), 1, vec(3.5, 3.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustAABB(t, 0, 0, 4, 4)
			b := mustAABB(t, tt.b[0], tt.b[1], tt.b[2], tt.b[3])
			c, err := GetCollision(a, b)
			require.NoError(t, err)
			require.NotNil(t, c)
			assert.Equal(t, tt.normal, c.Normal)
			assert.InDelta(t, tt.depth, c.Depth, delta)
			assert.InDelta(t, tt.point.X, c.Point.X, delta)
			assert.InDelta(t, tt.point.Y, c.Point.Y, delta)
		})
	}

	t.Run("SharedEdgeDoesNotCollide", func(t *testing.T) {
		c, err := GetCollision(mustAABB(t, 0, 0, 1, 1), mustAABB(t, 1, 0, 2, 1))
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("Apart", func(t *testing.T) {
		c, err := GetCollision(mustAABB(t, 0, 0, 1, 1), mustAABB(t, 3, 3, 4, 4))
		require.NoError(t, err)
		assert.Nil(t, c)
	})
}

func TestCollision_CircleAABB(t *testing.T) {
	box := mustAABB(t, 0, 0, 4, 4)

	t.Run("Outside", func(t *testing.T) {
		circle := mustCircle(t, 1, At(vec(4.5, 2)))
		c, err := GetCollision(circle, box)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.InDelta(t, -1, c.Normal.X, delta)
		assert.InDelta(t, 0, c.Normal.Y, delta)
		assert.InDelta(t, 0.5, c.Depth, delta)
		assert.InDelta(t, 3.75, c.Point.X, delta)
		assert.InDelta(t, 2, c.Point.Y, delta)
	})

	t.Run("CentreInside", func(t *testing.T) {
		circle := mustCircle(t, 1, At(vec(3.5, 2)))
		c, err := GetCollision(box, circle)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Same(t, box, c.A)
		assert.InDelta(t, 1, c.Normal.X, delta)
		assert.InDelta(t, 0, c.Normal.Y, delta)
		assert.InDelta(t, 1.5, c.Depth, delta)
	})

	t.Run("Corner", func(t *testing.T) {
		circle := mustCircle(t, 1, At(vec(5, 5)))
		c, err := GetCollision(circle, box)
		require.NoError(t, err)
		assert.Nil(t, c, "distance to the corner is sqrt(2)")

		circle.Position = vec(4.5, 4.5)
		c, err = GetCollision(circle, box)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.InDelta(t, -math.Sqrt2/2, c.Normal.X, delta)
		assert.InDelta(t, -math.Sqrt2/2, c.Normal.Y, delta)
		assert.InDelta(t, 1-math.Sqrt2/2, c.Depth, delta)
	})
}

func TestCollision_Segments(t *testing.T) {
	t.Run("CircleAboveCapsule", func(t *testing.T) {
		seg := mustSegment(t, vec(0, 0), vec(10, 0), 2)
		circle := mustCircle(t, 1, At(vec(5, 1.5)))
		c, err := GetCollision(seg, circle)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Same(t, seg, c.A)
		assert.InDelta(t, 0, c.Normal.X, delta)
		assert.InDelta(t, 1, c.Normal.Y, delta)
		assert.InDelta(t, 0.5, c.Depth, delta)
	})

	t.Run("CircleBeyondEnd", func(t *testing.T) {
		seg := mustSegment(t, vec(0, 0), vec(10, 0), 0)
		c, err := GetCollision(seg, mustCircle(t, 1, At(vec(11.5, 0))))
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("Crossing", func(t *testing.T) {
		a := mustSegment(t, vec(0, 0), vec(2, 2), 0)
		b := mustSegment(t, vec(0, 2), vec(2, 0), 0)
		c, err := GetCollision(a, b)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.InDelta(t, math.Sqrt2, c.Depth, 1e-6)
	})

	t.Run("Parallel", func(t *testing.T) {
		thin := [2]*Segment{
			mustSegment(t, vec(0, 0), vec(4, 0), 2),
			mustSegment(t, vec(0, 3), vec(4, 3), 2),
		}
		c, err := GetCollision(thin[0], thin[1])
		require.NoError(t, err)
		assert.Nil(t, c)

		thick := [2]*Segment{
			mustSegment(t, vec(0, 0), vec(4, 0), 4),
			mustSegment(t, vec(0, 3), vec(4, 3), 4),
		}
		c, err = GetCollision(thick[0], thick[1])
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, vec(0, 1), c.Normal)
		assert.InDelta(t, 1, c.Depth, delta)
	})

	t.Run("AgainstBox", func(t *testing.T) {
		seg := mustSegment(t, vec(-2, 2), vec(1, 2), 0)
		c, err := GetCollision(mustAABB(t, 0, 0, 4, 4), seg)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.InDelta(t, -1, c.Normal.X, delta)
		assert.InDelta(t, 1, c.Depth, delta)
	})
}

func TestCollision_Polys(t *testing.T) {
	square := func(x, y float64) []geometry.Vec2d {
		return []geometry.Vec2d{{x, y}, {x + 2, y}, {x + 2, y + 2}, {x, y + 2}}
	}

	t.Run("PolyPoly", func(t *testing.T) {
		a := mustPoly(t, square(0, 0))
		b := mustPoly(t, square(1.5, 0.5))
		c, err := GetCollision(a, b)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.InDelta(t, 1, c.Normal.X, delta)
		assert.InDelta(t, 0, c.Normal.Y, delta)
		assert.InDelta(t, 0.5, c.Depth, delta)
	})

	t.Run("PolyAABB", func(t *testing.T) {
		box := mustAABB(t, 0, 0, 2, 2)
		p := mustPoly(t, square(1.5, 0.5))
		c, err := GetCollision(p, box)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.InDelta(t, -1, c.Normal.X, delta)
		assert.InDelta(t, 0.5, c.Depth, delta)
	})

	t.Run("PolyCircle", func(t *testing.T) {
		tri := mustPoly(t, []geometry.Vec2d{{0, 0}, {4, 0}, {0, 4}})
		c, err := GetCollision(tri, mustCircle(t, 1, At(vec(2.5, 2.5))))
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.InDelta(t, math.Sqrt2/2, c.Normal.X, delta)
		assert.InDelta(t, math.Sqrt2/2, c.Normal.Y, delta)
		assert.InDelta(t, 1-math.Sqrt2/2, c.Depth, 1e-6)

		c, err = GetCollision(tri, mustCircle(t, 1, At(vec(4, 4))))
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("PolySegment", func(t *testing.T) {
		p := mustPoly(t, square(0, 0))
		c, err := GetCollision(p, mustSegment(t, vec(1, 3), vec(1, 1.5), 0))
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.InDelta(t, 0.5, c.Depth, delta)
	})
}

// Every pair answers the same question the same way in both orders.
func TestCollision_Symmetry(t *testing.T) {
	bodies := []Body{
		mustCircle(t, 1, At(vec(0, 0))),
		mustCircle(t, 1.5, At(vec(1.5, 0.5))),
		mustCircle(t, 1, At(vec(0, 0))),
		mustAABB(t, 1, -1, 3, 1),
		mustAABB(t, 2, 0, 4, 2),
		mustSegment(t, vec(-2, -0.5), vec(2, 1), 0.5),
		mustSegment(t, vec(0, 2), vec(0, -2), 0),
		mustPoly(t, []geometry.Vec2d{{0, 0}, {2, 0}, {1, 2}}),
		mustPoly(t, []geometry.Vec2d{{2.5, 0}, {4, 1}, {3, 3}, {1.5, 1.5}}),
		mustCircle(t, 0.5, At(vec(10, 10))),
	}
	for i, a := range bodies {
		for j, b := range bodies {
			if i == j {
				continue
			}
			t.Run(fmt.Sprintf("%s%d_%s%d", a.Kind(), i, b.Kind(), j), func(t *testing.T) {
				ab, err := GetCollision(a, b)
				require.NoError(t, err)
				ba, err := GetCollision(b, a)
				require.NoError(t, err)

				require.Equal(t, ab == nil, ba == nil)
				if ab == nil {
					return
				}
				assert.Same(t, a, ab.A)
				assert.Same(t, a, ba.B)
				assert.InDelta(t, ab.Point.X, ba.Point.X, delta)
				assert.InDelta(t, ab.Point.Y, ba.Point.Y, delta)
				assert.InDelta(t, ab.Normal.X, -ba.Normal.X, delta)
				assert.InDelta(t, ab.Normal.Y, -ba.Normal.Y, delta)
				assert.InDelta(t, ab.Depth, ba.Depth, delta)
				assert.InDelta(t, 1, ab.Normal.Length(), 1e-9)
			})
		}
	}
}

func TestCollision_Dispatch(t *testing.T) {
	t.Run("MissingCell", func(t *testing.T) {
		restoreCollider(t, KindCircle, KindSegment)
		require.NoError(t, RegisterCollider(KindSegment, KindCircle, nil))

		seg := mustSegment(t, vec(0, 0), vec(1, 0), 0)
		_, err := GetCollision(seg, mustCircle(t, 1))
		require.ErrorIs(t, err, ErrCollisionNotImplemented)
		assert.Contains(t, err.Error(), "collision not implemented for (segment, circle)")
	})

	t.Run("ReversedRegistration", func(t *testing.T) {
		restoreCollider(t, KindCircle, KindAABB)
		// written for (aabb, circle): always reports the circle straight above
		err := RegisterCollider(KindAABB, KindCircle, func(a, b Body) *Collision {
			require.Equal(t, KindAABB, a.Kind())
			return &Collision{A: a, B: b, Normal: vec(0, 1), Depth: 1}
		})
		require.NoError(t, err)

		box, circle := mustAABB(t, 0, 0, 1, 1), mustCircle(t, 1, At(vec(50, 50)))
		c, err := GetCollision(circle, box)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Same(t, circle, c.A)
		assert.Equal(t, vec(0, -1), c.Normal)

		c, err = GetCollision(box, circle)
		require.NoError(t, err)
		assert.Same(t, box, c.A)
		assert.Equal(t, vec(0, 1), c.Normal)
	})

	t.Run("UnknownKind", func(t *testing.T) {
		err := RegisterCollider(kindCount, KindCircle, collideHulls)
		assert.ErrorIs(t, err, ErrCollisionNotImplemented)
	})
}

func TestCollision_Resolve(t *testing.T) {
	pair := func(va, vb geometry.Vec2d, ma, mb float64) (*Circle, *Circle, *Collision) {
		a := mustCircle(t, 1, At(vec(0, 0)), WithVelocity(va), WithMass(ma))
		b := mustCircle(t, 1, At(vec(1.5, 0)), WithVelocity(vb), WithMass(mb))
		c, err := GetCollision(a, b)
		require.NoError(t, err)
		require.NotNil(t, c)
		return a, b, c
	}

	t.Run("ElasticEqualMasses", func(t *testing.T) {
		a, b, c := pair(vec(1, 0), vec(-1, 0), 1, 1)
		c.Resolve(1, 1)
		assert.InDelta(t, -1, a.Velocity.X, delta)
		assert.InDelta(t, 1, b.Velocity.X, delta)
	})

	t.Run("Inelastic", func(t *testing.T) {
		a, b, c := pair(vec(1, 0), vec(-1, 0), 1, 1)
		c.Resolve(1, 0)
		assert.InDelta(t, 0, a.Velocity.X, delta)
		assert.InDelta(t, 0, b.Velocity.X, delta)
	})

	t.Run("MomentumConserved", func(t *testing.T) {
		a, b, c := pair(vec(3, 1), vec(-1, 0), 2, 5)
		before := a.Momentum().Add(b.Momentum())
		energy := a.KineticEnergy() + b.KineticEnergy()
		c.Resolve(1, 1)
		after := a.Momentum().Add(b.Momentum())
		assert.InDelta(t, before.X, after.X, 1e-9)
		assert.InDelta(t, before.Y, after.Y, 1e-9)
		assert.InDelta(t, energy, a.KineticEnergy()+b.KineticEnergy(), 1e-9)
	})

	t.Run("Separating", func(t *testing.T) {
		a, b, c := pair(vec(-1, 0), vec(1, 0), 1, 1)
		c.Resolve(1, 1)
		assert.Equal(t, vec(-1, 0), a.Velocity)
		assert.Equal(t, vec(1, 0), b.Velocity)
	})
}

// restoreCollider puts the current test for a pair back when t ends.
func restoreCollider(t *testing.T, lo, hi Kind) {
	t.Helper()
	saved := colliders[lo][hi]
	t.Cleanup(func() { colliders[lo][hi] = saved })
}
