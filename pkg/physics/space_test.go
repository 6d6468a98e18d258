package physics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewSpace_Defaults(t *testing.T) {
	s := NewSpace()
	assert.Equal(t, 0.0, s.Damping())
	assert.Equal(t, geometry.Vec2d{}, s.Gravity())
	assert.Equal(t, 1.0, s.Restitution())
	assert.Equal(t, Margins{}, s.Margins())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0.0, s.Time())

	s = NewSpace(WithDamping(0.2), WithGravity(vec(0, -9.8)), WithRestitution(0.5), WithMarginLeft(-10), WithMarginTop(10))
	assert.Equal(t, 0.2, s.Damping())
	assert.Equal(t, vec(0, -9.8), s.Gravity())
	assert.Equal(t, 0.5, s.Restitution())
	m := s.Margins()
	require.NotNil(t, m.Left)
	require.NotNil(t, m.Top)
	assert.Equal(t, -10.0, *m.Left)
	assert.Equal(t, 10.0, *m.Top)
	assert.Nil(t, m.Right)
	assert.Nil(t, m.Bottom)

	*m.Left = 99
	assert.Equal(t, -10.0, *s.Margins().Left, "Margins returns a copy")
}

func TestSpace_Bodies(t *testing.T) {
	s := NewSpace()
	c, err := s.AddCircle(1)
	require.NoError(t, err)
	a, err := s.AddAABB(0, 0, 1, 1)
	require.NoError(t, err)
	p, err := s.AddPoly([]geometry.Vec2d{{0, 0}, {1, 0}, {0, 1}})
	require.NoError(t, err)
	seg, err := s.AddSegment(vec(0, 0), vec(1, 1), 0)
	require.NoError(t, err)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, []Body{c, a, p, seg}, s.Bodies())
	assert.True(t, s.Contains(c))
	assert.False(t, s.Contains(mustCircle(t, 1)))
	assert.False(t, s.Contains(nil))

	found, ok := s.Body(a.ID)
	require.True(t, ok)
	assert.Same(t, a, found)
	_, ok = s.Body(uuid.New())
	assert.False(t, ok)

	t.Run("Duplicate", func(t *testing.T) {
		err := s.Add(c)
		assert.ErrorIs(t, err, ErrDuplicateBody)
		_, err = s.AddCircle(1, WithID(c.ID))
		assert.ErrorIs(t, err, ErrDuplicateBody)
		assert.Equal(t, 4, s.Len())
	})

	t.Run("InvalidGeometry", func(t *testing.T) {
		_, err := s.AddCircle(-1)
		assert.ErrorIs(t, err, ErrInvalidGeometry)
		_, err = s.AddAABB(1, 1, 0, 0)
		assert.ErrorIs(t, err, ErrInvalidGeometry)
		_, err = s.AddPoly(nil)
		assert.ErrorIs(t, err, ErrInvalidGeometry)
		_, err = s.AddSegment(vec(0, 0), vec(0, 0), 1)
		assert.ErrorIs(t, err, ErrInvalidGeometry)
		assert.ErrorIs(t, s.Add(nil), ErrInvalidGeometry)
		assert.Equal(t, 4, s.Len())
	})

	t.Run("BodiesIsACopy", func(t *testing.T) {
		bodies := s.Bodies()
		bodies[0] = nil
		assert.NotNil(t, s.Bodies()[0])
	})
}

func TestSpace_NotImplemented(t *testing.T) {
	s := NewSpace()
	c, err := s.AddCircle(1)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Remove(c), ErrNotImplemented)
	_, err = s.PointQuery(vec(0, 0))
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.ErrorIs(t, s.AddDefaultCollisionHandler(CollisionHandler{}), ErrNotImplemented)
	assert.ErrorIs(t, s.AddWildcardCollisionHandler(KindCircle, CollisionHandler{}), ErrNotImplemented)
	assert.ErrorIs(t, s.AddCollisionHandler(KindCircle, KindAABB, CollisionHandler{}), ErrNotImplemented)
	assert.True(t, s.Contains(c), "Remove must not remove anything")
}

func TestSpace_Step(t *testing.T) {
	t.Run("FreeFlight", func(t *testing.T) {
		s := NewSpace()
		c, err := s.AddCircle(1, At(vec(0, 10)), WithVelocity(vec(0, -5)))
		require.NoError(t, err)

		require.NoError(t, s.Step(1))
		assert.Equal(t, vec(0, 5), c.Position)
		assert.Equal(t, vec(0, -5), c.Velocity)
		assert.Equal(t, 1.0, s.Time())
		assert.Equal(t, 1.0, s.LastStep())
	})

	t.Run("Gravity", func(t *testing.T) {
		s := NewSpace(WithGravity(vec(0, -10)))
		falling, err := s.AddCircle(1)
		require.NoError(t, err)
		floating, err := s.AddCircle(1, At(vec(100, 0)), WithBodyGravity(geometry.Vec2d{}))
		require.NoError(t, err)

		require.NoError(t, s.Step(0.1))
		assert.InDelta(t, -1, falling.Velocity.Y, delta)
		assert.InDelta(t, -0.1, falling.Position.Y, delta)
		assert.Equal(t, geometry.Vec2d{}, floating.Velocity)
	})

	t.Run("Damping", func(t *testing.T) {
		s := NewSpace(WithDamping(0.5))
		damped, err := s.AddCircle(1, WithVelocity(vec(10, 0)))
		require.NoError(t, err)
		free, err := s.AddCircle(1, At(vec(0, 100)), WithVelocity(vec(10, 0)), WithBodyDamping(0))
		require.NoError(t, err)

		require.NoError(t, s.Step(1))
		assert.InDelta(t, 5, damped.Velocity.X, delta)
		assert.InDelta(t, 10, free.Velocity.X, delta)
	})

	t.Run("ForceFunc", func(t *testing.T) {
		var times []float64
		push := func(b Body, tm float64) geometry.Vec2d {
			times = append(times, tm)
			return vec(2, 0)
		}
		s := NewSpace()
		c, err := s.AddCircle(1, WithMass(2), WithForceFunc(push))
		require.NoError(t, err)

		require.NoError(t, s.Step(0.5))
		// velocity is integrated before position
		assert.InDelta(t, 0.5, c.Velocity.X, delta)
		assert.InDelta(t, 0.25, c.Position.X, delta)
		assert.Equal(t, geometry.Vec2d{}, c.Force)

		require.NoError(t, s.Step(0.5))
		require.NoError(t, s.Step(0.5))
		assert.Equal(t, []float64{0, 0.5, 1}, times)
	})

	t.Run("AccumulatedForce", func(t *testing.T) {
		s := NewSpace()
		c, err := s.AddCircle(1)
		require.NoError(t, err)
		c.ApplyForceXY(3, 4)
		require.NoError(t, s.Step(1))
		assert.Equal(t, vec(3, 4), c.Velocity)
		require.NoError(t, s.Step(1))
		assert.Equal(t, vec(3, 4), c.Velocity, "force applies for one step only")
	})

	t.Run("Collision", func(t *testing.T) {
		s := NewSpace()
		a, err := s.AddCircle(1, WithVelocity(vec(1, 0)))
		require.NoError(t, err)
		b, err := s.AddCircle(1, At(vec(1.5, 0)), WithVelocity(vec(-1, 0)))
		require.NoError(t, err)

		collisions, err := s.Collisions()
		require.NoError(t, err)
		require.Len(t, collisions, 1)

		require.NoError(t, s.Step(0.1))
		assert.InDelta(t, -1, a.Velocity.X, delta)
		assert.InDelta(t, 1, b.Velocity.X, delta)
		assert.InDelta(t, -0.1, a.Position.X, delta)
		assert.InDelta(t, 1.6, b.Position.X, delta)
	})

	t.Run("RestitutionOverride", func(t *testing.T) {
		s := NewSpace()
		a, err := s.AddCircle(1, WithVelocity(vec(1, 0)), WithBodyRestitution(0))
		require.NoError(t, err)
		b, err := s.AddCircle(1, At(vec(1.5, 0)), WithVelocity(vec(-1, 0)))
		require.NoError(t, err)

		require.NoError(t, s.Step(0.1))
		assert.InDelta(t, 0, a.Velocity.X, delta)
		assert.InDelta(t, 0, b.Velocity.X, delta)
	})

	t.Run("DispatchErrorAbortsStep", func(t *testing.T) {
		restoreCollider(t, KindCircle, KindCircle)
		require.NoError(t, RegisterCollider(KindCircle, KindCircle, nil))

		s := NewSpace(WithGravity(vec(0, -10)), WithDamping(0.5))
		pushed := 0
		a, err := s.AddCircle(1, WithVelocity(vec(1, 0)),
			WithForceFunc(func(Body, float64) geometry.Vec2d {
				pushed++
				return vec(3, 0)
			}))
		require.NoError(t, err)
		_, err = s.AddCircle(1, At(vec(10, 0)))
		require.NoError(t, err)

		err = s.Step(1)
		require.ErrorIs(t, err, ErrCollisionNotImplemented)
		assert.Equal(t, geometry.Vec2d{}, a.Position)
		assert.Equal(t, vec(1, 0), a.Velocity, "velocities are untouched")
		assert.Zero(t, pushed, "forces are not evaluated")
		assert.Equal(t, 0.0, s.Time())
		assert.Equal(t, 0.0, s.LastStep())
	})
}

func TestSpace_Margins(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		start   geometry.Vec2d
		vel     geometry.Vec2d
		wantVel geometry.Vec2d
	}{
		{"Left", WithMarginLeft(0), vec(3, 0), vec(-5, 0), vec(5, 0)},
		{"Right", WithMarginRight(10), vec(8, 0), vec(5, 0), vec(-5, 0)},
		{"Top", WithMarginTop(10), vec(0, 8), vec(0, 5), vec(0, -5)},
		{"Bottom", WithMarginBottom(0), vec(0, 3), vec(0, -5), vec(0, 5)},
		{"InsideLeft", WithMarginLeft(0), vec(5, 0), vec(-1, 0), vec(-1, 0)},
		{"AlreadyReturning", WithMarginLeft(0), vec(-5, 0), vec(1, 0), vec(1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSpace(tt.opt)
			c, err := s.AddCircle(1, At(tt.start), WithVelocity(tt.vel))
			require.NoError(t, err)
			require.NoError(t, s.Step(1))
			assert.Equal(t, tt.wantVel, c.Velocity)
		})
	}

	t.Run("Restitution", func(t *testing.T) {
		s := NewSpace(WithMargins(Margins{Left: ptr(0.0)}), WithRestitution(0.8))
		soft, err := s.AddCircle(1, At(vec(3, 0)), WithVelocity(vec(-5, 0)), WithBodyRestitution(0.5))
		require.NoError(t, err)
		hard, err := s.AddCircle(1, At(vec(3, 50)), WithVelocity(vec(-5, 0)))
		require.NoError(t, err)

		require.NoError(t, s.Step(1))
		assert.InDelta(t, 2.5, soft.Velocity.X, delta)
		assert.InDelta(t, 4, hard.Velocity.X, delta)
	})

	t.Run("Setters", func(t *testing.T) {
		s := NewSpace()
		s.SetMargins(Margins{Right: ptr(1.0)})
		s.SetRestitution(1)
		s.SetDamping(0)
		s.SetGravity(geometry.Vec2d{})
		c, err := s.AddCircle(1, WithVelocity(vec(1, 0)))
		require.NoError(t, err)
		require.NoError(t, s.Step(0.1))
		assert.Equal(t, vec(-1, 0), c.Velocity)
	})
}

func TestSpace_Determinism(t *testing.T) {
	build := func() *Space {
		s := NewSpace(WithGravity(vec(0, -9.8)), WithDamping(0.01),
			WithMarginLeft(0), WithMarginRight(100), WithMarginBottom(0), WithMarginTop(100))
		for i := range 5 {
			x := 10 + 15*float64(i)
			_, err := s.AddCircle(3, At(vec(x, 50+float64(i))), WithVelocity(vec(float64(10-4*i), 0)))
			require.NoError(t, err)
		}
		_, err := s.AddAABB(40, 10, 60, 20, WithMass(10))
		require.NoError(t, err)
		_, err = s.AddSegment(vec(5, 30), vec(30, 25), 1)
		require.NoError(t, err)
		_, err = s.AddPoly([]geometry.Vec2d{{70, 70}, {80, 70}, {75, 80}}, WithVelocity(vec(-3, -3)))
		require.NoError(t, err)
		return s
	}

	a, b := build(), build()
	initial := a.Fingerprint()
	assert.Equal(t, initial, b.Fingerprint())
	for range 200 {
		require.NoError(t, a.Step(1.0/60))
		require.NoError(t, b.Step(1.0/60))
	}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, initial, a.Fingerprint())
}

func TestSpace_Snapshot(t *testing.T) {
	s := NewSpace()
	c, err := s.AddCircle(1, WithVelocity(vec(1, 0)))
	require.NoError(t, err)
	_, err = s.AddAABB(10, 10, 12, 12)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, s.Fingerprint(), snap.Fingerprint)
	require.NoError(t, s.Step(1))

	require.Len(t, snap.Bodies, 2)
	assert.Equal(t, geometry.Vec2d{}, snap.Bodies[0].Base().Position, "snapshot is not affected by later steps")
	assert.Equal(t, c.ID, snap.Bodies[0].Base().ID)
	assert.Equal(t, 0.0, snap.Time)
	assert.NotEqual(t, snap.Fingerprint, s.Fingerprint())

	rec := &render.Recorder{}
	snap.Draw(rec, &render.Black)
	assert.Equal(t, "clear", rec.Ops[0].Kind)
	assert.Equal(t, 1, rec.Count("circle"))
	assert.Equal(t, 1, rec.Count("rect"))
}

func TestSpace_Draw(t *testing.T) {
	s := NewSpace()
	_, err := s.AddCircle(1)
	require.NoError(t, err)
	_, err = s.AddSegment(vec(0, 0), vec(5, 0), 0)
	require.NoError(t, err)

	rec := &render.Recorder{}
	s.Draw(rec, nil)
	assert.Equal(t, 0, rec.Count("clear"))
	assert.Equal(t, 1, rec.Count("circle"))
	assert.Equal(t, 1, rec.Count("line"))

	rec.Reset()
	s.Draw(rec, &render.Background)
	require.NotEmpty(t, rec.Ops)
	assert.Equal(t, render.Background, rec.Ops[0].Color)
}

func TestSpace_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewSpace(WithLogger(zap.New(core)))
	_, err := s.AddCircle(1)
	require.NoError(t, err)
	require.NoError(t, s.Step(0.1))

	assert.Equal(t, 1, logs.FilterMessage("body added").Len())
	steps := logs.FilterMessage("step").All()
	require.Len(t, steps, 1)
	assert.Equal(t, int64(1), steps[0].ContextMap()["bodies"])
}

func BenchmarkSpace_Step(b *testing.B) {
	s := NewSpace(WithMarginLeft(0), WithMarginRight(400), WithMarginBottom(0), WithMarginTop(400))
	for i := range 100 {
		x, y := float64(20+(i%10)*36), float64(20+(i/10)*36)
		if _, err := s.AddCircle(5, At(vec(x, y)), WithVelocity(vec(float64(i%7)-3, float64(i%5)-2))); err != nil {
			b.Fatal(err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := s.Step(1.0 / 60); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGetCollision_Hulls(b *testing.B) {
	p, _ := NewRegularPoly(8, 2)
	seg, _ := NewSegment(vec(-3, 1), vec(3, 1), 0.5)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = GetCollision(p, seg)
	}
}

func ptr(f float64) *float64 { return &f }
