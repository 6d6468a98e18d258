package world

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/config"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"go.uber.org/zap/zaptest"
	"google.golang.org/protobuf/types/known/structpb"
)

const twoBalls = `
space:
  gravity: [0, 0]
bodies:
  - {kind: circle, radius: 1, position: [0, 0], velocity: [10, 0]}
  - {kind: circle, radius: 1, position: [50, 0]}
`

func writeScene(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func newWorld(t *testing.T, scenePath string, ch chan *physics.Snapshot) *WorldActor {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Scene = scenePath
	cfg.SubSteps = 2
	w := NewWorldActor(ch, cfg, zaptest.NewLogger(t))
	require.NoError(t, w.load(cfg.Scene))
	return w
}

func TestWorldActor_Tick(t *testing.T) {
	ch := make(chan *physics.Snapshot, 1)
	w := newWorld(t, writeScene(t, twoBalls), ch)
	assert.Equal(t, 2, w.space.Len())

	require.NoError(t, w.tick(500*time.Millisecond))
	assert.InDelta(t, 0.5, w.space.Time(), 1e-12)
	assert.InDelta(t, 0.25, w.space.LastStep(), 1e-12, "one tick is split into sub-steps")

	snap := <-ch
	assert.Equal(t, w.space.Time(), snap.Time)
	assert.InDelta(t, 5, snap.Bodies[0].Base().Position.X, 1e-9)

	// a full channel is skipped, not blocked on
	ch <- snap
	require.NoError(t, w.tick(100*time.Millisecond))
	assert.Len(t, ch, 1)
}

func TestWorldActor_Params(t *testing.T) {
	w := newWorld(t, writeScene(t, twoBalls), nil)
	damping, restitution := 0.3, 0.4
	paused := true
	_, err := w.command(ParamsMessage(Params{
		Damping:     &damping,
		Restitution: &restitution,
		Gravity:     &geometry.Vec2d{X: 1, Y: -2},
		Paused:      &paused,
	}))
	require.NoError(t, err)

	assert.Equal(t, 0.3, w.space.Damping())
	assert.Equal(t, 0.4, w.space.Restitution())
	assert.Equal(t, geometry.Vec2d{X: 1, Y: -2}, w.space.Gravity())
	assert.True(t, w.paused)

	require.NoError(t, w.tick(time.Second))
	assert.Equal(t, 0.0, w.space.Time(), "a paused world does not advance")

	// partial updates leave the rest alone
	msg := &structpb.Struct{Fields: map[string]*structpb.Value{
		"op":       structpb.NewStringValue(OpParams),
		"gravityY": structpb.NewNumberValue(-9),
		"paused":   structpb.NewBoolValue(false),
	}}
	_, err = w.command(msg)
	require.NoError(t, err)
	assert.Equal(t, geometry.Vec2d{X: 1, Y: -9}, w.space.Gravity())
	assert.Equal(t, 0.3, w.space.Damping())
	assert.False(t, w.paused)
}

func TestWorldActor_Spawn(t *testing.T) {
	w := newWorld(t, "", nil)
	assert.Equal(t, 0, w.space.Len())

	for i, kind := range []physics.Kind{physics.KindCircle, physics.KindAABB, physics.KindSegment, physics.KindPoly} {
		_, err := w.command(SpawnMessage(kind, geometry.Vec2d{X: 100 * float64(i), Y: 50}, 10))
		require.NoError(t, err, kind.String())
	}
	require.Equal(t, 4, w.space.Len())
	for i, b := range w.space.Bodies() {
		assert.InDelta(t, 100*float64(i), b.Base().Position.X, 1e-9)
		assert.InDelta(t, 50, b.Base().Position.Y, 1e-9)
	}

	bad := SpawnMessage(physics.KindCircle, geometry.Vec2d{}, 1)
	bad.Fields["kind"] = structpb.NewStringValue("blob")
	_, err := w.command(bad)
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = w.command(SpawnMessage(physics.KindCircle, geometry.Vec2d{}, -1))
	assert.ErrorIs(t, err, physics.ErrInvalidGeometry)
}

func TestWorldActor_ResetAndLoad(t *testing.T) {
	path := writeScene(t, twoBalls)
	w := newWorld(t, path, nil)
	require.NoError(t, w.tick(time.Second))
	_, err := w.command(SpawnMessage(physics.KindCircle, geometry.Vec2d{X: 0, Y: 100}, 1))
	require.NoError(t, err)
	require.Equal(t, 3, w.space.Len())

	_, err = w.command(ResetMessage())
	require.NoError(t, err)
	assert.Equal(t, 2, w.space.Len())
	assert.Equal(t, 0.0, w.space.Time())

	_, err = w.command(LoadMessage(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
	assert.Equal(t, path, w.scenePath, "a failed load keeps the current scene")

	other := writeScene(t, "bodies: [{kind: aabb, min: [0, 0], max: [1, 1]}]")
	_, err = w.command(LoadMessage(other))
	require.NoError(t, err)
	assert.Equal(t, 1, w.space.Len())
	assert.Equal(t, other, w.scenePath)

	_, err = w.command(op("explode"))
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestWorldActor_Status(t *testing.T) {
	w := newWorld(t, writeScene(t, twoBalls), nil)
	require.NoError(t, w.tick(time.Second))

	reply, err := w.command(StatusMessage())
	require.NoError(t, err)
	st, err := DecodeStatus(reply)
	require.NoError(t, err)
	assert.InDelta(t, 1, st.Time, 1e-12)
	assert.Equal(t, 2, st.Bodies)
	assert.False(t, st.Paused)
	assert.Len(t, st.Fingerprint, 16)

	_, err = DecodeStatus(ResetMessage())
	assert.Error(t, err)
	_, err = DecodeStatus(nil)
	assert.Error(t, err)
}

// A world with the same scene and the same ticks ends in the same state.
func TestWorldActor_Deterministic(t *testing.T) {
	path := writeScene(t, twoBalls)
	run := func() string {
		w := newWorld(t, path, nil)
		for range 100 {
			require.NoError(t, w.tick(16*time.Millisecond))
		}
		st, err := DecodeStatus(w.status())
		require.NoError(t, err)
		return st.Fingerprint
	}
	assert.Equal(t, run(), run())
}

func TestWorldActor_System(t *testing.T) {
	ctx := context.Background()
	system, err := actor.NewActorSystem("WorldTest", actor.WithLogger(golog.DiscardLogger))
	require.NoError(t, err)
	require.NoError(t, system.Start(ctx))
	t.Cleanup(func() { _ = system.Stop(ctx) })

	cfg := config.DefaultConfig()
	cfg.Scene = writeScene(t, twoBalls)
	ch := make(chan *physics.Snapshot, 10)
	pid, err := system.Spawn(ctx, "world", NewWorldActor(ch, cfg, nil))
	require.NoError(t, err)

	require.NoError(t, actor.Tell(ctx, pid, Tick(time.Second)))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case snap := <-ch:
			if snap.Time == 0 {
				continue // published on start
			}
			assert.InDelta(t, 1, snap.Time, 1e-12)
			assert.Len(t, snap.Bodies, 2)

			reply, err := actor.Ask(ctx, pid, StatusMessage(), 5*time.Second)
			require.NoError(t, err)
			st, err := DecodeStatus(reply.(*structpb.Struct))
			require.NoError(t, err)
			assert.Equal(t, 2, st.Bodies)
			return
		case <-deadline:
			t.Fatal("no snapshot from the world actor")
		}
	}
}

func TestWorldActor_BadScene(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scene = filepath.Join(t.TempDir(), "missing.yaml")
	w := NewWorldActor(nil, cfg, nil)
	assert.Error(t, w.load(cfg.Scene))
}

func BenchmarkWorldActor_tick(b *testing.B) {
	cfg := config.DefaultConfig()
	cfg.Scene = filepath.Join("..", "..", "scenes", "sandbox.yaml")
	w := NewWorldActor(nil, cfg, nil)
	if err := w.load(cfg.Scene); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = w.tick(16 * time.Millisecond)
	}
}
