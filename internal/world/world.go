// Package world hosts a physics space inside a goakt actor. The game loop
// sends ticks and commands; the actor steps the space and pushes snapshots
// back on a channel.
package world

import (
	"errors"
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/config"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/physics"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/scene"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/structpb"
)

var ErrUnknownCommand = errors.New("world: unknown command")

// WorldActor owns the authoritative space.
type WorldActor struct {
	cfg        *config.Config
	scenePath  string
	scene      *scene.Scene
	space      *physics.Space
	built      *scene.Built
	paused     bool
	snapshotCh chan<- *physics.Snapshot
	logger     *zap.Logger

	// scripts already reported as failing
	reported map[*scene.ScriptForce]bool
	spawned  int

	// --- Stats ---
	steps       int
	lastLogTime time.Time
}

var _ actor.Actor = (*WorldActor)(nil)

// NewWorldActor creates the world. The space is built from cfg.Scene when
// the actor starts; an empty scene path gives an empty space.
func NewWorldActor(snapshotCh chan<- *physics.Snapshot, cfg *config.Config, logger *zap.Logger) *WorldActor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorldActor{
		cfg:         cfg,
		scenePath:   cfg.Scene,
		snapshotCh:  snapshotCh,
		logger:      logger,
		reported:    make(map[*scene.ScriptForce]bool),
		lastLogTime: time.Now(),
	}
}

func (w *WorldActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("World %s is loading scene %q", ctx.ActorName(), w.scenePath)
	return w.load(w.scenePath)
}

func (w *WorldActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Infof("World started with %d bodies", w.space.Len())
		w.pushSnapshot()

	case *durationpb.Duration:
		if err := w.tick(msg.AsDuration()); err != nil {
			ctx.Logger().Errorf("World step failed, pausing: %v", err)
		}
		w.logStats(ctx)

	case *structpb.Struct:
		reply, err := w.command(msg)
		if err != nil {
			ctx.Logger().Warnf("World command rejected: %v", err)
			return
		}
		if reply != nil {
			ctx.Response(reply)
		}

	default:
		ctx.Unhandled()
	}
}

func (w *WorldActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Info("World is shutdown...")
	return nil
}

// load builds a fresh space from a scene file, or an empty one.
func (w *WorldActor) load(path string) error {
	sc := &scene.Scene{}
	if path != "" {
		loaded, err := scene.Load(path)
		if err != nil {
			return err
		}
		sc = loaded
	}
	space, built, err := sc.NewSpace(w.cfg.SpaceOptions(w.logger)...)
	if err != nil {
		return err
	}
	w.scenePath, w.scene, w.space, w.built = path, sc, space, built
	clear(w.reported)
	w.logger.Info("scene loaded", zap.String("scene", path), zap.Int("bodies", space.Len()))
	return nil
}

// tick advances by dt split into the configured sub-steps, then publishes.
// A failing step pauses the world.
func (w *WorldActor) tick(dt time.Duration) error {
	defer w.pushSnapshot()
	if w.paused || dt <= 0 {
		return nil
	}

	subSteps := max(w.cfg.SubSteps, 1)
	h := dt.Seconds() / float64(subSteps)
	for range subSteps {
		if err := w.space.Step(h); err != nil {
			w.paused = true
			return err
		}
		w.steps++
	}

	for _, s := range w.built.Scripts {
		if err := s.Err(); err != nil && !w.reported[s] {
			w.reported[s] = true
			w.logger.Warn("force script failed", zap.Error(err))
		}
	}
	return nil
}

func (w *WorldActor) command(msg *structpb.Struct) (*structpb.Struct, error) {
	switch name := msg.GetFields()["op"].GetStringValue(); name {
	case OpParams:
		w.applyParams(msg)
		return nil, nil
	case OpSpawn:
		return nil, w.spawn(msg)
	case OpReset:
		w.paused = false
		return nil, w.load(w.scenePath)
	case OpLoad:
		path := msg.GetFields()["path"].GetStringValue()
		if err := w.load(path); err != nil {
			return nil, err
		}
		w.paused = false
		return nil, nil
	case OpStatus:
		return w.status(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
}

func (w *WorldActor) applyParams(msg *structpb.Struct) {
	if d, ok := numberField(msg, "damping"); ok {
		w.space.SetDamping(d)
	}
	if e, ok := numberField(msg, "restitution"); ok {
		w.space.SetRestitution(e)
	}
	gx, okX := numberField(msg, "gravityX")
	gy, okY := numberField(msg, "gravityY")
	if okX || okY {
		g := w.space.Gravity()
		if okX {
			g.X = gx
		}
		if okY {
			g.Y = gy
		}
		w.space.SetGravity(g)
	}
	if v, ok := msg.GetFields()["paused"]; ok {
		w.paused = v.GetBoolValue()
	}
}

func (w *WorldActor) spawn(msg *structpb.Struct) error {
	f := msg.GetFields()
	kind, ok := physics.ParseKind(f["kind"].GetStringValue())
	if !ok {
		return fmt.Errorf("%w: spawn kind %q", ErrUnknownCommand, f["kind"].GetStringValue())
	}
	at := geometry.Vec2d{X: f["x"].GetNumberValue(), Y: f["y"].GetNumberValue()}
	size := f["size"].GetNumberValue()
	half := size / 2
	opts := []physics.BodyOption{physics.At(at), physics.WithColor(render.PaletteColor(w.spawned))}

	var err error
	switch kind {
	case physics.KindCircle:
		_, err = w.space.AddCircle(size, opts...)
	case physics.KindAABB:
		_, err = w.space.AddAABB(at.X-half, at.Y-half, at.X+half, at.Y+half, opts...)
	case physics.KindSegment:
		_, err = w.space.AddSegment(at.Add(geometry.Vec2d{X: -half}), at.Add(geometry.Vec2d{X: half}), 4, opts...)
	case physics.KindPoly:
		var p *physics.Poly
		p, err = physics.NewRegularPoly(5, size, opts...)
		if err == nil {
			err = w.space.Add(p)
		}
	}
	if err != nil {
		return err
	}
	w.spawned++
	return nil
}

func (w *WorldActor) status() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"op":          structpb.NewStringValue(OpStatus),
		"time":        structpb.NewNumberValue(w.space.Time()),
		"bodies":      structpb.NewNumberValue(float64(w.space.Len())),
		"paused":      structpb.NewBoolValue(w.paused),
		"fingerprint": structpb.NewStringValue(fmt.Sprintf("%016x", w.space.Fingerprint())),
		"scene":       structpb.NewStringValue(w.scenePath),
	}}
}

func (w *WorldActor) pushSnapshot() {
	if w.snapshotCh == nil {
		return
	}
	select {
	case w.snapshotCh <- w.space.Snapshot():
	default:
		// UI busy, skip frame
	}
}

func (w *WorldActor) logStats(ctx *actor.ReceiveContext) {
	if time.Since(w.lastLogTime) >= time.Second {
		ctx.Logger().Debugf("steps/sec: %d | bodies: %d | t=%.2f", w.steps, w.space.Len(), w.space.Time())
		w.steps = 0
		w.lastLogTime = time.Now()
	}
}
