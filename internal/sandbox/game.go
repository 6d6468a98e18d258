// Package sandbox is the interactive ebiten front end of the world actor.
package sandbox

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lao-tseu-is-alive/go-rigid2d/internal/world"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/config"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/physics"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render/screen"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// spawn sizes per kind, in world units
var spawnSizes = map[physics.Kind]float64{
	physics.KindCircle:  15,
	physics.KindAABB:    30,
	physics.KindSegment: 80,
	physics.KindPoly:    20,
}

var spawnKeys = map[ebiten.Key]physics.Kind{
	ebiten.KeyDigit1: physics.KindCircle,
	ebiten.KeyDigit2: physics.KindAABB,
	ebiten.KeyDigit3: physics.KindSegment,
	ebiten.KeyDigit4: physics.KindPoly,
}

type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	worldPID   *actor.PID
	snapshotCh chan *physics.Snapshot
	lastState  *physics.Snapshot

	cfg     *config.Config
	logger  *zap.Logger
	canvas  *screen.Canvas
	display render.Display

	panel    *ui.Panel
	controls *controls

	spawnKind physics.Kind

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64
}

// controls are the panel widgets bound to live space parameters.
type controls struct {
	damping     *ui.Slider
	restitution *ui.Slider
	gravityY    *ui.Slider
	paused      *ui.Checkbox
	reset       bool
}

func newControls(panel *ui.Panel, cfg *config.Config) *controls {
	c := &controls{}
	panel.AddSection("Space")
	c.damping = panel.AddSlider("Damping", 0, 2, cfg.Damping)
	c.restitution = panel.AddSlider("Restitution", 0, 1, cfg.Restitution)
	c.gravityY = panel.AddSlider("Gravity Y", -1000, 1000, cfg.Gravity.Y)

	panel.AddSection("Run")
	c.paused = panel.AddCheckbox("Paused", false)
	panel.AddButton("Reset scene", func() { c.reset = true })
	return c
}

// pending returns the parameter message for widgets changed since the last
// call, or nil.
func (c *controls) pending(gravityX float64) *world.Params {
	var p world.Params
	changed := false
	if c.damping.Changed() {
		v := c.damping.Value
		p.Damping, changed = &v, true
	}
	if c.restitution.Changed() {
		v := c.restitution.Value
		p.Restitution, changed = &v, true
	}
	if c.gravityY.Changed() {
		p.Gravity, changed = &geometry.Vec2d{X: gravityX, Y: c.gravityY.Value}, true
	}
	if c.paused.Changed() {
		v := c.paused.Value
		p.Paused, changed = &v, true
	}
	if !changed {
		return nil
	}
	return &p
}

// NewGame spawns the world actor and builds the control panel.
func NewGame(ctx context.Context, cfg *config.Config, system actor.ActorSystem, logger *zap.Logger) (*Game, error) {
	snapshotCh := make(chan *physics.Snapshot, 10)
	worldPID, err := system.Spawn(ctx, "world", world.NewWorldActor(snapshotCh, cfg, logger))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn world: %w", err)
	}

	panel := ui.NewPanel("go-rigid2d", 10, 10, 220, min(320, float64(cfg.WindowHeight)-20))
	panel.Visible = cfg.ShowPanel

	return &Game{
		ctx:        ctx,
		System:     system,
		worldPID:   worldPID,
		snapshotCh: snapshotCh,
		lastState:  &physics.Snapshot{},
		cfg:        cfg,
		logger:     logger,
		display:    render.Display{Width: float64(cfg.WindowWidth), Height: float64(cfg.WindowHeight)},
		panel:      panel,
		controls:   newControls(panel, cfg),
		spawnKind:  physics.KindCircle,
	}, nil
}

// Reload asks the world to switch to the scene file at path.
func (g *Game) Reload(path string) error {
	return actor.Tell(g.ctx, g.worldPID, world.LoadMessage(path))
}

// Status asks the world for its clock, body count and fingerprint.
func (g *Game) Status(timeout time.Duration) (world.Status, error) {
	reply, err := actor.Ask(g.ctx, g.worldPID, world.StatusMessage(), timeout)
	if err != nil {
		return world.Status{}, err
	}
	return world.DecodeStatus(reply.(*structpb.Struct))
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	mx, my := ebiten.CursorPosition()
	g.display.MouseX, g.display.MouseY = float64(mx), g.display.FlipY(float64(my))

	g.panel.Update()
	g.handleKeys()

	if p := g.controls.pending(g.cfg.Gravity.X); p != nil {
		g.tell(world.ParamsMessage(*p))
	}
	if g.controls.reset {
		g.controls.reset = false
		g.tell(world.ResetMessage())
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !g.panel.Contains(float64(mx), float64(my)) {
		g.tell(world.SpawnMessage(g.spawnKind, g.display.MousePos(), spawnSizes[g.spawnKind]))
	}

	select {
	case snap := <-g.snapshotCh:
		g.lastState = snap
	default:
		// keep the previous frame
	}

	g.tell(world.Tick(time.Second / time.Duration(max(g.cfg.TicksPerSecond, 1))))
	return nil
}

func (g *Game) handleKeys() {
	for key, kind := range spawnKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.spawnKind = kind
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.panel.Visible = !g.panel.Visible
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.controls.reset = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.controls.paused.Set(!g.controls.paused.Value)
	}
}

func (g *Game) tell(msg proto.Message) {
	if err := actor.Tell(g.ctx, g.worldPID, msg); err != nil {
		g.logger.Warn("world message dropped", zap.Error(err))
	}
}

func (g *Game) Draw(dst *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	if g.canvas == nil {
		g.canvas = screen.NewCanvas(dst)
	} else {
		g.canvas.Target(dst)
	}
	g.lastState.Draw(g.canvas, &render.Background)

	g.panel.Draw(dst)

	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\nt: %.2fs\nbodies: %d\nspawn: %s [1-4]\n\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.lastState.Time,
		len(g.lastState.Bodies),
		g.spawnKind,
		g.updateAvg,
		g.drawAvg)
	ebitenutil.DebugPrintAt(dst, msg, g.cfg.WindowWidth-150, 10)
}

func (g *Game) Layout(w, h int) (int, int) { return g.cfg.WindowWidth, g.cfg.WindowHeight }
