package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-rigid2d/internal/logger"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/physics"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render/screen"
	"go.uber.org/zap"
)

const (
	screenWidth  = 240
	screenHeight = 180
	fps          = 30
	pull         = 1600
	trailEvery   = 3
)

type Game struct {
	space  *physics.Space
	ball   *physics.Circle
	middle geometry.Vec2d
	trail  []geometry.Vec2d
	frames int
	canvas *screen.Canvas
}

func newGame(l *zap.Logger) (*Game, error) {
	display := render.Display{Width: screenWidth, Height: screenHeight}
	middle := display.Middle()
	space := physics.NewSpace(physics.WithGravity(geometry.Vec2d{}), physics.WithLogger(l))
	ball, err := space.AddCircle(3,
		physics.At(middle.Add(geometry.Vec2d{X: 50})),
		physics.WithVelocity(geometry.Vec2d{Y: -50}),
		physics.WithMass(10),
		physics.WithColor(render.Red),
		physics.WithForceFunc(physics.CentralForce(middle, pull)),
	)
	if err != nil {
		return nil, err
	}
	return &Game{space: space, ball: ball, middle: middle}, nil
}

func (g *Game) Update() error {
	if err := g.space.Step(1.0 / fps); err != nil {
		return err
	}
	if g.frames%trailEvery == 0 {
		g.trail = append(g.trail, g.ball.Position)
	}
	g.frames++
	return nil
}

func (g *Game) Draw(dst *ebiten.Image) {
	if g.canvas == nil {
		g.canvas = screen.NewCanvas(dst)
	} else {
		g.canvas.Target(dst)
	}
	g.space.Draw(g.canvas, &render.Black)
	g.canvas.Circle(g.middle, 5, render.Yellow)
	for _, p := range g.trail {
		g.canvas.Point(p, render.Green)
	}
}

func (g *Game) Layout(w, h int) (int, int) { return screenWidth, screenHeight }

func main() {
	l, err := logger.New("info", logger.EncodingConsole)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Sync() }()

	game, err := newGame(l)
	if err != nil {
		l.Fatal("failed to build the orbit", zap.Error(err))
	}

	ebiten.SetWindowSize(screenWidth*4, screenHeight*4)
	ebiten.SetWindowTitle("Orbit")
	ebiten.SetTPS(fps)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
