// Command termsim runs a scene in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-rigid2d/internal/logger"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/config"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/physics"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/render/term"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/scene"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errQuit = errors.New("quit")

func main() {
	configFile := flag.String("config", "", "JSON configuration file, defaults are used when empty")
	sceneFile := flag.String("scene", "scenes/pool.yaml", "scene file")
	logFile := flag.String("log", "", "write logs to this file; the terminal is busy drawing")
	flag.Parse()

	cfg := config.DefaultConfig()
	if *configFile != "" {
		loaded, err := config.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}

	l := zap.NewNop()
	if *logFile != "" {
		zc, err := logger.Config(cfg.LogLevel, logger.EncodingJSON)
		if err != nil {
			log.Fatalf("logger: %v", err)
		}
		zc.OutputPaths = []string{*logFile}
		zc.ErrorOutputPaths = []string{*logFile}
		if l, err = zc.Build(); err != nil {
			log.Fatalf("logger: %v", err)
		}
	}
	defer func() { _ = l.Sync() }()

	sc, err := scene.Load(*sceneFile)
	if err != nil {
		log.Fatalf("scene: %v", err)
	}
	space, _, err := sc.NewSpace(cfg.SpaceOptions(l)...)
	if err != nil {
		log.Fatalf("scene: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("terminal: %v", err)
	}

	// run finalizes the screen on return
	err = run(context.Background(), screen, space, worldOf(space, cfg), cfg, l)
	if err != nil && !errors.Is(err, errQuit) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// worldOf is the region shown on screen: the space margins when they close
// the scene, the configured window otherwise.
func worldOf(space *physics.Space, cfg *config.Config) render.Display {
	m := space.Margins()
	if m.Left != nil && m.Right != nil && m.Bottom != nil && m.Top != nil && *m.Left == 0 && *m.Bottom == 0 {
		return render.Display{Width: *m.Right, Height: *m.Top}
	}
	return render.Display{Width: float64(cfg.WindowWidth), Height: float64(cfg.WindowHeight)}
}

func run(ctx context.Context, screen tcell.Screen, space *physics.Space, world render.Display, cfg *config.Config, l *zap.Logger) error {
	canvas := term.NewCanvas(screen, world)
	paused := false
	keys := make(chan rune, 8)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return nil
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return errQuit
				}
				if ev.Key() == tcell.KeyRune {
					select {
					case keys <- ev.Rune():
					default:
					}
				}
			}
		}
	})

	g.Go(func() error {
		// unblocks PollEvent
		defer screen.Fini()
		ticker := time.NewTicker(time.Second / time.Duration(max(cfg.TicksPerSecond, 1)))
		defer ticker.Stop()
		dt := cfg.TimeStep()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case k := <-keys:
				if k == ' ' || k == 'p' {
					paused = !paused
				}
			case <-ticker.C:
				if !paused {
					for range max(cfg.SubSteps, 1) {
						if err := space.Step(dt); err != nil {
							l.Error("step failed", zap.Error(err))
							return err
						}
					}
				}
				space.Draw(canvas, &render.Background)
				status := fmt.Sprintf(" t=%.2f bodies=%d", space.Time(), space.Len())
				if paused {
					status += " [paused]"
				}
				for i, r := range status {
					screen.SetContent(i, 0, r, nil, tcell.StyleDefault.Foreground(tcell.ColorWhite))
				}
				screen.Show()
			}
		}
	})
	return g.Wait()
}
