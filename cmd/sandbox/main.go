package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-rigid2d/internal/logger"
	"github.com/lao-tseu-is-alive/go-rigid2d/internal/sandbox"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/config"
	"github.com/lao-tseu-is-alive/go-rigid2d/pkg/scene"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	configFile := flag.String("config", "configs/sandbox.json", "JSON configuration file")
	sceneFile := flag.String("scene", "", "scene file, overrides the configuration")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *sceneFile != "" {
		cfg.Scene = *sceneFile
	}

	l, err := logger.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = l.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var actorLogger golog.Logger = golog.DiscardLogger
	if cfg.DebugActors {
		actorLogger = golog.DefaultLogger
	}
	system, err := actor.NewActorSystem("RigidSandbox",
		actor.WithLogger(actorLogger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		l.Fatal("failed to create actor system", zap.Error(err))
	}
	if err := system.Start(ctx); err != nil {
		l.Fatal("failed to start actor system", zap.Error(err))
	}
	defer func() { _ = system.Stop(context.Background()) }()

	game, err := sandbox.NewGame(ctx, cfg, system, l)
	if err != nil {
		l.Fatal("failed to create game", zap.Error(err))
	}

	eg, egCtx := errgroup.WithContext(ctx)
	if cfg.WatchScene && cfg.Scene != "" {
		dirs := []string{filepath.Dir(cfg.Scene)}
		if scripts := filepath.Join(dirs[0], "scripts"); isDir(scripts) {
			dirs = append(dirs, scripts)
		}
		w, err := scene.NewWatcher(dirs...)
		if err != nil {
			l.Warn("scene watching disabled", zap.Error(err))
		} else {
			defer func() { _ = w.Close() }()
			eg.Go(func() error { return watchScene(egCtx, w, game, cfg.Scene, l) })
		}
	}

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("go-rigid2d sandbox")
	if err := ebiten.RunGame(game); err != nil {
		l.Error("game stopped", zap.Error(err))
	}

	cancel()
	if err := eg.Wait(); err != nil {
		l.Error("scene watcher", zap.Error(err))
	}
}

// watchScene reloads the active scene when it or one of its scripts changes.
func watchScene(ctx context.Context, w *scene.Watcher, game *sandbox.Game, active string, l *zap.Logger) error {
	activeAbs, err := filepath.Abs(active)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			l.Warn("scene watcher error", zap.Error(err))
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(path)
			if abs != activeAbs && filepath.Ext(path) != ".tengo" {
				continue
			}
			l.Info("reloading scene", zap.String("changed", path))
			if err := game.Reload(active); err != nil {
				l.Warn("scene reload failed", zap.Error(err))
			}
		}
	}
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
