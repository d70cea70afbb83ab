package main

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/camanim/anim"
	"github.com/plus3/camanim/camera"
	"github.com/plus3/camanim/camera/debugui"
	camebiten "github.com/plus3/camanim/camera/debugui/ebiten"
	"github.com/plus3/camanim/camera/debugui/term"
)

const (
	windowWidth  = 1280
	windowHeight = 720
)

// tour is one camera with its queue and tick source.
type tour struct {
	camera  *camera.Camera
	manager *anim.Manager
	ticker  *anim.FrameTicker
}

func newTour(script *camera.Script, clock anim.Clock, cfg config, logger *slog.Logger) (*tour, error) {
	ticker := anim.NewFrameTicker(clock, logger)
	opts := script.CameraOptions()
	opts.Debug = cfg.debug
	opts.Logger = logger
	t := &tour{
		camera:  camera.New(ticker, opts),
		manager: anim.NewManager(logger),
		ticker:  ticker,
	}
	if err := script.Enqueue(t.manager, t.camera); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *tour) idle() bool {
	return !t.manager.Running() && t.ticker.Pending() == 0
}

// runHeadless drives the tour with a manual clock that moves one frame
// interval per tick. With a positive speed each frame also waits for its
// share of real time.
func runHeadless(ctx context.Context, script *camera.Script, cfg config, logger *slog.Logger, interval time.Duration) (*Report, error) {
	clock := anim.NewManualClock(0)
	t, err := newTour(script, clock, cfg, logger)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Steps:         len(script.Steps),
		ScriptTime:    script.TotalDuration(),
		FrameInterval: interval,
		Completions:   make(map[string]int),
	}
	for _, event := range []string{camera.EventPositionComplete, camera.EventTargetComplete} {
		t.camera.On(event, func(*camera.Camera) { report.Completions[event]++ })
	}

	// Each step overruns by at most one frame.
	limit := report.ScriptTime + time.Duration(report.Steps+1)*interval

	var pace *time.Ticker
	if cfg.speed > 0 {
		pace = time.NewTicker(time.Duration(float64(interval) / cfg.speed))
		defer pace.Stop()
	}

	runtime.ReadMemStats(&report.MemStatsInit)
	wallStart := time.Now()

	for !t.idle() {
		if clock.Now() > limit {
			return nil, fmt.Errorf("tour still running after %s", limit)
		}
		if pace != nil {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-pace.C:
			}
		} else if err := ctx.Err(); err != nil {
			return nil, err
		}

		tickStart := time.Now()
		t.ticker.Tick(clock.Advance(interval))
		report.TickTime.Add(time.Since(tickStart))
		report.Frames++
	}

	report.WallTime = time.Since(wallStart)
	report.Span = clock.Now()
	report.TickTime.Finalize()
	report.Ticker = t.ticker.Stats()
	report.Queue = t.manager.Stats()
	runtime.ReadMemStats(&report.MemStatsEnd)
	return report, nil
}

func runTerminal(ctx context.Context, script *camera.Script, cfg config, logger *slog.Logger, interval time.Duration) error {
	t, err := newTour(script, anim.NewWallClock(), cfg, logger)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	ui := &term.Terminal{
		Screen:       screen,
		Camera:       t.camera,
		Manager:      t.manager,
		Ticker:       t.ticker,
		Title:        "camtour",
		QuitWhenIdle: true,
	}
	ui.Run(ctx, interval)
	return nil
}

func runWindow(script *camera.Script, cfg config, logger *slog.Logger) error {
	t, err := newTour(script, anim.NewWallClock(), cfg, logger)
	if err != nil {
		return err
	}

	game := &camebiten.Game{
		Camera:  t.camera,
		Manager: t.manager,
		Ticker:  t.ticker,
	}
	if cfg.debug {
		game.Backend = camebiten.NewImguiBackend("camtour", windowWidth, windowHeight)
		imgui.CurrentIO().SetIniFilename("")
		game.Overlay = debugui.NewOverlay(t.camera, t.manager, t.ticker, 120)
	} else {
		ebiten.SetWindowSize(windowWidth, windowHeight)
		ebiten.SetWindowTitle("camtour")
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.fps)

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
