// Command camtour plays a scripted camera tour through the animation queue,
// either headless with a simulated clock, in a terminal, or in a window.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/plus3/camanim/camera"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	levelFlag logLevelFlag
	mode      = modeHeadless
)

func init() {
	levelFlag.value = slog.LevelInfo
	flag.Var(&levelFlag, "loglevel", "set log level: debug, info, warn or error")
	flag.Var(&mode, "mode", "run mode: headless, terminal or window")
}

type config struct {
	script  string
	fps     int
	speed   float64
	debug   bool
	report  bool
	logFile string
}

func main() {
	var cfg config
	flag.StringVar(&cfg.script, "script", "", "YAML camera script; the built-in tour when empty")
	flag.IntVar(&cfg.fps, "fps", 60, "frames per second")
	flag.Float64Var(&cfg.speed, "speed", 0, "headless pacing relative to real time; 0 runs as fast as possible")
	flag.BoolVar(&cfg.debug, "debug", false, "log every camera write and show the ImGui overlay in window mode")
	flag.BoolVar(&cfg.report, "report", true, "print a run report after a headless run")
	flag.StringVar(&cfg.logFile, "logfile", "", "write logs to this file with rotation")
	flag.Parse()

	if err := run(cfg, os.Stdout); err != nil {
		slog.Error("camtour failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config, stdout io.Writer) error {
	if cfg.fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", cfg.fps)
	}
	logger := newLogger(cfg, os.Stderr)
	slog.SetDefault(logger)

	script, name, err := loadScript(cfg.script)
	if err != nil {
		return err
	}
	logger.Info("script loaded", "script", name, "steps", len(script.Steps), "duration", script.TotalDuration())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	interval := time.Second / time.Duration(cfg.fps)
	switch mode {
	case modeTerminal:
		return runTerminal(ctx, script, cfg, logger, interval)
	case modeWindow:
		return runWindow(script, cfg, logger)
	}

	report, err := runHeadless(ctx, script, cfg, logger, interval)
	if err != nil {
		return err
	}
	report.Script = name
	logger.Info("tour finished", "span", report.Span, "frames", report.Frames)
	if cfg.report {
		return report.Generate(stdout)
	}
	return nil
}

// newLogger builds the process logger. Terminal mode owns stderr, so without
// a log file its output is discarded.
func newLogger(cfg config, stderr io.Writer) *slog.Logger {
	var w io.Writer = stderr
	switch {
	case cfg.logFile != "":
		w = &lumberjack.Logger{
			Filename:   cfg.logFile,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
		}
	case mode == modeTerminal:
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelFlag.value}))
}

func loadScript(path string) (*camera.Script, string, error) {
	if path == "" {
		return camera.DefaultScript(), "built-in tour", nil
	}
	s, err := camera.LoadScriptFile(path)
	if err != nil {
		return nil, "", err
	}
	return s, path, nil
}
