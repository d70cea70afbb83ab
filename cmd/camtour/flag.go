package main

import (
	"fmt"
	"log/slog"
	"strings"
)

type logLevelFlag struct {
	value slog.Level
}

func (l logLevelFlag) String() string {
	return l.value.String()
}

func (l *logLevelFlag) Set(value string) error {
	m := map[string]slog.Level{"DEBUG": slog.LevelDebug, "INFO": slog.LevelInfo, "WARN": slog.LevelWarn, "ERROR": slog.LevelError}
	v, ok := m[strings.ToUpper(value)]
	if !ok {
		return fmt.Errorf("unknown log level %q", value)
	}
	l.value = v
	return nil
}

type modeFlag string

const (
	modeHeadless modeFlag = "headless"
	modeTerminal modeFlag = "terminal"
	modeWindow   modeFlag = "window"
)

func (m modeFlag) String() string {
	return string(m)
}

func (m *modeFlag) Set(value string) error {
	switch v := modeFlag(strings.ToLower(value)); v {
	case modeHeadless, modeTerminal, modeWindow:
		*m = v
		return nil
	}
	return fmt.Errorf("unknown mode %q, want headless, terminal or window", value)
}
