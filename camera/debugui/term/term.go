// Package term draws camera state into a terminal with tcell and drives the
// tick loop from the terminal's event loop.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/camanim/anim"
	"github.com/plus3/camanim/camera"
)

var (
	titleStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	bodyStyle  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	hintStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// putText writes s starting at (x, y), one rune per column, clipped at the
// right edge.
func putText(scr tcell.Screen, x, y int, s string, st tcell.Style) {
	sw, _ := scr.Size()
	for _, r := range s {
		if x >= sw {
			break
		}
		scr.SetContent(x, y, r, nil, st)
		x++
	}
}

// Terminal renders a camera snapshot. The screen must already be initialised.
type Terminal struct {
	Screen  tcell.Screen
	Camera  *camera.Camera
	Manager *anim.Manager
	Ticker  *anim.FrameTicker

	// Title is drawn on the first row.
	Title string
	// QuitWhenIdle makes Run return once the manager has no work left.
	QuitWhenIdle bool
}

// Draw clears the screen, writes the snapshot and shows it.
func (t *Terminal) Draw() {
	t.Screen.Clear()
	title := t.Title
	if title == "" {
		title = "camera tour"
	}
	putText(t.Screen, 1, 0, title, titleStyle)

	snap := camera.Capture(t.Camera, t.Manager, t.Ticker)
	for i, line := range snap.Lines() {
		putText(t.Screen, 1, 2+i, line, bodyStyle)
	}

	_, sh := t.Screen.Size()
	putText(t.Screen, 1, sh-1, "q / esc to quit", hintStyle)
	t.Screen.Show()
}

// Run advances the ticker every interval and redraws until ctx is done, the
// user quits, or, with QuitWhenIdle, the queue drains. All animation work
// happens on the calling goroutine; a helper goroutine only forwards terminal
// events.
func (t *Terminal) Run(ctx context.Context, interval time.Duration) {
	eventCh := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := t.Screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			eventCh <- ev
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	t.Draw()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-eventCh:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				t.Screen.Sync()
				t.Draw()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return
				}
			}
		case <-ticker.C:
			t.Ticker.Advance()
			t.Draw()
			if t.QuitWhenIdle && t.Manager != nil && !t.Manager.Running() && t.Ticker.Pending() == 0 {
				return
			}
		}
	}
}
