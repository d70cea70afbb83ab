package camera

import (
	"fmt"

	"github.com/plus3/camanim/anim"
)

// Snapshot is a read-only copy of what debug overlays display. Capturing it
// never writes to the camera, manager or ticker.
type Snapshot struct {
	Position anim.Vector3
	Target   anim.Vector3
	Distance float64

	HasQueue bool
	Queue    anim.ManagerStats

	HasTicker bool
	Ticks     anim.TickerStats
}

// Capture reads the current state. manager and ticker may be nil.
func Capture(cam *Camera, manager *anim.Manager, ticker *anim.FrameTicker) Snapshot {
	s := Snapshot{
		Position: cam.Position,
		Target:   cam.Target,
		Distance: cam.Distance(),
	}
	if manager != nil {
		s.HasQueue = true
		s.Queue = manager.Stats()
	}
	if ticker != nil {
		s.HasTicker = true
		s.Ticks = ticker.Stats()
	}
	return s
}

// Lines formats the snapshot as fixed-width text lines.
func (s Snapshot) Lines() []string {
	lines := []string{
		fmt.Sprintf("Position: x=%.2f, y=%.2f, z=%.2f", s.Position.X, s.Position.Y, s.Position.Z),
		fmt.Sprintf("Target:   x=%.2f, y=%.2f, z=%.2f", s.Target.X, s.Target.Y, s.Target.Z),
		fmt.Sprintf("Distance: %.2f", s.Distance),
	}
	if s.HasQueue {
		state := "idle"
		if s.Queue.Running {
			state = "running"
		}
		lines = append(lines, fmt.Sprintf("Queue:    %s, %d pending (%d started, %d done, %d dropped)",
			state, s.Queue.Pending, s.Queue.Started, s.Queue.Completed, s.Queue.Dropped))
	}
	if s.HasTicker {
		lines = append(lines, fmt.Sprintf("Ticks:    %d at %s (avg %s)",
			s.Ticks.Ticks, s.Ticks.LastTick, s.Ticks.AvgDuration))
	}
	return lines
}
