// Package debugui renders camera and animation-queue state with Dear ImGui.
// The overlay is a passive reader: it never writes to the camera or queue.
package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/camanim/anim"
	"github.com/plus3/camanim/camera"
)

// Overlay draws a "Camera" window each frame.
type Overlay struct {
	camera  *camera.Camera
	manager *anim.Manager
	ticker  *anim.FrameTicker

	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

// NewOverlay creates an overlay for cam. manager and ticker may be nil.
func NewOverlay(cam *camera.Camera, manager *anim.Manager, ticker *anim.FrameTicker, historyFrames int) *Overlay {
	if historyFrames <= 0 {
		historyFrames = 120
	}
	return &Overlay{
		camera:        cam,
		manager:       manager,
		ticker:        ticker,
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Render must be called between the backend's BeginFrame and EndFrame.
func (o *Overlay) Render(deltaTime float32) {
	if !imgui.BeginV("Camera", nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.End()
		return
	}

	o.frameHistory[o.frameIndex] = deltaTime * 1000.0
	o.frameIndex = (o.frameIndex + 1) % o.historyFrames

	snap := camera.Capture(o.camera, o.manager, o.ticker)
	for _, line := range snap.Lines() {
		imgui.Text(line)
	}

	imgui.Separator()
	var avgFrameTime float32
	for _, ft := range o.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(o.historyFrames)
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}
	imgui.PlotLinesFloatPtr("##frametime", &o.frameHistory[0], int32(len(o.frameHistory)))

	if imgui.TreeNodeStr("Listeners") {
		events := o.camera.Events()
		for _, name := range events.Names() {
			imgui.BulletText(fmt.Sprintf("%s: %d", name, events.Listeners(name)))
		}
		if faults := events.Faults(); faults > 0 {
			imgui.Text(fmt.Sprintf("Listener faults: %d", faults))
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures wall-clock time between frames.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
