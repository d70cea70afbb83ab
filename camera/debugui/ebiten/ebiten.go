// Package ebiten runs a camera tour inside an Ebiten window, with an optional
// Dear ImGui overlay on top.
package ebiten

import (
	"image/color"
	"strings"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/camanim/anim"
	"github.com/plus3/camanim/camera"
	"github.com/plus3/camanim/camera/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window.
func NewImguiBackend(title string, width, height int) ImguiBackend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	return ImguiBackend{EbitenBackend: b}
}

func (b ImguiBackend) enabled() bool {
	return b.EbitenBackend != nil
}

var (
	backgroundColor = color.RGBA{24, 24, 28, 255}
	gridColor       = color.RGBA{60, 60, 68, 255}
	positionColor   = color.RGBA{255, 179, 186, 255}
	targetColor     = color.RGBA{179, 229, 252, 255}
	sightColor      = color.RGBA{255, 255, 186, 255}
)

// Game implements ebiten.Game. Each Update delivers one tick to the ticker,
// so animation progress follows the ticker's clock and not the frame count.
type Game struct {
	Camera  *camera.Camera
	Manager *anim.Manager
	Ticker  *anim.FrameTicker

	// Backend is optional; the zero value disables the ImGui overlay.
	Backend ImguiBackend
	Overlay *debugui.Overlay

	// Scale is screen pixels per world unit in the top-down view.
	Scale float32
	// QuitWhenIdle ends the game once the manager has no work left.
	QuitWhenIdle bool

	timer *debugui.FrameTimer
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.timer == nil {
		g.timer = debugui.NewFrameTimer()
	}
	delta := g.timer.GetDeltaTime()

	if g.Backend.enabled() {
		g.Backend.BeginFrame()
	}

	g.Ticker.Advance()

	if g.Backend.enabled() {
		if g.Overlay != nil {
			g.Overlay.Render(delta)
		}
		g.Backend.EndFrame()
	}

	if g.QuitWhenIdle && g.Manager != nil && !g.Manager.Running() && g.Ticker.Pending() == 0 {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	cx, cy := float32(w)/2, float32(h)/2
	scale := g.Scale
	if scale <= 0 {
		scale = 10
	}
	project := func(v anim.Vector3) (float32, float32) {
		return cx + float32(v.X)*scale, cy + float32(v.Z)*scale
	}

	for i := -10; i <= 10; i++ {
		off := float32(i*5) * scale
		vector.StrokeLine(screen, cx+off, 0, cx+off, float32(h), 1, gridColor, false)
		vector.StrokeLine(screen, 0, cy+off, float32(w), cy+off, 1, gridColor, false)
	}

	px, py := project(g.Camera.Position)
	tx, ty := project(g.Camera.Target)
	vector.StrokeLine(screen, px, py, tx, ty, 1, sightColor, true)
	vector.DrawFilledCircle(screen, tx, ty, 4, targetColor, true)
	vector.DrawFilledCircle(screen, px, py, 6, positionColor, true)

	snap := camera.Capture(g.Camera, g.Manager, g.Ticker)
	ebitenutil.DebugPrint(screen, strings.Join(snap.Lines(), "\n"))

	if g.Backend.enabled() {
		g.Backend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Backend.enabled() {
		g.Backend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
