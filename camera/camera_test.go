package camera_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/plus3/camanim/anim"
	"github.com/plus3/camanim/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

func newTestCamera() (*camera.Camera, *anim.FrameTicker, *anim.ManualClock) {
	clock := anim.NewManualClock(0)
	ticker := anim.NewFrameTicker(clock, nil)
	cam := camera.New(ticker, camera.Options{
		Position: anim.Vec3(0, 10, 30),
		Target:   anim.Vec3(0, 0, 0),
	})
	return cam, ticker, clock
}

// runFrames ticks at a fixed frame interval until cond reports true or the
// limit is reached, and returns the clock time.
func runFrames(ticker *anim.FrameTicker, clock *anim.ManualClock, limit time.Duration, cond func() bool) time.Duration {
	for clock.Now() < limit && !cond() {
		ticker.Tick(clock.Advance(frame))
	}
	return clock.Now()
}

func TestCameraDefaults(t *testing.T) {
	cam, _, _ := newTestCamera()
	assert.Equal(t, anim.Vec3(0, 1, 0), cam.Up)
	assert.False(t, cam.Debug)

	v, ok := cam.Get(anim.PropertyTarget)
	assert.True(t, ok)
	assert.Equal(t, anim.Vec3(0, 0, 0), v)

	_, ok = cam.Get(anim.DefineProperty("fov"))
	assert.False(t, ok)

	assert.Panics(t, func() { camera.New(nil, camera.Options{}) })
}

func TestCameraMoveTo(t *testing.T) {
	cam, ticker, clock := newTestCamera()

	var completions []time.Duration
	cam.On(camera.EventPositionComplete, func(c *camera.Camera) {
		assert.Same(t, cam, c)
		completions = append(completions, clock.Now())
	})

	a := cam.MoveTo(anim.Vec3(5, 5, 5), 1500*time.Millisecond, anim.EaseInOutQuad)

	ticker.Tick(0)
	assert.Equal(t, anim.Vec3(0, 10, 30), cam.Position)

	end := runFrames(ticker, clock, 5*time.Second, func() bool { return a.State() == anim.StateComplete })

	assert.Equal(t, anim.Vec3(5, 5, 5), cam.Position)
	assert.Equal(t, anim.Vec3(0, 0, 0), cam.Target)
	require.Len(t, completions, 1)
	assert.GreaterOrEqual(t, completions[0], 1500*time.Millisecond)
	assert.Less(t, end, 1500*time.Millisecond+frame)

	runFrames(ticker, clock, end+time.Second, func() bool { return false })
	assert.Len(t, completions, 1)
}

func TestCameraLookAtDefault(t *testing.T) {
	cam, ticker, clock := newTestCamera()
	fired := 0
	cam.Once(camera.EventTargetComplete, func(*camera.Camera) { fired++ })

	a := cam.LookAtDefault(anim.Vec3(0, 5, 0))
	assert.Equal(t, anim.DefaultDuration, a.Task().Duration)

	clock.Set(500 * time.Millisecond)
	ticker.Advance()
	assert.InDelta(t, 2.5, cam.Target.Y, 1e-9)

	clock.Set(time.Second)
	ticker.Advance()
	assert.Equal(t, anim.Vec3(0, 5, 0), cam.Target)
	assert.Equal(t, 1, fired)

	cam.MoveToDefault(anim.Vec3(1, 1, 1))
	clock.Set(2 * time.Second)
	ticker.Advance()
	assert.Equal(t, anim.Vec3(1, 1, 1), cam.Position)
}

func TestCameraMoveAndLookTogether(t *testing.T) {
	cam, ticker, clock := newTestCamera()

	pos := cam.MoveTo(anim.Vec3(10, 0, 0), 400*time.Millisecond, anim.Linear)
	tgt := cam.LookAt(anim.Vec3(0, 0, -10), 800*time.Millisecond, anim.Linear)

	clock.Set(400 * time.Millisecond)
	ticker.Advance()
	assert.Equal(t, anim.StateComplete, pos.State())
	assert.Equal(t, anim.StateRunning, tgt.State())
	assert.Equal(t, anim.Vec3(0, 0, -5), cam.Target)
}

func TestCameraSupersedeFromMidFlight(t *testing.T) {
	cam, ticker, clock := newTestCamera()
	fired := 0
	cam.On(camera.EventPositionComplete, func(*camera.Camera) { fired++ })

	first := cam.MoveTo(anim.Vec3(0, 10, 0), time.Second, anim.Linear)
	clock.Set(500 * time.Millisecond)
	ticker.Advance()
	mid := cam.Position
	assert.Equal(t, anim.Vec3(0, 10, 15), mid)

	second := cam.MoveTo(anim.Vec3(0, 0, 0), time.Second, anim.Linear)
	assert.Equal(t, mid, second.Task().Start)

	runFrames(ticker, clock, 3*time.Second, func() bool { return second.State() == anim.StateComplete })

	assert.Equal(t, anim.StateRetired, first.State())
	assert.Equal(t, anim.Vec3(0, 0, 0), cam.Position)
	assert.Equal(t, 1, fired)
}

func TestCameraDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	clock := anim.NewManualClock(0)
	ticker := anim.NewFrameTicker(clock, nil)
	cam := camera.New(ticker, camera.Options{Debug: true, Logger: logger})

	cam.MoveTo(anim.Vec3(1, 2, 3), 0, nil)
	ticker.Advance()

	assert.Contains(t, buf.String(), "camera property updated")
	assert.Contains(t, buf.String(), "property=position")
	assert.Contains(t, buf.String(), "{x=1.00, y=2.00, z=3.00}")
}

func TestCameraGeometry(t *testing.T) {
	cam, _, _ := newTestCamera()

	assert.InDelta(t, math.Sqrt(100+900), cam.Distance(), 1e-9)

	fwd := cam.Forward()
	assert.InDelta(t, 1.0, fwd.Mgl().Len(), 1e-12)
	assert.Less(t, fwd.Z, 0.0)

	view := cam.ViewMatrix()
	eye := view.Mul4x1(cam.Position.Mgl().Vec4(1))
	assert.InDelta(t, 0, eye.X(), 1e-9)
	assert.InDelta(t, 0, eye.Y(), 1e-9)
	assert.InDelta(t, 0, eye.Z(), 1e-9)

	target := view.Mul4x1(cam.Target.Mgl().Vec4(1))
	assert.InDelta(t, -cam.Distance(), target.Z(), 1e-9)

	cam.Target = cam.Position
	assert.Equal(t, anim.Vector3{}, cam.Forward())
}
