package camera

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/plus3/camanim/anim"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScript is wrapped by every validation error of a Script.
var ErrInvalidScript = errors.New("invalid camera script")

// Script is a camera tour loaded from YAML:
//
//	camera:
//	  position: {x: 0, y: 10, z: 30}
//	  target: {x: 0, y: 0, z: 0}
//	steps:
//	  - move: {x: 5, y: 5, z: 5}
//	    duration: 1500ms
//	  - look: {x: 0, y: 5, z: 0}
//	    easing: easeOutQuad
type Script struct {
	Camera ScriptCamera `yaml:"camera"`
	Steps  []ScriptStep `yaml:"steps"`
}

// ScriptCamera holds the camera's initial state.
type ScriptCamera struct {
	Position anim.Vector3 `yaml:"position"`
	Target   anim.Vector3 `yaml:"target"`
}

// ScriptStep is one queued animation. Move and Look may be combined, in
// which case both run together and the step ends when both have stopped.
type ScriptStep struct {
	Move     *anim.Vector3 `yaml:"move,omitempty"`
	Look     *anim.Vector3 `yaml:"look,omitempty"`
	Duration string        `yaml:"duration,omitempty"`
	Easing   string        `yaml:"easing,omitempty"`
}

// DefaultScript returns the built-in tour: fly in, look down, fly back out.
func DefaultScript() *Script {
	return &Script{
		Camera: ScriptCamera{
			Position: anim.Vec3(0, 10, 30),
			Target:   anim.Vec3(0, 0, 0),
		},
		Steps: []ScriptStep{
			{Move: ptr(anim.Vec3(5, 5, 5)), Duration: "1500ms"},
			{Look: ptr(anim.Vec3(0, 5, 0)), Duration: "1000ms"},
			{Move: ptr(anim.Vec3(0, 10, 30)), Look: ptr(anim.Vec3(0, 0, 0)), Duration: "2000ms"},
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}

// LoadScript decodes and validates a script.
func LoadScript(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScript)
		}
		return nil, fmt.Errorf("decode camera script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScriptFile reads a script from path.
func LoadScriptFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := LoadScript(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks every step and reports all problems at once.
func (s *Script) Validate() error {
	var errs []error
	for i, step := range s.Steps {
		if _, _, err := step.resolve(); err != nil {
			errs = append(errs, fmt.Errorf("%w: step %d: %w", ErrInvalidScript, i+1, err))
		}
	}
	return errors.Join(errs...)
}

// TotalDuration returns the sum of all step durations. Steps that fail to
// resolve count as zero.
func (s *Script) TotalDuration() time.Duration {
	var total time.Duration
	for _, step := range s.Steps {
		d, _, err := step.resolve()
		if err == nil {
			total += d
		}
	}
	return total
}

// CameraOptions returns camera options seeded with the script's initial
// position and target.
func (s *Script) CameraOptions() Options {
	return Options{
		Position: s.Camera.Position,
		Target:   s.Camera.Target,
	}
}

// Enqueue queues every step of the script on m, animating cam.
func (s *Script) Enqueue(m *anim.Manager, cam *Camera) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for _, step := range s.Steps {
		d, easing, _ := step.resolve()
		m.Enqueue(step.action(cam), d, easing)
	}
	return nil
}

func (st ScriptStep) resolve() (time.Duration, anim.EasingFunc, error) {
	if st.Move == nil && st.Look == nil {
		return 0, nil, errors.New("step needs move or look")
	}

	d := anim.DefaultDuration
	if st.Duration != "" {
		parsed, err := time.ParseDuration(st.Duration)
		if err != nil {
			return 0, nil, err
		}
		if parsed < 0 {
			return 0, nil, fmt.Errorf("negative duration %s", st.Duration)
		}
		d = parsed
	}

	easing, err := anim.Easing(st.Easing)
	if err != nil {
		return 0, nil, err
	}
	return d, easing, nil
}

func (st ScriptStep) action(cam *Camera) anim.Action {
	switch {
	case st.Move != nil && st.Look != nil:
		return cam.MoveAndLookStep(*st.Move, *st.Look)
	case st.Move != nil:
		return cam.MoveStep(*st.Move)
	default:
		return cam.LookStep(*st.Look)
	}
}
