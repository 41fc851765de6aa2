package plexus

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Theme  string  `json:"theme,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Speed  float64 `json:"speed,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// script is the top-level JSON structure for a script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner drives a Layer through a sequence of lifecycle actions, one
// action per frame, for reproducible headless runs and visual checks.
//
// Supported actions: mount (width, height, theme), resize (width, height),
// theme (theme), spawn (fromX, fromY, toX, toY, speed), screenshot (label),
// wait (frames) and unmount.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON script. Unknown actions and bad themes are
// rejected here rather than at run time.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "mount", "theme":
			if st.Theme != "" {
				if _, err := ParseTheme(st.Theme); err != nil {
					return nil, fmt.Errorf("parse script: step %d: %w", i, err)
				}
			}
		case "resize", "spawn", "screenshot", "wait", "unmount":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step executes at most one action and then runs one Frame of l.
func (r *ScriptRunner) Step(l *Layer) {
	r.apply(l)
	l.Frame()
}

// Run steps l until the script is done or maxFrames frames have run, and
// returns the number of frames run.
func (r *ScriptRunner) Run(l *Layer, maxFrames int) int {
	n := 0
	for !r.done && n < maxFrames {
		r.Step(l)
		n++
	}
	return n
}

func (r *ScriptRunner) apply(l *Layer) {
	if r.done {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		if r.waitCount == 0 && r.cursor >= len(r.steps) {
			r.done = true
		}
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "mount":
		l.Mount(st.Width, st.Height, scriptTheme(st.Theme, l.Theme()))
	case "resize":
		l.Resize(st.Width, st.Height)
	case "theme":
		l.SetTheme(scriptTheme(st.Theme, l.Theme().Toggle()))
	case "spawn":
		if f := l.Field(); f != nil {
			f.SpawnPacket(Vec2{st.FromX, st.FromY}, Vec2{st.ToX, st.ToY}, st.Speed)
		}
	case "screenshot":
		l.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "unmount":
		l.Unmount()
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}

// scriptTheme parses s, falling back to def when s is empty. LoadScript has
// already validated s.
func scriptTheme(s string, def Theme) Theme {
	if s == "" {
		return def
	}
	t, err := ParseTheme(s)
	if err != nil {
		return def
	}
	return t
}
