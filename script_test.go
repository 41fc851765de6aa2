package plexus

import (
	"strings"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "mount", "width": 320, "height": 240, "theme": "light"},
			{"action": "spawn", "fromX": 0, "fromY": 0, "toX": 100, "toY": 0, "speed": 0.05},
			{"action": "wait", "frames": 3},
			{"action": "screenshot", "label": "after-spawn"}
		]
	}`)

	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if st := runner.steps[0]; st.Action != "mount" || st.Width != 320 || st.Height != 240 || st.Theme != "light" {
		t.Errorf("step 0 mismatch: %+v", st)
	}
	if st := runner.steps[1]; st.Action != "spawn" || st.ToX != 100 || st.Speed != 0.05 {
		t.Errorf("step 1 mismatch: %+v", st)
	}
	if st := runner.steps[2]; st.Action != "wait" || st.Frames != 3 {
		t.Errorf("step 2 mismatch: %+v", st)
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid json", `not json`, "parse script"},
		{"empty", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "click"}]}`, `unknown action "click"`},
		{"bad theme", `{"steps": [{"action": "theme", "theme": "sepia"}]}`, "unknown theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestScriptMountAndSpawn(t *testing.T) {
	l, fac := newTestLayer(quietConfig())
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "mount", "width": 320, "height": 240, "theme": "light"},
		{"action": "spawn", "fromX": 0, "fromY": 0, "toX": 100, "toY": 0, "speed": 0.5}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.Step(l)
	if !l.Mounted() || l.Theme() != ThemeLight || len(fac.made) != 1 {
		t.Fatal("mount step not applied")
	}
	if l.Ticks() != 1 {
		t.Errorf("Ticks = %d, want 1", l.Ticks())
	}

	runner.Step(l)
	if !runner.Done() {
		t.Error("runner should be done after the last step")
	}
	if got := len(l.Field().Packets()); got != 1 {
		t.Errorf("packets = %d, want 1", got)
	}
}

func TestScriptWait(t *testing.T) {
	l, _ := newTestLayer(NeuralConfig())
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "mount", "width": 100, "height": 100},
		{"action": "wait", "frames": 3}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	frames := runner.Run(l, 100)
	// mount + 3 wait frames
	if frames != 4 {
		t.Errorf("frames = %d, want 4", frames)
	}
	if !runner.Done() || l.Ticks() != 4 {
		t.Errorf("done/ticks = %v/%d", runner.Done(), l.Ticks())
	}
}

func TestScriptRunMaxFrames(t *testing.T) {
	l, _ := newTestLayer(NeuralConfig())
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "mount", "width": 100, "height": 100},
		{"action": "wait", "frames": 50}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if n := runner.Run(l, 10); n != 10 {
		t.Errorf("frames = %d, want 10", n)
	}
	if runner.Done() {
		t.Error("runner should not be done before the wait ends")
	}
}

func TestScriptResizeThemeUnmount(t *testing.T) {
	l, fac := newTestLayer(NeuralConfig())
	runner, err := LoadScript([]byte(`{"steps": [
		{"action": "mount", "width": 100, "height": 100},
		{"action": "resize", "width": 200, "height": 150},
		{"action": "theme"},
		{"action": "unmount"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.Step(l)
	runner.Step(l)
	if w, h := l.Size(); w != 200 || h != 150 {
		t.Errorf("size = %dx%d", w, h)
	}
	runner.Step(l)
	if l.Theme() != ThemeLight {
		t.Errorf("theme without value should toggle, got %q", l.Theme())
	}
	runner.Step(l)
	if l.Mounted() || !fac.last().Disposed() {
		t.Error("unmount step not applied")
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestScriptSpawnBeforeMount(t *testing.T) {
	l, _ := newTestLayer(NeuralConfig())
	runner, err := LoadScript([]byte(`{"steps": [{"action": "spawn", "speed": 0.1}]}`))
	if err != nil {
		t.Fatal(err)
	}
	// Should not panic.
	runner.Step(l)
	if !runner.Done() {
		t.Error("runner should be done")
	}
}
