package imagemap

import (
	"strings"
	"testing"
)

func TestLoadTestScript(t *testing.T) {
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "move", "x": 120, "y": 80},
		{"action": "wait", "frames": 3},
		{"action": "screenshot", "label": "after move"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 3 || r.Done() {
		t.Errorf("steps = %d, done = %v", len(r.steps), r.Done())
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		mention string
	}{
		{"invalid json", `{"steps": [`, "parse test script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "click"}]}`, `"click"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.json))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.mention) {
				t.Errorf("error %q does not mention %q", err, tt.mention)
			}
		})
	}
}

// runFrames steps the runner and drains injected input the way
// Viewer.Update does, without touching real input.
func runFrames(v *Viewer, r *TestRunner, limit int) int {
	for i := 0; i < limit; i++ {
		if r.Done() {
			return i
		}
		r.step(v)
		v.processInjectedInput()
	}
	return limit
}

func TestTestRunnerWaitsForLayout(t *testing.T) {
	v := NewViewer(testImages(), nil, DefaultConfig())
	r, err := LoadTestScript([]byte(`{"steps": [{"action": "move", "x": 10, "y": 10}]}`))
	if err != nil {
		t.Fatal(err)
	}
	v.SetTestRunner(r)
	runFrames(v, r, 5)
	if r.cursor != 0 {
		t.Error("runner advanced before the first layout")
	}
}

func TestTestRunnerScript(t *testing.T) {
	v := loadedViewer(t)
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "sweep", "fromX": 0, "fromY": 0, "toX": 400, "toY": 300, "frames": 4},
		{"action": "wait", "frames": 2},
		{"action": "relax", "rounds": 5},
		{"action": "screenshot", "label": "relaxed"},
		{"action": "leave"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	v.SetTestRunner(r)

	frames := runFrames(v, r, 100)
	if !r.Done() {
		t.Fatalf("script not done after %d frames", frames)
	}
	if len(v.screenshotQueue) != 1 || v.screenshotQueue[0] != "relaxed" {
		t.Errorf("screenshot queue = %v", v.screenshotQueue)
	}
	if v.Map().State().HasHint {
		t.Error("hint kept after the leave step")
	}
	if len(v.injectQueue) != 0 {
		t.Error("injected events left over")
	}
}
