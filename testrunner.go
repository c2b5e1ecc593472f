package imagemap

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Rounds int     `json:"rounds,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"move": true, "leave": true, "sweep": true,
	"relax": true, "wait": true, "screenshot": true,
}

// TestRunner sequences injected pointer events, relaxation and screenshots
// across frames for automated visual testing. Attach to a Viewer via
// SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Viewer via SetTestRunner.
//
//	{"steps": [
//	  {"action": "move", "x": 120, "y": 80},
//	  {"action": "wait", "frames": 30},
//	  {"action": "screenshot", "label": "after-move"},
//	  {"action": "sweep", "fromX": 0, "fromY": 0, "toX": 400, "toY": 300, "frames": 20},
//	  {"action": "relax", "rounds": 10},
//	  {"action": "leave"}
//	]}
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the viewer. The runner's step
// method is called from Viewer.Update before input processing each frame.
func (v *Viewer) SetTestRunner(runner *TestRunner) {
	v.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Viewer.Update.
// Steps wait for the map's first layout.
func (r *TestRunner) step(v *Viewer) {
	if r.done || !v.m.Ready() {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(v.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		v.Screenshot(st.Label)
	case "move":
		v.InjectMove(st.X, st.Y)
	case "leave":
		v.InjectLeave()
	case "sweep":
		v.InjectSweep(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "relax":
		v.m.Relax(st.Rounds)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(v.injectQueue) == 0 {
		r.done = true
	}
}
