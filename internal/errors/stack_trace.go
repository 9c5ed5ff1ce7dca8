package errors

import (
	"fmt"
	"strings"
)

// StageFrame is a single frame of an inference error's trace: which
// pipeline stage (e.g. "path enumerator", "signature normalizer") was
// running, for which function, when the error surfaced.
type StageFrame struct {
	Stage    string
	Function string
}

// String renders a frame as "stage (function)".
func (f StageFrame) String() string {
	return fmt.Sprintf("%s (%s)", f.Stage, f.Function)
}

// StageTrace is a sequence of StageFrame, ordered from the outermost stage
// that propagated the error down to the stage that first raised it
// (InferenceError.Wrap prepends each new outer frame).
type StageTrace []StageFrame

// String renders the trace one frame per line, outermost first.
func (t StageTrace) String() string {
	if len(t) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, frame := range t {
		sb.WriteString("  at ")
		sb.WriteString(frame.String())
		if i < len(t)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Depth returns the number of frames in the trace.
func (t StageTrace) Depth() int { return len(t) }
