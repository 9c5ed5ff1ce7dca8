// Package errors formats the fatal errors the ownership inference pipeline
// can raise. Per spec ([SPEC_FULL.md] §7) the core has exactly two error
// kinds, both fatal: a structural-IR error (an instruction kind the
// dependency extractor doesn't recognize; the symbolic value builder only
// records such kinds as non-fatal notes) and a precondition-violation
// error (a lookup against the earlier phases' maps that misses, or a
// malformed function body).
// Discarded invalid paths are not errors and never reach this package.
//
// Unlike a typical compiler error, an InferenceError has no source position
// to point at — the core consumes an already-typechecked IR and produces
// no user-visible diagnostics of its own (§1 Non-goals). What it does carry
// is a StageTrace: which pipeline stage, for which function, was running
// when the error was raised.
package errors

import (
	"fmt"
	"strings"
)

// Kind discriminates the two fatal error kinds the pipeline can raise.
type Kind int

const (
	// Structural marks an unrecognized instruction kind reaching the
	// dependency extractor.
	Structural Kind = iota
	// Precondition marks a lookup failure against maps delivered by
	// earlier ownership phases (an unknown group, an ownership variable
	// with no recorded kind).
	Precondition
)

func (k Kind) String() string {
	switch k {
	case Structural:
		return "structural-IR error"
	case Precondition:
		return "precondition violation"
	default:
		return "error"
	}
}

// InferenceError is a single fatal failure of the ownership pipeline.
type InferenceError struct {
	Kind     Kind
	Message  string
	Function string
	Trace    StageTrace
}

// NewInferenceError builds an InferenceError for the given function and
// pipeline stage.
func NewInferenceError(kind Kind, function, stage, message string) *InferenceError {
	return &InferenceError{
		Kind:     kind,
		Message:  message,
		Function: function,
		Trace:    StageTrace{{Stage: stage, Function: function}},
	}
}

// Error implements the error interface.
func (e *InferenceError) Error() string {
	return e.Format()
}

// Format renders the error with its full stage trace, oldest frame first.
func (e *InferenceError) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s in function %q: %s", e.Kind, e.Function, e.Message)
	if len(e.Trace) > 0 {
		sb.WriteString("\n")
		sb.WriteString(e.Trace.String())
	}
	return sb.String()
}

// Wrap prepends a stage frame to the error's trace, for use as an inner
// pipeline stage propagates a failure up through the orchestrator.
func (e *InferenceError) Wrap(stage, function string) *InferenceError {
	wrapped := *e
	wrapped.Trace = append(StageTrace{{Stage: stage, Function: function}}, e.Trace...)
	return &wrapped
}

// FormatErrors renders a batch of inference errors the way the orchestrator
// surfaces a whole program's worth of aborted functions.
func FormatErrors(errs []*InferenceError) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "ownership inference failed on %d function(s):\n\n", len(errs))
	for i, err := range errs {
		fmt.Fprintf(&sb, "[%d of %d] ", i+1, len(errs))
		sb.WriteString(err.Format())
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
