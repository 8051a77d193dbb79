package evaluator

import "fmt"

// AnalysisError signals an internal invariant violation (spec §7 class
// 5) — e.g. a scope-stack underflow. It is always a programmer error in
// the evaluator itself, never a user-facing I/O or parse failure.
type AnalysisError struct {
	Reason string
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed: %s", e.Reason)
}
