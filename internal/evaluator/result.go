package evaluator

import "github.com/nilbranch/pathfinder/internal/symbolic"

// StmtResult is the tagged result every statement visitor returns (spec
// §4.4, §9): either the path continues, or it has Terminated via a
// Return or Raise, optionally carrying the symbolic return value for
// interprocedural call inlining.
type StmtResult struct {
	Terminated bool
	Return     symbolic.Value
}

// continueResult is the zero-value "keep going" result.
var continueResult = StmtResult{}
