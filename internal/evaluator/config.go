package evaluator

import (
	"github.com/nilbranch/pathfinder/internal/scope"
	"github.com/nilbranch/pathfinder/internal/symbolic"
)

// UnknownArgPolicy selects when a Call argument that evaluates to Unknown
// flags the call site as unreachable (spec §9 Open Question 1).
type UnknownArgPolicy int

const (
	// ArgPolicyLiteralNone flags a call only when an argument's source
	// expression was itself an unsupported/None literal — the spec's
	// chosen default ("majority behavior" per §9).
	ArgPolicyLiteralNone UnknownArgPolicy = iota
	// ArgPolicyAnyUnbound additionally flags a call when an argument is
	// merely an unresolved identifier, a stricter tunable alternative.
	ArgPolicyAnyUnbound
)

// Policy bundles the tunables spec §9 calls out as deliberate
// implementation choices, so callers (tests, the CLI, config files) can
// override the canonical defaults.
type Policy struct {
	// UnknownArgPolicy governs Call argument flagging (§9 Open Question 1).
	UnknownArgPolicy UnknownArgPolicy
	// FirstLineOnly: true reports only the first dead line after a
	// terminator (the canonical default, §9 Open Question 2); false
	// reports every statement remaining in the block.
	FirstLineOnly bool
	// KnownBuiltins is the externally-supplied set of identifiers the
	// call handler treats as resolvable external references
	// (spec §4.5, §9 "dynamic attribute resolution" redesign note).
	KnownBuiltins map[string]bool
	// Parallel opts into evaluating an If's then/else siblings
	// concurrently via errgroup when both arms are feasible (spec §5's
	// explicitly-permitted parallel form). Off by default: sequential
	// evaluation needs no synchronization at all.
	Parallel bool
	// DebugHook, when set, is called at every point the evaluator prunes
	// a branch as infeasible, with a short label and the live scope
	// stack/path predicate at that point (the CLI's --debug flag).
	DebugHook func(label string, sc *scope.Stack, pathPred []symbolic.Value)
	// TraceHook, when set, is called before every statement is visited,
	// regardless of whether it is pruned (the CLI's --trace flag).
	TraceHook func(line int, kind string)
}

// DefaultPolicy returns the spec's canonical tunable settings.
func DefaultPolicy() *Policy {
	return &Policy{
		UnknownArgPolicy: ArgPolicyLiteralNone,
		FirstLineOnly:    true,
		KnownBuiltins:    map[string]bool{"print": true, "len": true, "range": true},
	}
}

func (p *Policy) isKnownBuiltin(name string) bool {
	if p == nil || p.KnownBuiltins == nil {
		return false
	}
	return p.KnownBuiltins[name]
}
