package evaluator

import (
	"github.com/nilbranch/pathfinder/ast"
	"github.com/nilbranch/pathfinder/internal/collector"
	"github.com/nilbranch/pathfinder/internal/symbolic"
)

// visitCall implements inter-procedural call handling (spec §4.5).
func (e *Evaluator) visitCall(n *ast.Call) symbolic.Value {
	name, isAttribute := n.CalleeName()

	args := make([]symbolic.Value, len(n.Args))
	literalNoneArg := false
	unboundIdentArg := false
	for i, argExpr := range n.Args {
		v := e.visitExpr(argExpr)
		args[i] = v
		if v != symbolic.Unknown {
			continue
		}
		switch argExpr.(type) {
		case *ast.Constant:
			literalNoneArg = true
		case *ast.Identifier:
			unboundIdentArg = true
		}
	}

	if isAttribute {
		// Best-effort: an unresolved attribute call is a conservative
		// no-op, never flagged (spec §4.5).
		return symbolic.Unknown
	}

	fn := e.sc.LookupFunc(name)
	if fn == nil {
		if !e.policy.isKnownBuiltin(name) {
			e.local.Add(n.Pos())
		}
		return symbolic.Unknown
	}

	flagged := len(args) != len(fn.Params)
	switch e.policy.UnknownArgPolicy {
	case ArgPolicyAnyUnbound:
		flagged = flagged || literalNoneArg || unboundIdentArg
	default: // ArgPolicyLiteralNone
		flagged = flagged || literalNoneArg
	}
	if flagged {
		e.local.Add(n.Pos())
	}

	return e.inline(fn, args)
}

// inline pushes a fresh frame, binds params to the evaluated argument
// values (padding missing positions with Unknown so an arity mismatch
// never panics — it was already flagged above), evaluates the body for
// its Terminated/return-value contract, and pops the frame.
func (e *Evaluator) inline(fn *ast.FunctionDef, args []symbolic.Value) symbolic.Value {
	e.sc.PushFrame()
	e.sc.RegisterFuncs(collector.CollectStatements(fn.Body))
	for i, p := range fn.Params {
		if i < len(args) {
			e.sc.Assign(p, args[i])
		} else {
			e.sc.Assign(p, symbolic.Unknown)
		}
	}

	res := e.visitBlock(fn.Body)
	e.sc.PopFrame()

	if res.Terminated {
		return res.Return
	}
	return symbolic.Unknown
}
