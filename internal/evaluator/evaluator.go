// Package evaluator implements the path-sensitive symbolic evaluator
// (spec §4.4–§4.8): the recursive AST walker that forks at branch points,
// consults the decision procedure to prune infeasible arms, and
// aggregates the unreachable-line set.
package evaluator

import (
	"fmt"

	"github.com/nilbranch/pathfinder/ast"
	"github.com/nilbranch/pathfinder/internal/collector"
	"github.com/nilbranch/pathfinder/internal/scope"
	"github.com/nilbranch/pathfinder/internal/symbolic"
)

// Evaluator is one logical path-exploration instance (spec §9's
// "Forked-evaluator pattern"). It owns its environment, its path
// predicate, and its own local unreachable-line set; siblings forked at
// an If are merged into the parent by union after both arms complete.
type Evaluator struct {
	sc       *scope.Stack
	pathPred []symbolic.Value
	counter  *int64 // shared across every fork in one analysis run (spec §3); advanced atomically so concurrent forks (Policy.Parallel) never collide
	policy   *Policy
	local    Set
	assigned map[string]struct{} // names Assign/AugAssign touched on this evaluator
	breaks   []bool               // reachable-break flags, one per enclosing While
}

// New returns a fresh evaluator for a new analysis run.
func New(policy *Policy) *Evaluator {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Evaluator{
		sc:       scope.New(),
		counter:  new(int64),
		policy:   policy,
		local:    NewSet(),
		assigned: map[string]struct{}{},
	}
}

// fork returns a sibling evaluator sharing the monotonic symbol counter
// and policy, with a deep-copied environment and path predicate, and its
// own empty local unreachable set and assignment tracker (spec §4.6
// fork semantics; §9 re-architecture note).
func (e *Evaluator) fork() *Evaluator {
	pred := make([]symbolic.Value, len(e.pathPred))
	copy(pred, e.pathPred)
	return &Evaluator{
		sc:       e.sc.Snapshot(),
		pathPred: pred,
		counter:  e.counter,
		policy:   e.policy,
		local:    NewSet(),
		assigned: map[string]struct{}{},
	}
}

// Evaluate runs the full analysis over module and returns the sorted,
// distinct 1-based unreachable line numbers (visit_module, spec §4.4).
// An internal invariant violation is recovered and reported as an
// AnalysisError rather than panicking out to the driver (spec §7 class 5).
func Evaluate(module *ast.Module, policy *Policy) (lines []int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &AnalysisError{Reason: formatPanic(r)}
		}
	}()

	e := New(policy)
	if module == nil {
		return nil, nil
	}
	e.sc.RegisterFuncs(collector.CollectStatements(module.Statements))
	e.visitBlock(module.Statements)
	return e.local.Sorted(), nil
}

func formatPanic(r interface{}) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return "unexpected panic during analysis"
}

// visitBlock walks stmts in order, stopping at the first Terminated
// statement and marking the post-terminator line(s) unreachable per the
// §4.4 post-termination rule (tunable via Policy.FirstLineOnly).
func (e *Evaluator) visitBlock(stmts []ast.Statement) StmtResult {
	for i, stmt := range stmts {
		res := e.visitStmt(stmt)
		if res.Terminated {
			if i+1 < len(stmts) {
				if e.policy.FirstLineOnly {
					e.local.Add(stmts[i+1].Pos())
				} else {
					for _, later := range stmts[i+1:] {
						e.local.Add(later.Pos())
					}
				}
			}
			return res
		}
	}
	return continueResult
}

func (e *Evaluator) visitStmt(stmt ast.Statement) StmtResult {
	if e.policy.TraceHook != nil {
		e.policy.TraceHook(stmt.Pos(), fmt.Sprintf("%T", stmt))
	}
	switch n := stmt.(type) {
	case *ast.Assign:
		v := e.visitExpr(n.Value)
		e.sc.Assign(n.Target, v)
		e.assigned[n.Target] = struct{}{}
		return continueResult

	case *ast.AugAssign:
		cur := e.sc.LookupVar(n.Target)
		v := e.visitExpr(n.Value)
		combined := symbolic.BinArith(arithOp(n.Operator), cur, v)
		e.sc.Assign(n.Target, combined)
		e.assigned[n.Target] = struct{}{}
		return continueResult

	case *ast.Return:
		rv := symbolic.Value(symbolic.Unknown)
		if n.Value != nil {
			rv = e.visitExpr(n.Value)
		}
		return StmtResult{Terminated: true, Return: rv}

	case *ast.Raise:
		return StmtResult{Terminated: true, Return: symbolic.Unknown}

	case *ast.ExprStmt:
		e.visitExpr(n.X)
		return continueResult

	case *ast.Break:
		if len(e.breaks) > 0 && e.checkConjunction(nil) {
			e.breaks[len(e.breaks)-1] = true
		}
		return continueResult

	case *ast.If:
		return e.visitIf(n)

	case *ast.While:
		return e.visitWhile(n)

	case *ast.For:
		return e.visitFor(n)

	case *ast.FunctionDef:
		e.visitFunctionDefStatement(n)
		return continueResult

	default:
		// Unsupported statement-level construct: visited-but-not-
		// analyzed (spec §7 class 3); there is nothing further to
		// descend into without a concrete node shape.
		return continueResult
	}
}

// visitFunctionDefStatement executes a module/function-body-level
// FunctionDef purely for its own unreachable-line side effects (spec
// §4.4's last bullet): a fresh frame, fresh symbolic parameters, no
// consumed return value.
func (e *Evaluator) visitFunctionDefStatement(fn *ast.FunctionDef) {
	e.sc.PushFrame()
	e.sc.RegisterFuncs(collector.CollectStatements(fn.Body))
	for _, p := range fn.Params {
		e.sc.Assign(p, symbolic.FreshReal(e.counter, "p"))
	}
	e.visitBlock(fn.Body)
	e.sc.PopFrame()
}
