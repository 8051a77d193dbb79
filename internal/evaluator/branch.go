package evaluator

import (
	"golang.org/x/sync/errgroup"

	"github.com/nilbranch/pathfinder/ast"
	"github.com/nilbranch/pathfinder/internal/symbolic"
)

// checkConjunction builds a fresh solver from the current path predicate
// plus an optional extra conjunct and reports whether the result is
// satisfiable. An UNKNOWN answer is treated as SAT — never prune (spec
// §4.2, §7 class 4). extra == nil checks the path predicate alone.
func (e *Evaluator) checkConjunction(extra symbolic.Value) bool {
	s := symbolic.NewSolver()
	for _, p := range e.pathPred {
		s.Add(p)
	}
	if extra != nil {
		s.Add(extra)
	}
	return s.Check() != symbolic.ResultUNSAT
}

// debug invokes Policy.DebugHook, if set, with the evaluator's current
// scope stack and path predicate (spec's --debug, at a branch-pruning
// point).
func (e *Evaluator) debug(label string) {
	if e.policy.DebugHook != nil {
		e.policy.DebugHook(label, e.sc, e.pathPred)
	}
}

// ifFeasibility checks P∧test and P∧elseTest against a single shared
// solver instance, using push/pop checkpointing so that the two checks
// never leak constraints into each other (spec §5, §6).
func (e *Evaluator) ifFeasibility(test, elseTest symbolic.Value) (thenOK, elseOK bool) {
	s := symbolic.NewSolver()
	for _, p := range e.pathPred {
		s.Add(p)
	}
	s.Push()
	s.Add(test)
	thenOK = s.Check() != symbolic.ResultUNSAT
	s.Pop()

	s.Push()
	s.Add(elseTest)
	elseOK = s.Check() != symbolic.ResultUNSAT
	s.Pop()

	return thenOK, elseOK
}

// visitIf implements spec §4.6's branching rules exactly: the
// then/else-feasibility table, fork-and-union on the two-feasible case,
// and the conservative post-If variable merge (spec §9 Open Question 3).
func (e *Evaluator) visitIf(n *ast.If) StmtResult {
	test := symbolic.AsCondition(e.visitExpr(n.Test))
	elseTest := symbolic.UnaryNot(test)
	thenOK, elseOK := e.ifFeasibility(test, elseTest)

	switch {
	case thenOK && elseOK:
		thenEval := e.fork()
		thenEval.pathPred = append(thenEval.pathPred, test)
		elseEval := e.fork()
		elseEval.pathPred = append(elseEval.pathPred, elseTest)

		var thenRes, elseRes StmtResult
		if e.policy.Parallel {
			var g errgroup.Group
			g.Go(func() error {
				thenRes = thenEval.visitBlock(n.Then)
				return nil
			})
			g.Go(func() error {
				elseRes = elseEval.visitBlock(n.Else)
				return nil
			})
			_ = g.Wait() // neither goroutine returns an error
		} else {
			thenRes = thenEval.visitBlock(n.Then)
			elseRes = elseEval.visitBlock(n.Else)
		}

		// Both forks have finished by this point (sequentially, or
		// joined via g.Wait() above), so these unions and the merge
		// below run single-threaded — no locking needed.
		e.local.Union(thenEval.local)
		e.local.Union(elseEval.local)
		e.mergeUnknown(thenEval, elseEval)

		if thenRes.Terminated && elseRes.Terminated {
			return StmtResult{Terminated: true, Return: symbolic.Unknown}
		}
		return continueResult

	case !thenOK && elseOK:
		e.debug("then-arm pruned")
		if len(n.Then) > 0 {
			e.local.Add(n.Then[0].Pos())
		}
		elseEval := e.fork()
		elseEval.pathPred = append(elseEval.pathPred, elseTest)
		elseRes := elseEval.visitBlock(n.Else)
		e.local.Union(elseEval.local)
		e.sc = elseEval.sc
		e.adoptAssigned(elseEval)
		return elseRes

	case thenOK && !elseOK:
		e.debug("else-arm pruned")
		e.addDeadElseLine(n)
		thenEval := e.fork()
		thenEval.pathPred = append(thenEval.pathPred, test)
		thenRes := thenEval.visitBlock(n.Then)
		e.local.Union(thenEval.local)
		e.sc = thenEval.sc
		e.adoptAssigned(thenEval)
		return thenRes

	default: // neither arm feasible: the incoming path predicate is itself
		// already contradictory, an already-dead path. Mark both
		// first-lines dead and carry on without terminating.
		e.debug("both arms pruned")
		if len(n.Then) > 0 {
			e.local.Add(n.Then[0].Pos())
		}
		e.addDeadElseLine(n)
		return continueResult
	}
}

// addDeadElseLine implements the else-arm's special first-line rule
// (spec §4.6): an elif-chained If (the Else block's sole statement is
// itself an If) reports its *body's* first line, not the synthetic
// `elif` line, since the elif-If node shares the `else:` line.
func (e *Evaluator) addDeadElseLine(n *ast.If) {
	if len(n.Else) == 0 {
		return
	}
	first := n.Else[0]
	if _, ok := first.(*ast.If); ok {
		e.local.Add(first.Pos() + 1)
		return
	}
	e.local.Add(first.Pos())
}

// adoptAssigned folds a sole-surviving arm's assignment tracking into e,
// so that an outer If's eventual merge (if this If is itself nested in
// one of its arms) sees names this arm touched.
func (e *Evaluator) adoptAssigned(sub *Evaluator) {
	for name := range sub.assigned {
		e.assigned[name] = struct{}{}
	}
}

// mergeUnknown implements spec §9's conservative post-If merge: any
// name assigned in either surviving arm becomes Unknown in the
// continuing environment, since which arm actually ran is not tracked
// beyond this statement.
func (e *Evaluator) mergeUnknown(thenEval, elseEval *Evaluator) {
	for name := range thenEval.assigned {
		e.sc.Assign(name, symbolic.Unknown)
		e.assigned[name] = struct{}{}
	}
	for name := range elseEval.assigned {
		e.sc.Assign(name, symbolic.Unknown)
		e.assigned[name] = struct{}{}
	}
}

// visitWhile implements spec §4.7's While rules. A While never forks —
// it visits its body at most once, in place, under the extended path
// predicate.
func (e *Evaluator) visitWhile(n *ast.While) StmtResult {
	test := symbolic.AsCondition(e.visitExpr(n.Test))
	if !e.checkConjunction(test) {
		e.debug("while-body pruned")
		if len(n.Body) > 0 {
			e.local.Add(n.Body[0].Pos())
		}
		return continueResult
	}

	notTest := symbolic.UnaryNot(test)
	infinite := !e.checkConjunction(notTest)

	savedLen := len(e.pathPred)
	e.pathPred = append(e.pathPred, test)
	e.breaks = append(e.breaks, false)

	e.visitBlock(n.Body)

	reachedBreak := e.breaks[len(e.breaks)-1]
	e.breaks = e.breaks[:len(e.breaks)-1]
	e.pathPred = e.pathPred[:savedLen]

	if infinite {
		if !reachedBreak {
			e.local.Add(n.EndLine + 1)
		}
		if len(n.Else) > 0 {
			e.local.Add(n.Else[0].Pos())
		}
	}
	return continueResult
}

// visitFor implements spec §4.7's For rules: only range(lo, hi)
// iterators are interpreted for feasibility; unless the range is provably
// empty (then only the body's first line is recorded), the body is visited
// once (never iterated) so that dead code inside it is still found, and
// a non-range iterator skips the emptiness check entirely ("no body
// unreachability is inferred" — it is not itself a reason to flag
// anything, not a reason to skip analyzing the body).
func (e *Evaluator) visitFor(n *ast.For) StmtResult {
	lo, hi, ok := e.rangeBounds(n.Iter)
	if !ok {
		e.sc.Assign(n.Target, symbolic.Unknown)
		e.visitBlock(n.Body)
		return continueResult
	}

	nonEmpty := symbolic.Cmp{Op: symbolic.OpGt, Left: hi, Right: lo}
	if !e.checkConjunction(nonEmpty) {
		e.debug("for-body pruned (empty range)")
		if len(n.Body) > 0 {
			e.local.Add(n.Body[0].Pos())
		}
		return continueResult
	}

	e.sc.Assign(n.Target, symbolic.FreshReal(e.counter, "i"))
	e.visitBlock(n.Body)
	return continueResult
}

// rangeBounds recognizes the two-argument `range(lo, hi)` call form;
// any other iterator expression is skipped with no inference (spec §4.7).
func (e *Evaluator) rangeBounds(iter ast.Expression) (lo, hi symbolic.Value, ok bool) {
	call, isCall := iter.(*ast.Call)
	if !isCall {
		return nil, nil, false
	}
	name, isAttribute := call.CalleeName()
	if isAttribute || name != "range" || len(call.Args) != 2 {
		return nil, nil, false
	}
	return e.visitExpr(call.Args[0]), e.visitExpr(call.Args[1]), true
}
