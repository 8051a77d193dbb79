package symbolic

import "testing"

func TestSolverSimpleContradiction(t *testing.T) {
	s := NewSolver()
	x := RealVar{"x"}
	s.Add(Cmp{Op: OpGt, Left: x, Right: RealConst{10}})
	s.Add(Cmp{Op: OpLt, Left: x, Right: RealConst{5}})
	if got := s.Check(); got != ResultUNSAT {
		t.Errorf("Check(x > 10 and x < 5) = %v, want UNSAT", got)
	}
}

func TestSolverFeasibleRange(t *testing.T) {
	s := NewSolver()
	x := RealVar{"x"}
	s.Add(Cmp{Op: OpGt, Left: x, Right: RealConst{0}})
	s.Add(Cmp{Op: OpLt, Left: x, Right: RealConst{5}})
	if got := s.Check(); got != ResultSAT {
		t.Errorf("Check(x > 0 and x < 5) = %v, want SAT", got)
	}
}

func TestSolverEqualityContradictsDisjointBound(t *testing.T) {
	s := NewSolver()
	x := RealVar{"x"}
	s.Add(Cmp{Op: OpEq, Left: x, Right: RealConst{3}})
	s.Add(Cmp{Op: OpGt, Left: x, Right: RealConst{10}})
	if got := s.Check(); got != ResultUNSAT {
		t.Errorf("Check(x == 3 and x > 10) = %v, want UNSAT", got)
	}
}

func TestSolverNotEqualExcludesPinnedPoint(t *testing.T) {
	s := NewSolver()
	x := RealVar{"x"}
	s.Add(Cmp{Op: OpEq, Left: x, Right: RealConst{3}})
	s.Add(Cmp{Op: OpNEq, Left: x, Right: RealConst{3}})
	if got := s.Check(); got != ResultUNSAT {
		t.Errorf("Check(x == 3 and x != 3) = %v, want UNSAT", got)
	}
}

func TestSolverNotEqualAloneStaysFeasible(t *testing.T) {
	s := NewSolver()
	x := RealVar{"x"}
	s.Add(Cmp{Op: OpNEq, Left: x, Right: RealConst{3}})
	if got := s.Check(); got != ResultSAT {
		t.Errorf("Check(x != 3) = %v, want SAT (reals are dense)", got)
	}
}

func TestSolverUnknownForcesUnknownResult(t *testing.T) {
	s := NewSolver()
	x := RealVar{"x"}
	s.Add(Cmp{Op: OpGt, Left: x, Right: RealConst{10}})
	s.Add(Cmp{Op: OpLt, Left: x, Right: Unknown})
	if got := s.Check(); got != ResultUnknown {
		t.Errorf("Check with Unknown-tainted conjunct = %v, want Unknown", got)
	}
}

func TestSolverNonlinearConjunctIsIgnoredNotPruned(t *testing.T) {
	s := NewSolver()
	x, y := RealVar{"x"}, RealVar{"y"}
	// x*y > 0 is nonlinear: opaque, never used to prune.
	s.Add(Cmp{Op: OpGt, Left: Arith{Op: OpMul, Left: x, Right: y}, Right: RealConst{0}})
	if got := s.Check(); got != ResultSAT {
		t.Errorf("Check(nonlinear conjunct) = %v, want SAT (under-approximation is safe)", got)
	}
}

func TestSolverPushPopRestoresFeasibility(t *testing.T) {
	s := NewSolver()
	x := RealVar{"x"}
	s.Add(Cmp{Op: OpGt, Left: x, Right: RealConst{0}})
	s.Push()
	s.Add(Cmp{Op: OpLt, Left: x, Right: RealConst{-5}})
	if got := s.Check(); got != ResultUNSAT {
		t.Errorf("Check after pushed contradiction = %v, want UNSAT", got)
	}
	s.Pop()
	if got := s.Check(); got != ResultSAT {
		t.Errorf("Check after Pop = %v, want SAT", got)
	}
}

func TestSolverAndDistributesAcrossAdds(t *testing.T) {
	s := NewSolver()
	x := RealVar{"x"}
	conj := Logic{Op: OpAnd, Operands: []Value{
		Cmp{Op: OpGtE, Left: x, Right: RealConst{1}},
		Cmp{Op: OpLtE, Left: x, Right: RealConst{1}},
	}}
	s.Add(conj)
	if got := s.Check(); got != ResultSAT {
		t.Errorf("Check(1 <= x <= 1) = %v, want SAT", got)
	}
	s.Add(Cmp{Op: OpGt, Left: x, Right: RealConst{1}})
	if got := s.Check(); got != ResultUNSAT {
		t.Errorf("Check(1 <= x <= 1 and x > 1) = %v, want UNSAT", got)
	}
}

func TestSolverLinearCombinationOfVariables(t *testing.T) {
	// x - y > 5 and y - x > 0 => x > y+5 and y > x, contradiction.
	s := NewSolver()
	x, y := RealVar{"x"}, RealVar{"y"}
	s.Add(Cmp{Op: OpGt, Left: Arith{Op: OpSub, Left: x, Right: y}, Right: RealConst{5}})
	s.Add(Cmp{Op: OpGt, Left: Arith{Op: OpSub, Left: y, Right: x}, Right: RealConst{0}})
	if got := s.Check(); got != ResultSAT {
		t.Errorf("Check(multi-variable conjunct) = %v, want SAT (two distinct vars, not linearized to one)", got)
	}
}
