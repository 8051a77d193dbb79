package symbolic

// CheckResult is the three-valued answer a decision procedure gives for a
// conjunction of boolean expressions (spec §4.2, §6).
type CheckResult int

const (
	ResultSAT CheckResult = iota
	ResultUNSAT
	ResultUnknown
)

// Solver is the minimal decision-procedure interface the evaluator
// consults (spec §6): add conjuncts, checkpoint/restore with Push/Pop,
// and Check the accumulated conjunction for satisfiability.
type Solver interface {
	Add(Value)
	Push()
	Pop()
	Check() CheckResult
}

// atomKind classifies one flattened conjunct after linearization.
type atomKind int

const (
	atomNoop atomKind = iota // statically true; contributes nothing
	atomContradiction
	atomBound // single-variable linear bound
	atomOpaque
	atomUnknown
)

type atom struct {
	kind      atomKind
	variable  string
	op        CmpOp
	threshold float64
}

// boundedSolver is a from-scratch bounded linear-arithmetic/boolean
// feasibility checker (spec §4.3's "decision procedure" external
// collaborator, given a concrete body here since no pure-Go SMT binding
// exists in this module's dependency set — see DESIGN.md). It normalizes
// each added expression to single-variable interval bounds and proves
// UNSAT only by interval contradiction; anything it cannot linearize is
// dropped (never used to prune), which is always a safe direction per
// spec §1 ("missed detections acceptable, false positives not").
type boundedSolver struct {
	atoms       []atom
	checkpoints []int
}

// NewSolver returns a fresh decision procedure with no constraints.
func NewSolver() Solver {
	return &boundedSolver{}
}

func (s *boundedSolver) Add(v Value) {
	s.atoms = append(s.atoms, flatten(v)...)
}

func (s *boundedSolver) Push() {
	s.checkpoints = append(s.checkpoints, len(s.atoms))
}

func (s *boundedSolver) Pop() {
	if len(s.checkpoints) == 0 {
		s.atoms = nil
		return
	}
	n := len(s.checkpoints) - 1
	mark := s.checkpoints[n]
	s.checkpoints = s.checkpoints[:n]
	s.atoms = s.atoms[:mark]
}

func (s *boundedSolver) Check() CheckResult {
	bounds := map[string]*interval{}
	for _, a := range s.atoms {
		switch a.kind {
		case atomUnknown:
			return ResultUnknown
		case atomContradiction:
			return ResultUNSAT
		case atomBound:
			iv, ok := bounds[a.variable]
			if !ok {
				iv = &interval{}
				bounds[a.variable] = iv
			}
			iv.tighten(a.op, a.threshold)
		}
	}
	for _, iv := range bounds {
		if !iv.feasible() {
			return ResultUNSAT
		}
	}
	return ResultSAT
}

// flatten splits a (possibly And-compound) boolean expression into
// atomic constraints, linearizing each comparison it can.
func flatten(v Value) []atom {
	if HasUnknown(v) {
		return []atom{{kind: atomUnknown}}
	}
	v = Simplify(v)
	switch t := v.(type) {
	case Logic:
		if t.Op == OpAnd {
			var out []atom
			for _, o := range t.Operands {
				out = append(out, flatten(o)...)
			}
			return out
		}
		return []atom{{kind: atomOpaque}}
	case BoolConst:
		if t.Value {
			return []atom{{kind: atomNoop}}
		}
		return []atom{{kind: atomContradiction}}
	case Cmp:
		return []atom{linearizeCmp(t)}
	default:
		return []atom{{kind: atomOpaque}}
	}
}

func linearizeCmp(c Cmp) atom {
	lf, lok := linearize(c.Left)
	rf, rok := linearize(c.Right)
	if !lok || !rok {
		return atom{kind: atomOpaque}
	}
	diff := subForms(lf, rf)
	vars := diff.nonZeroVars()
	switch len(vars) {
	case 0:
		if evalCmp(c.Op, diff.offset, 0) {
			return atom{kind: atomNoop}
		}
		return atom{kind: atomContradiction}
	case 1:
		name := vars[0]
		coeff := diff.coeffs[name]
		threshold := -diff.offset / coeff
		op := c.Op
		if coeff < 0 {
			// Dividing by a negative coefficient reverses an inequality's
			// direction; == and != are unchanged.
			switch op {
			case OpLt:
				op = OpGt
			case OpLtE:
				op = OpGtE
			case OpGt:
				op = OpLt
			case OpGtE:
				op = OpLtE
			}
		}
		return atom{kind: atomBound, variable: name, op: op, threshold: threshold}
	default:
		return atom{kind: atomOpaque}
	}
}

// linearForm is coeffs·vars + offset.
type linearForm struct {
	coeffs map[string]float64
	offset float64
}

func (f linearForm) nonZeroVars() []string {
	var out []string
	for name, c := range f.coeffs {
		if c != 0 {
			out = append(out, name)
		}
	}
	return out
}

func constForm(k float64) linearForm {
	return linearForm{offset: k}
}

func varForm(name string) linearForm {
	return linearForm{coeffs: map[string]float64{name: 1}}
}

func addForms(a, b linearForm) linearForm {
	out := linearForm{coeffs: map[string]float64{}, offset: a.offset + b.offset}
	for k, v := range a.coeffs {
		out.coeffs[k] += v
	}
	for k, v := range b.coeffs {
		out.coeffs[k] += v
	}
	return out
}

func subForms(a, b linearForm) linearForm {
	return addForms(a, scaleForm(b, -1))
}

func scaleForm(a linearForm, k float64) linearForm {
	out := linearForm{coeffs: map[string]float64{}, offset: a.offset * k}
	for name, c := range a.coeffs {
		out.coeffs[name] = c * k
	}
	return out
}

// linearize reduces an arithmetic Value to coeffs·vars + offset, when
// possible. Multiplying two non-constant forms, dividing by a
// non-constant, and non-constant exponents are not linear and report ok=false.
func linearize(v Value) (linearForm, bool) {
	switch t := v.(type) {
	case RealConst:
		return constForm(t.Value), true
	case RealVar:
		return varForm(t.Name), true
	case Arith:
		lf, lok := linearize(t.Left)
		rf, rok := linearize(t.Right)
		if !lok || !rok {
			return linearForm{}, false
		}
		switch t.Op {
		case OpAdd:
			return addForms(lf, rf), true
		case OpSub:
			return subForms(lf, rf), true
		case OpMul:
			if len(lf.nonZeroVars()) == 0 {
				return scaleForm(rf, lf.offset), true
			}
			if len(rf.nonZeroVars()) == 0 {
				return scaleForm(lf, rf.offset), true
			}
			return linearForm{}, false
		case OpDiv:
			if len(rf.nonZeroVars()) == 0 && rf.offset != 0 {
				return scaleForm(lf, 1/rf.offset), true
			}
			return linearForm{}, false
		default: // OpPow: not linear in the general case
			return linearForm{}, false
		}
	default:
		return linearForm{}, false
	}
}

// interval tracks the tightest lower/upper bound derived for one variable
// across all atoms added so far, plus pinned-point exclusions.
type interval struct {
	hasLower, hasUpper   bool
	lower, upper         float64
	lowerIncl, upperIncl bool
	excluded             []float64
}

func (iv *interval) tighten(op CmpOp, threshold float64) {
	switch op {
	case OpGt, OpGtE:
		incl := op == OpGtE
		if !iv.hasLower || threshold > iv.lower || (threshold == iv.lower && !incl) {
			iv.hasLower, iv.lower, iv.lowerIncl = true, threshold, incl
		}
	case OpLt, OpLtE:
		incl := op == OpLtE
		if !iv.hasUpper || threshold < iv.upper || (threshold == iv.upper && !incl) {
			iv.hasUpper, iv.upper, iv.upperIncl = true, threshold, incl
		}
	case OpEq:
		iv.hasLower, iv.lower, iv.lowerIncl = true, threshold, true
		iv.hasUpper, iv.upper, iv.upperIncl = true, threshold, true
	case OpNEq:
		iv.excluded = append(iv.excluded, threshold)
	}
}

func (iv *interval) feasible() bool {
	if iv.hasLower && iv.hasUpper {
		if iv.lower > iv.upper {
			return false
		}
		if iv.lower == iv.upper && !(iv.lowerIncl && iv.upperIncl) {
			return false
		}
		if iv.lower == iv.upper {
			for _, x := range iv.excluded {
				if x == iv.lower {
					return false
				}
			}
		}
	}
	return true
}
