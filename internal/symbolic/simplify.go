package symbolic

// Simplify returns a canonical, cheaply-comparable form of v (spec §4.2).
// It constant-folds arithmetic and comparisons, pushes Not through
// comparisons and De Morgan's laws, flattens nested same-operator Logic
// nodes, and absorbs Boolean identities. It never changes meaning.
func Simplify(v Value) Value {
	switch t := v.(type) {
	case Arith:
		return simplifyArith(t)
	case Cmp:
		return simplifyCmp(t)
	case Negation:
		return simplifyNegation(t)
	case Logic:
		return simplifyLogic(t)
	default:
		return v
	}
}

func simplifyArith(a Arith) Value {
	l, r := Simplify(a.Left), Simplify(a.Right)
	if HasUnknown(l) || HasUnknown(r) {
		return Unknown
	}
	if lc, ok := l.(RealConst); ok {
		if rc, ok := r.(RealConst); ok {
			return foldConst(a.Op, lc.Value, rc.Value)
		}
	}
	return Arith{Op: a.Op, Left: l, Right: r}
}

func simplifyCmp(c Cmp) Value {
	l, r := Simplify(c.Left), Simplify(c.Right)
	if HasUnknown(l) || HasUnknown(r) {
		return Unknown
	}
	if lc, ok := l.(RealConst); ok {
		if rc, ok := r.(RealConst); ok {
			return BoolConst{evalCmp(c.Op, lc.Value, rc.Value)}
		}
	}
	return Cmp{Op: c.Op, Left: l, Right: r}
}

func evalCmp(op CmpOp, a, b float64) bool {
	switch op {
	case OpEq:
		return a == b
	case OpNEq:
		return a != b
	case OpLt:
		return a < b
	case OpLtE:
		return a <= b
	case OpGt:
		return a > b
	case OpGtE:
		return a >= b
	default:
		return false
	}
}

func simplifyNegation(n Negation) Value {
	operand := Simplify(n.Operand)
	if HasUnknown(operand) {
		return Unknown
	}
	switch t := operand.(type) {
	case BoolConst:
		return BoolConst{!t.Value}
	case Cmp:
		return Cmp{Op: t.Op.Flip(), Left: t.Left, Right: t.Right}
	case Negation:
		return t.Operand
	case Logic:
		negated := make([]Value, len(t.Operands))
		for i, o := range t.Operands {
			negated[i] = Simplify(Negation{Operand: o})
		}
		flipped := OpOr
		if t.Op == OpOr {
			flipped = OpAnd
		}
		return simplifyLogic(Logic{Op: flipped, Operands: negated})
	default:
		return Negation{Operand: operand}
	}
}

func simplifyLogic(l Logic) Value {
	var flat []Value
	for _, o := range l.Operands {
		s := Simplify(o)
		if HasUnknown(s) {
			return Unknown
		}
		if nested, ok := s.(Logic); ok && nested.Op == l.Op {
			flat = append(flat, nested.Operands...)
			continue
		}
		flat = append(flat, s)
	}

	identity, absorbing := true, false
	if l.Op == OpOr {
		identity, absorbing = false, true
	}

	var kept []Value
	for _, o := range flat {
		if bc, ok := o.(BoolConst); ok {
			if bc.Value == absorbing {
				return BoolConst{absorbing}
			}
			if bc.Value == identity {
				continue // drop: absorbed by the identity element
			}
		}
		kept = append(kept, o)
	}

	switch len(kept) {
	case 0:
		return BoolConst{identity}
	case 1:
		return kept[0]
	default:
		return Logic{Op: l.Op, Operands: kept}
	}
}
