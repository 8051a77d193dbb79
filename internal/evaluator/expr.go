package evaluator

import (
	"github.com/nilbranch/pathfinder/ast"
	"github.com/nilbranch/pathfinder/internal/symbolic"
)

// visitExpr evaluates expr to a symbolic value (spec §4.4 Expression
// semantics).
func (e *Evaluator) visitExpr(expr ast.Expression) symbolic.Value {
	switch n := expr.(type) {
	case *ast.Constant:
		return e.visitConstant(n)
	case *ast.Identifier:
		return e.sc.LookupVar(n.Value)
	case *ast.UnaryOp:
		operand := e.visitExpr(n.Operand)
		switch n.Operator {
		case ast.Neg:
			return symbolic.UnaryNeg(operand)
		case ast.Pos:
			return symbolic.UnaryPos(operand)
		case ast.Not:
			return symbolic.UnaryNot(operand)
		default:
			return symbolic.Unknown
		}
	case *ast.BinOp:
		left := e.visitExpr(n.Left)
		right := e.visitExpr(n.Right)
		return symbolic.BinArith(arithOp(n.Operator), left, right)
	case *ast.BoolOp:
		operands := make([]symbolic.Value, len(n.Operands))
		for i, o := range n.Operands {
			operands[i] = e.visitExpr(o)
		}
		if n.Operator == ast.Or {
			return symbolic.BoolOr(operands)
		}
		return symbolic.BoolAnd(operands)
	case *ast.Compare:
		left := e.visitExpr(n.Left)
		ops := make([]symbolic.CmpOp, len(n.Links))
		operands := make([]symbolic.Value, 0, len(n.Links)+1)
		operands = append(operands, left)
		for i, link := range n.Links {
			ops[i] = cmpOp(link.Operator)
			operands = append(operands, e.visitExpr(link.Operand))
		}
		return symbolic.Compare(ops, operands)
	case *ast.Call:
		return e.visitCall(n)
	default:
		// Unsupported expression-level construct: silently Unknown
		// (spec §7 class 3).
		return symbolic.Unknown
	}
}

func (e *Evaluator) visitConstant(c *ast.Constant) symbolic.Value {
	switch c.Kind {
	case ast.ConstNumber:
		return symbolic.RealConst{Value: c.Value}
	case ast.ConstBool:
		return symbolic.BoolConst{Value: c.Bool}
	default:
		return symbolic.Unknown
	}
}
