package evaluator

import (
	"github.com/nilbranch/pathfinder/ast"
	"github.com/nilbranch/pathfinder/internal/symbolic"
)

func arithOp(op ast.BinOperator) symbolic.ArithOp {
	switch op {
	case ast.Add:
		return symbolic.OpAdd
	case ast.Sub:
		return symbolic.OpSub
	case ast.Mul:
		return symbolic.OpMul
	case ast.Div:
		return symbolic.OpDiv
	case ast.Pow:
		return symbolic.OpPow
	default:
		return symbolic.OpAdd
	}
}

func cmpOp(op ast.CompareOperator) symbolic.CmpOp {
	switch op {
	case ast.Eq:
		return symbolic.OpEq
	case ast.NEq:
		return symbolic.OpNEq
	case ast.Lt:
		return symbolic.OpLt
	case ast.LtE:
		return symbolic.OpLtE
	case ast.Gt:
		return symbolic.OpGt
	case ast.GtE:
		return symbolic.OpGtE
	default:
		return symbolic.OpEq
	}
}

func logicOp(op ast.BoolOperator) symbolic.LogicOp {
	if op == ast.Or {
		return symbolic.OpOr
	}
	return symbolic.OpAnd
}
