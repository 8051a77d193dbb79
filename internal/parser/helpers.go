package parser

import (
	"strconv"

	"github.com/nilbranch/pathfinder/ast"
	"github.com/nilbranch/pathfinder/internal/lexer"
)

func parseFloat(lit string) (float64, error) {
	return strconv.ParseFloat(lit, 64)
}

func binOperator(t lexer.TokenType) ast.BinOperator {
	switch t {
	case lexer.PLUS:
		return ast.Add
	case lexer.MINUS:
		return ast.Sub
	case lexer.STAR:
		return ast.Mul
	case lexer.SLASH:
		return ast.Div
	case lexer.DOUBLESTAR:
		return ast.Pow
	default:
		return ast.Add
	}
}

func compareOperator(t lexer.TokenType) ast.CompareOperator {
	switch t {
	case lexer.EQ:
		return ast.Eq
	case lexer.NEQ:
		return ast.NEq
	case lexer.LT:
		return ast.Lt
	case lexer.LTE:
		return ast.LtE
	case lexer.GT:
		return ast.Gt
	case lexer.GTE:
		return ast.GtE
	default:
		return ast.Eq
	}
}

func boolOperator(t lexer.TokenType) ast.BoolOperator {
	if t == lexer.OR {
		return ast.Or
	}
	return ast.And
}

// augOperator maps a `+=`-family token to the BinOperator its read-modify-
// write desugars to.
func augOperator(t lexer.TokenType) ast.BinOperator {
	switch t {
	case lexer.PLUSEQ:
		return ast.Add
	case lexer.MINUSEQ:
		return ast.Sub
	case lexer.STAREQ:
		return ast.Mul
	case lexer.SLASHEQ:
		return ast.Div
	default:
		return ast.Add
	}
}
