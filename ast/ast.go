// Package ast defines the Abstract Syntax Tree node kinds consumed by the
// path evaluator. Pure data: nodes carry no behavior beyond TokenLiteral/
// String for debugging, and every node physically present in the source
// carries a 1-based Line; compound/branching nodes also carry EndLine.
package ast

import (
	"bytes"
	"fmt"
	"strings"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// TokenLiteral returns a short label for the node kind, for debugging.
	TokenLiteral() string
	// String renders the node back to source-like text, for debugging.
	String() string
	// Pos returns the node's 1-based source line.
	Pos() int
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without producing a value.
type Statement interface {
	Node
	statementNode()
}

// Module is the root node of the AST: the module's top-level statements.
type Module struct {
	Statements []Statement
}

func (m *Module) TokenLiteral() string { return "module" }
func (m *Module) Pos() int             { return 1 }
func (m *Module) String() string {
	var out bytes.Buffer
	for _, s := range m.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Identifier is a bare name reference, used both as an expression (Name)
// and as a target/parameter identifier.
type Identifier struct {
	Line  int
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return "Name" }
func (i *Identifier) Pos() int             { return i.Line }
func (i *Identifier) String() string       { return i.Value }

// ConstantKind distinguishes the three Constant payload shapes spec §3
// names: numeric, boolean, or "unsupported" (anything else, e.g. a string
// or None literal, which folds to Unknown during evaluation).
type ConstantKind int

const (
	ConstNumber ConstantKind = iota
	ConstBool
	ConstUnsupported
)

// Constant is a literal value: a numeric literal, a boolean literal, or an
// unsupported literal (string, None, ...) that carries no usable value.
type Constant struct {
	Line  int
	Kind  ConstantKind
	Value float64 // meaningful only when Kind == ConstNumber
	Bool  bool    // meaningful only when Kind == ConstBool
	Raw   string  // original source text, for String()
}

func (c *Constant) expressionNode()      {}
func (c *Constant) TokenLiteral() string { return "Constant" }
func (c *Constant) Pos() int             { return c.Line }
func (c *Constant) String() string {
	switch c.Kind {
	case ConstNumber:
		return fmt.Sprintf("%g", c.Value)
	case ConstBool:
		if c.Bool {
			return "True"
		}
		return "False"
	default:
		return c.Raw
	}
}

// UnaryOperator enumerates the supported unary operators.
type UnaryOperator int

const (
	Neg UnaryOperator = iota
	Pos
	Not
)

func (op UnaryOperator) String() string {
	switch op {
	case Neg:
		return "-"
	case Pos:
		return "+"
	case Not:
		return "not "
	default:
		return "?"
	}
}

// UnaryOp is a unary operation: -x, +x, not x.
type UnaryOp struct {
	Line     int
	Operator UnaryOperator
	Operand  Expression
}

func (u *UnaryOp) expressionNode()      {}
func (u *UnaryOp) TokenLiteral() string { return "UnaryOp" }
func (u *UnaryOp) Pos() int             { return u.Line }
func (u *UnaryOp) String() string {
	return "(" + u.Operator.String() + u.Operand.String() + ")"
}

// BinOperator enumerates the supported binary arithmetic operators.
type BinOperator int

const (
	Add BinOperator = iota
	Sub
	Mul
	Div
	Pow
)

func (op BinOperator) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Pow:
		return "**"
	default:
		return "?"
	}
}

// BinOp is a binary arithmetic operation.
type BinOp struct {
	Line     int
	Operator BinOperator
	Left     Expression
	Right    Expression
}

func (b *BinOp) expressionNode()      {}
func (b *BinOp) TokenLiteral() string { return "BinOp" }
func (b *BinOp) Pos() int             { return b.Line }
func (b *BinOp) String() string {
	return "(" + b.Left.String() + " " + b.Operator.String() + " " + b.Right.String() + ")"
}

// BoolOperator enumerates the supported logical connectives.
type BoolOperator int

const (
	And BoolOperator = iota
	Or
)

func (op BoolOperator) String() string {
	if op == And {
		return "and"
	}
	return "or"
}

// BoolOp is a logical connective applied to an ordered operand list
// (and/or chains), e.g. `a and b and c`.
type BoolOp struct {
	Line     int
	Operator BoolOperator
	Operands []Expression
}

func (b *BoolOp) expressionNode()      {}
func (b *BoolOp) TokenLiteral() string { return "BoolOp" }
func (b *BoolOp) Pos() int             { return b.Line }
func (b *BoolOp) String() string {
	parts := make([]string, len(b.Operands))
	for i, o := range b.Operands {
		parts[i] = o.String()
	}
	return "(" + strings.Join(parts, " "+b.Operator.String()+" ") + ")"
}

// CompareOperator enumerates the six supported comparisons.
type CompareOperator int

const (
	Eq CompareOperator = iota
	NEq
	Lt
	LtE
	Gt
	GtE
)

func (op CompareOperator) String() string {
	switch op {
	case Eq:
		return "=="
	case NEq:
		return "!="
	case Lt:
		return "<"
	case LtE:
		return "<="
	case Gt:
		return ">"
	case GtE:
		return ">="
	default:
		return "?"
	}
}

// CompareLink is one (operator, operand) pair in a chained comparison,
// e.g. in `a < b <= c` the links are (Lt, b) and (LtE, c).
type CompareLink struct {
	Operator CompareOperator
	Operand  Expression
}

// Compare is a chained comparison: a left operand followed by one or more
// (operator, operand) links, conjoined pairwise per spec §4.4.
type Compare struct {
	Line  int
	Left  Expression
	Links []CompareLink
}

func (c *Compare) expressionNode()      {}
func (c *Compare) TokenLiteral() string { return "Compare" }
func (c *Compare) Pos() int             { return c.Line }
func (c *Compare) String() string {
	var out bytes.Buffer
	out.WriteString(c.Left.String())
	for _, l := range c.Links {
		out.WriteString(" " + l.Operator.String() + " " + l.Operand.String())
	}
	return out.String()
}

// AttributeRef is the `obj.attr` callee form of a Call (spec §4.5's
// "attribute-form calls"); it has no independent value semantics outside
// of being a Call's callee.
type AttributeRef struct {
	Line  int
	Value Expression
	Attr  string
}

func (a *AttributeRef) expressionNode()      {}
func (a *AttributeRef) TokenLiteral() string { return "Attribute" }
func (a *AttributeRef) Pos() int             { return a.Line }
func (a *AttributeRef) String() string       { return a.Value.String() + "." + a.Attr }

// Call is a function or attribute-method call site.
type Call struct {
	Line     int
	Callee   Expression // *Identifier (bare name) or *AttributeRef (obj.method)
	Args     []Expression
}

func (c *Call) expressionNode()      {}
func (c *Call) TokenLiteral() string { return "Call" }
func (c *Call) Pos() int             { return c.Line }
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// CalleeName returns the bare identifier a Call resolves against the
// scope stack by, whether the callee is a plain Name or an attribute's
// trailing member name, plus whether it was attribute-form.
func (c *Call) CalleeName() (name string, isAttribute bool) {
	switch callee := c.Callee.(type) {
	case *Identifier:
		return callee.Value, false
	case *AttributeRef:
		return callee.Attr, true
	default:
		return "", false
	}
}
