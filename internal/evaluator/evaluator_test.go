package evaluator

import (
	"reflect"
	"testing"

	"github.com/nilbranch/pathfinder/ast"
)

func name(line int, value string) *ast.Identifier {
	return &ast.Identifier{Line: line, Value: value}
}

func num(line int, v float64) *ast.Constant {
	return &ast.Constant{Line: line, Kind: ast.ConstNumber, Value: v}
}

func boolean(line int, v bool) *ast.Constant {
	return &ast.Constant{Line: line, Kind: ast.ConstBool, Bool: v}
}

func call(line int, fn string, args ...ast.Expression) *ast.Call {
	return &ast.Call{Line: line, Callee: &ast.Identifier{Line: line, Value: fn}, Args: args}
}

func cmp(line int, left ast.Expression, op ast.CompareOperator, right ast.Expression) *ast.Compare {
	return &ast.Compare{Line: line, Left: left, Links: []ast.CompareLink{{Operator: op, Operand: right}}}
}

func run(t *testing.T, module *ast.Module) []int {
	t.Helper()
	lines, err := Evaluate(module, DefaultPolicy())
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	return lines
}

// Scenario 1 (spec §8): def f():\n    return 1\n    print("x")\n -> [3]
func TestScenarioDeadLineAfterReturn(t *testing.T) {
	module := &ast.Module{Statements: []ast.Statement{
		&ast.FunctionDef{Line: 1, Name: "f", Body: []ast.Statement{
			&ast.Return{Line: 2, Value: num(2, 1)},
			&ast.ExprStmt{Line: 3, X: call(3, "print", &ast.Constant{Line: 3, Kind: ast.ConstUnsupported, Raw: `"x"`})},
		}},
	}}
	got := run(t, module)
	want := []int{3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// Scenario 2: if x>5: return True elif x>6: return False else: return True -> [5]
func TestScenarioElifInfeasibleBranch(t *testing.T) {
	innerIf := &ast.If{
		Line: 4,
		Test: cmp(4, name(4, "x"), ast.Gt, num(4, 6)),
		Then: []ast.Statement{&ast.Return{Line: 5, Value: boolean(5, false)}},
		Else: []ast.Statement{&ast.Return{Line: 7, Value: boolean(7, true)}},
	}
	outerIf := &ast.If{
		Line: 2,
		Test: cmp(2, name(2, "x"), ast.Gt, num(2, 5)),
		Then: []ast.Statement{&ast.Return{Line: 3, Value: boolean(3, true)}},
		Else: []ast.Statement{innerIf},
	}
	module := &ast.Module{Statements: []ast.Statement{
		&ast.FunctionDef{Line: 1, Name: "f", Params: []string{"x"}, Body: []ast.Statement{outerIf}},
	}}
	got := run(t, module)
	want := []int{5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// Scenario 3: if x>=5: return True elif x<5: return False else: return 0 -> [7]
func TestScenarioElifDeadElseBranch(t *testing.T) {
	innerIf := &ast.If{
		Line: 4,
		Test: cmp(4, name(4, "x"), ast.Lt, num(4, 5)),
		Then: []ast.Statement{&ast.Return{Line: 5, Value: boolean(5, false)}},
		Else: []ast.Statement{&ast.Return{Line: 7, Value: num(7, 0)}},
	}
	outerIf := &ast.If{
		Line: 2,
		Test: cmp(2, name(2, "x"), ast.GtE, num(2, 5)),
		Then: []ast.Statement{&ast.Return{Line: 3, Value: boolean(3, true)}},
		Else: []ast.Statement{innerIf},
	}
	module := &ast.Module{Statements: []ast.Statement{
		&ast.FunctionDef{Line: 1, Name: "f", Params: []string{"x"}, Body: []ast.Statement{outerIf}},
	}}
	got := run(t, module)
	want := []int{7}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// Scenario 4: while False:\n    print("h")\n followed by return 5 -> body's first line unreachable.
func TestScenarioWhileFalseBodyUnreachable(t *testing.T) {
	module := &ast.Module{Statements: []ast.Statement{
		&ast.FunctionDef{Line: 1, Name: "f", Body: []ast.Statement{
			&ast.While{
				Line:    2,
				EndLine: 3,
				Test:    boolean(2, false),
				Body: []ast.Statement{
					&ast.ExprStmt{Line: 3, X: call(3, "print", &ast.Constant{Line: 3, Kind: ast.ConstUnsupported, Raw: `"h"`})},
				},
			},
			&ast.Return{Line: 4, Value: num(4, 5)},
		}},
	}}
	got := run(t, module)
	if len(got) != 1 || got[0] != 3 {
		t.Errorf("got %v, want [3]", got)
	}
}

// Scenario 5: a function calls g(1, 2) where g takes one parameter -> call site flagged.
func TestScenarioCallArityMismatch(t *testing.T) {
	module := &ast.Module{Statements: []ast.Statement{
		&ast.FunctionDef{Line: 1, Name: "g", Params: []string{"a"}, Body: []ast.Statement{
			&ast.Return{Line: 2, Value: name(2, "a")},
		}},
		&ast.FunctionDef{Line: 4, Name: "f", Body: []ast.Statement{
			&ast.ExprStmt{Line: 5, X: call(5, "g", num(5, 1), num(5, 2))},
		}},
	}}
	got := run(t, module)
	if len(got) != 1 || got[0] != 5 {
		t.Errorf("got %v, want [5]", got)
	}
}

// Scenario 6: if x>0: return x else: return 0\n return 6 -> both arms terminate, tail is dead.
func TestScenarioBothArmsTerminateTailDead(t *testing.T) {
	ifStmt := &ast.If{
		Line: 2,
		Test: cmp(2, name(2, "x"), ast.Gt, num(2, 0)),
		Then: []ast.Statement{&ast.Return{Line: 3, Value: name(3, "x")}},
		Else: []ast.Statement{&ast.Return{Line: 4, Value: num(4, 0)}},
	}
	module := &ast.Module{Statements: []ast.Statement{
		&ast.FunctionDef{Line: 1, Name: "f", Params: []string{"x"}, Body: []ast.Statement{
			ifStmt,
			&ast.Return{Line: 5, Value: num(5, 6)},
		}},
	}}
	got := run(t, module)
	if len(got) != 1 || got[0] != 5 {
		t.Errorf("got %v, want [5]", got)
	}
}

func TestUnresolvedCalleeFlaggedUnknown(t *testing.T) {
	module := &ast.Module{Statements: []ast.Statement{
		&ast.FunctionDef{Line: 1, Name: "f", Body: []ast.Statement{
			&ast.ExprStmt{Line: 2, X: call(2, "mystery")},
		}},
	}}
	got := run(t, module)
	if len(got) != 1 || got[0] != 2 {
		t.Errorf("got %v, want [2]", got)
	}
}

func TestKnownBuiltinCallNotFlagged(t *testing.T) {
	module := &ast.Module{Statements: []ast.Statement{
		&ast.FunctionDef{Line: 1, Name: "f", Body: []ast.Statement{
			&ast.ExprStmt{Line: 2, X: call(2, "print", num(2, 1))},
		}},
	}}
	got := run(t, module)
	if len(got) != 0 {
		t.Errorf("got %v, want empty (print is a known builtin)", got)
	}
}

func TestAttributeCallUnresolvedIsNoop(t *testing.T) {
	module := &ast.Module{Statements: []ast.Statement{
		&ast.FunctionDef{Line: 1, Name: "f", Body: []ast.Statement{
			&ast.ExprStmt{Line: 2, X: &ast.Call{
				Line:   2,
				Callee: &ast.AttributeRef{Line: 2, Value: name(2, "obj"), Attr: "mystery"},
			}},
		}},
	}}
	got := run(t, module)
	if len(got) != 0 {
		t.Errorf("got %v, want empty (unresolved attribute calls are a conservative no-op)", got)
	}
}

func TestIdempotence(t *testing.T) {
	module := &ast.Module{Statements: []ast.Statement{
		&ast.FunctionDef{Line: 1, Name: "f", Body: []ast.Statement{
			&ast.Return{Line: 2, Value: num(2, 1)},
			&ast.ExprStmt{Line: 3, X: call(3, "print")},
		}},
	}}
	first := run(t, module)
	second := run(t, module)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("not idempotent: %v vs %v", first, second)
	}
}

// A `while True:` loop with no reachable break leaves the line after the
// loop unreachable (spec §4.7, §8's While invariant).
func TestWhileTrueNoBreakTailUnreachable(t *testing.T) {
	module := &ast.Module{Statements: []ast.Statement{
		&ast.FunctionDef{Line: 1, Name: "f", Body: []ast.Statement{
			&ast.While{
				Line:    2,
				EndLine: 3,
				Test:    boolean(2, true),
				Body: []ast.Statement{
					&ast.ExprStmt{Line: 3, X: call(3, "print")},
				},
			},
			&ast.Return{Line: 4, Value: num(4, 0)},
		}},
	}}
	got := run(t, module)
	if len(got) != 1 || got[0] != 4 {
		t.Errorf("got %v, want [4] (EndLine+1)", got)
	}
}

// The same loop, but with a reachable Break: the tail is not flagged.
func TestWhileTrueWithReachableBreakTailReachable(t *testing.T) {
	module := &ast.Module{Statements: []ast.Statement{
		&ast.FunctionDef{Line: 1, Name: "f", Body: []ast.Statement{
			&ast.While{
				Line:    2,
				EndLine: 3,
				Test:    boolean(2, true),
				Body: []ast.Statement{
					&ast.Break{Line: 3},
				},
			},
			&ast.Return{Line: 4, Value: num(4, 0)},
		}},
	}}
	got := run(t, module)
	if len(got) != 0 {
		t.Errorf("got %v, want empty (break makes the loop escapable)", got)
	}
}

// For with a statically-empty range: the body's first line is unreachable.
func TestForEmptyRangeBodyUnreachable(t *testing.T) {
	module := &ast.Module{Statements: []ast.Statement{
		&ast.FunctionDef{Line: 1, Name: "f", Body: []ast.Statement{
			&ast.For{
				Line:   2,
				Target: "i",
				Iter:   call(2, "range", num(2, 5), num(2, 5)),
				Body: []ast.Statement{
					&ast.ExprStmt{Line: 3, X: call(3, "print")},
				},
			},
		}},
	}}
	got := run(t, module)
	if len(got) != 1 || got[0] != 3 {
		t.Errorf("got %v, want [3] (range(5, 5) is empty)", got)
	}
}

// For with a non-range iterator is skipped with no inference at all.
func TestForNonRangeIteratorSkipped(t *testing.T) {
	module := &ast.Module{Statements: []ast.Statement{
		&ast.FunctionDef{Line: 1, Name: "f", Body: []ast.Statement{
			&ast.For{
				Line:   2,
				Target: "i",
				Iter:   name(2, "items"),
				Body: []ast.Statement{
					&ast.ExprStmt{Line: 3, X: call(3, "print")},
				},
			},
		}},
	}}
	got := run(t, module)
	if len(got) != 0 {
		t.Errorf("got %v, want empty (non-range iterators are skipped)", got)
	}
}

func TestFirstLineOnlyFalseReportsWholeTail(t *testing.T) {
	policy := DefaultPolicy()
	policy.FirstLineOnly = false
	module := &ast.Module{Statements: []ast.Statement{
		&ast.FunctionDef{Line: 1, Name: "f", Body: []ast.Statement{
			&ast.Return{Line: 2, Value: num(2, 1)},
			&ast.ExprStmt{Line: 3, X: call(3, "print")},
			&ast.ExprStmt{Line: 4, X: call(4, "print")},
		}},
	}}
	got, err := Evaluate(module, policy)
	if err != nil {
		t.Fatalf("Evaluate returned error: %v", err)
	}
	want := []int{3, 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
