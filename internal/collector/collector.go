// Package collector implements the shallow, one-pass function collection
// described by spec §3: walk the module's top-level statements once and
// build a name-to-definition map. Nested function definitions are not
// walked into, and a later top-level definition silently replaces an
// earlier one with the same name (no duplicate-declaration error — this
// collector never reports errors, it only builds the lookup table the
// evaluator consults at call time).
package collector

import "github.com/nilbranch/pathfinder/ast"

// Functions maps a top-level function name to its definition.
type Functions map[string]*ast.FunctionDef

// Collect walks module's top-level statements once and returns the
// name-to-definition map a later definition with the same name wins.
func Collect(module *ast.Module) Functions {
	if module == nil {
		return CollectStatements(nil)
	}
	return CollectStatements(module.Statements)
}

// CollectStatements registers every FunctionDef found directly in stmts —
// a module body or a single function's body (spec §4.1). It does not
// recurse into control-flow bodies (If/While/For) or into a FunctionDef's
// own body: nested definitions are collected on demand when their
// enclosing function is entered.
func CollectStatements(stmts []ast.Statement) Functions {
	funcs := make(Functions)
	for _, stmt := range stmts {
		if fn, ok := stmt.(*ast.FunctionDef); ok {
			funcs[fn.Name] = fn
		}
	}
	return funcs
}
