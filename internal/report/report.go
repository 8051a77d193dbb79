// Package report renders an analysis result the three ways the CLI can
// present it (spec §6): the plain-English summary line, structured JSON
// for scripting (--json), and a gjson query against that JSON (--query).
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Message renders lines (already sorted, ascending) as spec §6's exact
// plain-text summary.
func Message(lines []int) string {
	switch len(lines) {
	case 0:
		return "No unreachable paths found."
	case 1:
		return fmt.Sprintf("Unreachable path found at line %d.", lines[0])
	default:
		parts := make([]string, len(lines))
		for i, l := range lines {
			parts[i] = strconv.Itoa(l)
		}
		return fmt.Sprintf("Unreachable paths found at lines %s.", strings.Join(parts, ", "))
	}
}

// JSON builds the structured `{"file":, "unreachable":[...]}` result for
// one analyzed file and pretty-prints it for terminal display.
func JSON(file string, lines []int) (string, error) {
	doc := "{}"
	doc, err := sjson.Set(doc, "file", file)
	if err != nil {
		return "", fmt.Errorf("report: building json: %w", err)
	}
	doc, err = sjson.Set(doc, "unreachable", lines)
	if err != nil {
		return "", fmt.Errorf("report: building json: %w", err)
	}
	return string(pretty.Pretty([]byte(doc))), nil
}

// Query runs a gjson path expression against doc and returns the match's
// string form (a JSON string comes back unquoted), or an error if the
// path matches nothing.
func Query(doc, path string) (string, error) {
	res := gjson.Get(doc, path)
	if !res.Exists() {
		return "", fmt.Errorf("report: query %q matched nothing", path)
	}
	return res.String(), nil
}

// Batch wraps JSON for batch mode (multiple files analyzed in one
// invocation): `{"results":[{"file":...,"unreachable":[...]}, ...]}`.
func Batch(files []string, allLines [][]int) (string, error) {
	doc := "{}"
	for i, f := range files {
		prefix := fmt.Sprintf("results.%d", i)
		var err error
		doc, err = sjson.Set(doc, prefix+".file", f)
		if err != nil {
			return "", fmt.Errorf("report: building batch json: %w", err)
		}
		doc, err = sjson.Set(doc, prefix+".unreachable", allLines[i])
		if err != nil {
			return "", fmt.Errorf("report: building batch json: %w", err)
		}
	}
	return string(pretty.Pretty([]byte(doc))), nil
}
