// Package config loads the optional .pathfinder.yaml tunables file and
// merges it with the compiled-in defaults and any CLI-flag overrides into
// an evaluator.Policy, in the precedence order spec §6/§9 call for:
// CLI flag > config file > compiled-in default.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/nilbranch/pathfinder/internal/evaluator"
)

// File is the on-disk shape of .pathfinder.yaml. A nil/absent field means
// "not set in this file" and falls through to the next precedence level.
type File struct {
	KnownBuiltins    []string `yaml:"known_builtins"`
	UnknownArgPolicy string   `yaml:"unknown_arg_policy"`
	FirstLineOnly    *bool    `yaml:"first_line_only"`
}

// Load reads and parses path. A missing file is not an error — it returns
// an empty File so Resolve falls back entirely to defaults.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &f, nil
}

// Overrides carries CLI-flag-supplied values. A nil field means the flag
// was not set at the command line and resolution falls through to the
// config file, then the compiled-in default.
type Overrides struct {
	UnknownArgPolicy *string
	FirstLineOnly    *bool
	KnownBuiltins    []string
	// Parallel is CLI-only (--parallel): there is no .pathfinder.yaml
	// field for it, since it tunes evaluation strategy, not analysis
	// semantics.
	Parallel *bool
}

// Resolve builds a Policy from evaluator.DefaultPolicy(), layering file
// on top, then overrides on top of that. KnownBuiltins from file/overrides
// are added to (not substituted for) the compiled-in set: "print", "len",
// and "range" remain resolvable no matter what a project's config lists.
func Resolve(file *File, overrides *Overrides) (*evaluator.Policy, error) {
	p := evaluator.DefaultPolicy()

	if file != nil {
		if file.UnknownArgPolicy != "" {
			pol, err := parseArgPolicy(file.UnknownArgPolicy)
			if err != nil {
				return nil, err
			}
			p.UnknownArgPolicy = pol
		}
		if file.FirstLineOnly != nil {
			p.FirstLineOnly = *file.FirstLineOnly
		}
		addBuiltins(p.KnownBuiltins, file.KnownBuiltins)
	}

	if overrides != nil {
		if overrides.UnknownArgPolicy != nil {
			pol, err := parseArgPolicy(*overrides.UnknownArgPolicy)
			if err != nil {
				return nil, err
			}
			p.UnknownArgPolicy = pol
		}
		if overrides.FirstLineOnly != nil {
			p.FirstLineOnly = *overrides.FirstLineOnly
		}
		if overrides.Parallel != nil {
			p.Parallel = *overrides.Parallel
		}
		addBuiltins(p.KnownBuiltins, overrides.KnownBuiltins)
	}

	return p, nil
}

func parseArgPolicy(s string) (evaluator.UnknownArgPolicy, error) {
	switch s {
	case "literal_none":
		return evaluator.ArgPolicyLiteralNone, nil
	case "any_unbound":
		return evaluator.ArgPolicyAnyUnbound, nil
	default:
		return 0, fmt.Errorf("config: unknown_arg_policy %q must be %q or %q",
			s, "literal_none", "any_unbound")
	}
}

func addBuiltins(set map[string]bool, names []string) {
	for _, n := range names {
		set[n] = true
	}
}
