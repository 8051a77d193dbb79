// Command pathfinder is the CLI entry point for the unreachable-code
// analyzer (spec §6).
package main

import (
	"fmt"
	"os"

	"github.com/nilbranch/pathfinder/cmd/pathfinder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
