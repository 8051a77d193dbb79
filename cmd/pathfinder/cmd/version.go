package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print pathfinder's version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pathfinder version %s\nCommit: %s\nBuilt:  %s\n", Version, GitCommit, BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
