package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.eggybyte.com/jscaffold/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show jscaffold version information",
		Long: `Display version information for the jscaffold CLI.

This command shows:
  • CLI version, git commit hash, and build timestamp
  • Go runtime version`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersionInfo())
		},
	}
}
