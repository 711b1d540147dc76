package main

import (
	"time"

	"github.com/spf13/cobra"

	"go.eggybyte.com/jscaffold/internal/scaffold"
	"go.eggybyte.com/jscaffold/internal/ui"
)

func newLiteralCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "literal <type>",
		Short: "Print the default literal of a primitive type",
		Long: `Print the Java literal of a primitive type's default value.

Supported types: byte, short, int, long, float, double, boolean.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.application(cmd)
			if err != nil {
				return err
			}

			start := time.Now()
			literal, err := scaffold.DefaultValueLiteral(args[0])
			app.observe(cmd.Context(), "default_value_literal", start, err)
			if err != nil {
				return err
			}
			ui.Result(literal, map[string]string{"type": args[0], "literal": literal})
			return nil
		},
	}
}

func newSimpleNameCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "simple-name <qualified-name>",
		Short: "Print the last segment of a dotted name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.application(cmd)
			if err != nil {
				return err
			}

			start := time.Now()
			name := scaffold.SimpleName(args[0])
			app.observe(cmd.Context(), "simple_name", start, nil)
			ui.Result(name, map[string]string{"qualified": args[0], "simple": name})
			return nil
		},
	}
}
