package main

import (
	"github.com/spf13/cobra"

	"go.eggybyte.com/jscaffold/internal/ui"
)

func newClassCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "class <project> <package> <class>",
		Short: "Generate an empty public class",
		Long: `Generate an empty public class in a package of the project's src folder.

The package is created when missing. An existing class is never overwritten.

Example:
  jscaffold class Demo jca Output`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := c.application(cmd)
			if err != nil {
				return err
			}
			s, err := app.scaffold()
			if err != nil {
				return err
			}

			jp, err := s.JavaProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			file, err := s.GenerateClass(cmd.Context(), jp, args[1], args[2])
			if err != nil {
				return err
			}

			ui.Success("Generated %s", file.FullPath())
			ui.Result(file.Location(), map[string]string{
				"project":  args[0],
				"package":  args[1],
				"class":    args[2],
				"path":     file.FullPath(),
				"location": file.Location(),
			})
			return nil
		},
	}
}
