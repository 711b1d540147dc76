package main

import (
	"github.com/spf13/cobra"

	"go.eggybyte.com/jscaffold/internal/ui"
)

func newFormatCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "format <project>",
		Short: "Format the generated jca sources of a project",
		Long: `Format every compilation unit of the project's jca package with the
configured formatter (JSCAFFOLD_FORMATTER, default "google-java-format --replace").

Nothing happens when the package has no units.`,
		Args: cobra.ExactArgs(1),
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
			session, err := app.editorSession()
			if err != nil {
				return err
			}
			defer session.Close()

			if err := s.FormatGeneratedSources(cmd.Context(), jp, session); err != nil {
				return err
			}
			if opened := session.OpenedFiles(); len(opened) > 0 {
				ui.Success("Formatted generated sources of %s", args[0])
			}
			return nil
		},
	}
}
