package main

import (
	"github.com/spf13/cobra"

	"go.eggybyte.com/jscaffold/internal/ui"
)

// newProjectCmd builds the project command group.
func newProjectCmd(c *cli) *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Create or delete Java projects",
		Long: `Create or delete Java projects in the workspace.

Examples:
  jscaffold project create Demo
  jscaffold project delete Demo --non-interactive`,
	}

	projectCmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty Java project",
		Long: `Create an empty, compilable Java project.

An existing project with the same name is deleted first. The new project has:
  • the Java nature and builder in .project
  • output folder bin
  • one library entry per system library of the default Java runtime
  • source folder src`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectCreate(c, cmd, args[0])
		},
	})

	projectCmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a project and its contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectDelete(c, cmd, args[0])
		},
	})

	return projectCmd
}

func runProjectCreate(c *cli, cmd *cobra.Command, name string) error {
	app, err := c.application(cmd)
	if err != nil {
		return err
	}
	s, err := app.scaffold()
	if err != nil {
		return err
	}

	jp, err := s.CreateProject(cmd.Context(), name)
	if err != nil {
		return err
	}

	project := jp.Project()
	ui.Success("Created Java project %s", project.Name())
	ui.Result(project.Location(), map[string]string{
		"project":  project.Name(),
		"location": project.Location(),
	})
	return nil
}

func runProjectDelete(c *cli, cmd *cobra.Command, name string) error {
	app, err := c.application(cmd)
	if err != nil {
		return err
	}
	s, err := app.scaffold()
	if err != nil {
		return err
	}

	project := s.Workspace().Project(name)
	if !project.Exists() {
		ui.Info("Project %s does not exist", name)
		return nil
	}
	if !ui.Confirm("Delete project %s and all its contents?", name) {
		ui.Warning("Deletion cancelled")
		return nil
	}

	if err := s.DeleteProject(cmd.Context(), project); err != nil {
		return err
	}
	ui.Success("Deleted project %s", name)
	return nil
}
