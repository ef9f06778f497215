package cli

import (
	"fmt"

	"project-tracker/backend/internal/client"
	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/services"

	"github.com/spf13/cobra"
)

func newProjectsCommand(opts *clientOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage your projects",
	}
	cmd.AddCommand(newProjectsListCommand(opts))
	cmd.AddCommand(newProjectsCreateCommand(opts))
	cmd.AddCommand(newProjectsUpdateCommand(opts))
	cmd.AddCommand(newProjectsDeleteCommand(opts))
	return cmd
}

func listFlags(cmd *cobra.Command, list *client.ListOptions) {
	cmd.Flags().IntVar(&list.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&list.Limit, "limit", 10, "entries per page")
	cmd.Flags().StringVar(&list.Search, "search", "", "only titles containing this text")
}

func showProjects(cmd *cobra.Command, c *client.Client, list client.ListOptions) error {
	page, err := c.ListProjects(cmd.Context(), list)
	if err != nil {
		if emptyList(cmd, err) {
			return nil
		}
		return err
	}
	printProjects(cmd.OutOrStdout(), page)
	return nil
}

func newProjectsListCommand(opts *clientOptions) *cobra.Command {
	var list client.ListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.authenticated()
			if err != nil {
				return err
			}
			return showProjects(cmd, c, list)
		},
	}
	listFlags(cmd, &list)
	return cmd
}

func newProjectsCreateCommand(opts *clientOptions) *cobra.Command {
	var input services.CreateProjectInput
	var status string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.authenticated()
			if err != nil {
				return err
			}
			input.Status = models.ProjectStatus(status)
			project, err := c.CreateProject(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s\n", project.ID)
			return showProjects(cmd, c, client.ListOptions{})
		},
	}
	cmd.Flags().StringVar(&input.Title, "title", "", "project title")
	cmd.Flags().StringVar(&input.Description, "description", "", "project description")
	cmd.Flags().StringVar(&status, "status", string(models.ProjectStatusActive), "active or completed")
	return cmd
}

func newProjectsUpdateCommand(opts *clientOptions) *cobra.Command {
	var title, description, status string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a project's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.authenticated()
			if err != nil {
				return err
			}

			var update client.ProjectUpdate
			if cmd.Flags().Changed("title") {
				update.Title = &title
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("status") {
				s := models.ProjectStatus(status)
				update.Status = &s
			}

			project, err := c.UpdateProject(cmd.Context(), args[0], update)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", project.ID)
			return showProjects(cmd, c, client.ListOptions{})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&status, "status", "", "active or completed")
	return cmd
}

func newProjectsDeleteCommand(opts *clientOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.authenticated()
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Are you sure you want to delete this project?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			if err := c.DeleteProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
