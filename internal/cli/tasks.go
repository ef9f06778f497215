package cli

import (
	"fmt"

	"project-tracker/backend/internal/client"
	"project-tracker/backend/internal/models"
	"project-tracker/backend/internal/services"

	"github.com/spf13/cobra"
)

func newTasksCommand(opts *clientOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Manage the tasks of a project",
	}
	cmd.AddCommand(newTasksListCommand(opts))
	cmd.AddCommand(newTasksCreateCommand(opts))
	cmd.AddCommand(newTasksUpdateCommand(opts))
	cmd.AddCommand(newTasksDeleteCommand(opts))
	return cmd
}

func showTasks(cmd *cobra.Command, c *client.Client, list client.TaskListOptions) error {
	page, err := c.ListTasks(cmd.Context(), list)
	if err != nil {
		if emptyList(cmd, err) {
			return nil
		}
		return err
	}
	printTasks(cmd.OutOrStdout(), page)
	return nil
}

func newTasksListCommand(opts *clientOptions) *cobra.Command {
	var list client.TaskListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's tasks, soonest due first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.authenticated()
			if err != nil {
				return err
			}
			return showTasks(cmd, c, list)
		},
	}
	listFlags(cmd, &list.ListOptions)
	cmd.Flags().StringVar(&list.ProjectID, "project", "", "project id")
	cmd.Flags().StringVar(&list.Status, "status", "", "todo, in-progress or done")
	return cmd
}

func newTasksCreateCommand(opts *clientOptions) *cobra.Command {
	var input services.CreateTaskInput
	var status string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a task to a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := opts.authenticated()
			if err != nil {
				return err
			}
			input.Status = models.TaskStatus(status)
			task, err := c.CreateTask(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", task.ID)
			return showTasks(cmd, c, client.TaskListOptions{ProjectID: task.ProjectID.String()})
		},
	}
	cmd.Flags().StringVar(&input.ProjectID, "project", "", "project id")
	cmd.Flags().StringVar(&input.Title, "title", "", "task title")
	cmd.Flags().StringVar(&input.Description, "description", "", "task description")
	cmd.Flags().StringVar(&status, "status", string(models.TaskStatusTodo), "todo, in-progress or done")
	cmd.Flags().StringVar(&input.DueDate, "due", "", "due date, YYYY-MM-DD")
	return cmd
}

func newTasksUpdateCommand(opts *clientOptions) *cobra.Command {
	var title, description, status, due string
	var clearDue bool
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a task's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.authenticated()
			if err != nil {
				return err
			}

			update := client.TaskUpdate{DueDate: due, ClearDueDate: clearDue}
			if cmd.Flags().Changed("title") {
				update.Title = &title
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("status") {
				s := models.TaskStatus(status)
				update.Status = &s
			}

			task, err := c.UpdateTask(cmd.Context(), args[0], update)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s\n", task.ID)
			return showTasks(cmd, c, client.TaskListOptions{ProjectID: task.ProjectID.String()})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&status, "status", "", "todo, in-progress or done")
	cmd.Flags().StringVar(&due, "due", "", "new due date, YYYY-MM-DD")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "remove the due date")
	cmd.MarkFlagsMutuallyExclusive("due", "clear-due")
	return cmd
}

func newTasksDeleteCommand(opts *clientOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.authenticated()
			if err != nil {
				return err
			}
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Are you sure you want to delete this task?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			if err := c.DeleteTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
