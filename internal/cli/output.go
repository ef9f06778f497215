package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"project-tracker/backend/internal/services"
)

func printProjects(w io.Writer, page *services.ProjectPage) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tDESCRIPTION")
	for _, p := range page.Projects {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Status, p.Description)
	}
	tw.Flush()
	fmt.Fprintf(w, "Page %d, %d of %d projects\n", page.Page, len(page.Projects), page.Total)
}

func printTasks(w io.Writer, page *services.TaskPage) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tDUE\tDESCRIPTION")
	for _, t := range page.Tasks {
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, due, t.Description)
	}
	tw.Flush()
	fmt.Fprintf(w, "Page %d, %d of %d tasks\n", page.Page, len(page.Tasks), page.Total)
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
