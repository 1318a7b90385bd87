// ABOUTME: Task CLI commands
// ABOUTME: Lists tasks by window and updates task status in the session copy
package cli

import (
	"flag"
	"fmt"

	"github.com/harperreed/inscrm/assistant"
	"github.com/harperreed/inscrm/models"
	"github.com/harperreed/inscrm/store"
)

// ListTasksCommand lists tasks.
func ListTasksCommand(s store.Store, args []string) error {
	fs := flag.NewFlagSet("list-tasks", flag.ContinueOnError)
	clientRef := fs.String("client", "", "Client ID or name")
	today := fs.Bool("today", false, "Only tasks due today that are not completed")
	overdue := fs.Bool("overdue", false, "Only open tasks due before today")
	status := fs.String("status", "", "Filter by status")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *today && *overdue {
		return fmt.Errorf("--today and --overdue are mutually exclusive")
	}

	var (
		tasks []models.Task
		err   error
	)
	if *clientRef != "" {
		client, err := resolveClient(s, *clientRef)
		if err != nil {
			return err
		}
		if tasks, err = s.TasksByClient(client.ID); err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
	} else if tasks, err = s.Tasks(); err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	switch {
	case *today:
		tasks = assistant.DueToday(tasks, now())
	case *overdue:
		tasks = assistant.Overdue(tasks, now())
	}

	names, err := clientNames(s)
	if err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tTITLE\tCLIENT\tDUE\tPRIORITY\tSTATUS")
	fmt.Fprintln(w, "--\t-----\t------\t---\t--------\t------")
	shown := 0
	for _, t := range tasks {
		if *status != "" && t.Status != *status {
			continue
		}
		client := "-"
		if t.ClientID != nil {
			client = names[*t.ClientID]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, truncate(t.Title, 40), client, t.DueDate.Format("2006-01-02 15:04"), t.Priority, t.Status)
		shown++
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if shown == 0 {
		printf("No tasks found.\n")
	}
	return nil
}

// UpdateTaskCommand changes a task's status.
func UpdateTaskCommand(s store.Writer, args []string) error {
	fs := flag.NewFlagSet("update-task", flag.ContinueOnError)
	status := fs.String("status", "", "New status (pending, in_progress, completed, cancelled)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("task ID required")
	}
	if *status == "" {
		return fmt.Errorf("--status is required")
	}

	task, err := s.UpdateTaskStatus(fs.Arg(0), *status)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	printf("✓ Task %s is now %s\n", task.ID, task.Status)
	printf("%s\n", localNote)
	return nil
}
