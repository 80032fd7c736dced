// Package output provides formatters for task listings.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"taskdeck/internal/service"
)

const (
	// ListHeading titles the task list.
	ListHeading = "List of Tasks"

	// EmptyMessage replaces the list when there is nothing to show.
	EmptyMessage = "No tasks to display"

	// TimeLayout renders creation timestamps.
	TimeLayout = "2006-01-02 15:04:05"
)

// CountSummary returns "Showing N task" or "Showing N tasks".
func CountSummary(n int) string {
	noun := "tasks"
	if n == 1 {
		noun = "task"
	}
	return fmt.Sprintf("Showing %d %s", n, noun)
}

// Created renders the creation line of a task in loc.
func Created(task service.Task, loc *time.Location) string {
	if task.CreatedAt.IsZero() {
		return "Created: unknown"
	}
	return "Created: " + task.CreatedAt.In(loc).Format(TimeLayout)
}

// FormatList writes the heading and either the placeholder or the count
// summary followed by one block per task, in collection order.
func FormatList(w io.Writer, tasks []service.Task, loc *time.Location) {
	fmt.Fprintln(w, ListHeading)
	if len(tasks) == 0 {
		fmt.Fprintln(w, EmptyMessage)
		return
	}
	fmt.Fprintln(w, CountSummary(len(tasks)))
	for i, task := range tasks {
		fmt.Fprintln(w)
		FormatTask(w, i+1, task, loc)
	}
}

// FormatTask formats one task block.
// Format: "{N:>4}  {TITLE}  [{ID}]" then the description and creation
// lines indented by six spaces.
func FormatTask(w io.Writer, num int, task service.Task, loc *time.Location) {
	fmt.Fprintf(w, "%4d  %s  [%s]\n", num, NormalizeTitle(task.Title), task.ID)
	for _, line := range strings.Split(normalizeDescription(task.Description), "\n") {
		fmt.Fprintf(w, "      %s\n", line)
	}
	fmt.Fprintf(w, "      %s\n", Created(task, loc))
}

// FormatCreated writes the confirmation for a newly created task.
func FormatCreated(w io.Writer, task service.Task, loc *time.Location) {
	fmt.Fprintf(w, "created %s\n", task.ID)
	FormatTask(w, 1, task, loc)
}

// NormalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func normalizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, "\r\n", "\n")
	desc = strings.TrimRight(desc, "\n")
	if strings.TrimSpace(desc) == "" {
		return "(no description)"
	}
	return desc
}
