// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"tasksync/internal/service"
)

// Output formats accepted by `list --format`.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// descriptionIndent lines the description up under the title.
const descriptionIndent = "      "

// FormatTask formats a task line, followed by its description when present.
// Format: "{N:>4}  {TITLE}\n" then "      {DESCRIPTION}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s\n", num, normalizeTitle(task.Title))
	if desc := singleLine(task.Description); strings.TrimSpace(desc) != "" {
		fmt.Fprintf(w, "%s%s\n", descriptionIndent, desc)
	}
}

// FormatTasks writes tasks in the named format.
func FormatTasks(w io.Writer, format string, tasks []service.Task) error {
	switch format {
	case FormatText, "":
		for i, task := range tasks {
			FormatTask(w, i+1, task)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(nonNil(tasks))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(nonNil(tasks)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("invalid format: %s", format)
	}
}

// ValidFormat reports whether format is accepted by FormatTasks.
func ValidFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// nonNil keeps an empty collection rendering as [] rather than null.
func nonNil(tasks []service.Task) []service.Task {
	if tasks == nil {
		return []service.Task{}
	}
	return tasks
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = singleLine(title)
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
