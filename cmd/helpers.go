package cmd

import (
	"fmt"
	"os"

	"github.com/inovacc/shelfr/internal/model"
)

// promptConfirm asks the user for confirmation and returns true if they confirm
// prompt should include the question (e.g., "Delete 3 books? [y/N]: ")
func promptConfirm(prompt string) bool {
	_, _ = fmt.Fprint(os.Stdout, prompt)

	var response string

	_, _ = fmt.Scanln(&response)

	return response == "y" || response == "Y"
}

// truncateString truncates a string to the specified length with ellipsis
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}

// printEmptyResult prints a "no results" message with a create hint
func printEmptyResult(plural, createCmd string) {
	_, _ = fmt.Fprintf(os.Stdout, "No %s found.\n", plural)
	_, _ = fmt.Fprintf(os.Stdout, "Create one with: %s\n", createCmd)
}

const rowColumnWidth = 28

// printRows prints one page of records as a fixed-width table: an ID
// column plus one column per schema field.
func printRows[E model.Entity](schema model.Schema[E], rows []E) {
	_, _ = fmt.Fprintf(os.Stdout, "%-38s", "ID")

	for _, field := range schema.Fields {
		_, _ = fmt.Fprintf(os.Stdout, "%-*s", rowColumnWidth, field.Label)
	}

	_, _ = fmt.Fprintln(os.Stdout)

	for _, row := range rows {
		values := schema.Values(row)

		_, _ = fmt.Fprintf(os.Stdout, "%-38s", row.EntityID())

		for _, field := range schema.Fields {
			_, _ = fmt.Fprintf(os.Stdout, "%-*s", rowColumnWidth, truncateString(values[field.Name], rowColumnWidth-2))
		}

		_, _ = fmt.Fprintln(os.Stdout)
	}
}

// printRecord prints one record as label: value lines.
func printRecord[E model.Entity](schema model.Schema[E], record E) {
	_, _ = fmt.Fprintf(os.Stdout, "ID: %s\n", record.EntityID())

	values := schema.Values(record)
	for _, field := range schema.Fields {
		_, _ = fmt.Fprintf(os.Stdout, "%s: %s\n", field.Label, values[field.Name])
	}
}
