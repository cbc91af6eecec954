package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// nil when the renderer cannot be built; callers fall back to plain text
func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}

	return r
}

// renders a SQL answer as a highlighted code block
func renderSQL(r *glamour.TermRenderer, sql string) string {
	if r == nil {
		return sql
	}

	out, err := r.Render("```sql\n" + sql + "\n```")
	if err != nil {
		return sql
	}

	return strings.Trim(out, "\n")
}
