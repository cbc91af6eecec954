package agent

import "strings"

// fence info strings models put on SQL blocks
var sqlFenceTags = map[string]bool{
	"sql":        true,
	"postgres":   true,
	"postgresql": true,
	"psql":       true,
	"mysql":      true,
	"sqlite":     true,
	"tsql":       true,
	"plsql":      true,
}

// unwraps a ```sql fenced block; anything else is returned trimmed
func stripMarkdownSQL(value string) string {
	trimmed := strings.TrimSpace(value)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if end := strings.LastIndex(trimmed, "```"); end >= 0 {
		trimmed = trimmed[:end]
	}

	// the first word is only a language tag when it is a known one
	first, rest, _ := strings.Cut(strings.TrimLeft(trimmed, " \t"), "\n")
	if tag, body, found := strings.Cut(first, " "); found && sqlFenceTags[strings.ToLower(tag)] {
		trimmed = body + "\n" + rest
	} else if sqlFenceTags[strings.ToLower(strings.TrimSpace(first))] {
		trimmed = rest
	}

	return strings.TrimSpace(trimmed)
}
