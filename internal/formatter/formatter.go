// Package formatter lays generated SQL out for display.
package formatter

import (
	"regexp"
	"strings"
)

const (
	answerLabel   = "SQL Query:"
	summaryPhrase = "This SQL code will return"
)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	punctuationRe = regexp.MustCompile(`([.,!?])(\S)`)

	// multi-word keywords come first so they win over JOIN
	keywordRe = regexp.MustCompile(`(?i)\s*\b(INNER\s+JOIN|LEFT\s+JOIN|RIGHT\s+JOIN|GROUP\s+BY|ORDER\s+BY|SELECT|FROM|WHERE|HAVING|JOIN)\b`)

	inListRe        = regexp.MustCompile(`(?i)\bIN\s*\(\s*([^()]*?)\s*\)`)
	summaryRe       = regexp.MustCompile(`(?:--\s*)?` + summaryPhrase)
	trailingSpaceRe = regexp.MustCompile(`(?m)[ \t]+$`)
)

// Format normalises model output into readable SQL. It never fails and
// Format(Format(s)) == Format(s).
func Format(text string) string {
	text = removeLabel(text)

	text = whitespaceRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	text = spaceAfterPunctuation(text)

	// the summary split can expose a keyword boundary, so it runs before the keyword pass
	text = summaryRe.ReplaceAllString(text, "\n-- "+summaryPhrase)

	text = keywordRe.ReplaceAllStringFunc(text, func(m string) string {
		keyword := whitespaceRe.ReplaceAllString(strings.TrimSpace(m), " ")
		return "\n" + strings.ToUpper(keyword)
	})

	text = inListRe.ReplaceAllStringFunc(text, formatInList)

	text = trailingSpaceRe.ReplaceAllString(text, "")

	return strings.TrimSpace(text)
}

// matches never overlap, so runs like ",," need another pass
func spaceAfterPunctuation(text string) string {
	for {
		next := punctuationRe.ReplaceAllString(text, "$1 $2")
		if next == text {
			return text
		}

		text = next
	}
}

// strips the "SQL Query:" label models like to echo back.
// removal runs first so the whitespace it leaves behind is collapsed with the rest.
func removeLabel(text string) string {
	for strings.Contains(text, answerLabel) {
		text = strings.ReplaceAll(text, answerLabel, "")
	}

	return text
}

// puts each element of an IN (...) list on its own indented line
func formatInList(m string) string {
	inner := inListRe.FindStringSubmatch(m)[1]
	if inner == "" {
		return "IN ()"
	}

	items := strings.Split(inner, ", ")
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
	}

	return "IN (\n  " + strings.Join(items, ",\n  ") + "\n)"
}
