package llm

import (
	"iter"
	"strings"
)

// drains a fragment sequence into one string.
// returns the text gathered so far together with the first error.
func Collect(seq iter.Seq2[string, error]) (string, error) {
	var sb strings.Builder

	for fragment, err := range seq {
		if err != nil {
			return sb.String(), err
		}

		sb.WriteString(fragment)
	}

	return sb.String(), nil
}
