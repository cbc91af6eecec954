package retriever

import (
	"fmt"
	"strings"

	"codeberg.org/nomoresql/server/internal/examples"
	"codeberg.org/nomoresql/server/internal/index"
)

// keeps hits that point at a question (position < N), in rank order
func resultsFromHits(hits []index.Hit, questions, queries []string) []Result {
	n := len(questions)
	results := make([]Result, 0, len(hits))

	for _, hit := range hits {
		if hit.Position < 0 || hit.Position >= n {
			continue
		}

		results = append(results, Result{
			Pair: examples.Pair{
				Question: questions[hit.Position],
				Query:    queries[hit.Position],
			},
			Position: hit.Position,
			Score:    hit.Score,
		})
	}

	return results
}

// renders results as the examples block of the prompt
func FormatContext(results []Result) string {
	blocks := make([]string, 0, len(results))

	for _, r := range results {
		blocks = append(blocks, fmt.Sprintf("**Question:** %s\n**SQL Query:** %s\n**Distance:** %.4f\n", r.Question, r.Query, r.Score))
	}

	return strings.Join(blocks, "\n")
}
