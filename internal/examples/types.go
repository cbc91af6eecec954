package examples

import "errors"

// returned (wrapped) when a data source lacks the configured columns
var ErrSchema = errors.New("examples schema mismatch")

// a natural-language question and the SQL that answers it
type Pair struct {
	Question string `json:"question"`
	Query    string `json:"query"`
}

// names the source columns holding questions and queries
type Schema struct {
	QuestionColumn string
	QueryColumn    string
}

// column names used by the reference prompt/completion datasets
var DefaultSchema = Schema{
	QuestionColumn: "prompt",
	QueryColumn:    "completion",
}

// fills blank column names from DefaultSchema
func (s Schema) withDefaults() Schema {
	if s.QuestionColumn == "" {
		s.QuestionColumn = DefaultSchema.QuestionColumn
	}

	if s.QueryColumn == "" {
		s.QueryColumn = DefaultSchema.QueryColumn
	}

	return s
}
