package examples

import "strings"

// ordered, read-only collection of example pairs.
// a pair is identified by its position.
type Store struct {
	questions []string
	queries   []string
	skipped   int
}

// builds a store from pairs, dropping any with a blank question or query
func NewStore(pairs []Pair) *Store {
	s := &Store{
		questions: make([]string, 0, len(pairs)),
		queries:   make([]string, 0, len(pairs)),
	}

	for _, p := range pairs {
		question := strings.TrimSpace(p.Question)
		query := strings.TrimSpace(p.Query)

		if question == "" || query == "" {
			s.skipped++
			continue
		}

		s.questions = append(s.questions, question)
		s.queries = append(s.queries, query)
	}

	return s
}

// an empty store, used when loading fails in lenient mode
func Empty() *Store {
	return &Store{}
}

func (s *Store) Len() int {
	return len(s.questions)
}

// number of source rows dropped for blank fields
func (s *Store) Skipped() int {
	return s.skipped
}

func (s *Store) Pair(i int) Pair {
	return Pair{Question: s.questions[i], Query: s.queries[i]}
}

// copies, so callers cannot mutate the store
func (s *Store) Questions() []string {
	return append([]string(nil), s.questions...)
}

func (s *Store) Queries() []string {
	return append([]string(nil), s.queries...)
}

func (s *Store) Pairs() []Pair {
	pairs := make([]Pair, s.Len())
	for i := range pairs {
		pairs[i] = s.Pair(i)
	}

	return pairs
}
