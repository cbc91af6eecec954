package examples

// one retrieved example pair
type Result struct {
	Question string  `json:"question"`
	Query    string  `json:"query"`
	Position int     `json:"position"`
	Score    float32 `json:"score"`
}

type SearchResponse struct {
	Query   string   `json:"query"`
	K       int      `json:"k"`
	Results []Result `json:"results"`
}
