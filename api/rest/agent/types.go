package agent

// request payload for SQL generation
type GenerateRequest struct {
	Question  string `json:"question" binding:"required"`
	SessionID string `json:"session_id"`
	TopK      int    `json:"top_k" binding:"omitempty,min=1,max=50"`
}

// response payload for SQL generation
type GenerateResponse struct {
	Response          string `json:"response"`
	SessionID         string `json:"session_id"`
	ExamplesRetrieved int    `json:"examples_retrieved"`
	Model             string `json:"model"`
	Failed            bool   `json:"failed"`
}
