package sessions

import (
	"time"

	"codeberg.org/nomoresql/server/internal/llm"
)

// a session's conversation transcript
type SessionResponse struct {
	ID        string        `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Messages  []llm.Message `json:"messages"`
}
