package sessions

import (
	"sync"

	"codeberg.org/nomoresql/server/internal/llm"
)

// append-only conversation transcript, safe for concurrent use
type History struct {
	mu       sync.Mutex
	messages []llm.Message
}

func NewHistory() *History {
	return &History{}
}

func (h *History) Append(role, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.messages = append(h.messages, llm.Message{Role: role, Content: content})
}

// returns a copy of the transcript, oldest first
func (h *History) Messages() []llm.Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]llm.Message, len(h.messages))
	copy(out, h.messages)

	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.messages)
}
