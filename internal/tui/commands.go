package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const healthTimeout = 5 * time.Second

// checks the server and reports whether the similarity index is ready
func checkHealth(client *AgentClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()

		health, err := client.Health(ctx)
		if err != nil {
			return ErrorMsg{err: fmt.Errorf("server not reachable at %s: %w", client.endpoint, err)}
		}

		return *health
	}
}
