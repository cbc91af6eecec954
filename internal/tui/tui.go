package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// mode is shown on the welcome screen; endpoint is the server base URL
func NewApp(mode, endpoint string) *Model {
	client := NewAgentClient(endpoint)

	return &Model{
		state:   StateWelcome,
		mode:    mode,
		welcome: NewWelcome(mode, client),
		chat:    NewChat(client),
	}
}

func (m *Model) Init() tea.Cmd {
	return checkHealth(m.welcome.client)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// ctrl+c in chat goes back to the welcome screen
			if m.state == StateChat {
				m.state = StateWelcome
				return m, nil
			}

			return m, tea.Quit
		}

		// any key dismisses an error
		if m.err != nil {
			m.err = nil
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	case ErrorMsg:
		m.err = msg.err
		return m, nil

	case EnterChatMsg:
		m.state = StateChat
		if m.width > 0 {
			m.chat.resize(m.width, m.height)
		}

		return m, m.chat.Init()

	case AgentResponseMsg, AgentErrorMsg:
		// answers arrive even if the user left the chat meanwhile
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}

	switch m.state {
	case StateWelcome:
		var cmd tea.Cmd
		m.welcome, cmd = m.welcome.Update(msg)
		return m, cmd

	case StateChat:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	default:
		return m, nil
	}
}

func (m *Model) View() string {
	if m.err != nil {
		return errorView(m.err)
	}

	switch m.state {
	case StateWelcome:
		return m.welcome.View()

	case StateChat:
		return m.chat.View()

	default:
		return "Unknown state"
	}
}

func errorView(err error) string {
	return fmt.Sprintf("\n  Error: %v\n\n  Press any key to continue, Ctrl+C to exit\n", err)
}
