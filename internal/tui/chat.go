package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	headerHeight = 2
	inputHeight  = 3
	statusHeight = 1
)

// returns a new chat view talking to client
func NewChat(client *AgentClient) *ChatModel {
	ti := textinput.New()
	ti.Placeholder = "ask a question about your data..."
	ti.Focus()
	ti.CharLimit = 0
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.TextStyle = inputStyle

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(infoStyle))

	return &ChatModel{
		input:       ti,
		spinner:     sp,
		agentClient: client,
	}
}

func (m *ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ChatModel) Update(msg tea.Msg) (*ChatModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m.submit()

		case "ctrl+l":
			m.input.SetValue("")
			m.transcript = nil
			m.sessionID = ""
			m.refreshViewport()
			return m, nil

		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case AgentResponseMsg:
		m.isFetching = false
		m.sessionID = msg.sessionID
		m.transcript = append(m.transcript, MessageModel{
			Role:     "assistant",
			Content:  msg.response,
			Metadata: msg.metadata,
			Failed:   msg.failed,
		})
		m.shouldScrollBottom = true
		m.refreshViewport()
		m.input.Focus()

		return m, nil

	case AgentErrorMsg:
		m.isFetching = false
		m.transcript = append(m.transcript, MessageModel{
			Role:    "error",
			Content: msg.err.Error(),
			Failed:  true,
		})
		m.shouldScrollBottom = true
		m.refreshViewport()
		m.input.Focus()

		return m, nil

	case spinner.TickMsg:
		if !m.isFetching {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *ChatModel) submit() (*ChatModel, tea.Cmd) {
	question := strings.TrimSpace(m.input.Value())
	if question == "" || m.isFetching {
		return m, nil
	}

	m.input.SetValue("")
	m.isFetching = true
	m.transcript = append(m.transcript, MessageModel{Role: "user", Content: question})
	m.shouldScrollBottom = true
	m.refreshViewport()

	return m, tea.Batch(m.agentClient.GenerateCmd(question, m.sessionID), m.spinner.Tick)
}

func (m *ChatModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(10, width-10)

	vpHeight := max(3, height-headerHeight-inputHeight-statusHeight-2)

	if !m.ready {
		m.viewport = viewport.New(max(10, width-4), vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = max(10, width-4)
		m.viewport.Height = vpHeight
	}

	m.glamourRenderer = newRenderer(max(10, width-8))
	m.refreshViewport()
}

func (m *ChatModel) refreshViewport() {
	if !m.ready {
		return
	}

	m.viewport.SetContent(m.renderTranscript())

	if m.shouldScrollBottom {
		m.viewport.GotoBottom()
		m.shouldScrollBottom = false
	}
}

func (m *ChatModel) renderTranscript() string {
	if len(m.transcript) == 0 {
		return infoStyle.Render("ready! type a question and press enter to get a SQL query.")
	}

	var b strings.Builder

	for _, msg := range m.transcript {
		switch msg.Role {
		case "user":
			b.WriteString(userStyle.Render("you: " + msg.Content))
		case "error":
			b.WriteString(errorStyle.Render("error: " + msg.Content))
		default:
			if msg.Failed {
				b.WriteString(errorStyle.Render(msg.Content))
			} else {
				b.WriteString(renderSQL(m.glamourRenderer, msg.Content))
			}

			if msg.Metadata != "" {
				b.WriteString("\n")
				b.WriteString(infoStyle.Render(msg.Metadata))
			}
		}

		b.WriteString("\n\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m *ChatModel) View() string {
	if !m.ready {
		return "\n  loading..."
	}

	var b strings.Builder

	header := headerStyle.Render("NOMORESQL")
	help := helpStyle.Render("[Enter: Ask] [Ctrl+L: New session] [PgUp/PgDn: Scroll] [Ctrl+C: Back]")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left,
		header,
		strings.Repeat(" ", max(0, m.width-lipgloss.Width(header)-lipgloss.Width(help)-2)),
		help,
	))
	b.WriteString("\n\n")

	b.WriteString(borderStyle.Width(max(10, m.width-4)).Render(m.viewport.View()))
	b.WriteString("\n")

	b.WriteString(borderStyle.Width(max(10, m.width-4)).Padding(0, 1).Render(m.input.View()))
	b.WriteString("\n")

	if m.isFetching {
		b.WriteString(m.spinner.View() + infoStyle.Render(" generating query..."))
	} else if m.sessionID != "" {
		b.WriteString(infoStyle.Render("session: " + m.sessionID))
	}

	return b.String()
}
