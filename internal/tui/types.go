package tui

import (
	"net/http"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

// represents the current state of the TUI
type AppState int

const (
	StateWelcome AppState = iota
	StateChat
)

// main TUI application model
type Model struct {
	state   AppState
	mode    string
	width   int
	height  int
	err     error
	welcome *Welcome
	chat    *ChatModel
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent to transition to the chat state
type EnterChatMsg struct{}

// represents a message in the conversation
type MessageModel struct {
	Role     string `json:"role"`
	Content  string `json:"content"`
	Metadata string `json:"metadata,omitempty"`
	Failed   bool   `json:"failed,omitempty"`
}

// question/SQL chat view
type ChatModel struct {
	input              textinput.Model
	viewport           viewport.Model
	width              int
	height             int
	transcript         []MessageModel
	sessionID          string
	isFetching         bool
	spinner            spinner.Model
	glamourRenderer    *glamour.TermRenderer
	ready              bool
	shouldScrollBottom bool
	agentClient        *AgentClient
}

// sent when the server answers a question
type AgentResponseMsg struct {
	question  string
	response  string
	sessionID string
	metadata  string
	failed    bool
}

// sent when the request itself fails (network, 4xx/5xx)
type AgentErrorMsg struct {
	question string
	err      error
}

// welcome screen model
type Welcome struct {
	mode     string
	input    string
	status   string
	commands []Command
	client   *AgentClient
}

// represents an available TUI command
type Command struct {
	Name        string
	Description string
}

// sent when the health check completes
type HealthMsg struct {
	healthy    bool
	indexBuilt bool
	examples   int
}

// manages HTTP requests to the REST API
type AgentClient struct {
	endpoint   string
	httpClient *http.Client
}
