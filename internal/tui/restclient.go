package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timeout for generate requests; large local models are slow
const agentRequestTimeout = 5 * time.Minute

const defaultEndpoint = "http://localhost:8080"

// creates a new REST client for the given server base URL
func NewAgentClient(endpoint string) *AgentClient {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &AgentClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: agentRequestTimeout,
		},
	}
}

// sends a question to the generate endpoint, continuing sessionID when set
func (c *AgentClient) Generate(ctx context.Context, question, sessionID string) (*AgentResponseMsg, error) {
	payload := agentGenerateRequest{
		Question:  question,
		SessionID: sessionID,
	}

	var result agentGenerateResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/generate", payload, &result); err != nil {
		return nil, err
	}

	return &AgentResponseMsg{
		question:  question,
		response:  result.Response,
		sessionID: result.SessionID,
		metadata:  formatMetadata(result),
		failed:    result.Failed,
	}, nil
}

// returns a tea.Cmd that sends a generate request
func (c *AgentClient) GenerateCmd(question, sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), agentRequestTimeout)
		defer cancel()

		resp, err := c.Generate(ctx, question, sessionID)
		if err != nil {
			return AgentErrorMsg{question: question, err: err}
		}

		return *resp
	}
}

// fetches /health
func (c *AgentClient) Health(ctx context.Context) (*HealthMsg, error) {
	var result healthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &result); err != nil {
		return nil, err
	}

	return &HealthMsg{
		healthy:    result.Status == "healthy",
		indexBuilt: result.IndexBuilt,
		examples:   result.Examples,
	}, nil
}

func (c *AgentClient) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader

	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}

		body = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp apiErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("%s: %s", errResp.Error, errResp.Message)
		}

		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// REST API request/response types

type agentGenerateRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id,omitempty"`
}

type agentGenerateResponse struct {
	Response          string `json:"response"`
	SessionID         string `json:"session_id"`
	ExamplesRetrieved int    `json:"examples_retrieved"`
	Model             string `json:"model"`
	Failed            bool   `json:"failed"`
}

type healthResponse struct {
	Status     string `json:"status"`
	IndexBuilt bool   `json:"index_built"`
	Examples   int    `json:"examples"`
}

type apiErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func formatMetadata(result agentGenerateResponse) string {
	return fmt.Sprintf("retrieved: %d examples | model: %s", result.ExamplesRetrieved, result.Model)
}
