// Package gemini is a raw HTTP client for the generativelanguage REST
// API: chat generation plus the Files API with its resumable upload
// protocol. The API key travels as a query parameter on every call.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"gemchat/internal/logging"
)

// DefaultBaseURL is the production endpoint, versioned path included.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-1.5-flash"

// Config holds client settings. Timeouts bound individual calls; the
// poll settings drive the processing wait loop.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string

	// ChatTimeout bounds generateContent and session-start calls.
	ChatTimeout time.Duration
	// StatusTimeout bounds file status and delete calls.
	StatusTimeout time.Duration
	// UploadTimeout bounds the content transfer.
	UploadTimeout time.Duration
	// PollInterval is the fixed sleep between processing polls.
	PollInterval time.Duration
	// PollCeiling is the wall-clock budget for the processing wait.
	PollCeiling time.Duration
}

// DefaultConfig returns production settings for the given key.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:        apiKey,
		BaseURL:       DefaultBaseURL,
		Model:         DefaultModel,
		ChatTimeout:   30 * time.Second,
		StatusTimeout: 10 * time.Second,
		UploadTimeout: 300 * time.Second,
		PollInterval:  2 * time.Second,
		PollCeiling:   300 * time.Second,
	}
}

// Client talks to the remote API. Safe for sequential use; the chat
// shell never issues overlapping calls.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a client, filling zero config fields with defaults.
func NewClient(cfg Config) *Client {
	def := DefaultConfig(cfg.APIKey)
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = def.Model
	}
	if cfg.ChatTimeout <= 0 {
		cfg.ChatTimeout = def.ChatTimeout
	}
	if cfg.StatusTimeout <= 0 {
		cfg.StatusTimeout = def.StatusTimeout
	}
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = def.UploadTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.PollCeiling <= 0 {
		cfg.PollCeiling = def.PollCeiling
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.cfg.Model }

// GenerateContent sends the full conversation to the model and returns
// the first candidate's text. The contents slice is used verbatim as
// the request payload.
func (c *Client) GenerateContent(ctx context.Context, contents []Content) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("API key not configured")
	}

	// Apply the chat timeout unless the caller already set a deadline.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.ChatTimeout)
		defer cancel()
	}

	start := time.Now()
	logging.APIDebug("[Gemini] GenerateContent: model=%s turns=%d", c.cfg.Model, len(contents))

	reqBody := Request{
		Contents: contents,
		GenerationConfig: GenerationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 8192,
		},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logging.APIError("[Gemini] GenerateContent: status=%d body=%s", resp.StatusCode, body)
		return "", &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var geminiResp Response
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if geminiResp.Error != nil {
		return "", &APIError{Status: geminiResp.Error.Code, Body: geminiResp.Error.Message}
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoCandidates
	}

	var result strings.Builder
	for _, part := range geminiResp.Candidates[0].Content.Parts {
		result.WriteString(part.Text)
	}
	text := result.String()

	logging.API("[Gemini] GenerateContent: completed in %v response_len=%d", time.Since(start), len(text))
	return text, nil
}
