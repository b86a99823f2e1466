package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/nations_league/internal/config"
	"github.com/festy23/nations_league/pkg/retry"
)

const appTitle = LeagueName + " Backend"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Client generates commentary through an OpenAI-compatible chat completions API (OpenRouter).
type Client struct {
	cfg        config.NarrativeConfig
	httpClient *http.Client
	retry      retry.Config
	logger     *zap.SugaredLogger
}

// NewClient creates a chat completions client.
func NewClient(cfg config.NarrativeConfig, logger *zap.SugaredLogger) *Client {
	policy := retry.HTTPConfig()
	policy.OnRetry = func(attempt int, err error, wait time.Duration) {
		logger.Warnw("commentary request failed, retrying", "attempt", attempt, "wait", wait, "error", err)
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		retry:      policy,
		logger:     logger,
	}
}

// Generate asks the model for commentary and parses its answer.
func (c *Client) Generate(ctx context.Context, req Request) ([]string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: Prompt(req)}},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	content, err := retry.DoWithResult(ctx, c.retry, func() (string, error) {
		return c.complete(ctx, body)
	})
	if err != nil {
		return nil, err
	}

	lines, err := Parse(content)
	if err != nil {
		return nil, err
	}
	c.logger.Debugw("commentary generated", "team_a", req.TeamA, "team_b", req.TeamB, "lines", len(lines))
	return lines, nil
}

func (c *Client) complete(ctx context.Context, body []byte) (string, error) {
	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", retry.Permanent(fmt.Errorf("failed to build chat request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Set("HTTP-Referer", c.cfg.Referer)
	httpReq.Header.Set("X-Title", appTitle)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		// the status text is matched by the retry patterns
		return "", fmt.Errorf("chat completions returned status %d", resp.StatusCode)
	}

	var decoded chatResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", retry.Permanent(fmt.Errorf("failed to decode chat response: %w", err))
	}
	if len(decoded.Choices) == 0 {
		return "", retry.Permanent(ErrEmptyCommentary)
	}
	return decoded.Choices[0].Message.Content, nil
}
