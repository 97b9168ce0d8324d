package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"healthscore/internal/analysis"
)

const defaultTimeout = 60 * time.Second

// Config holds the coaching endpoint settings
type Config struct {
	BaseURL           string
	APIKey            string
	Model             string
	RequestsPerMinute int
}

// Client generates coaching text from a chat-completions style endpoint
type Client struct {
	baseURL     string
	model       string
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates a coaching client. The API key is sent as a bearer token.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("coach: base url required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("coach: model required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: strings.TrimSpace(cfg.APIKey),
		TokenType:   "Bearer",
	})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = defaultTimeout

	return &Client{
		baseURL:     baseURL,
		model:       cfg.Model,
		httpClient:  httpClient,
		rateLimiter: NewRateLimiter(cfg.RequestsPerMinute),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateCoaching asks the model for coaching text about an assessment result
func (c *Client) GenerateCoaching(ctx context.Context, result analysis.Result) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", err
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: BuildPrompt(result)},
		},
		Temperature: 0.7,
	}

	var resp chatResponse
	if err := c.post(ctx, "/chat/completions", reqBody, &resp); err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("coach: response had no choices")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("coach: empty response")
	}
	return text, nil
}

// RemainingRequests returns the requests left in the current rate window, -1 when unlimited
func (c *Client) RemainingRequests() int {
	return c.rateLimiter.Remaining()
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("coach API error %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
