package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/levent-cli/internal/domain"
	"github.com/bnema/levent-cli/internal/ports"
)

const (
	DefaultBaseURL     = "https://api.openai.com/v1/"
	DefaultModel       = "gpt-3.5-turbo"
	DefaultMaxTokens   = 150
	DefaultTemperature = 0.7

	completionsPath       = "chat/completions"
	maxChatResponseBytes  = 1 << 20
	defaultRequestTimeout = 30 * time.Second
)

var (
	ErrMissingAPIKey = errors.New("openai api key is required")
	ErrEmptyChoices  = errors.New("chat completion returned no choices")
)

// Client calls the chat completions endpoint.
type Client struct {
	BaseURL        string
	APIKey         string
	Model          string
	MaxTokens      int
	Temperature    float64
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var _ ports.ChatBackend = Client{}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

func (c Client) Reply(ctx context.Context, history []domain.ChatMessage) (string, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return "", ErrMissingAPIKey
	}

	endpoint, err := buildAPIURL(c.baseURL(), completionsPath)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(c.request(history))
	if err != nil {
		return "", fmt.Errorf("encode chat completion request: %w", err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(c.APIKey))

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("request chat completion: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("request chat completion: %s", decodeAPIError(resp))
	}

	var payload completionResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxChatResponseBytes)).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode chat completion response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return "", ErrEmptyChoices
	}

	return payload.Choices[0].Message.Content, nil
}

func (c Client) request(history []domain.ChatMessage) completionRequest {
	model := c.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	// Zero is a valid, deterministic temperature.
	temperature := c.Temperature
	if temperature < 0 {
		temperature = DefaultTemperature
	}

	messages := make([]chatMessage, 0, len(history))
	for _, message := range history {
		messages = append(messages, chatMessage{Role: string(message.Role), Content: message.Content})
	}

	return completionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

func (c Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	if !strings.HasSuffix(c.BaseURL, "/") {
		return c.BaseURL + "/"
	}
	return c.BaseURL
}

func (c Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func decodeAPIError(resp *http.Response) string {
	var apiErr apiErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxChatResponseBytes)).Decode(&apiErr); err != nil || apiErr.Error.Message == "" {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
	if apiErr.Error.Type != "" {
		return fmt.Sprintf("status %d: %s: %s", resp.StatusCode, apiErr.Error.Type, apiErr.Error.Message)
	}
	return fmt.Sprintf("status %d: %s", resp.StatusCode, apiErr.Error.Message)
}

func buildAPIURL(baseURL string, path string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	return endpoint.String(), nil
}
