// Package ai talks to an OpenAI-compatible chat completions gateway, for
// plain text prompts and for prompts carrying an image.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"fitai/plan-service/internal/apperr"

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 60 * time.Second

	// rawLogLimit caps how much of an unparsable reply goes to the log.
	rawLogLimit = 2 << 10
)

// Config configures a Client. Zero values fall back to the defaults above.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	VisionModel string
	Timeout     time.Duration
	Temperature float64
}

// Client is safe for concurrent use.
type Client struct {
	baseURL     string
	apiKey      string
	model       string
	visionModel string
	temperature float64
	httpClient  *http.Client
	logger      *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = cfg.Model
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		visionModel: cfg.VisionModel,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		logger:      logger,
	}
}

/* ─── Wire types ─────────────────────────────────────────────────────── */

// Message is one chat message. Content is either a string or a []ContentPart.
type Message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

// ContentPart is one element of a multimodal message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

type ImageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

/* ─── Calls ──────────────────────────────────────────────────────────── */

// Complete sends a system and a user prompt to the text model and returns the
// raw content of the first choice.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	return c.chat(ctx, c.model, []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	})
}

// CompleteWithImage sends a prompt plus an image (a data URI or URL) to the
// vision model.
func (c *Client) CompleteWithImage(ctx context.Context, system, prompt, imageURL string) (string, error) {
	return c.chat(ctx, c.visionModel, []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: []ContentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &ImageURL{URL: imageURL}},
		}},
	})
}

func (c *Client) chat(ctx context.Context, model string, messages []Message) (string, error) {
	if c.apiKey == "" {
		return "", apperr.ErrUpstreamFailure.WithMessage("AI API key is not configured")
	}

	bodyBytes, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   4096,
	})
	if err != nil {
		return "", apperr.Wrap(err, apperr.CodeInternal, "marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", apperr.Wrap(err, apperr.CodeInternal, "create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return "", apperr.ErrUpstreamTimeout.WithCause(err)
		}
		return "", apperr.ErrUpstreamFailure.WithCause(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return "", apperr.ErrUpstreamTimeout.WithCause(err)
		}
		return "", apperr.ErrUpstreamFailure.WithCause(err)
	}

	c.logger.Debug("chat completion",
		zap.String("model", model),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp.StatusCode, respBody)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		c.logger.Error("unparsable gateway envelope", zap.String("raw", Excerpt(string(respBody))))
		return "", apperr.ErrMalformedUpstream.WithCause(err)
	}
	if chatResp.Error != nil {
		return "", apperr.ErrUpstreamFailure.WithCause(errors.New(chatResp.Error.Message))
	}
	if len(chatResp.Choices) == 0 || strings.TrimSpace(chatResp.Choices[0].Message.Content) == "" {
		return "", apperr.ErrMalformedUpstream.WithMessage("empty completion")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// statusError maps a non-200 gateway status onto the error taxonomy.
func statusError(status int, body []byte) error {
	cause := fmt.Errorf("gateway status %d: %s", status, truncate(string(body), 512))
	switch status {
	case http.StatusTooManyRequests:
		return apperr.ErrRateLimited.WithCause(cause)
	case http.StatusPaymentRequired:
		return apperr.ErrQuotaExceeded.WithCause(cause)
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return apperr.ErrUpstreamTimeout.WithCause(cause)
	default:
		return apperr.ErrUpstreamFailure.WithCause(cause)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
