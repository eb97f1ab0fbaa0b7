// Package gemini scores essays with the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"ielts_backend/internal/feature/scoring/domain/entity"
	"ielts_backend/internal/feature/scoring/usecase"
	httpclient "ielts_backend/internal/platform/http"
	"ielts_backend/internal/shared/apperr"
)

const (
	// DefaultModel is used when a request names no model.
	DefaultModel = "gemini-2.5-flash"

	defaultTimeout = 30 * time.Second

	// transportGrace keeps the HTTP client timeout behind the context deadline.
	transportGrace = 5 * time.Second
)

// Config holds the provider settings. Zero values fall back to defaults.
type Config struct {
	DefaultModel string
	Timeout      time.Duration
	// BaseURL and APIVersion override the public endpoint, mainly for tests.
	BaseURL    string
	APIVersion string
}

// GenerateRequest is a single structured-output call.
type GenerateRequest struct {
	Model             string
	SystemInstruction string
	UserMessage       string
}

// Client calls generateContent with a caller-supplied API key.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

var _ usecase.Evaluator = (*Client)(nil)

// NewClient returns a Client for cfg.
func NewClient(cfg Config) *Client {
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{cfg: cfg, httpClient: httpclient.NewHTTPClient(cfg.Timeout + transportGrace)}
}

// Generate returns the raw JSON text produced by the model.
func (c *Client) Generate(ctx context.Context, apiKey string, req GenerateRequest) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    c.cfg.BaseURL,
			APIVersion: c.cfg.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w: %w", apperr.ErrProvider, err)
	}

	model := req.Model
	if model == "" {
		model = c.cfg.DefaultModel
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(req.UserMessage), c.generateConfig(req.SystemInstruction))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
		}
		return nil, fmt.Errorf("gemini request failed: %w: %w", apperr.ErrProvider, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, usecase.ErrEmptyResponse
	}
	return []byte(text), nil
}

// Evaluate runs Generate and decodes the payload into a Result.
func (c *Client) Evaluate(ctx context.Context, apiKey, model, systemInstruction, userMessage string) (*entity.Result, error) {
	raw, err := c.Generate(ctx, apiKey, GenerateRequest{
		Model:             model,
		SystemInstruction: systemInstruction,
		UserMessage:       userMessage,
	})
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

func (c *Client) generateConfig(systemInstruction string) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    ResponseSchema(),
		ThinkingConfig:    &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](-1)},
		MediaResolution:   genai.MediaResolutionMedium,
	}
}
