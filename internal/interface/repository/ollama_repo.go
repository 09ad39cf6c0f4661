package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"skypulse-engine/internal/domain/entity"
	"skypulse-engine/internal/domain/repository"
	"skypulse-engine/pkg/logger"
	"skypulse-engine/templates"
)

// OllamaConfig configures the Ollama rationale generator
type OllamaConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
	// RequestsPerSecond throttles generate calls; zero or less disables throttling
	RequestsPerSecond float64
}

// OllamaRepository generates match rationales with a local Ollama model
type OllamaRepository struct {
	logger  logger.Logger
	baseURL string
	model   string
	client  *http.Client
	limiter *rate.Limiter
}

var _ repository.Summarizer = (*OllamaRepository)(nil)

// NewOllamaRepository creates a new Ollama-backed summarizer
func NewOllamaRepository(cfg OllamaConfig, logger logger.Logger) *OllamaRepository {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &OllamaRepository{
		logger:  logger,
		baseURL: baseURL,
		model:   cfg.Model,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, 1),
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system,omitempty"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Summarize asks the model for a short rationale for the match
func (r *OllamaRepository) Summarize(ctx context.Context, req entity.RationaleRequest) (string, error) {
	return r.Generate(ctx, templates.RationalePrompt(req), templates.RationaleSystemPrompt)
}

// Generate runs a single non-streaming completion
func (r *OllamaRepository) Generate(ctx context.Context, prompt, system string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("ollama rate limit: %w", err)
	}

	jsonData, err := json.Marshal(generateRequest{
		Model:  r.model,
		Prompt: prompt,
		System: system,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/generate", r.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := r.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var response generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if response.Error != "" {
		return "", fmt.Errorf("ollama error: %s", response.Error)
	}

	r.logger.Debug("Ollama generation completed",
		"model", r.model,
		"duration", time.Since(started),
		"length", len(response.Response))

	return strings.TrimSpace(response.Response), nil
}

// Healthy reports whether the Ollama server answers its tags endpoint
func (r *OllamaRepository) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
