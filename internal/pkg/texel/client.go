package texel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventvault/backend/internal/pkg/apperrors"
	"github.com/eventvault/backend/internal/pkg/metrics"
)

// DefaultBaseURL is the Texel API root
const DefaultBaseURL = "https://api.texel.ai/v1"

// Image and video generation defaults
const (
	DefaultWidth      = 1024
	DefaultHeight     = 768
	DefaultSteps      = 15
	DefaultCFGScale   = 7.5
	DefaultImageModel = "realistic"
	DefaultVideoModel = "framepack"
	DefaultDuration   = 5
)

// ErrNotConfigured is returned before any request when no API key is set.
var ErrNotConfigured = apperrors.NewCustomError(apperrors.ErrNotConfigured, "Texel API key not configured")

// Config holds the Texel connection settings
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client is a thin JSON client for the Texel generation API
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// APIError reports a non-2xx Texel response or a transport failure.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Texel API error: %d - %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return apperrors.ErrExternalService
}

// Temporary reports whether the request may succeed when repeated.
func (e *APIError) Temporary() bool {
	return e.StatusCode == 0 || e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// ImageRequest is the body of POST /generate/image
type ImageRequest struct {
	Prompt         string  `json:"prompt"`
	NegativePrompt string  `json:"negative_prompt,omitempty"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Steps          int     `json:"steps"`
	CFGScale       float64 `json:"cfg_scale"`
	Seed           *int64  `json:"seed,omitempty"`
	Model          string  `json:"model"`
}

// VideoRequest is the body of POST /generate/video
type VideoRequest struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
	Model          string `json:"model"`
	Duration       int    `json:"duration"`
}

// ImageResult is returned by image generation
type ImageResult struct {
	Success        bool    `json:"success"`
	ImageURL       string  `json:"image_url,omitempty"`
	JobID          string  `json:"job_id,omitempty"`
	Error          string  `json:"error,omitempty"`
	GenerationTime float64 `json:"generation_time,omitempty"`
}

// VideoResult is returned by video generation. Videos are usually queued.
type VideoResult struct {
	Success             bool    `json:"success"`
	VideoURL            string  `json:"video_url,omitempty"`
	JobID               string  `json:"job_id,omitempty"`
	Status              string  `json:"status,omitempty"`
	Error               string  `json:"error,omitempty"`
	GenerationTime      float64 `json:"generation_time,omitempty"`
	EstimatedCompletion string  `json:"estimated_completion,omitempty"`
}

// JobStatus describes a queued generation job
type JobStatus struct {
	JobID       string  `json:"job_id"`
	Status      string  `json:"status"`
	Progress    float64 `json:"progress,omitempty"`
	ResultURL   string  `json:"result_url,omitempty"`
	Error       string  `json:"error,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
	CompletedAt string  `json:"completed_at,omitempty"`
}

// NewClient creates a new Texel client
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With().Str("component", "texel").Logger(),
	}
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// GenerateImage submits an image generation. Zero fields take the defaults.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	if req.Width == 0 {
		req.Width = DefaultWidth
	}
	if req.Height == 0 {
		req.Height = DefaultHeight
	}
	if req.Steps == 0 {
		req.Steps = DefaultSteps
	}
	if req.CFGScale == 0 {
		req.CFGScale = DefaultCFGScale
	}
	if req.Model == "" {
		req.Model = DefaultImageModel
	}

	var result ImageResult
	if err := c.do(ctx, http.MethodPost, "/generate/image", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateVideo submits a video generation. Zero fields take the defaults.
func (c *Client) GenerateVideo(ctx context.Context, req VideoRequest) (*VideoResult, error) {
	if req.Model == "" {
		req.Model = DefaultVideoModel
	}
	if req.Duration == 0 {
		req.Duration = DefaultDuration
	}

	var result VideoResult
	if err := c.do(ctx, http.MethodPost, "/generate/video", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetJobStatus polls a queued job
func (c *Client) GetJobStatus(ctx context.Context, jobID string) (*JobStatus, error) {
	var status JobStatus
	if err := c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(jobID)+"/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, in, out interface{}) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode texel request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to build texel request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ObserveProviderRequest("texel"+pathLabel(endpoint), time.Since(start))
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("Texel request failed")
		return &APIError{Body: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Body: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("Texel API error response")
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Body: "invalid JSON response: " + err.Error()}
	}
	return nil
}

// pathLabel keeps metric cardinality bounded by dropping job ids.
func pathLabel(endpoint string) string {
	if strings.HasPrefix(endpoint, "/jobs/") {
		return "/jobs/status"
	}
	return endpoint
}
