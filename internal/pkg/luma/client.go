package luma

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventvault/backend/internal/pkg/metrics"
)

const (
	// DefaultBaseURL is the public Luma API root
	DefaultBaseURL = "https://public-api.lu.ma/public/v1"

	apiKeyHeader = "x-luma-api-key"

	endpointEvent  = "/event/get"
	endpointGuests = "/event/get-guests"

	// Upstream bodies are only kept for diagnostics.
	maxBodyBytes = 4 << 20
)

// Config holds everything the client needs. It is built once at startup.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client performs authenticated reads against the Luma public API.
// It holds no state besides its configuration.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new Luma client
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With().Str("component", "luma").Logger(),
	}
}

// FetchEvent fetches a single event by its Luma api id.
func (c *Client) FetchEvent(ctx context.Context, externalID string) (*RemoteEvent, error) {
	body, err := c.get(ctx, endpointEvent, externalID)
	if err != nil {
		return nil, err
	}

	event, err := NormalizeEvent(body)
	if err != nil {
		return nil, &ProviderError{StatusCode: http.StatusOK, Body: err.Error()}
	}
	return event, nil
}

// FetchGuests fetches the guest list of an event by its Luma api id.
func (c *Client) FetchGuests(ctx context.Context, externalID string) ([]RemoteGuest, error) {
	body, err := c.get(ctx, endpointGuests, externalID)
	if err != nil {
		return nil, err
	}

	guests, err := NormalizeGuests(body)
	if err != nil {
		return nil, &ProviderError{StatusCode: http.StatusOK, Body: err.Error()}
	}
	return guests, nil
}

// get performs one GET request and returns the raw body of a 2xx response.
// Any other outcome is reported as a *ProviderError.
func (c *Client) get(ctx context.Context, endpoint, externalID string) ([]byte, error) {
	if c.cfg.APIKey == "" {
		return nil, &ProviderError{Body: "LUMA_API_KEY is not configured"}
	}

	reqURL := c.cfg.BaseURL + endpoint + "?api_id=" + url.QueryEscape(externalID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &ProviderError{Body: err.Error(), Err: err}
	}
	req.Header.Set(apiKeyHeader, c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("endpoint", endpoint).Str("lumaEventId", externalID).Msg("Calling Luma API")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ObserveProviderRequest(endpoint, time.Since(start))
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("Luma API request failed")
		return nil, &ProviderError{Body: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("endpoint", endpoint).
			Str("body", string(body)).
			Msg("Luma API error response")
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// String implements fmt.Stringer without leaking the key.
func (c Config) String() string {
	return fmt.Sprintf("luma.Config{BaseURL:%s Timeout:%s APIKey:%t}", c.BaseURL, c.Timeout, c.APIKey != "")
}
