// Package codeforces implements the Codeforces REST API client. It exposes
// the four read-only operations the core consumes and normalizes transport
// failures into the domain error taxonomy. Responses come back as raw
// records; typed construction belongs to the domain packages.
package codeforces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cf-tools/cf-insight/internal/domain/contest"
	"github.com/cf-tools/cf-insight/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONFIGURATION
// ══════════════════════════════════════════════════════════════════════════════

// DefaultBaseURL is the public Codeforces API endpoint.
const DefaultBaseURL = "https://codeforces.com/api"

// DefaultSubmissionLimit bounds a single submission fetch, matching the
// depth the verdict statistics are computed over.
const DefaultSubmissionLimit = 1000

// ClientConfig contains configuration for the API client.
type ClientConfig struct {
	// BaseURL is the API base URL.
	BaseURL string

	// Timeout is the HTTP request timeout.
	Timeout time.Duration

	// PacerConfig spaces consecutive requests.
	PacerConfig PacerConfig

	// Logger for structured logging.
	Logger *slog.Logger

	// Debug enables request logging.
	Debug bool
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:     DefaultBaseURL,
		Timeout:     30 * time.Second,
		PacerConfig: DefaultPacerConfig(),
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// CLIENT
// ══════════════════════════════════════════════════════════════════════════════

// Client is the Codeforces API client. All operations are blocking but
// cancellable through their context, and none of them retries: a failed
// fetch surfaces as ErrSourceUnavailable and the caller decides.
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	logger     *slog.Logger
	pacer      *Pacer
}

// NewClient creates a new API client.
func NewClient(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: config.Logger,
		pacer:  NewPacer(config.PacerConfig),
	}
}

// Pacer exposes the fetch pacer so bulk orchestration can space per-user
// iterations with the same policy the client itself honors.
func (c *Client) Pacer() *Pacer {
	return c.pacer
}

// apiResponse is the envelope every Codeforces endpoint returns.
type apiResponse struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment,omitempty"`
	Result  json.RawMessage `json:"result"`
}

// ══════════════════════════════════════════════════════════════════════════════
// OPERATIONS
// ══════════════════════════════════════════════════════════════════════════════

// GetProfiles fetches raw profile records for the given handles, in the
// same order the handles were supplied.
func (c *Client) GetProfiles(ctx context.Context, handles []string) ([]contest.Record, error) {
	params := url.Values{}
	params.Set("handles", strings.Join(handles, ";"))

	var records []contest.Record
	if err := c.doGet(ctx, "user.info", params, &records); err != nil {
		return nil, fmt.Errorf("get profiles: %w", err)
	}
	return records, nil
}

// GetRatingHistory fetches the raw rating-change records for one handle.
func (c *Client) GetRatingHistory(ctx context.Context, handle string) ([]contest.Record, error) {
	params := url.Values{}
	params.Set("handle", handle)

	var records []contest.Record
	if err := c.doGet(ctx, "user.rating", params, &records); err != nil {
		return nil, fmt.Errorf("get rating history for %s: %w", handle, err)
	}
	return records, nil
}

// GetSubmissions fetches up to limit raw submission records for one
// handle, most recent first.
func (c *Client) GetSubmissions(ctx context.Context, handle string, limit int) ([]contest.Record, error) {
	if limit <= 0 {
		limit = DefaultSubmissionLimit
	}
	params := url.Values{}
	params.Set("handle", handle)
	params.Set("count", strconv.Itoa(limit))

	var records []contest.Record
	if err := c.doGet(ctx, "user.status", params, &records); err != nil {
		return nil, fmt.Errorf("get submissions for %s: %w", handle, err)
	}
	return records, nil
}

// GetCatalog fetches the full problemset snapshot: problems and the
// parallel per-problem statistics.
func (c *Client) GetCatalog(ctx context.Context) (problems, statistics []contest.Record, err error) {
	var result struct {
		Problems          []contest.Record `json:"problems"`
		ProblemStatistics []contest.Record `json:"problemStatistics"`
	}
	if err := c.doGet(ctx, "problemset.problems", nil, &result); err != nil {
		return nil, nil, fmt.Errorf("get catalog: %w", err)
	}
	return result.Problems, result.ProblemStatistics, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HTTP REQUEST HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// doGet performs one paced GET against a method endpoint. Any non-success
// outcome, transport or API-level, maps to ErrSourceUnavailable.
func (c *Client) doGet(ctx context.Context, method string, params url.Values, result any) error {
	if err := c.pacer.Wait(ctx); err != nil {
		return err
	}

	fullURL := c.config.BaseURL + "/" + method
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	if c.config.Debug {
		c.logger.Debug("codeforces api request", "method", method, "url", fullURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return shared.WrapError("codeforces", method, shared.ErrSourceUnavailable,
			"http request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return shared.WrapError("codeforces", method, shared.ErrSourceUnavailable,
			"read response failed", err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return shared.WrapError("codeforces", method, shared.ErrSourceUnavailable,
			fmt.Sprintf("unparseable response, http status %d", resp.StatusCode), err)
	}

	if resp.StatusCode != http.StatusOK || envelope.Status != "OK" {
		comment := envelope.Comment
		if comment == "" {
			comment = fmt.Sprintf("http status %d", resp.StatusCode)
		}
		return shared.WrapError("codeforces", method, shared.ErrSourceUnavailable, comment, nil)
	}

	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return shared.WrapError("codeforces", method, shared.ErrSourceUnavailable,
				"unexpected result shape", err)
		}
	}
	return nil
}
