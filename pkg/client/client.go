// Package client calls the analysis API. Each endpoint is one request/response
// function; inputs are validated first and nothing is sent when they fail.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sambabib/version-autopsy/pkg/analyzer"
	"github.com/sambabib/version-autopsy/pkg/api"
	"github.com/sambabib/version-autopsy/pkg/logger"
	"github.com/sambabib/version-autopsy/pkg/validate"
)

const (
	DefaultBaseURL = "http://localhost:5000"
	defaultTimeout = 30 * time.Second
)

// Fallback messages used when a failed response carries no error field.
const (
	MsgAnalyzeFailed  = "Analysis failed"
	MsgCheckFailed    = "Package check failed"
	MsgFeedbackFailed = "Feedback submission failed"
)

// ServerError is a failed request: a non-2xx response or a transport
// failure (StatusCode 0).
type ServerError struct {
	Endpoint   string
	StatusCode int
	Message    string
	cause      error
}

func (e *ServerError) Error() string {
	return e.Message
}

func (e *ServerError) Unwrap() error {
	return e.cause
}

// Client talks to one analysis server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client. nil keeps the default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. The http.Client is copied first,
// so a client passed to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := http.Client{}
		if c.HTTPClient != nil {
			hc = *c.HTTPClient
		}
		hc.Timeout = d
		c.HTTPClient = &hc
	}
}

// New creates a Client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AnalyzeResult is a successful manifest analysis.
type AnalyzeResult struct {
	Results       []analyzer.AnalysisResult
	TotalPackages int
}

// Analyze submits manifest content.
func (c *Client) Analyze(ctx context.Context, requirements string) (*AnalyzeResult, error) {
	if err := validate.Requirements(requirements); err != nil {
		return nil, err
	}

	req := api.AnalyzeRequest{Requirements: api.StringPtr(strings.TrimSpace(requirements))}
	var resp api.AnalyzeResponse
	if err := c.post(ctx, api.PathAnalyze, req, &resp, MsgAnalyzeFailed); err != nil {
		return nil, err
	}
	return &AnalyzeResult{Results: resp.Results, TotalPackages: resp.TotalPackages}, nil
}

// CheckPackage checks a single package version.
func (c *Client) CheckPackage(ctx context.Context, name, version string) (*analyzer.AnalysisResult, error) {
	if err := validate.Package(name, version); err != nil {
		return nil, err
	}

	req := api.CheckPackageRequest{
		Package: api.StringPtr(strings.TrimSpace(name)),
		Version: api.StringPtr(strings.TrimSpace(version)),
	}
	var resp api.CheckPackageResponse
	if err := c.post(ctx, api.PathCheckPackage, req, &resp, MsgCheckFailed); err != nil {
		return nil, err
	}
	return &resp.Result, nil
}

// SubmitFeedback sends the feedback form and returns the server's
// confirmation message.
func (c *Client) SubmitFeedback(ctx context.Context, fb api.FeedbackRequest) (string, error) {
	if err := validate.Feedback(fb.Name, fb.Email, fb.Message); err != nil {
		return "", err
	}

	req := api.FeedbackRequest{
		Name:    strings.TrimSpace(fb.Name),
		Email:   strings.TrimSpace(fb.Email),
		Message: strings.TrimSpace(fb.Message),
	}
	var resp api.FeedbackResponse
	if err := c.post(ctx, api.PathSubmitFeedback, req, &resp, MsgFeedbackFailed); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any, fallback string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return goerr.Wrap(err, "failed to encode request", goerr.V("path", path))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return goerr.Wrap(err, "failed to build request", goerr.V("path", path))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	logger.Debugf("POST %s", req.URL)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &ServerError{
			Endpoint: path,
			Message:  fallback,
			cause:    goerr.Wrap(err, "request failed", goerr.V("url", req.URL.String())),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr api.ErrorResponse
		msg := fallback
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			msg = apiErr.Error
		}
		logger.Debugf("POST %s: %s: %s", req.URL, resp.Status, msg)
		return &ServerError{Endpoint: path, StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ServerError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Message:    fallback,
			cause:      fmt.Errorf("invalid response body: %w", err),
		}
	}
	return nil
}
