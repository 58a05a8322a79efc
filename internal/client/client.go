// Package client submits contact form data to the contact API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/osa911/folio/internal/api/dto/common"
	"github.com/osa911/folio/internal/contact"
	"github.com/osa911/folio/internal/version"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// DefaultPath is the endpoint the contact form posts to.
const DefaultPath = "/api/test"

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 1 << 20

// Client sends a Submission to the contact endpoint and maps the
// HTTP/JSON result to an outcome.
type Client struct {
	baseURL    string
	path       string
	httpClient *http.Client
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithPath overrides the endpoint path.
func WithPath(path string) Option {
	return func(c *Client) {
		if path != "" && !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		if path != "" {
			c.path = path
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets an overall request timeout. Zero leaves it to the network stack.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// New creates a Client for the API at baseURL (scheme and host, e.g.
// "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		path:       DefaultPath,
		httpClient: &http.Client{},
		tracer:     otel.Tracer("github.com/osa911/folio/internal/client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL returns the full endpoint URL.
func (c *Client) URL() string {
	return c.baseURL + c.path
}

// Submit issues exactly one POST with s serialized as JSON. It returns nil
// only when the server answers with a 2xx status and a JSON body whose
// "success" field is true. Every other result is a *contact.SubmissionError.
// Submit never retries.
func (c *Client) Submit(ctx context.Context, s contact.Submission) (err error) {
	ctx, span := c.tracer.Start(ctx, "contact.submit", trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	payload, err := json.Marshal(s)
	if err != nil {
		return &contact.SubmissionError{Reason: "failed to encode submission", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(), bytes.NewReader(payload))
	if err != nil {
		return &contact.SubmissionError{Reason: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "folio/"+version.Version)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &contact.SubmissionError{Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &contact.SubmissionError{StatusCode: resp.StatusCode, Reason: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &contact.SubmissionError{
			StatusCode: resp.StatusCode,
			Reason:     "network response was not ok",
			Err:        serverError(body),
		}
	}

	var result struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return &contact.SubmissionError{StatusCode: resp.StatusCode, Reason: "api returned an error", Err: err}
	}
	if result.Success == nil || !*result.Success {
		return &contact.SubmissionError{
			StatusCode: resp.StatusCode,
			Reason:     "api returned an error",
			Err:        serverError(body),
		}
	}

	return nil
}

// serverError extracts the message of an API error envelope, if any.
func serverError(body []byte) error {
	var envelope common.APIResponse
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return nil
	}
	return fmt.Errorf("%s: %s", envelope.Error.Code, envelope.Error.Message)
}
