// Package api talks to the CasaFlow backend REST API. One Client carries
// the HTTP plumbing every resource shares: base URL resolution, JSON and
// multipart encoding, bearer-token injection, and the 401 hook that ends
// the session no matter which resource call tripped it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/casaflow/crm-cli-go/internal/domain"
	"github.com/casaflow/crm-cli-go/internal/infra/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("api")

// TokenSource yields the current bearer token, or "" when no session
// exists. The pre-request hook asks it on every call.
type TokenSource interface {
	Token() string
}

// Invalidator ends the session. The post-response hook calls it when
// the backend answers 401.
type Invalidator interface {
	Invalidate()
}

// FilePart is a file attached to a multipart request.
type FilePart struct {
	Field   string
	Name    string
	Content io.Reader
}

// Multipart is a multipart/form-data body. The adapter builds the
// writer itself so the boundary-bearing Content-Type is always its own;
// callers must not set one.
type Multipart struct {
	Fields map[string]string
	Files  []FilePart
}

// Request describes one outbound call. Body and Form are mutually
// exclusive: a JSON-serializable Body gets Content-Type
// application/json, a Form gets the adapter-generated multipart type.
type Request struct {
	// Op names the operation for spans and metrics, e.g. "leads.list".
	Op      string
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Form    *Multipart
	Headers http.Header
}

// Client is the HTTP request adapter shared by all resource clients.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	session    Invalidator
	// onUnauthorized is the injected "navigate to login" capability.
	// Runs after the session has been invalidated, before the error
	// reaches the caller.
	onUnauthorized func()
	metrics        *observability.Metrics
	logger         *zap.Logger
}

// NewClient creates the adapter. session and onUnauthorized may be nil
// for unauthenticated use (e.g. fetching a public presentation).
func NewClient(
	httpClient *http.Client,
	baseURL string,
	tokens TokenSource,
	session Invalidator,
	onUnauthorized func(),
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Client {
	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		tokens:         tokens,
		session:        session,
		onUnauthorized: onUnauthorized,
		metrics:        metrics,
		logger:         logger,
	}
}

// Do executes one request and decodes a 2xx response body into out
// (which may be nil). Every failure comes back as one of the domain
// error types; the adapter never retries and owns no timeout beyond
// what ctx and the injected http.Client carry.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	ctx, span := tracer.Start(ctx, "api."+req.Op)
	defer span.End()
	span.SetAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.path", req.Path),
	)

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.IncrRequestError("transport")
		c.logger.Error("api: request failed",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Error(err),
		)
		return &domain.ErrTransport{Op: req.Method + " " + req.Path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.IncrRequestError("transport")
		return &domain.ErrTransport{Op: req.Method + " " + req.Path, Err: err}
	}

	c.metrics.RecordRequestDuration(req.Op, time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Debug("api: request OK",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Int("status", resp.StatusCode),
		)
		if out == nil || len(body) == 0 || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode %s response: %w", req.Op, err)
		}
		return nil
	}

	return c.classifyFailure(req, resp.StatusCode, body)
}

// buildRequest translates the descriptor into an *http.Request with all
// shared headers applied.
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	if req.Body != nil && req.Form != nil {
		return nil, fmt.Errorf("api: request %s has both a JSON body and a multipart form", req.Op)
	}

	u := c.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var (
		bodyReader  io.Reader
		contentType string
	)
	switch {
	case req.Form != nil:
		if req.Headers.Get("Content-Type") != "" {
			// The multipart boundary must come from the writer below;
			// a caller-supplied value would break the encoding.
			return nil, fmt.Errorf("api: request %s sets Content-Type on a multipart form", req.Op)
		}
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		for field, value := range req.Form.Fields {
			if err := w.WriteField(field, value); err != nil {
				return nil, fmt.Errorf("encode form field %q: %w", field, err)
			}
		}
		for _, f := range req.Form.Files {
			part, err := w.CreateFormFile(f.Field, f.Name)
			if err != nil {
				return nil, fmt.Errorf("encode form file %q: %w", f.Field, err)
			}
			if _, err := io.Copy(part, f.Content); err != nil {
				return nil, fmt.Errorf("encode form file %q: %w", f.Field, err)
			}
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		bodyReader = &buf
		contentType = w.FormDataContentType()

	case req.Body != nil:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", req.Op, err)
		}
		bodyReader = bytes.NewReader(data)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, bodyReader)
	if err != nil {
		return nil, err
	}

	for k, vs := range req.Headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.New().String())

	// Pre-request hook: attach the bearer token when one exists. Its
	// contents are never inspected here; expiry is the backend's call.
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return httpReq, nil
}

// classifyFailure maps a non-2xx response onto the closed error set.
// The 401 branch is the post-response hook: it ends the session and
// invokes the injected navigation callback, then still hands the error
// to the caller.
func (c *Client) classifyFailure(req Request, status int, body []byte) error {
	c.logger.Warn("api: non-2xx response",
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", status),
	)

	switch {
	case status == http.StatusUnauthorized:
		c.metrics.IncrRequestError("unauthorized")
		if c.session != nil {
			c.session.Invalidate()
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &domain.ErrUnauthorized{Message: messageFrom(body)}

	case status == http.StatusNotFound:
		c.metrics.IncrRequestError("not_found")
		return &domain.ErrNotFound{Path: req.Path}

	case status >= 400 && status < 500:
		c.metrics.IncrRequestError("validation")
		return &domain.ErrValidation{Status: status, Message: messageFrom(body)}

	default:
		c.metrics.IncrRequestError("unknown")
		return &domain.ErrUnknown{Status: status, Body: truncate(string(body), 512)}
	}
}

// messageFrom pulls the human-readable message out of an error body.
// The backend answers either {"error": "..."} or {"message": "..."}.
func messageFrom(body []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return strings.TrimSpace(string(body))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
