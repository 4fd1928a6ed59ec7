package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/casaflow/crm-cli-go/internal/domain"
	"github.com/casaflow/crm-cli-go/internal/infra/observability"

	"go.uber.org/zap"
)

type staticTokens struct{ token string }

func (s *staticTokens) Token() string { return s.token }

type fakeInvalidator struct{ calls int }

func (f *fakeInvalidator) Invalidate() { f.calls++ }

// newTestClient wires a Client against an httptest server.
func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenSource, inv Invalidator, onUnauthorized func()) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), srv.URL, tokens, inv, onUnauthorized, observability.NewMetrics(), zap.NewNop())
}

func TestDoAttachesBearerToken(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, &staticTokens{token: "abc"}, nil, nil)

	if err := c.Do(context.Background(), Request{Op: "test", Method: http.MethodGet, Path: "/x"}, nil); err != nil {
		t.Fatal(err)
	}
	if got != "Bearer abc" {
		t.Errorf("expected Bearer abc, got %q", got)
	}
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, &staticTokens{}, nil, nil)

	if err := c.Do(context.Background(), Request{Op: "test", Method: http.MethodGet, Path: "/x"}, nil); err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("expected no Authorization header, got %q", got)
	}
}

func TestDoSetsRequestHeaders(t *testing.T) {
	var accept, requestID, contentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		requestID = r.Header.Get("X-Request-ID")
		contentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}, &staticTokens{}, nil, nil)

	req := Request{Op: "test", Method: http.MethodPost, Path: "/x", Body: map[string]string{"a": "b"}}
	if err := c.Do(context.Background(), req, nil); err != nil {
		t.Fatal(err)
	}
	if accept != "application/json" {
		t.Errorf("expected Accept application/json, got %q", accept)
	}
	if requestID == "" {
		t.Error("expected a generated X-Request-ID")
	}
	if contentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", contentType)
	}
}

func TestDoUnauthorizedInvalidatesSessionOnce(t *testing.T) {
	inv := &fakeInvalidator{}
	navigations := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	}, &staticTokens{token: "stale"}, inv, func() { navigations++ })

	err := c.Do(context.Background(), Request{Op: "test", Method: http.MethodGet, Path: "/x"}, nil)

	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if unauthorized.Message != "token expired" {
		t.Errorf("expected backend message, got %q", unauthorized.Message)
	}
	if inv.calls != 1 {
		t.Errorf("expected exactly 1 invalidation, got %d", inv.calls)
	}
	if navigations != 1 {
		t.Errorf("expected exactly 1 navigation callback, got %d", navigations)
	}
}

func TestDoUnauthorizedWithoutHooks(t *testing.T) {
	// Public use: no session, no callback. The 401 must still come back
	// as a typed error without panicking.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, &staticTokens{}, nil, nil)

	err := c.Do(context.Background(), Request{Op: "test", Method: http.MethodGet, Path: "/x"}, nil)
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestDoClassifiesFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "not found",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				var notFound *domain.ErrNotFound
				if !errors.As(err, &notFound) {
					t.Fatalf("expected ErrNotFound, got %v", err)
				}
				if notFound.Path != "/x" {
					t.Errorf("expected path /x, got %q", notFound.Path)
				}
			},
		},
		{
			name:   "validation",
			status: http.StatusUnprocessableEntity,
			body:   `{"message":"budget must be positive"}`,
			check: func(t *testing.T, err error) {
				var validation *domain.ErrValidation
				if !errors.As(err, &validation) {
					t.Fatalf("expected ErrValidation, got %v", err)
				}
				if validation.Status != http.StatusUnprocessableEntity {
					t.Errorf("expected status 422, got %d", validation.Status)
				}
				if validation.Message != "budget must be positive" {
					t.Errorf("unexpected message %q", validation.Message)
				}
			},
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   "boom",
			check: func(t *testing.T, err error) {
				var unknown *domain.ErrUnknown
				if !errors.As(err, &unknown) {
					t.Fatalf("expected ErrUnknown, got %v", err)
				}
				if unknown.Status != http.StatusInternalServerError {
					t.Errorf("expected status 500, got %d", unknown.Status)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}, &staticTokens{}, nil, nil)

			err := c.Do(context.Background(), Request{Op: "test", Method: http.MethodGet, Path: "/x"}, nil)
			tt.check(t, err)
		})
	}
}

func TestDoTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(http.DefaultClient, srv.URL, &staticTokens{}, nil, nil, observability.NewMetrics(), zap.NewNop())
	err := c.Do(context.Background(), Request{Op: "test", Method: http.MethodGet, Path: "/x"}, nil)

	var transport *domain.ErrTransport
	if !errors.As(err, &transport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if transport.Unwrap() == nil {
		t.Error("expected wrapped cause")
	}
}

func TestDoNeverRetries(t *testing.T) {
	requests := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}, &staticTokens{}, nil, nil)

	_ = c.Do(context.Background(), Request{Op: "test", Method: http.MethodGet, Path: "/x"}, nil)
	if requests != 1 {
		t.Errorf("adapter must issue exactly one request, got %d", requests)
	}
}

func TestDoDecodesSuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"lead-1","name":"Ana"}`))
	}, &staticTokens{}, nil, nil)

	var lead domain.Lead
	if err := c.Do(context.Background(), Request{Op: "test", Method: http.MethodGet, Path: "/x"}, &lead); err != nil {
		t.Fatal(err)
	}
	if lead.ID != "lead-1" || lead.Name != "Ana" {
		t.Errorf("unexpected decode result: %+v", lead)
	}
}

func TestDoAcceptsEmptySuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, &staticTokens{}, nil, nil)

	var out map[string]any
	if err := c.Do(context.Background(), Request{Op: "test", Method: http.MethodGet, Path: "/x"}, &out); err != nil {
		t.Fatalf("204 with a decode target must not fail: %v", err)
	}
}

func TestBuildRequestRejectsBodyAndForm(t *testing.T) {
	c := NewClient(http.DefaultClient, "http://example.invalid", &staticTokens{}, nil, nil, observability.NewMetrics(), zap.NewNop())

	err := c.Do(context.Background(), Request{
		Op:     "test",
		Method: http.MethodPost,
		Path:   "/x",
		Body:   map[string]string{"a": "b"},
		Form:   &Multipart{Fields: map[string]string{"c": "d"}},
	}, nil)
	if err == nil || !strings.Contains(err.Error(), "both") {
		t.Errorf("expected body/form conflict error, got %v", err)
	}
}

func TestBuildRequestRejectsCallerContentTypeOnForm(t *testing.T) {
	c := NewClient(http.DefaultClient, "http://example.invalid", &staticTokens{}, nil, nil, observability.NewMetrics(), zap.NewNop())

	headers := http.Header{}
	headers.Set("Content-Type", "multipart/form-data")
	err := c.Do(context.Background(), Request{
		Op:      "test",
		Method:  http.MethodPost,
		Path:    "/x",
		Form:    &Multipart{Fields: map[string]string{"a": "b"}},
		Headers: headers,
	}, nil)
	if err == nil || !strings.Contains(err.Error(), "Content-Type") {
		t.Errorf("expected Content-Type rejection, got %v", err)
	}
}
