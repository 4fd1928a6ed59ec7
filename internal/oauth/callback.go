// Package oauth runs the short-lived localhost HTTP listener the Gmail
// connect flow redirects back to. The CLI opens the provider's consent
// URL in a browser, the backend finishes the token exchange and sends
// the browser to http://127.0.0.1:<port>/callback with the outcome in
// the query string.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/casaflow/crm-cli-go/internal/infra/observability"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CallbackResult is what the redirect reported.
type CallbackResult struct {
	Status string // "success" or "error"
	Detail string
}

// Listener serves exactly one OAuth callback and then shuts down.
type Listener struct {
	server   *http.Server
	listener net.Listener
	logger   *zap.Logger

	once   sync.Once
	result chan CallbackResult
}

// NewListener binds 127.0.0.1:port. Port 0 picks a free port; read the
// bound address back with Addr.
func NewListener(port int, logger *zap.Logger) (*Listener, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, fmt.Errorf("oauth: listen: %w", err)
	}

	l := &Listener{
		listener: ln,
		logger:   logger,
		result:   make(chan CallbackResult, 1),
	}

	r := chi.NewRouter()
	r.Use(observability.RequestLogger(logger))
	r.Get("/callback", l.handleCallback)

	l.server = &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := l.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("oauth: callback server failed", zap.Error(err))
		}
	}()

	return l, nil
}

// Addr returns the bound address, e.g. "127.0.0.1:8976".
func (l *Listener) Addr() string {
	return l.listener.Addr().String()
}

// RedirectURL returns the URL the backend should redirect the browser to.
func (l *Listener) RedirectURL() string {
	return "http://" + l.Addr() + "/callback"
}

// Wait blocks until the callback arrives or ctx expires, then shuts the
// server down either way.
func (l *Listener) Wait(ctx context.Context) (CallbackResult, error) {
	defer l.shutdown()

	select {
	case res := <-l.result:
		return res, nil
	case <-ctx.Done():
		return CallbackResult{}, fmt.Errorf("oauth: waiting for callback: %w", ctx.Err())
	}
}

func (l *Listener) handleCallback(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "success" {
		status = "error"
	}
	res := CallbackResult{
		Status: status,
		Detail: r.URL.Query().Get("message"),
	}

	// Only the first callback counts; a browser refresh must not
	// overwrite the recorded outcome.
	l.once.Do(func() { l.result <- res })

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if res.Status == "success" {
		fmt.Fprint(w, "<html><body><h2>Account connected</h2><p>You can close this tab and return to the terminal.</p></body></html>")
	} else {
		fmt.Fprint(w, "<html><body><h2>Connection failed</h2><p>Return to the terminal for details.</p></body></html>")
	}
}

func (l *Listener) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := l.server.Shutdown(ctx); err != nil {
		l.logger.Debug("oauth: shutdown", zap.Error(err))
	}
}
