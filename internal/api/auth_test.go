package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/casaflow/crm-cli-go/internal/domain"
)

func TestLoginReturnsSessionPair(t *testing.T) {
	var sent domain.LoginRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &sent)
		w.Write([]byte(`{"token":"tok-123","agent":{"id":"agent-1","name":"Maria"}}`))
	}, &staticTokens{}, nil, nil)

	resp, err := c.Login(context.Background(), "maria@example.com", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if sent.Email != "maria@example.com" || sent.Password != "secret" {
		t.Errorf("unexpected request body %+v", sent)
	}
	if resp.Token != "tok-123" || resp.Agent == nil || resp.Agent.ID != "agent-1" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	inv := &fakeInvalidator{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid credentials"}`))
	}, &staticTokens{}, inv, nil)

	_, err := c.Login(context.Background(), "maria@example.com", "wrong")
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if unauthorized.Message != "invalid credentials" {
		t.Errorf("unexpected message %q", unauthorized.Message)
	}
}

func TestRegisterWithInvitationPath(t *testing.T) {
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Write([]byte(`{"token":"tok-123","agent":{"id":"agent-2"}}`))
	}, &staticTokens{}, nil, nil)

	_, err := c.RegisterWithInvitation(context.Background(), "inv-token-9", domain.RegisterRequest{
		Name:     "New Agent",
		Email:    "new@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatal(err)
	}
	if path != "/auth/register/inv-token-9" {
		t.Errorf("unexpected path %q", path)
	}
}
