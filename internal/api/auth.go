package api

import (
	"context"
	"net/http"

	"github.com/casaflow/crm-cli-go/internal/domain"
)

// ============================================================
// Auth — login, invitation-token registration, password reset
// ============================================================

// Login exchanges credentials for a bearer token and the agent it
// belongs to. Feeding the pair to the session is the caller's job.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	var resp domain.LoginResponse
	err := c.Do(ctx, Request{
		Op:     "auth.login",
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   domain.LoginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RegisterWithInvitation creates an agent account from an invitation
// token and returns a fresh session pair.
func (c *Client) RegisterWithInvitation(ctx context.Context, invitationToken string, req domain.RegisterRequest) (*domain.LoginResponse, error) {
	var resp domain.LoginResponse
	err := c.Do(ctx, Request{
		Op:     "auth.register",
		Method: http.MethodPost,
		Path:   "/auth/register/" + invitationToken,
		Body:   req,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForgotPassword asks the backend to mail a reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*domain.GenericResponse, error) {
	var resp domain.GenericResponse
	err := c.Do(ctx, Request{
		Op:     "auth.forgot_password",
		Method: http.MethodPost,
		Path:   "/auth/forgot-password",
		Body:   domain.ForgotPasswordRequest{Email: email},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResetPassword sets a new password using a reset token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) (*domain.GenericResponse, error) {
	var resp domain.GenericResponse
	err := c.Do(ctx, Request{
		Op:     "auth.reset_password",
		Method: http.MethodPost,
		Path:   "/auth/reset-password",
		Body:   domain.ResetPasswordRequest{Token: token, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateResetToken checks whether a reset token is still usable.
func (c *Client) ValidateResetToken(ctx context.Context, token string) (*domain.GenericResponse, error) {
	var resp domain.GenericResponse
	err := c.Do(ctx, Request{
		Op:     "auth.validate_reset_token",
		Method: http.MethodGet,
		Path:   "/auth/validate-reset-token/" + token,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
