package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/casaflow/crm-cli-go/internal/domain"
)

// ============================================================
// Email configuration — per-company IMAP integration
// ============================================================

// GetEmailConfig fetches a company's email configuration. A company
// without one is a normal state, not a failure: 404 yields (nil, nil).
// Every other error status propagates.
func (c *Client) GetEmailConfig(ctx context.Context, companyID string) (*domain.EmailConfig, error) {
	var config domain.EmailConfig
	err := c.Do(ctx, Request{
		Op:     "emailconfig.get",
		Method: http.MethodGet,
		Path:   "/companies/" + companyID + "/email-config",
	}, &config)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

// CreateEmailConfig creates a company's email configuration.
func (c *Client) CreateEmailConfig(ctx context.Context, companyID string, req domain.EmailConfigRequest) (*domain.EmailConfig, error) {
	var config domain.EmailConfig
	err := c.Do(ctx, Request{
		Op:     "emailconfig.create",
		Method: http.MethodPost,
		Path:   "/companies/" + companyID + "/email-config",
		Body:   req,
	}, &config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// UpdateEmailConfig updates an existing configuration.
func (c *Client) UpdateEmailConfig(ctx context.Context, companyID string, req domain.EmailConfigRequest) (*domain.EmailConfig, error) {
	var config domain.EmailConfig
	err := c.Do(ctx, Request{
		Op:     "emailconfig.update",
		Method: http.MethodPut,
		Path:   "/companies/" + companyID + "/email-config",
		Body:   req,
	}, &config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// DeleteEmailConfig removes a company's email configuration.
func (c *Client) DeleteEmailConfig(ctx context.Context, companyID string) error {
	return c.Do(ctx, Request{
		Op:     "emailconfig.delete",
		Method: http.MethodDelete,
		Path:   "/companies/" + companyID + "/email-config",
	}, nil)
}

// TestEmailConfig runs a connection test against the stored settings.
func (c *Client) TestEmailConfig(ctx context.Context, companyID string) (*domain.EmailConfigTestResponse, error) {
	var resp domain.EmailConfigTestResponse
	err := c.Do(ctx, Request{
		Op:     "emailconfig.test",
		Method: http.MethodPost,
		Path:   "/companies/" + companyID + "/email-config/test",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ToggleEmailConfig enables or disables email sync.
func (c *Client) ToggleEmailConfig(ctx context.Context, companyID string, enabled bool) error {
	return c.Do(ctx, Request{
		Op:     "emailconfig.toggle",
		Method: http.MethodPatch,
		Path:   "/companies/" + companyID + "/email-config/toggle",
		Body:   map[string]bool{"enabled": enabled},
	}, nil)
}

// DisconnectGmail revokes the company's Gmail OAuth2 grant.
func (c *Client) DisconnectGmail(ctx context.Context, companyID string) error {
	return c.Do(ctx, Request{
		Op:     "emailconfig.disconnect_gmail",
		Method: http.MethodPost,
		Path:   "/auth/google/disconnect",
		Body:   map[string]string{"companyId": companyID},
	}, nil)
}
