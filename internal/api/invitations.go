package api

import (
	"context"
	"net/http"

	"github.com/casaflow/crm-cli-go/internal/domain"
)

// RequestInvitation asks for a registration invitation to be issued.
func (c *Client) RequestInvitation(ctx context.Context, email, companyName string) (*domain.RequestInvitationResponse, error) {
	var resp domain.RequestInvitationResponse
	err := c.Do(ctx, Request{
		Op:     "invitations.request",
		Method: http.MethodPost,
		Path:   "/invitations/request",
		Body:   domain.RequestInvitationRequest{Email: email, CompanyName: companyName},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidateInvitation checks an invitation token before registration.
func (c *Client) ValidateInvitation(ctx context.Context, token string) (*domain.Invitation, error) {
	var invitation domain.Invitation
	err := c.Do(ctx, Request{
		Op:     "invitations.validate",
		Method: http.MethodGet,
		Path:   "/invitations/validate/" + token,
	}, &invitation)
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}
