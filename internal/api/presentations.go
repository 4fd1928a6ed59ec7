package api

import (
	"context"
	"net/http"

	"github.com/casaflow/crm-cli-go/internal/domain"
)

// MatchingProperties fetches the backend-scored candidates for a lead.
func (c *Client) MatchingProperties(ctx context.Context, leadID string) ([]domain.PropertyMatch, error) {
	var matches []domain.PropertyMatch
	err := c.Do(ctx, Request{
		Op:     "presentations.matches",
		Method: http.MethodGet,
		Path:   "/presentations/matching-properties/" + leadID,
	}, &matches)
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// CreatePresentation shares a property selection with a lead and
// returns the public token and URL.
func (c *Client) CreatePresentation(ctx context.Context, leadID string, propertyIDs []string) (*domain.CreatePresentationResponse, error) {
	var resp domain.CreatePresentationResponse
	err := c.Do(ctx, Request{
		Op:     "presentations.create",
		Method: http.MethodPost,
		Path:   "/presentations",
		Body:   domain.CreatePresentationRequest{LeadID: leadID, PropertyIDs: propertyIDs},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetPresentation fetches a shared presentation by its public token.
// The endpoint is unauthenticated; a stored bearer token is harmless.
func (c *Client) GetPresentation(ctx context.Context, token string) (*domain.Presentation, error) {
	var presentation domain.Presentation
	err := c.Do(ctx, Request{
		Op:     "presentations.get_public",
		Method: http.MethodGet,
		Path:   "/public/presentations/" + token,
	}, &presentation)
	if err != nil {
		return nil, err
	}
	return &presentation, nil
}
