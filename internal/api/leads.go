package api

import (
	"context"
	"net/http"

	"github.com/casaflow/crm-cli-go/internal/domain"
)

// ListLeads fetches all leads visible to the agent's company.
func (c *Client) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	var leads []domain.Lead
	err := c.Do(ctx, Request{
		Op:     "leads.list",
		Method: http.MethodGet,
		Path:   "/leads",
	}, &leads)
	if err != nil {
		return nil, err
	}
	return leads, nil
}

// GetLead fetches one lead by id.
func (c *Client) GetLead(ctx context.Context, id string) (*domain.Lead, error) {
	var lead domain.Lead
	err := c.Do(ctx, Request{
		Op:     "leads.get",
		Method: http.MethodGet,
		Path:   "/leads/" + id,
	}, &lead)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

// CreateLead registers a new lead.
func (c *Client) CreateLead(ctx context.Context, lead *domain.Lead) (*domain.Lead, error) {
	var created domain.Lead
	err := c.Do(ctx, Request{
		Op:     "leads.create",
		Method: http.MethodPost,
		Path:   "/leads",
		Body:   lead,
	}, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateLead overwrites the given fields of a lead.
func (c *Client) UpdateLead(ctx context.Context, id string, lead *domain.Lead) error {
	return c.Do(ctx, Request{
		Op:     "leads.update",
		Method: http.MethodPut,
		Path:   "/leads/" + id,
		Body:   lead,
	}, nil)
}
