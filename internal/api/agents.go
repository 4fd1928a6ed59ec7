package api

import (
	"context"
	"net/http"

	"github.com/casaflow/crm-cli-go/internal/domain"
)

// GetAgent fetches an agent profile.
func (c *Client) GetAgent(ctx context.Context, id string) (*domain.Agent, error) {
	var agent domain.Agent
	err := c.Do(ctx, Request{
		Op:     "agents.get",
		Method: http.MethodGet,
		Path:   "/agents/" + id,
	}, &agent)
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// UpdateAgent updates an agent profile.
func (c *Client) UpdateAgent(ctx context.Context, id string, req domain.UpdateAgentRequest) (*domain.Agent, error) {
	var agent domain.Agent
	err := c.Do(ctx, Request{
		Op:     "agents.update",
		Method: http.MethodPut,
		Path:   "/agents/" + id,
		Body:   req,
	}, &agent)
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

// GetCompany fetches the agency record.
func (c *Client) GetCompany(ctx context.Context, id string) (*domain.Company, error) {
	var company domain.Company
	err := c.Do(ctx, Request{
		Op:     "companies.get",
		Method: http.MethodGet,
		Path:   "/companies/" + id,
	}, &company)
	if err != nil {
		return nil, err
	}
	return &company, nil
}
