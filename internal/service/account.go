package service

import (
	"context"
	"fmt"

	"github.com/casaflow/crm-cli-go/internal/domain"
	"github.com/casaflow/crm-cli-go/internal/infra/cache"
	"github.com/casaflow/crm-cli-go/internal/infra/observability"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var accountTracer = otel.Tracer("service/account")

// AgentAPI covers the agent/company endpoints.
type AgentAPI interface {
	GetAgent(ctx context.Context, id string) (*domain.Agent, error)
	UpdateAgent(ctx context.Context, id string, req domain.UpdateAgentRequest) (*domain.Agent, error)
	GetCompany(ctx context.Context, id string) (*domain.Company, error)
}

// Account serves the My Account reads, cache-aside since the profile
// rarely changes within one CLI run.
type Account struct {
	agents  AgentAPI
	cache   *cache.TTLCache[any]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewAccount creates the account service.
func NewAccount(agents AgentAPI, c *cache.TTLCache[any], metrics *observability.Metrics, logger *zap.Logger) *Account {
	return &Account{agents: agents, cache: c, metrics: metrics, logger: logger}
}

// AgentProfile fetches an agent, preferring the cache.
func (s *Account) AgentProfile(ctx context.Context, id string) (*domain.Agent, error) {
	ctx, span := accountTracer.Start(ctx, "Account.AgentProfile")
	defer span.End()

	cacheKey := "agent:" + id
	if cached, ok := s.cache.Get(cacheKey); ok {
		if agent, ok := cached.(*domain.Agent); ok {
			s.metrics.IncrCacheHit("account")
			return agent, nil
		}
	}
	s.metrics.IncrCacheMiss("account")

	agent, err := s.agents.GetAgent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("agent fetch: %w", err)
	}
	s.cache.Set(cacheKey, agent)
	return agent, nil
}

// Rename updates the agent's display name and drops the stale cache entry.
func (s *Account) Rename(ctx context.Context, id, name string) (*domain.Agent, error) {
	ctx, span := accountTracer.Start(ctx, "Account.Rename")
	defer span.End()

	agent, err := s.agents.UpdateAgent(ctx, id, domain.UpdateAgentRequest{Name: name})
	if err != nil {
		return nil, fmt.Errorf("agent update: %w", err)
	}

	s.cache.Delete("agent:" + id)
	s.logger.Info("agent renamed", zap.String("agent_id", id))
	return agent, nil
}

// Company fetches the agency record, preferring the cache.
func (s *Account) Company(ctx context.Context, id string) (*domain.Company, error) {
	ctx, span := accountTracer.Start(ctx, "Account.Company")
	defer span.End()

	cacheKey := "company:" + id
	if cached, ok := s.cache.Get(cacheKey); ok {
		if company, ok := cached.(*domain.Company); ok {
			s.metrics.IncrCacheHit("account")
			return company, nil
		}
	}
	s.metrics.IncrCacheMiss("account")

	company, err := s.agents.GetCompany(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("company fetch: %w", err)
	}
	s.cache.Set(cacheKey, company)
	return company, nil
}
