// Package service holds the caller-side orchestration the commands go
// through: retry/breaker policy on idempotent reads, small caches, and
// concurrent fan-out. The api layer below it stays policy-free.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/casaflow/crm-cli-go/internal/domain"
	"github.com/casaflow/crm-cli-go/internal/infra/cache"
	"github.com/casaflow/crm-cli-go/internal/infra/observability"
	"github.com/casaflow/crm-cli-go/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var catalogTracer = otel.Tracer("service/catalog")

// PropertyReader is the slice of the api client the catalog needs.
type PropertyReader interface {
	SearchProperties(ctx context.Context, filters domain.PropertyFilters) ([]domain.Property, error)
	GetProperty(ctx context.Context, id string) (*domain.Property, error)
	ListPropertySubtypes(ctx context.Context, propertyType string) ([]domain.PropertySubtype, error)
}

// Catalog serves property inventory reads with caller-owned policy:
// retry + circuit breaker on transient failures, a TTL cache for the
// subtype catalog.
type Catalog struct {
	properties PropertyReader
	subtypes   *cache.TTLCache[[]domain.PropertySubtype]
	cb         *gobreaker.CircuitBreaker
	retry      resilience.Config
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewCatalog creates the catalog service with all dependencies injected.
func NewCatalog(
	properties PropertyReader,
	subtypes *cache.TTLCache[[]domain.PropertySubtype],
	cb *gobreaker.CircuitBreaker,
	retry resilience.Config,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Catalog {
	return &Catalog{
		properties: properties,
		subtypes:   subtypes,
		cb:         cb,
		retry:      retry,
		metrics:    metrics,
		logger:     logger,
	}
}

// Search runs a filtered property search behind the breaker, retrying
// transient failures only.
func (s *Catalog) Search(ctx context.Context, filters domain.PropertyFilters) ([]domain.Property, error) {
	ctx, span := catalogTracer.Start(ctx, "Catalog.Search")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("catalog.search", time.Since(start))
	}()

	var properties []domain.Property
	_, err := s.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, s.retry, func() error {
			result, err := s.properties.SearchProperties(ctx, filters)
			if err != nil {
				return classifyForRetry(err)
			}
			properties = result
			return nil
		})
	})
	if err != nil {
		s.logger.Error("catalog: search failed", zap.Error(err))
		return nil, fmt.Errorf("search properties: %w", err)
	}
	return properties, nil
}

// Property fetches one listing behind the breaker.
func (s *Catalog) Property(ctx context.Context, id string) (*domain.Property, error) {
	ctx, span := catalogTracer.Start(ctx, "Catalog.Property")
	defer span.End()

	var property *domain.Property
	_, err := s.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, s.retry, func() error {
			result, err := s.properties.GetProperty(ctx, id)
			if err != nil {
				return classifyForRetry(err)
			}
			property = result
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("get property %s: %w", id, err)
	}
	return property, nil
}

// Subtypes serves the subtype catalog cache-aside; the catalog changes
// rarely enough that one fetch per TTL is plenty.
func (s *Catalog) Subtypes(ctx context.Context, propertyType string) ([]domain.PropertySubtype, error) {
	ctx, span := catalogTracer.Start(ctx, "Catalog.Subtypes")
	defer span.End()

	cacheKey := "subtypes:" + propertyType
	if cached, ok := s.subtypes.Get(cacheKey); ok {
		s.metrics.IncrCacheHit("subtypes")
		return cached, nil
	}
	s.metrics.IncrCacheMiss("subtypes")

	subtypes, err := s.properties.ListPropertySubtypes(ctx, propertyType)
	if err != nil {
		return nil, fmt.Errorf("list subtypes: %w", err)
	}
	s.subtypes.Set(cacheKey, subtypes)
	return subtypes, nil
}

// classifyForRetry marks everything except transport failures and 5xx
// as permanent: retrying a rejected token or a validation error only
// repeats the rejection.
func classifyForRetry(err error) error {
	var transport *domain.ErrTransport
	if errors.As(err, &transport) {
		return err
	}
	var unknown *domain.ErrUnknown
	if errors.As(err, &unknown) && unknown.Status >= 500 {
		return err
	}
	return resilience.Permanent(err)
}
