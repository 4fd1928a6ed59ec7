package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/casaflow/crm-cli-go/internal/domain"
	"github.com/casaflow/crm-cli-go/internal/infra/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var presenterTracer = otel.Tracer("service/presenter")

// LeadReader is the slice of the api client the presenter needs for leads.
type LeadReader interface {
	GetLead(ctx context.Context, id string) (*domain.Lead, error)
}

// PresentationAPI covers the presentation endpoints.
type PresentationAPI interface {
	MatchingProperties(ctx context.Context, leadID string) ([]domain.PropertyMatch, error)
	CreatePresentation(ctx context.Context, leadID string, propertyIDs []string) (*domain.CreatePresentationResponse, error)
	GetPresentation(ctx context.Context, token string) (*domain.Presentation, error)
}

// LeadPresentation is the material an agent reviews before sharing:
// the lead plus the backend-scored candidates.
type LeadPresentation struct {
	Lead    *domain.Lead           `json:"lead"`
	Matches []domain.PropertyMatch `json:"matches"`
}

// Presenter builds and shares property presentations.
type Presenter struct {
	leads         LeadReader
	presentations PresentationAPI
	metrics       *observability.Metrics
	logger        *zap.Logger
}

// NewPresenter creates the presenter service.
func NewPresenter(leads LeadReader, presentations PresentationAPI, metrics *observability.Metrics, logger *zap.Logger) *Presenter {
	return &Presenter{
		leads:         leads,
		presentations: presentations,
		metrics:       metrics,
		logger:        logger,
	}
}

// Compose fetches the lead and its matching properties concurrently.
func (p *Presenter) Compose(ctx context.Context, leadID string) (*LeadPresentation, error) {
	ctx, span := presenterTracer.Start(ctx, "Presenter.Compose")
	defer span.End()
	span.SetAttributes(attribute.String("lead.id", leadID))

	start := time.Now()
	defer func() {
		p.metrics.RecordRequestDuration("presenter.compose", time.Since(start))
	}()

	var (
		lead    *domain.Lead
		matches []domain.PropertyMatch
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l, err := p.leads.GetLead(gCtx, leadID)
		if err != nil {
			p.logger.Error("presenter: failed to fetch lead",
				zap.String("lead_id", leadID),
				zap.Error(err),
			)
			return fmt.Errorf("lead fetch: %w", err)
		}
		lead = l
		return nil
	})

	g.Go(func() error {
		m, err := p.presentations.MatchingProperties(gCtx, leadID)
		if err != nil {
			p.logger.Error("presenter: failed to fetch matches",
				zap.String("lead_id", leadID),
				zap.Error(err),
			)
			return fmt.Errorf("matches fetch: %w", err)
		}
		matches = m
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &LeadPresentation{Lead: lead, Matches: matches}, nil
}

// Share creates the public presentation for a selection of properties.
func (p *Presenter) Share(ctx context.Context, leadID string, propertyIDs []string) (*domain.CreatePresentationResponse, error) {
	ctx, span := presenterTracer.Start(ctx, "Presenter.Share")
	defer span.End()

	if leadID == "" {
		return nil, errors.New("presenter: lead id is required")
	}
	if len(propertyIDs) == 0 {
		return nil, errors.New("presenter: at least one property is required")
	}

	resp, err := p.presentations.CreatePresentation(ctx, leadID, propertyIDs)
	if err != nil {
		return nil, fmt.Errorf("create presentation: %w", err)
	}

	p.logger.Info("presentation shared",
		zap.String("lead_id", leadID),
		zap.Int("properties", len(propertyIDs)),
		zap.String("url", resp.URL),
	)
	return resp, nil
}

// Public fetches a shared presentation by its token, the same view a
// lead gets from the share link.
func (p *Presenter) Public(ctx context.Context, token string) (*domain.Presentation, error) {
	ctx, span := presenterTracer.Start(ctx, "Presenter.Public")
	defer span.End()

	return p.presentations.GetPresentation(ctx, token)
}
