package service

import (
	"context"
	"errors"
	"testing"

	"github.com/casaflow/crm-cli-go/internal/domain"
	"github.com/casaflow/crm-cli-go/internal/infra/observability"

	"go.uber.org/zap"
)

type fakeLeads struct {
	lead *domain.Lead
	err  error
}

func (f *fakeLeads) GetLead(ctx context.Context, id string) (*domain.Lead, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lead, nil
}

type fakePresentations struct {
	matches    []domain.PropertyMatch
	matchesErr error

	created    *domain.CreatePresentationResponse
	createErr  error
	lastLeadID string
	lastIDs    []string
}

func (f *fakePresentations) MatchingProperties(ctx context.Context, leadID string) ([]domain.PropertyMatch, error) {
	if f.matchesErr != nil {
		return nil, f.matchesErr
	}
	return f.matches, nil
}

func (f *fakePresentations) CreatePresentation(ctx context.Context, leadID string, propertyIDs []string) (*domain.CreatePresentationResponse, error) {
	f.lastLeadID = leadID
	f.lastIDs = propertyIDs
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakePresentations) GetPresentation(ctx context.Context, token string) (*domain.Presentation, error) {
	return &domain.Presentation{}, nil
}

func newTestPresenter(leads LeadReader, presentations PresentationAPI) *Presenter {
	return NewPresenter(leads, presentations, observability.NewMetrics(), zap.NewNop())
}

func TestPresenterComposeMergesBothFetches(t *testing.T) {
	leads := &fakeLeads{lead: &domain.Lead{ID: "lead-1", Name: "Ana"}}
	presentations := &fakePresentations{
		matches: []domain.PropertyMatch{
			{Property: domain.PresentedProperty{ID: "prop-1"}, MatchPercent: 92},
		},
	}
	presenter := newTestPresenter(leads, presentations)

	result, err := presenter.Compose(context.Background(), "lead-1")
	if err != nil {
		t.Fatal(err)
	}
	if result.Lead == nil || result.Lead.ID != "lead-1" {
		t.Errorf("unexpected lead %+v", result.Lead)
	}
	if len(result.Matches) != 1 || result.Matches[0].MatchPercent != 92 {
		t.Errorf("unexpected matches %+v", result.Matches)
	}
}

func TestPresenterComposePropagatesLeadError(t *testing.T) {
	leads := &fakeLeads{err: &domain.ErrNotFound{Path: "/leads/lead-9"}}
	presenter := newTestPresenter(leads, &fakePresentations{})

	_, err := presenter.Compose(context.Background(), "lead-9")
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPresenterComposePropagatesMatchesError(t *testing.T) {
	leads := &fakeLeads{lead: &domain.Lead{ID: "lead-1"}}
	presentations := &fakePresentations{matchesErr: errors.New("backend down")}
	presenter := newTestPresenter(leads, presentations)

	if _, err := presenter.Compose(context.Background(), "lead-1"); err == nil {
		t.Fatal("expected matches error to propagate")
	}
}

func TestPresenterShare(t *testing.T) {
	presentations := &fakePresentations{
		created: &domain.CreatePresentationResponse{Token: "share-1", URL: "https://example.com/p/share-1"},
	}
	presenter := newTestPresenter(&fakeLeads{}, presentations)

	resp, err := presenter.Share(context.Background(), "lead-1", []string{"prop-1", "prop-2"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.Token != "share-1" {
		t.Errorf("unexpected response %+v", resp)
	}
	if presentations.lastLeadID != "lead-1" || len(presentations.lastIDs) != 2 {
		t.Errorf("unexpected create arguments %q %v", presentations.lastLeadID, presentations.lastIDs)
	}
}

func TestPresenterShareRequiresProperties(t *testing.T) {
	presenter := newTestPresenter(&fakeLeads{}, &fakePresentations{})

	if _, err := presenter.Share(context.Background(), "lead-1", nil); err == nil {
		t.Error("expected error for empty selection")
	}
	if _, err := presenter.Share(context.Background(), "", []string{"prop-1"}); err == nil {
		t.Error("expected error for missing lead")
	}
}
