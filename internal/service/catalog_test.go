package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/casaflow/crm-cli-go/internal/domain"
	"github.com/casaflow/crm-cli-go/internal/infra/cache"
	"github.com/casaflow/crm-cli-go/internal/infra/observability"
	"github.com/casaflow/crm-cli-go/internal/infra/resilience"

	"go.uber.org/zap"
)

// fakeProperties scripts the property API: errs are consumed one per
// call before results start succeeding.
type fakeProperties struct {
	errs         []error
	calls        int
	subtypeCalls int

	properties []domain.Property
	subtypes   []domain.PropertySubtype
}

func (f *fakeProperties) next() error {
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func (f *fakeProperties) SearchProperties(ctx context.Context, filters domain.PropertyFilters) ([]domain.Property, error) {
	f.calls++
	if err := f.next(); err != nil {
		return nil, err
	}
	return f.properties, nil
}

func (f *fakeProperties) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	f.calls++
	if err := f.next(); err != nil {
		return nil, err
	}
	return &domain.Property{ID: id}, nil
}

func (f *fakeProperties) ListPropertySubtypes(ctx context.Context, propertyType string) ([]domain.PropertySubtype, error) {
	f.subtypeCalls++
	return f.subtypes, nil
}

func newTestCatalog(t *testing.T, properties *fakeProperties) *Catalog {
	t.Helper()
	subtypes := cache.New[[]domain.PropertySubtype](time.Minute)
	t.Cleanup(subtypes.Close)
	return NewCatalog(
		properties,
		subtypes,
		resilience.NewCircuitBreaker("test"),
		resilience.Config{MaxRetries: 2, InitialBackoff: time.Millisecond},
		observability.NewMetrics(),
		zap.NewNop(),
	)
}

func TestCatalogSearchRetriesTransientFailure(t *testing.T) {
	properties := &fakeProperties{
		errs:       []error{&domain.ErrTransport{Op: "GET /properties/search", Err: errors.New("connection reset")}},
		properties: []domain.Property{{ID: "prop-1"}},
	}
	catalog := newTestCatalog(t, properties)

	result, err := catalog.Search(context.Background(), domain.PropertyFilters{})
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if len(result) != 1 || result[0].ID != "prop-1" {
		t.Errorf("unexpected result %+v", result)
	}
	if properties.calls != 2 {
		t.Errorf("expected 2 calls (1 failure + 1 retry), got %d", properties.calls)
	}
}

func TestCatalogSearchDoesNotRetryValidation(t *testing.T) {
	properties := &fakeProperties{
		errs: []error{&domain.ErrValidation{Status: 422, Message: "bad filter"}},
	}
	catalog := newTestCatalog(t, properties)

	_, err := catalog.Search(context.Background(), domain.PropertyFilters{})
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected the validation error back, got %v", err)
	}
	if properties.calls != 1 {
		t.Errorf("validation errors must not be retried, got %d calls", properties.calls)
	}
}

func TestCatalogSearchDoesNotRetryUnauthorized(t *testing.T) {
	properties := &fakeProperties{
		errs: []error{&domain.ErrUnauthorized{Message: "token expired"}},
	}
	catalog := newTestCatalog(t, properties)

	_, err := catalog.Search(context.Background(), domain.PropertyFilters{})
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected the unauthorized error back, got %v", err)
	}
	if properties.calls != 1 {
		t.Errorf("a rejected token must not be retried, got %d calls", properties.calls)
	}
}

func TestCatalogPropertyRetriesServerError(t *testing.T) {
	properties := &fakeProperties{
		errs: []error{&domain.ErrUnknown{Status: 503, Body: "unavailable"}},
	}
	catalog := newTestCatalog(t, properties)

	property, err := catalog.Property(context.Background(), "prop-9")
	if err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if property.ID != "prop-9" {
		t.Errorf("unexpected property %+v", property)
	}
	if properties.calls != 2 {
		t.Errorf("expected 2 calls, got %d", properties.calls)
	}
}

func TestCatalogSubtypesCached(t *testing.T) {
	properties := &fakeProperties{
		subtypes: []domain.PropertySubtype{{ID: "st-1", Name: "apartment"}},
	}
	catalog := newTestCatalog(t, properties)

	for i := 0; i < 3; i++ {
		subtypes, err := catalog.Subtypes(context.Background(), "residential")
		if err != nil {
			t.Fatal(err)
		}
		if len(subtypes) != 1 {
			t.Fatalf("unexpected subtypes %+v", subtypes)
		}
	}
	if properties.subtypeCalls != 1 {
		t.Errorf("expected a single backend fetch, got %d", properties.subtypeCalls)
	}

	// A different type filter is a different cache entry.
	if _, err := catalog.Subtypes(context.Background(), "commercial"); err != nil {
		t.Fatal(err)
	}
	if properties.subtypeCalls != 2 {
		t.Errorf("expected a fetch for the new filter, got %d", properties.subtypeCalls)
	}
}
