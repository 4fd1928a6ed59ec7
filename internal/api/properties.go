package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/casaflow/crm-cli-go/internal/domain"
)

// searchValues maps filters onto the backend's query parameters. The
// client-side names differ from the wire names (minPrice→minBudget,
// zone→address, search→q); unset filters and the "all" sentinel are
// omitted rather than sent empty.
func searchValues(f domain.PropertyFilters) url.Values {
	v := url.Values{}
	if f.MinPrice > 0 {
		v.Set("minBudget", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		v.Set("maxBudget", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.MinRooms > 0 {
		v.Set("minRooms", strconv.Itoa(f.MinRooms))
	}
	if f.Zone != "" {
		v.Set("address", f.Zone)
	}
	if f.Status != "" && f.Status != "all" {
		v.Set("status", f.Status)
	}
	if f.Source != "" && f.Source != "all" {
		v.Set("source", f.Source)
	}
	if f.Search != "" {
		v.Set("q", f.Search)
	}
	return v
}

// SearchProperties runs a filtered inventory search.
func (c *Client) SearchProperties(ctx context.Context, filters domain.PropertyFilters) ([]domain.Property, error) {
	var properties []domain.Property
	err := c.Do(ctx, Request{
		Op:     "properties.search",
		Method: http.MethodGet,
		Path:   "/properties/search",
		Query:  searchValues(filters),
	}, &properties)
	if err != nil {
		return nil, err
	}
	return properties, nil
}

// GetProperty fetches one listing by id.
func (c *Client) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	var property domain.Property
	err := c.Do(ctx, Request{
		Op:     "properties.get",
		Method: http.MethodGet,
		Path:   "/properties/" + id,
	}, &property)
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// CreateProperty creates a listing. Without an image the payload is
// plain JSON; with one it becomes multipart form data carrying the
// JSON under a "data" field plus the file under "image", and the
// Content-Type is left to the adapter so the boundary is correct.
func (c *Client) CreateProperty(ctx context.Context, property *domain.Property, image *FilePart) (*domain.Property, error) {
	req := Request{
		Op:     "properties.create",
		Method: http.MethodPost,
		Path:   "/properties",
	}

	if image == nil {
		req.Body = property
	} else {
		data, err := json.Marshal(property)
		if err != nil {
			return nil, fmt.Errorf("encode property: %w", err)
		}
		image.Field = "image"
		req.Form = &Multipart{
			Fields: map[string]string{"data": string(data)},
			Files:  []FilePart{*image},
		}
	}

	var created domain.Property
	if err := c.Do(ctx, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProperty overwrites the given fields of a listing.
func (c *Client) UpdateProperty(ctx context.Context, id string, property *domain.Property) (*domain.Property, error) {
	var updated domain.Property
	err := c.Do(ctx, Request{
		Op:     "properties.update",
		Method: http.MethodPut,
		Path:   "/properties/" + id,
		Body:   property,
	}, &updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ListPropertySubtypes fetches the subtype catalog, optionally
// narrowed to one property type.
func (c *Client) ListPropertySubtypes(ctx context.Context, propertyType string) ([]domain.PropertySubtype, error) {
	req := Request{
		Op:     "properties.subtypes",
		Method: http.MethodGet,
		Path:   "/property-subtypes",
	}
	if propertyType != "" {
		req.Query = url.Values{"type": []string{propertyType}}
	}

	var subtypes []domain.PropertySubtype
	if err := c.Do(ctx, req, &subtypes); err != nil {
		return nil, err
	}
	return subtypes, nil
}
