package services

import (
	"context"
	"encoding/json"
	"net/http"
)

// CatalogService manages the services offered on the marketplace
// (the /services resource).
type CatalogService struct {
	c Caller
}

func (s *CatalogService) List(ctx context.Context, params *ListParams) (json.RawMessage, error) {
	q, err := params.Values()
	if err != nil {
		return nil, err
	}
	return payload(s.c.Request(ctx, http.MethodGet, "/services", nil, q))
}

func (s *CatalogService) Create(ctx context.Context, data any) (json.RawMessage, error) {
	if err := requireData(data); err != nil {
		return nil, err
	}
	return payload(s.c.Request(ctx, http.MethodPost, "/services", data, nil))
}

func (s *CatalogService) Update(ctx context.Context, id string, data any) (json.RawMessage, error) {
	path, err := itemPath("/services", id)
	if err != nil {
		return nil, err
	}
	if err := requireData(data); err != nil {
		return nil, err
	}
	return payload(s.c.Request(ctx, http.MethodPut, path, data, nil))
}

func (s *CatalogService) Delete(ctx context.Context, id string) (json.RawMessage, error) {
	path, err := itemPath("/services", id)
	if err != nil {
		return nil, err
	}
	return payload(s.c.Request(ctx, http.MethodDelete, path, nil, nil))
}
