package services

import (
	"context"
	"encoding/json"
	"net/http"
)

// Order statuses an admin may force.
const (
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

type OrderService struct {
	c Caller
}

func (s *OrderService) List(ctx context.Context, params *ListParams) (json.RawMessage, error) {
	q, err := params.Values()
	if err != nil {
		return nil, err
	}
	return payload(s.c.Request(ctx, http.MethodGet, "/orders", nil, q))
}

func (s *OrderService) Get(ctx context.Context, id string) (json.RawMessage, error) {
	path, err := itemPath("/orders", id)
	if err != nil {
		return nil, err
	}
	return payload(s.c.Request(ctx, http.MethodGet, path, nil, nil))
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (json.RawMessage, error) {
	path, err := itemPath("/orders", id, "status")
	if err != nil {
		return nil, err
	}
	if err := check("status", status, "oneof="+OrderCompleted+" "+OrderCancelled); err != nil {
		return nil, err
	}
	return payload(s.c.Request(ctx, http.MethodPatch, path, map[string]string{"status": status}, nil))
}
