package services

import (
	"context"
	"encoding/json"
	"net/http"
)

type VoucherService struct {
	c Caller
}

// List returns every voucher, including inactive and expired ones.
func (s *VoucherService) List(ctx context.Context) (json.RawMessage, error) {
	return payload(s.c.Request(ctx, http.MethodGet, "/vouchers/all", nil, nil))
}

func (s *VoucherService) Create(ctx context.Context, data any) (json.RawMessage, error) {
	if err := requireData(data); err != nil {
		return nil, err
	}
	return payload(s.c.Request(ctx, http.MethodPost, "/vouchers", data, nil))
}

func (s *VoucherService) Update(ctx context.Context, id string, data any) (json.RawMessage, error) {
	path, err := itemPath("/vouchers", id)
	if err != nil {
		return nil, err
	}
	if err := requireData(data); err != nil {
		return nil, err
	}
	return payload(s.c.Request(ctx, http.MethodPut, path, data, nil))
}

func (s *VoucherService) Delete(ctx context.Context, id string) (json.RawMessage, error) {
	path, err := itemPath("/vouchers", id)
	if err != nil {
		return nil, err
	}
	return payload(s.c.Request(ctx, http.MethodDelete, path, nil, nil))
}
