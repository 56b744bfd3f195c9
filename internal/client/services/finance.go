package services

import (
	"context"
	"encoding/json"
	"net/http"
)

type FinanceService struct {
	c Caller
}

func (s *FinanceService) PlatformStats(ctx context.Context) (json.RawMessage, error) {
	return payload(s.c.Request(ctx, http.MethodGet, "/earnings/platform-stats", nil, nil))
}

func (s *FinanceService) Settings(ctx context.Context) (json.RawMessage, error) {
	return payload(s.c.Request(ctx, http.MethodGet, "/settings", nil, nil))
}

// UpdateSettings replaces platform settings such as adminFee and
// platformCommissionPercent.
func (s *FinanceService) UpdateSettings(ctx context.Context, data any) (json.RawMessage, error) {
	if err := requireData(data); err != nil {
		return nil, err
	}
	return payload(s.c.Request(ctx, http.MethodPut, "/settings", data, nil))
}
