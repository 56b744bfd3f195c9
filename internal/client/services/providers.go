package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

const (
	ProviderVerified = "verified"
	ProviderRejected = "rejected"

	// DefaultRejectionReason is sent when a rejection comes without a reason.
	DefaultRejectionReason = "Dokumen tidak valid"
)

type ProviderService struct {
	c Caller
}

type verifyRequest struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejectionReason"`
}

func (s *ProviderService) List(ctx context.Context, params *ListParams) (json.RawMessage, error) {
	q, err := params.Values()
	if err != nil {
		return nil, err
	}
	return payload(s.c.Request(ctx, http.MethodGet, "/providers", nil, q))
}

func (s *ProviderService) Get(ctx context.Context, id string) (json.RawMessage, error) {
	path, err := itemPath("/providers", id)
	if err != nil {
		return nil, err
	}
	return payload(s.c.Request(ctx, http.MethodGet, path, nil, nil))
}

// Verify approves or rejects a partner application.
func (s *ProviderService) Verify(ctx context.Context, id, status, reason string) (json.RawMessage, error) {
	path, err := itemPath("/providers", id, "verify")
	if err != nil {
		return nil, err
	}
	if err := check("status", status, "oneof="+ProviderVerified+" "+ProviderRejected); err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if status == ProviderRejected && reason == "" {
		reason = DefaultRejectionReason
	}
	if status == ProviderVerified {
		reason = ""
	}

	return payload(s.c.Request(ctx, http.MethodPut, path, verifyRequest{Status: status, RejectionReason: reason}, nil))
}
