package services

import (
	"context"
	"encoding/json"
	"net/http"
)

const (
	UserActive   = "active"
	UserInactive = "inactive"
)

type UserService struct {
	c Caller
}

func (s *UserService) List(ctx context.Context, params *ListParams) (json.RawMessage, error) {
	q, err := params.Values()
	if err != nil {
		return nil, err
	}
	return payload(s.c.Request(ctx, http.MethodGet, "/auth/users", nil, q))
}

// ToggleStatus flips an account between active and inactive given its
// current status. Anything other than "active" is treated as inactive.
func (s *UserService) ToggleStatus(ctx context.Context, id, current string) (json.RawMessage, error) {
	path, err := itemPath("/auth/users", id, "status")
	if err != nil {
		return nil, err
	}

	next := UserActive
	if current == UserActive {
		next = UserInactive
	}
	return payload(s.c.Request(ctx, http.MethodPatch, path, map[string]string{"status": next}, nil))
}

func (s *UserService) Update(ctx context.Context, id string, data any) (json.RawMessage, error) {
	path, err := itemPath("/auth/users", id)
	if err != nil {
		return nil, err
	}
	if err := requireData(data); err != nil {
		return nil, err
	}
	return payload(s.c.Request(ctx, http.MethodPut, path, data, nil))
}
