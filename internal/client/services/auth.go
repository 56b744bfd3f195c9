package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/poskoadmin/internal/client/models"
)

type AuthService struct {
	c Caller
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login posts the credentials and decodes { data: { profile, tokens } }.
// The role check is the caller's business.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.LoginData, error) {
	resp, err := s.c.Request(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, nil)
	if err != nil {
		return nil, err
	}

	var env struct {
		Data models.LoginData `json:"data"`
	}
	if err := resp.Decode(&env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.c.Request(ctx, http.MethodPost, "/auth/logout", nil, nil)
	return err
}

// Profile returns the current user. Both { data: profile } and
// { data: { profile } } shapes are accepted.
func (s *AuthService) Profile(ctx context.Context) (*models.Profile, error) {
	resp, err := s.c.Request(ctx, http.MethodGet, "/auth/profile", nil, nil)
	if err != nil {
		return nil, err
	}

	var env models.Envelope
	if err := resp.Decode(&env); err != nil {
		return nil, err
	}

	var nested struct {
		Profile *models.Profile `json:"profile"`
	}
	if err := json.Unmarshal(env.Data, &nested); err == nil && nested.Profile != nil {
		return nested.Profile, nil
	}

	var p models.Profile
	if err := json.Unmarshal(env.Data, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}
