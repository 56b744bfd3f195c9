// Package session holds the console's authentication state. A Store is
// created once at startup and handed to the view layer; Login, Logout and
// Expire are its only mutators.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/poskoadmin/internal/client/api"
	"github.com/dmitrijs2005/poskoadmin/internal/client/models"
	"github.com/dmitrijs2005/poskoadmin/internal/logging"
)

var (
	ErrAccessDenied       = errors.New("access denied: account is not an admin")
	ErrInvalidCredentials = errors.New("email and password are required")
)

const expiredMessage = "session expired, please log in again"

// AuthAPI is the slice of the auth resource service the store needs.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*models.LoginData, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.Profile, error)
}

// CredentialStore persists the session between runs.
type CredentialStore interface {
	AccessToken(ctx context.Context) (string, error)
	Profile(ctx context.Context) (*models.Profile, error)
	SetProfile(ctx context.Context, p *models.Profile) error
	Save(ctx context.Context, token string, p *models.Profile) error
	Clear(ctx context.Context) error
}

// State is a snapshot of the session.
type State struct {
	User            *models.Profile
	IsAuthenticated bool
	IsLoading       bool
	Error           string
}

type Store struct {
	auth   AuthAPI
	creds  CredentialStore
	logger logging.Logger

	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextID    int
}

// New restores the session from creds: authenticated when a token is
// stored, with the cached profile as the user.
func New(ctx context.Context, auth AuthAPI, creds CredentialStore, logger logging.Logger) (*Store, error) {
	token, err := creds.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	profile, err := creds.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	return &Store{
		auth:      auth,
		creds:     creds,
		logger:    logger,
		state:     State{User: profile, IsAuthenticated: token != ""},
		listeners: make(map[int]func(State)),
	}, nil
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) IsAuthenticated() bool {
	return s.State().IsAuthenticated
}

// Subscribe registers fn to be called with the new state after every
// mutation. The returned func removes it.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) set(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state
	listeners := make([]func(State), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

// Login authenticates against the API. Only admin profiles are accepted;
// for anyone else nothing is persisted and ErrAccessDenied is returned.
func (s *Store) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return s.fail(ErrInvalidCredentials)
	}

	s.set(func(st *State) {
		st.IsLoading = true
		st.Error = ""
	})

	data, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return s.fail(fmt.Errorf("login: %w", err))
	}
	if data.Tokens.AccessToken == "" {
		return s.fail(errors.New("login: response carries no access token"))
	}
	if !data.Profile.IsAdmin() {
		s.logger.Warn(ctx, "login rejected, not an admin", "email", email)
		return s.fail(ErrAccessDenied)
	}

	if err := s.creds.Save(ctx, data.Tokens.AccessToken, data.Profile); err != nil {
		return s.fail(fmt.Errorf("persist session: %w", err))
	}

	s.set(func(st *State) {
		*st = State{User: data.Profile, IsAuthenticated: true}
	})
	s.logger.Info(ctx, "logged in", "email", email)
	return nil
}

// Logout tells the server best-effort and always clears local state.
// Only a failure to clear local storage is returned.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.auth.Logout(ctx); err != nil {
		s.logger.Warn(ctx, "logout call failed", "error", err)
	}

	err := s.creds.Clear(ctx)
	s.set(func(st *State) {
		*st = State{}
	})
	if err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	s.logger.Info(ctx, "logged out")
	return nil
}

// Expire resets the session after the API client reported that the access
// token can no longer be renewed. The client has already cleared storage.
func (s *Store) Expire(ctx context.Context) {
	s.set(func(st *State) {
		*st = State{Error: expiredMessage}
	})
	s.logger.Info(ctx, "session expired")
}

// RefreshProfile reloads the profile from /auth/profile and caches it.
func (s *Store) RefreshProfile(ctx context.Context) (*models.Profile, error) {
	p, err := s.auth.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.creds.SetProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("cache profile: %w", err)
	}
	s.set(func(st *State) {
		st.User = p
	})
	return p, nil
}

func (s *Store) fail(err error) error {
	s.set(func(st *State) {
		st.IsLoading = false
		st.Error = Message(err)
	})
	return err
}

// Message is the text shown to the admin for err: the server-supplied
// message when there is one, the error text otherwise.
func Message(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
