package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/poskoadmin/internal/client/api"
	"github.com/dmitrijs2005/poskoadmin/internal/client/models"
	"github.com/dmitrijs2005/poskoadmin/internal/client/services"
	"github.com/dmitrijs2005/poskoadmin/internal/logging"
)

type fakeAuth struct {
	LoginRet   *models.LoginData
	LoginErr   error
	LogoutErr  error
	ProfileRet *models.Profile
	ProfileErr error

	LastEmail    string
	LastPassword string
	LogoutCalls  int
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (*models.LoginData, error) {
	f.LastEmail, f.LastPassword = email, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeAuth) Profile(ctx context.Context) (*models.Profile, error) {
	return f.ProfileRet, f.ProfileErr
}

type fakeCreds struct {
	token   string
	profile *models.Profile

	ReadErr  error
	SaveErr  error
	ClearErr error

	Writes int
	Clears int
}

func (f *fakeCreds) AccessToken(ctx context.Context) (string, error) { return f.token, f.ReadErr }

func (f *fakeCreds) SetAccessToken(ctx context.Context, token string) error {
	f.Writes++
	f.token = token
	return nil
}

func (f *fakeCreds) Profile(ctx context.Context) (*models.Profile, error) { return f.profile, nil }

func (f *fakeCreds) SetProfile(ctx context.Context, p *models.Profile) error {
	f.Writes++
	f.profile = p
	return nil
}

func (f *fakeCreds) Save(ctx context.Context, token string, p *models.Profile) error {
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.Writes++
	f.token, f.profile = token, p
	return nil
}

func (f *fakeCreds) Clear(ctx context.Context) error {
	f.Clears++
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.token, f.profile = "", nil
	return nil
}

func newStore(t *testing.T, auth *fakeAuth, creds *fakeCreds) *Store {
	t.Helper()
	s, err := New(context.Background(), auth, creds, logging.Discard())
	require.NoError(t, err)
	return s
}

func adminLogin() *models.LoginData {
	return &models.LoginData{
		Profile: &models.Profile{Email: "admin@posko.id", Roles: []string{"customer", "admin"}, ActiveRole: "customer"},
		Tokens:  models.Tokens{AccessToken: "acc-1"},
	}
}

func TestNew_RestoresPersistedSession(t *testing.T) {
	creds := &fakeCreds{token: "tok", profile: &models.Profile{Email: "admin@posko.id"}}
	s := newStore(t, &fakeAuth{}, creds)

	st := s.State()
	assert.True(t, st.IsAuthenticated)
	require.NotNil(t, st.User)
	assert.Equal(t, "admin@posko.id", st.User.Email)
}

func TestNew_AnonymousWithoutToken(t *testing.T) {
	s := newStore(t, &fakeAuth{}, &fakeCreds{})
	assert.Equal(t, State{}, s.State())
}

func TestNew_StorageErrorFails(t *testing.T) {
	_, err := New(context.Background(), &fakeAuth{}, &fakeCreds{ReadErr: errors.New("io")}, logging.Discard())
	require.Error(t, err)
}

func TestLogin_AdminSucceedsAndPersists(t *testing.T) {
	auth := &fakeAuth{LoginRet: adminLogin()}
	creds := &fakeCreds{}
	s := newStore(t, auth, creds)

	require.NoError(t, s.Login(context.Background(), " admin@posko.id ", "validpass"))

	assert.Equal(t, "admin@posko.id", auth.LastEmail)
	assert.Equal(t, "validpass", auth.LastPassword)
	assert.Equal(t, "acc-1", creds.token)
	assert.Equal(t, "admin@posko.id", creds.profile.Email)

	st := s.State()
	assert.True(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	assert.Empty(t, st.Error)
	assert.Equal(t, "admin@posko.id", st.User.Email)
}

func TestLogin_NonAdminIsDeniedWithoutWrites(t *testing.T) {
	auth := &fakeAuth{LoginRet: &models.LoginData{
		Profile: &models.Profile{Email: "admin@posko.id", Roles: []string{"provider"}, ActiveRole: "provider"},
		Tokens:  models.Tokens{AccessToken: "acc-1"},
	}}
	creds := &fakeCreds{}
	s := newStore(t, auth, creds)

	err := s.Login(context.Background(), "admin@posko.id", "validpass")
	require.ErrorIs(t, err, ErrAccessDenied)

	assert.Zero(t, creds.Writes)
	assert.Empty(t, creds.token)

	st := s.State()
	assert.False(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	assert.Equal(t, ErrAccessDenied.Error(), st.Error)
}

func TestLogin_ServerMessageBecomesStateError(t *testing.T) {
	auth := &fakeAuth{LoginErr: &api.APIError{Status: http.StatusUnauthorized, Message: "Email atau password salah"}}
	s := newStore(t, auth, &fakeCreds{})

	err := s.Login(context.Background(), "admin@posko.id", "wrong")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, api.StatusOf(err))
	assert.Equal(t, "Email atau password salah", s.State().Error)
	assert.False(t, s.State().IsAuthenticated)
}

func TestLogin_EmptyCredentialsRejectedBeforeIO(t *testing.T) {
	auth := &fakeAuth{LoginRet: adminLogin()}
	s := newStore(t, auth, &fakeCreds{})

	require.ErrorIs(t, s.Login(context.Background(), "  ", "x"), ErrInvalidCredentials)
	require.ErrorIs(t, s.Login(context.Background(), "a@b.c", ""), ErrInvalidCredentials)
	assert.Empty(t, auth.LastEmail)
}

func TestLogin_PersistFailureLeavesAnonymous(t *testing.T) {
	s := newStore(t, &fakeAuth{LoginRet: adminLogin()}, &fakeCreds{SaveErr: errors.New("disk full")})

	err := s.Login(context.Background(), "admin@posko.id", "validpass")
	require.Error(t, err)
	assert.False(t, s.State().IsAuthenticated)
}

func TestLogin_TracksLoadingThroughListeners(t *testing.T) {
	s := newStore(t, &fakeAuth{LoginRet: adminLogin()}, &fakeCreds{})

	var seen []State
	unsubscribe := s.Subscribe(func(st State) { seen = append(seen, st) })

	require.NoError(t, s.Login(context.Background(), "admin@posko.id", "validpass"))
	unsubscribe()
	require.NoError(t, s.Logout(context.Background()))

	require.Len(t, seen, 2)
	assert.True(t, seen[0].IsLoading)
	assert.False(t, seen[0].IsAuthenticated)
	assert.True(t, seen[1].IsAuthenticated)
	assert.False(t, seen[1].IsLoading)
}

func TestLogout_AlwaysClearsEvenWhenServerFails(t *testing.T) {
	auth := &fakeAuth{LogoutErr: &api.APIError{Status: http.StatusInternalServerError, Message: "boom"}}
	creds := &fakeCreds{token: "tok", profile: &models.Profile{Email: "admin@posko.id"}}
	s := newStore(t, auth, creds)
	require.True(t, s.IsAuthenticated())

	require.NoError(t, s.Logout(context.Background()))

	assert.Equal(t, 1, auth.LogoutCalls)
	assert.Equal(t, 1, creds.Clears)
	assert.Empty(t, creds.token)
	assert.Nil(t, creds.profile)
	assert.Equal(t, State{}, s.State())
}

func TestLogout_NetworkFailureStillLogsOut(t *testing.T) {
	auth := &fakeAuth{LogoutErr: api.ErrUnavailable}
	s := newStore(t, auth, &fakeCreds{token: "tok"})

	require.NoError(t, s.Logout(context.Background()))
	assert.False(t, s.IsAuthenticated())
}

func TestLogout_ReportsLocalClearFailure(t *testing.T) {
	s := newStore(t, &fakeAuth{}, &fakeCreds{token: "tok", ClearErr: errors.New("locked")})

	require.Error(t, s.Logout(context.Background()))
	assert.False(t, s.IsAuthenticated())
}

func TestExpire_ResetsToAnonymousWithMessage(t *testing.T) {
	s := newStore(t, &fakeAuth{}, &fakeCreds{token: "tok", profile: &models.Profile{}})

	s.Expire(context.Background())

	st := s.State()
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.User)
	assert.NotEmpty(t, st.Error)
}

func TestRefreshProfile_CachesProfile(t *testing.T) {
	auth := &fakeAuth{ProfileRet: &models.Profile{Email: "new@posko.id", ActiveRole: "admin"}}
	creds := &fakeCreds{token: "tok"}
	s := newStore(t, auth, creds)

	p, err := s.RefreshProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new@posko.id", p.Email)
	assert.Equal(t, "new@posko.id", creds.profile.Email)
	assert.Equal(t, "new@posko.id", s.State().User.Email)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "from server", Message(&api.APIError{Status: 400, Message: "from server"}))
	assert.Equal(t, "plain", Message(errors.New("plain")))
}

func TestLogin_WrongPasswordKeepsServerMessage(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Email atau password salah"})
	})
	mux.HandleFunc("/api/auth/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	creds := &fakeCreds{}
	client, err := api.New(srv.URL+"/api", creds)
	require.NoError(t, err)

	s, err := New(context.Background(), services.New(client).Auth, creds, logging.Discard())
	require.NoError(t, err)

	err = s.Login(context.Background(), "admin@posko.id", "wrong")
	require.Error(t, err)
	assert.NotErrorIs(t, err, api.ErrSessionExpired)
	assert.Equal(t, http.StatusUnauthorized, api.StatusOf(err))

	st := s.State()
	assert.Equal(t, "Email atau password salah", st.Error)
	assert.False(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)

	assert.Zero(t, refreshCalls.Load())
	assert.Zero(t, creds.Clears)
	assert.Zero(t, creds.Writes)
}
