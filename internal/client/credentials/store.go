// Package credentials persists the console session: the access token and
// the last known admin profile. The refresh token is never stored here; it
// lives in the HTTP cookie jar of the API client.
package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/poskoadmin/internal/client/migrations"
	"github.com/dmitrijs2005/poskoadmin/internal/client/models"
	"github.com/dmitrijs2005/poskoadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/poskoadmin/internal/common"
	"github.com/dmitrijs2005/poskoadmin/internal/dbx"
	"github.com/dmitrijs2005/poskoadmin/internal/filex"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// OpenSQLite opens (creating if needed) the SQLite file at path, applies
// migrations and returns a Store over it together with the *sql.DB so the
// caller can close it.
func OpenSQLite(ctx context.Context, path string) (*Store, *sql.DB, error) {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, nil, fmt.Errorf("open credential store: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("open credential store: %w", err)
	}
	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	// one writer keeps SQLite from reporting SQLITE_BUSY under concurrent renewals
	db.SetMaxOpenConns(1)
	return NewStore(db), db, nil
}

func (s *Store) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// AccessToken returns the stored token or "" when there is none.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, common.AccessTokenKey)
	if errors.Is(err, common.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// SetAccessToken overwrites the stored token.
func (s *Store) SetAccessToken(ctx context.Context, token string) error {
	return s.repo(s.db).Set(ctx, common.AccessTokenKey, []byte(token))
}

// Profile returns the cached profile or nil when there is none.
func (s *Store) Profile(ctx context.Context) (*models.Profile, error) {
	v, err := s.repo(s.db).Get(ctx, common.ProfileKey)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var p models.Profile
	if err := json.Unmarshal(v, &p); err != nil {
		return nil, fmt.Errorf("decode cached profile: %w", err)
	}
	return &p, nil
}

// SetProfile overwrites the cached profile.
func (s *Store) SetProfile(ctx context.Context, p *models.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return s.repo(s.db).Set(ctx, common.ProfileKey, b)
}

// Save writes token and profile in one transaction.
func (s *Store) Save(ctx context.Context, token string, p *models.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, common.AccessTokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, common.ProfileKey, b)
	})
}

// Clear removes token and profile. Clearing an empty store is not an error.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, common.AccessTokenKey, common.ProfileKey)
}
