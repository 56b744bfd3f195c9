package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/poskoadmin/internal/client/api"
	"github.com/dmitrijs2005/poskoadmin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// nowFn is the clock whoami compares token expiry against.
var nowFn = time.Now

// Login prompts for email and password and opens an admin session.
//
// The password byte slice is wiped before returning. Non-admin accounts are
// refused by the session store and nothing is persisted for them.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", email)
	return nil
}

// Logout ends the session. Local credentials are removed even when the
// server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Whoami reloads the profile from the server and shows it along with what
// the access token says about its own expiry.
func (a *App) Whoami(ctx context.Context) error {
	p, err := a.session.RefreshProfile(ctx)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := a.printJSON(raw); err != nil {
		return err
	}

	token, err := a.tokens.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("read access token: %w", err)
	}
	if token == "" {
		return nil
	}

	info, err := api.InspectToken(token)
	if err != nil {
		fmt.Fprintln(a.out, "Access token: not a JWT")
		return nil
	}

	switch {
	case info.ExpiresAt.IsZero():
		fmt.Fprintln(a.out, "Access token: no expiry")
	case info.Expired(nowFn()):
		fmt.Fprintf(a.out, "Access token: expired at %s (renewed on next call)\n", info.ExpiresAt.UTC().Format(time.RFC3339))
	default:
		fmt.Fprintf(a.out, "Access token: valid until %s\n", info.ExpiresAt.UTC().Format(time.RFC3339))
	}
	return nil
}
