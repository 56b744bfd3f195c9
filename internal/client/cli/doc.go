// Package cli provides the interactive Posko admin console.
//
// It wires configuration, the local credential store, the authenticated API
// client, resource services and the session store, then runs a REPL over
// stdin. Typical flow: restore the persisted session or prompt for
// credentials, then execute admin commands.
//
// Key features:
//   - Login / Logout / Whoami (admin accounts only)
//   - Dashboard summary
//   - Providers verification, service catalog, orders, vouchers, users
//   - Finance stats and fee settings
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// When the API client reports an expired session the console resets the
// session and shows the login prompt. See App and runREPL for details.
package cli
