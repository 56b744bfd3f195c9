package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/poskoadmin/internal/client/api"
	"github.com/dmitrijs2005/poskoadmin/internal/client/session"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Expire(ctx context.Context)

	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Providers(ctx context.Context, args []string) error
	Services(ctx context.Context, args []string) error
	Orders(ctx context.Context, args []string) error
	Vouchers(ctx context.Context, args []string) error
	Users(ctx context.Context, args []string) error
	Finance(ctx context.Context, args []string) error
}

const (
	guestHelp = "Available commands: login, help, exit"
	adminHelp = "Available commands: dashboard, providers, services, orders, vouchers, users, finance, whoami, logout, help, exit\n" +
		"  providers [list [k=v...] | show <id> | approve <id> | reject <id> [reason...]]\n" +
		"  services  [list [k=v...] | create [k=v...] | update <id> [k=v...] | delete <id>]\n" +
		"  orders    [list [k=v...] | show <id> | status <id> completed|cancelled]\n" +
		"  vouchers  [list | create [k=v...] | update <id> [k=v...] | delete <id>]\n" +
		"  users     [list [k=v...] | toggle <id> <current status> | update <id> k=v...]\n" +
		"  finance   [stats | settings | set k=v...]\n" +
		"  list filters: page=N limit=N search=text and any other k=v"
)

// runREPL starts a read–eval–print loop over reader.
//
// The first token of a line is the command, the rest are its arguments.
// Everything except help, login and exit needs an authenticated session;
// without one the user is sent to the login prompt instead. A command that
// ends with an expired session resets the session and shows the login prompt
// as well. Other errors are printed and the loop goes on. The loop exits on
// EOF, on "exit" / "quit", or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for ctx.Err() == nil {
		printlnFn(fmt.Sprintf("posko %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(adminHelp)
			} else {
				printlnFn(guestHelp)
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "login":
			report(ctx, a, a.Login(ctx))
			continue
		}

		handler, ok := commandFor(a, cmd)
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}

		if !a.isLoggedIn() {
			printlnFn("Please log in first.")
			report(ctx, a, a.Login(ctx))
			continue
		}

		report(ctx, a, handler(ctx, args))
	}
}

func commandFor(a execIface, cmd string) (func(context.Context, []string) error, bool) {
	noArgs := func(fn func(context.Context) error) func(context.Context, []string) error {
		return func(ctx context.Context, _ []string) error { return fn(ctx) }
	}

	switch cmd {
	case "logout":
		return noArgs(a.Logout), true
	case "whoami":
		return noArgs(a.Whoami), true
	case "dashboard":
		return noArgs(a.Dashboard), true
	case "providers":
		return a.Providers, true
	case "services":
		return a.Services, true
	case "orders":
		return a.Orders, true
	case "vouchers":
		return a.Vouchers, true
	case "users":
		return a.Users, true
	case "finance":
		return a.Finance, true
	default:
		return nil, false
	}
}

// report prints err for the user. An expired session sends the user back to
// the login prompt once.
func report(ctx context.Context, a execIface, err error) {
	switch {
	case err == nil:
		return

	case errors.Is(err, api.ErrSessionExpired):
		a.Expire(ctx)
		printlnFn("Session expired, please log in again.")
		if lerr := a.Login(ctx); lerr != nil {
			printlnFn("Error:", session.Message(lerr))
		}

	case errors.Is(err, errUsage):
		printlnFn(err.Error())

	case errors.Is(err, api.ErrUnavailable):
		printlnFn("Error: server unavailable, check your connection.")

	default:
		printlnFn("Error:", session.Message(err))
	}
}
