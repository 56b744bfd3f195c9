package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/poskoadmin/internal/client/api"
)

type fakeExec struct {
	loggedIn bool
	errs     map[string]error

	calls []string
	args  map[string][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = map[string][]string{}
	}
	f.args[name] = args
	err := f.errs[name]
	delete(f.errs, name)
	return err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Expire(ctx context.Context) {
	f.calls = append(f.calls, "expire")
	f.loggedIn = false
}
func (f *fakeExec) Login(ctx context.Context) error {
	if err := f.record("login", nil); err != nil {
		return err
	}
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) Whoami(ctx context.Context) error    { return f.record("whoami", nil) }
func (f *fakeExec) Dashboard(ctx context.Context) error { return f.record("dashboard", nil) }
func (f *fakeExec) Providers(ctx context.Context, args []string) error {
	return f.record("providers", args)
}
func (f *fakeExec) Services(ctx context.Context, args []string) error {
	return f.record("services", args)
}
func (f *fakeExec) Orders(ctx context.Context, args []string) error { return f.record("orders", args) }
func (f *fakeExec) Vouchers(ctx context.Context, args []string) error {
	return f.record("vouchers", args)
}
func (f *fakeExec) Users(ctx context.Context, args []string) error   { return f.record("users", args) }
func (f *fakeExec) Finance(ctx context.Context, args []string) error { return f.record("finance", args) }

// capturePrints swaps printlnFn for a recorder.
func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func run(exec *fakeExec, lines ...string) {
	reader := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "status" }, reader)
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := capturePrints(t)

	exec := &fakeExec{}
	run(exec,
		"help",
		"login",
		"help",
		"dashboard",
		"providers show p1",
		"orders status o1 completed",
		"finance",
		"foobar",
		"logout",
		"exit",
		"whoami",
	)

	assert.Equal(t, []string{"login", "dashboard", "providers", "orders", "finance", "logout"}, exec.calls)
	assert.Equal(t, []string{"show", "p1"}, exec.args["providers"])
	assert.Equal(t, []string{"status", "o1", "completed"}, exec.args["orders"])
	assert.Contains(t, *out, guestHelp)
	assert.Contains(t, *out, adminHelp)
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_GuardSendsGuestToLogin(t *testing.T) {
	out := capturePrints(t)

	exec := &fakeExec{errs: map[string]error{"login": errors.New("bad password")}}
	run(exec, "orders", "orders", "vouchers list")

	assert.Equal(t, []string{"login", "login", "vouchers"}, exec.calls)
	assert.Contains(t, *out, "Please log in first.")
	assert.Contains(t, *out, "Error: bad password")
}

func TestRunREPL_SessionExpiredLeadsToLogin(t *testing.T) {
	out := capturePrints(t)

	exec := &fakeExec{
		loggedIn: true,
		errs:     map[string]error{"users": &api.SessionExpiredError{Err: errors.New("refresh rejected")}},
	}
	run(exec, "users", "users")

	assert.Equal(t, []string{"users", "expire", "login", "users"}, exec.calls)
	assert.Contains(t, *out, "Session expired, please log in again.")
}

func TestRunREPL_ReportsErrors(t *testing.T) {
	out := capturePrints(t)

	exec := &fakeExec{
		loggedIn: true,
		errs: map[string]error{
			"services": usage("services delete <id>"),
			"vouchers": fmt.Errorf("%w: boom", api.ErrUnavailable),
			"finance":  &api.APIError{Status: 403, Message: "Forbidden"},
		},
	}
	run(exec, "services delete", "vouchers", "finance")

	assert.Contains(t, *out, "usage: services delete <id>")
	assert.Contains(t, *out, "Error: server unavailable, check your connection.")
	assert.Contains(t, *out, "Error: Forbidden")
	assert.True(t, exec.loggedIn)
}

func TestRunREPL_EOFWithoutNewline(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{loggedIn: true}
	run(exec, "whoami")
	assert.Equal(t, []string{"whoami"}, exec.calls)

	exec = &fakeExec{loggedIn: true}
	run(exec)
	assert.Empty(t, exec.calls)
}
