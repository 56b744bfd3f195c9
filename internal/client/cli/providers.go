package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/poskoadmin/internal/client/services"
)

const providersUsage = "providers [list [k=v...] | show <id> | approve <id> | reject <id> [reason...]]"

// Providers lists and verifies partner applications.
func (a *App) Providers(ctx context.Context, args []string) error {
	sub, rest := subcommand(args, "list")
	svc := a.services.Providers

	switch sub {
	case "list":
		params, err := listParams(rest)
		if err != nil {
			return err
		}
		raw, err := svc.List(ctx, params)
		if err != nil {
			return err
		}
		return a.printJSON(raw)

	case "show":
		if len(rest) != 1 {
			return usage("providers show <id>")
		}
		raw, err := svc.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		return a.printJSON(raw)

	case "approve":
		if len(rest) != 1 {
			return usage("providers approve <id>")
		}
		if _, err := svc.Verify(ctx, rest[0], services.ProviderVerified, ""); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Provider %s verified\n", rest[0])
		return nil

	case "reject":
		if len(rest) == 0 {
			return usage("providers reject <id> [reason...]")
		}
		id := rest[0]
		reason := strings.Join(rest[1:], " ")
		if reason == "" {
			var err error
			reason, err = GetMultiline(a.reader, fmt.Sprintf("Rejection reason (empty for %q)", services.DefaultRejectionReason), a.out)
			if err != nil {
				return err
			}
		}
		if !Confirm(a.reader, fmt.Sprintf("Reject provider %s?", id), a.out) {
			fmt.Fprintln(a.out, "Cancelled")
			return nil
		}
		if _, err := svc.Verify(ctx, id, services.ProviderRejected, reason); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Provider %s rejected\n", id)
		return nil

	default:
		return usage(providersUsage)
	}
}
