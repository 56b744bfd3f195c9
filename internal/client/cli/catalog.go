package cli

import (
	"context"
	"fmt"
)

const (
	servicesUsage = "services [list [k=v...] | create [k=v...] | update <id> [k=v...] | delete <id>]"
	serviceFields = "fields: name, category, basePrice, unit, description, iconUrl"
)

// Services manages the catalog of offered services.
func (a *App) Services(ctx context.Context, args []string) error {
	sub, rest := subcommand(args, "list")
	svc := a.services.Catalog

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

	case "create":
		data, err := a.fields(rest, serviceFields)
		if err != nil {
			return err
		}
		raw, err := svc.Create(ctx, data)
		if err != nil {
			return err
		}
		return a.printJSON(raw)

	case "update":
		if len(rest) == 0 {
			return usage("services update <id> [k=v...]")
		}
		data, err := a.fields(rest[1:], serviceFields)
		if err != nil {
			return err
		}
		raw, err := svc.Update(ctx, rest[0], data)
		if err != nil {
			return err
		}
		return a.printJSON(raw)

	case "delete":
		if len(rest) != 1 {
			return usage("services delete <id>")
		}
		if !Confirm(a.reader, fmt.Sprintf("Delete service %s?", rest[0]), a.out) {
			fmt.Fprintln(a.out, "Cancelled")
			return nil
		}
		if _, err := svc.Delete(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Service %s deleted\n", rest[0])
		return nil

	default:
		return usage(servicesUsage)
	}
}
