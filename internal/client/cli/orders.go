package cli

import (
	"context"
	"fmt"
)

const ordersUsage = "orders [list [k=v...] | show <id> | status <id> completed|cancelled]"

func (a *App) Orders(ctx context.Context, args []string) error {
	sub, rest := subcommand(args, "list")
	svc := a.services.Orders

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
			return usage("orders show <id>")
		}
		raw, err := svc.Get(ctx, rest[0])
		if err != nil {
			return err
		}
		return a.printJSON(raw)

	case "status":
		if len(rest) != 2 {
			return usage("orders status <id> completed|cancelled")
		}
		if !Confirm(a.reader, fmt.Sprintf("Set order %s to %s?", rest[0], rest[1]), a.out) {
			fmt.Fprintln(a.out, "Cancelled")
			return nil
		}
		if _, err := svc.UpdateStatus(ctx, rest[0], rest[1]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Order %s is now %s\n", rest[0], rest[1])
		return nil

	default:
		return usage(ordersUsage)
	}
}
