package cli

import (
	"context"
	"fmt"
)

const usersUsage = "users [list [k=v...] | toggle <id> <current status> | update <id> k=v...]"

func (a *App) Users(ctx context.Context, args []string) error {
	sub, rest := subcommand(args, "list")
	svc := a.services.Users

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

	case "toggle":
		if len(rest) != 2 {
			return usage("users toggle <id> <current status>")
		}
		raw, err := svc.ToggleStatus(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		return a.printJSON(raw)

	case "update":
		if len(rest) < 2 {
			return usage("users update <id> k=v...")
		}
		data, err := fieldsFromArgs(rest[1:])
		if err != nil {
			return err
		}
		raw, err := svc.Update(ctx, rest[0], data)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "User %s updated\n", rest[0])
		return a.printJSON(raw)

	default:
		return usage(usersUsage)
	}
}
