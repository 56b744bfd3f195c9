package cli

import (
	"context"
)

const financeUsage = "finance [stats | settings | set k=v...]"

// Finance shows platform earnings and edits fee settings such as adminFee and
// platformCommissionPercent.
func (a *App) Finance(ctx context.Context, args []string) error {
	sub, rest := subcommand(args, "stats")
	svc := a.services.Finance

	switch sub {
	case "stats":
		raw, err := svc.PlatformStats(ctx)
		if err != nil {
			return err
		}
		return a.printJSON(raw)

	case "settings":
		raw, err := svc.Settings(ctx)
		if err != nil {
			return err
		}
		return a.printJSON(raw)

	case "set":
		if len(rest) == 0 {
			return usage("finance set k=v...")
		}
		data, err := fieldsFromArgs(rest)
		if err != nil {
			return err
		}
		raw, err := svc.UpdateSettings(ctx, data)
		if err != nil {
			return err
		}
		return a.printJSON(raw)

	default:
		return usage(financeUsage)
	}
}
