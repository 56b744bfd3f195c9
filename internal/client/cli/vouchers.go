package cli

import (
	"context"
	"fmt"
)

const (
	vouchersUsage = "vouchers [list | create [k=v...] | update <id> [k=v...] | delete <id>]"
	voucherFields = "fields: code, discountType (fixed|percentage), discountValue, minPurchase, quota, expiryDate, description"
)

func (a *App) Vouchers(ctx context.Context, args []string) error {
	sub, rest := subcommand(args, "list")
	svc := a.services.Vouchers

	switch sub {
	case "list":
		raw, err := svc.List(ctx)
		if err != nil {
			return err
		}
		return a.printJSON(raw)

	case "create":
		data, err := a.fields(rest, voucherFields)
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
			return usage("vouchers update <id> [k=v...]")
		}
		data, err := a.fields(rest[1:], voucherFields)
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
			return usage("vouchers delete <id>")
		}
		if !Confirm(a.reader, fmt.Sprintf("Delete voucher %s?", rest[0]), a.out) {
			fmt.Fprintln(a.out, "Cancelled")
			return nil
		}
		if _, err := svc.Delete(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Voucher %s deleted\n", rest[0])
		return nil

	default:
		return usage(vouchersUsage)
	}
}
