package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/poskoadmin/internal/client/models"
)

// summary is what the dashboard shows.
type summary struct {
	NetRevenue       json.Number
	Orders           int
	Providers        int
	PendingProviders int
}

// Dashboard loads platform stats, providers and orders concurrently and
// prints the headline numbers.
func (a *App) Dashboard(ctx context.Context) error {
	var stats, providers, orders json.RawMessage

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats, err = a.services.Finance.PlatformStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		providers, err = a.services.Providers.List(gctx, nil)
		return err
	})
	g.Go(func() (err error) {
		orders, err = a.services.Orders.List(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s := summarize(stats, providers, orders)
	fmt.Fprintf(a.out, "Net revenue:  %s\n", s.NetRevenue)
	fmt.Fprintf(a.out, "Orders:       %d\n", s.Orders)
	fmt.Fprintf(a.out, "Providers:    %d (%d pending verification)\n", s.Providers, s.PendingProviders)
	return nil
}

func summarize(stats, providers, orders json.RawMessage) summary {
	s := summary{NetRevenue: "0"}

	var env models.Envelope
	if err := json.Unmarshal(stats, &env); err == nil {
		var data struct {
			NetRevenue json.Number `json:"netRevenue"`
		}
		if err := json.Unmarshal(env.Data, &data); err == nil && data.NetRevenue != "" {
			s.NetRevenue = data.NetRevenue
		}
	}

	list := items(providers)
	s.Providers = len(list)
	for _, raw := range list {
		var p struct {
			VerificationStatus string `json:"verificationStatus"`
		}
		if json.Unmarshal(raw, &p) == nil && p.VerificationStatus == "pending" {
			s.PendingProviders++
		}
	}

	s.Orders = len(items(orders))
	return s
}
