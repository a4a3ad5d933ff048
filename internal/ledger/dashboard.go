package ledger

import (
	"context"

	"golang.org/x/sync/errgroup"

	"spendlog/internal/core"
)

// Dashboard fetches the server-derived summary and the expense list in
// parallel, the way the dashboard screen consumes them. Either failure
// fails the whole refresh; partial dashboards are the caller's choice via
// the individual operations.
func (s *Store) Dashboard(ctx context.Context) (core.DashboardSummary, []core.Expense, error) {
	var (
		summary  core.DashboardSummary
		expenses []core.Expense
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = s.summary.Summary(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.DashboardSummary{}, nil, err
	}
	return summary, expenses, nil
}
