package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"spendlog/internal/cache"
	"spendlog/internal/core"
	"spendlog/internal/ledger"
	"spendlog/internal/log"
)

// fakeRemote serves the expense endpoints from memory, the way a fresh
// process sees the server: records exist remotely before any local state.
type fakeRemote struct {
	items []core.Expense
}

func (f *fakeRemote) ListExpenses(context.Context) ([]core.Expense, error) {
	return append([]core.Expense(nil), f.items...), nil
}

func (f *fakeRemote) CreateExpense(_ context.Context, p core.Payload) (core.Expense, error) {
	e := core.Expense{ID: "e-new", Amount: p.Amount, Category: p.Category, Date: p.Date, Description: p.Description}
	f.items = append(f.items, e)
	return e, nil
}

func (f *fakeRemote) UpdateExpense(_ context.Context, id string, p core.Payload) (core.Expense, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i] = core.Expense{ID: id, Amount: p.Amount, Category: p.Category, Date: p.Date, Description: p.Description}
			return f.items[i], nil
		}
	}
	return core.Expense{}, core.ErrNotFound
}

func (f *fakeRemote) DeleteExpense(_ context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeRemote) Summary(context.Context) (core.DashboardSummary, error) {
	return core.DashboardSummary{TransactionCount: len(f.items)}, nil
}

func newTestApp(remote *fakeRemote) *App {
	logger := log.Discard()
	return &App{
		logger: logger,
		store:  ledger.New(remote, remote, cache.New(cache.NewMemoryStore()), logger),
	}
}

func TestRmWithoutPriorList(t *testing.T) {
	remote := &fakeRemote{items: []core.Expense{{
		ID: "e1", Amount: core.Money{Cents: 700}, Category: core.Travel,
		Date: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), Description: "Metro",
	}}}
	app := newTestApp(remote)

	cmd := app.rmCmd()
	cmd.SetContext(context.Background())
	if err := cmd.Flags().Set("yes", "true"); err != nil {
		t.Fatal(err)
	}

	// The working set is empty; rm must refresh before deleting.
	if err := cmd.RunE(cmd, []string{"e1"}); err != nil {
		t.Fatalf("rm failed on a record the server has: %v", err)
	}
	if len(remote.items) != 0 {
		t.Fatalf("record not deleted remotely: %v", remote.items)
	}
}

func TestRmUnknownID(t *testing.T) {
	app := newTestApp(&fakeRemote{})

	cmd := app.rmCmd()
	cmd.SetContext(context.Background())
	if err := cmd.Flags().Set("yes", "true"); err != nil {
		t.Fatal(err)
	}

	if err := cmd.RunE(cmd, []string{"missing"}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestEditWithoutPriorList(t *testing.T) {
	remote := &fakeRemote{items: []core.Expense{{
		ID: "e1", Amount: core.Money{Cents: 700}, Category: core.Travel,
		Date: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC), Description: "Metro",
	}}}
	app := newTestApp(remote)

	cmd := app.editCmd()
	cmd.SetContext(context.Background())
	if err := cmd.Flags().Set("description", "Metro pass"); err != nil {
		t.Fatal(err)
	}

	if err := cmd.RunE(cmd, []string{"e1"}); err != nil {
		t.Fatalf("edit failed on a record the server has: %v", err)
	}
	if remote.items[0].Description != "Metro pass" {
		t.Fatalf("description = %q", remote.items[0].Description)
	}
	if remote.items[0].Amount.Cents != 700 {
		t.Fatalf("blank flags must keep current values, amount = %d", remote.items[0].Amount.Cents)
	}
}
