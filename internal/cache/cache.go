package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"spendlog/internal/core"
)

// Cache is the typed view over the three slots.
type Cache struct {
	store Store
}

func New(store Store) *Cache {
	return &Cache{store: store}
}

// Expenses returns the cached expense list. ok is false when the slot has
// never been written.
func (c *Cache) Expenses(ctx context.Context) ([]core.Expense, bool, error) {
	raw, ok, err := c.store.Get(ctx, SlotExpenses)
	if err != nil || !ok {
		return nil, false, err
	}
	var expenses []core.Expense
	if err := json.Unmarshal(raw, &expenses); err != nil {
		return nil, false, fmt.Errorf("decode cached expenses: %w", err)
	}
	return expenses, true, nil
}

// SaveExpenses replaces the cached expense list with a confirmed snapshot.
func (c *Cache) SaveExpenses(ctx context.Context, expenses []core.Expense) error {
	raw, err := json.Marshal(expenses)
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}
	return c.store.Put(ctx, SlotExpenses, raw)
}

func (c *Cache) Profile(ctx context.Context) (core.Profile, bool, error) {
	raw, ok, err := c.store.Get(ctx, SlotProfile)
	if err != nil || !ok {
		return core.Profile{}, false, err
	}
	var p core.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return core.Profile{}, false, fmt.Errorf("decode cached profile: %w", err)
	}
	return p, true, nil
}

func (c *Cache) SaveProfile(ctx context.Context, p core.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return c.store.Put(ctx, SlotProfile, raw)
}

func (c *Cache) Token(ctx context.Context) (string, bool, error) {
	raw, ok, err := c.store.Get(ctx, SlotToken)
	if err != nil || !ok {
		return "", false, err
	}
	return string(raw), true, nil
}

func (c *Cache) SaveToken(ctx context.Context, token string) error {
	return c.store.Put(ctx, SlotToken, []byte(token))
}

// ClearToken removes only the credential slot. Expenses and profile stay.
func (c *Cache) ClearToken(ctx context.Context) error {
	return c.store.Delete(ctx, SlotToken)
}

func (c *Cache) Close() error {
	return c.store.Close()
}
