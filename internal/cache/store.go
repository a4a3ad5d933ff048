// Package cache implements the persisted local cache: a key/value store
// holding the serialized expense list, the user profile and the session
// credential in three independent slots. The cache mirrors confirmed ledger
// state and never originates it.
package cache

import "context"

// Slot keys. The slots carry no cross-references: clearing the credential
// leaves expenses and profile in place for re-login convenience.
const (
	SlotExpenses = "expenses"
	SlotProfile  = "profile"
	SlotToken    = "auth_token"
)

// Store is the raw key/value layer beneath the typed cache.
type Store interface {
	// Get returns the slot's value and whether the slot exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put writes the slot, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
