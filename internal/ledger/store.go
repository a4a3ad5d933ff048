// Package ledger owns the authoritative client-side view of the user's
// expenses. All remote CRUD goes through the Store, which reconciles the
// working set and the persisted cache only after the server confirms a
// change. There are no optimistic writes: a small latency cost buys the
// invariant that cached state never diverges from confirmed server state.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"spendlog/internal/api"
	"spendlog/internal/cache"
	"spendlog/internal/core"
	"spendlog/internal/log"
)

// Event ops, in the order mutations complete.
const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

type (
	// Event describes one confirmed change to the working set. Events are
	// never published for failed mutations.
	Event struct {
		Op      string
		Expense core.Expense
	}

	// Listener receives working-set change events in completion order.
	Listener func(Event)

	// Store is the ledger store. Mutations are serialized per record id:
	// a second create/update/delete on an id with one still in flight
	// fails with ErrConflict instead of racing. Operations on distinct
	// ids may run concurrently.
	Store struct {
		expenses api.ExpenseService
		summary  api.SummaryService
		cache    *cache.Cache
		logger   *log.Logger

		mu        sync.Mutex
		records   []core.Expense
		inflight  map[string]struct{}
		listeners []Listener

		// cacheMu orders cache writes: snapshot and Put happen under it,
		// so a write can never persist an older snapshot over a newer one.
		cacheMu sync.Mutex
	}
)

func New(expenses api.ExpenseService, summary api.SummaryService, c *cache.Cache, logger *log.Logger) *Store {
	return &Store{
		expenses: expenses,
		summary:  summary,
		cache:    c,
		logger:   logger.WithComponent(log.ComponentLedger),
		inflight: make(map[string]struct{}),
	}
}

// Subscribe registers a listener for working-set changes. Listeners are
// invoked synchronously after the mutation that triggered them.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Snapshot returns a copy of the current working set without touching the
// network. Order matches the last server response.
func (s *Store) Snapshot() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.records...)
}

// List fetches the expense list from the remote store. On success the
// working set and cache are replaced with the server's ordering, untouched.
// ErrUnauthorized propagates as-is for the caller's redirect handling. On
// ErrUnreachable the last cached list is returned alongside the error, so
// the caller can both render stale data and report the failure; with no
// cache the returned list is empty and the error still set, which keeps
// "failed to load" distinguishable from "no expenses yet".
func (s *Store) List(ctx context.Context) ([]core.Expense, error) {
	expenses, err := s.expenses.ListExpenses(ctx)
	if err != nil {
		if errors.Is(err, core.ErrUnreachable) {
			cached, ok, cacheErr := s.cache.Expenses(ctx)
			if cacheErr != nil {
				s.logger.WarnContext(ctx, "Cache read failed during offline fallback",
					log.FieldOperation, log.OpList, log.FieldError, cacheErr)
			}
			if ok {
				s.mu.Lock()
				s.records = append([]core.Expense(nil), cached...)
				s.mu.Unlock()
				return append([]core.Expense(nil), cached...), err
			}
		}
		return nil, err
	}

	s.mu.Lock()
	s.records = append([]core.Expense(nil), expenses...)
	s.mu.Unlock()
	s.writeCache(ctx)

	s.logger.DebugContext(ctx, "Working set refreshed",
		log.FieldOperation, log.OpList, "count", len(expenses))
	return append([]core.Expense(nil), expenses...), nil
}

// Create validates the payload, then asks the remote store to create the
// record. Validation failures surface before any network call. On remote
// failure of any kind nothing changes locally; there is no fallback record
// with a fabricated id.
func (s *Store) Create(ctx context.Context, p core.Payload) (core.Expense, error) {
	if err := p.Validate(); err != nil {
		return core.Expense{}, err
	}

	created, err := s.expenses.CreateExpense(ctx, p)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	s.mu.Lock()
	changed := s.applyUpsert(created)
	s.mu.Unlock()
	s.writeCache(ctx)

	s.logger.InfoContext(ctx, "Expense created",
		log.FieldOperation, log.OpCreate,
		log.FieldExpenseID, created.ID,
		log.FieldCategory, string(created.Category),
		log.FieldAmountCents, created.Amount.Cents)
	if changed {
		s.publish(Event{Op: OpCreated, Expense: created})
	}
	return created, nil
}

// Update sends a full-replacement payload for an existing record. The
// prior record is left untouched on any failure; only a confirmed response
// replaces it.
func (s *Store) Update(ctx context.Context, id string, p core.Payload) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.begin(id); err != nil {
		return err
	}
	defer s.end(id)

	updated, err := s.expenses.UpdateExpense(ctx, id, p)
	if err != nil {
		return fmt.Errorf("update expense %s: %w", id, err)
	}

	s.mu.Lock()
	changed := s.applyUpsert(updated)
	s.mu.Unlock()
	s.writeCache(ctx)

	s.logger.InfoContext(ctx, "Expense updated",
		log.FieldOperation, log.OpUpdate, log.FieldExpenseID, id)
	if changed {
		s.publish(Event{Op: OpUpdated, Expense: updated})
	}
	return nil
}

// Delete removes an existing record after the remote store confirms. The
// confirmation prompt, when wanted, happens at the call boundary; the
// store itself never asks.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.begin(id); err != nil {
		return err
	}
	defer s.end(id)

	if err := s.expenses.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}

	s.mu.Lock()
	removed, changed := s.applyRemove(id)
	s.mu.Unlock()
	s.writeCache(ctx)

	s.logger.InfoContext(ctx, "Expense deleted",
		log.FieldOperation, log.OpDelete, log.FieldExpenseID, id)
	if changed {
		s.publish(Event{Op: OpDeleted, Expense: removed})
	}
	return nil
}

// begin marks a mutation in flight for id. The record must be part of the
// working set, and no other mutation on the same id may be pending.
func (s *Store) begin(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.find(id); !exists {
		return core.ErrNotFound
	}
	if _, pending := s.inflight[id]; pending {
		return core.ErrConflict
	}
	s.inflight[id] = struct{}{}
	return nil
}

func (s *Store) end(id string) {
	s.mu.Lock()
	delete(s.inflight, id)
	s.mu.Unlock()
}

// find returns the index of id in the working set. Caller holds s.mu.
func (s *Store) find(id string) (int, bool) {
	for i := range s.records {
		if s.records[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// applyUpsert reconciles a confirmed record into the working set. It is
// idempotent: a record that already matches leaves the set untouched and
// reports no change, so replaying a stale successful response cannot
// corrupt state or fire a duplicate event. Caller holds s.mu.
func (s *Store) applyUpsert(e core.Expense) bool {
	if i, ok := s.find(e.ID); ok {
		if s.records[i].Equal(e) {
			return false
		}
		s.records[i] = e
		return true
	}
	s.records = append(s.records, e)
	return true
}

// applyRemove drops id from the working set, reporting whether anything
// was there to drop. Caller holds s.mu.
func (s *Store) applyRemove(id string) (core.Expense, bool) {
	i, ok := s.find(id)
	if !ok {
		return core.Expense{}, false
	}
	removed := s.records[i]
	s.records = append(s.records[:i], s.records[i+1:]...)
	return removed, true
}

// writeCache mirrors the working set into the persisted cache. The server
// state is already confirmed at this point, so a cache write failure is
// logged rather than failing the mutation. Snapshot and write hold
// cacheMu together; concurrent mutations on distinct ids would otherwise
// race their writes and could leave a stale snapshot as the last one in.
func (s *Store) writeCache(ctx context.Context) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.mu.Lock()
	snapshot := append([]core.Expense(nil), s.records...)
	s.mu.Unlock()
	if err := s.cache.SaveExpenses(ctx, snapshot); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist expense cache",
			log.FieldCacheSlot, cache.SlotExpenses, log.FieldError, err)
	}
}

func (s *Store) publish(e Event) {
	s.mu.Lock()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()
	for _, l := range listeners {
		l(e)
	}
}
