// Package memory is a Repository kept entirely in process memory. It backs
// tests and the "memory" database driver.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/store"
)

type Store struct {
	mu    sync.Mutex
	state *state
}

var _ store.Repository = (*Store)(nil)

type state struct {
	accounts map[string]*model.Account
	entries  map[string]*model.LedgerEntry
	order    []*model.LedgerEntry
	supply   []*model.SupplyEvent
	pool     model.GlobalPool
	seq      int64
}

func New() *Store {
	return &Store{state: &state{
		accounts: make(map[string]*model.Account),
		entries:  make(map[string]*model.LedgerEntry),
	}}
}

func (s *Store) Close() error { return nil }

// ExecTx serialises fn against every other call on the store. Changes made
// by fn are undone when it returns an error.
func (s *Store) ExecTx(ctx context.Context, fn func(store.Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txStore{state: s.state}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

func (s *Store) locked(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

func (s *Store) CreateAccount(ctx context.Context, acc *model.Account) error {
	return s.locked(func(st *state) error { _, err := st.createAccount(acc); return err })
}

func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	return s.locked(func(st *state) error { _, err := st.deleteAccount(id); return err })
}

func (s *Store) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	var out *model.Account
	err := s.locked(func(st *state) (err error) { out, err = st.getAccount(id); return })
	return out, err
}

func (s *Store) AccountExists(ctx context.Context, id string) (bool, error) {
	var ok bool
	_ = s.locked(func(st *state) error { _, ok = st.accounts[id]; return nil })
	return ok, nil
}

func (s *Store) SearchAccountsByEmail(ctx context.Context, prefix string, limit int) ([]*model.AccountSummary, error) {
	var out []*model.AccountSummary
	_ = s.locked(func(st *state) error { out = st.searchAccounts(prefix, limit); return nil })
	return out, nil
}

func (s *Store) SetVendor(ctx context.Context, id string, vendor bool) error {
	return s.locked(func(st *state) error { _, err := st.setVendor(id, vendor); return err })
}

func (s *Store) DebitAccount(ctx context.Context, id string, amount int64, pledged model.Credit, expectedVersion int64) error {
	return s.locked(func(st *state) error { _, err := st.debit(id, amount, pledged, expectedVersion); return err })
}

func (s *Store) CreditAccount(ctx context.Context, id string, amount int64) error {
	return s.locked(func(st *state) error { _, err := st.credit(id, amount); return err })
}

func (s *Store) CreditPayee(ctx context.Context, id string, amount int64, vendor bool) error {
	return s.locked(func(st *state) error { _, err := st.creditPayee(id, amount, vendor); return err })
}

func (s *Store) AddRegionCredit(ctx context.Context, id string, region model.Region, credit model.Credit) error {
	return s.locked(func(st *state) error { _, err := st.addRegionCredit(id, region, credit); return err })
}

func (s *Store) InsertLedgerEntry(ctx context.Context, e *model.LedgerEntry) error {
	return s.locked(func(st *state) error { _, err := st.insertEntry(e); return err })
}

func (s *Store) GetLedgerEntry(ctx context.Context, id string) (*model.LedgerEntry, error) {
	var out *model.LedgerEntry
	err := s.locked(func(st *state) (err error) { out, err = st.getEntry(id); return })
	return out, err
}

func (s *Store) ListPendingEntries(ctx context.Context, after store.EntryCursor, limit int) ([]*model.LedgerEntry, error) {
	var out []*model.LedgerEntry
	_ = s.locked(func(st *state) error { out = st.pending(after, limit); return nil })
	return out, nil
}

func (s *Store) ListEntriesByPayer(ctx context.Context, payerID string, limit int) ([]*model.LedgerEntry, error) {
	var out []*model.LedgerEntry
	_ = s.locked(func(st *state) error { out = st.byPayer(payerID, limit); return nil })
	return out, nil
}

func (s *Store) MarkEntryFulfilled(ctx context.Context, id string, region model.Region, at time.Time) (bool, error) {
	var ok bool
	err := s.locked(func(st *state) (err error) { ok, _, err = st.markFulfilled(id, region, at); return })
	return ok, err
}

func (s *Store) InsertSupplyEvent(ctx context.Context, ev *model.SupplyEvent) error {
	return s.locked(func(st *state) error { _, err := st.insertSupply(ev); return err })
}

func (s *Store) ListSupplyEvents(ctx context.Context, region model.Region, limit int) ([]*model.SupplyEvent, error) {
	var out []*model.SupplyEvent
	_ = s.locked(func(st *state) error { out = st.listSupply(region, limit); return nil })
	return out, nil
}

func (s *Store) ClaimLeftovers(ctx context.Context, region model.Region) ([]*model.SupplyEvent, error) {
	var out []*model.SupplyEvent
	_ = s.locked(func(st *state) error { out, _ = st.claim(region); return nil })
	return out, nil
}

func (s *Store) ReleaseLeftovers(ctx context.Context, ids []string) error {
	return s.locked(func(st *state) error { st.release(ids); return nil })
}

func (s *Store) GetPool(ctx context.Context) (*model.GlobalPool, error) {
	var out model.GlobalPool
	_ = s.locked(func(st *state) error { out = st.pool; return nil })
	return &out, nil
}

func (s *Store) AddWillPlant(ctx context.Context, credit model.Credit) error {
	return s.locked(func(st *state) error { st.bumpPool(credit, 0); return nil })
}

func (s *Store) AddDidPlant(ctx context.Context, credit model.Credit) error {
	return s.locked(func(st *state) error { st.bumpPool(0, credit); return nil })
}

// undo reverses a single mutation.
type undo func()

func (st *state) createAccount(acc *model.Account) (undo, error) {
	if _, ok := st.accounts[acc.ID]; ok {
		return nil, store.ErrAccountExists
	}
	cp := *acc
	cp.Version = 0
	st.accounts[acc.ID] = &cp
	acc.Version = 0
	return func() { delete(st.accounts, acc.ID) }, nil
}

func (st *state) deleteAccount(id string) (undo, error) {
	acc, ok := st.accounts[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	delete(st.accounts, id)
	return func() { st.accounts[id] = acc }, nil
}

func (st *state) getAccount(id string) (*model.Account, error) {
	acc, ok := st.accounts[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	cp := *acc
	return &cp, nil
}

func (st *state) searchAccounts(prefix string, limit int) []*model.AccountSummary {
	var out []*model.AccountSummary
	for _, acc := range st.accounts {
		if strings.HasPrefix(acc.Email, prefix) {
			out = append(out, &model.AccountSummary{ID: acc.ID, Email: acc.Email, IsVendor: acc.IsVendor})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Email != out[j].Email {
			return out[i].Email < out[j].Email
		}
		return out[i].ID < out[j].ID
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// mutateAccount snapshots the account, applies fn and returns an undo that
// restores the snapshot.
func (st *state) mutateAccount(id string, missing error, fn func(acc *model.Account) error) (undo, error) {
	acc, ok := st.accounts[id]
	if !ok {
		return nil, missing
	}
	before := *acc
	if err := fn(acc); err != nil {
		return nil, err
	}
	acc.Version++
	return func() { *acc = before }, nil
}

func (st *state) setVendor(id string, vendor bool) (undo, error) {
	return st.mutateAccount(id, store.ErrRecordNotFound, func(acc *model.Account) error {
		acc.IsVendor = vendor
		return nil
	})
}

func (st *state) debit(id string, amount int64, pledged model.Credit, expectedVersion int64) (undo, error) {
	return st.mutateAccount(id, store.ErrConflict, func(acc *model.Account) error {
		if acc.Version != expectedVersion || acc.Balance < amount {
			return store.ErrConflict
		}
		acc.Balance -= amount
		acc.AccruedCredit.Total += pledged
		return nil
	})
}

func (st *state) credit(id string, amount int64) (undo, error) {
	return st.mutateAccount(id, store.ErrRecordNotFound, func(acc *model.Account) error {
		acc.Balance += amount
		return nil
	})
}

func (st *state) creditPayee(id string, amount int64, vendor bool) (undo, error) {
	return st.mutateAccount(id, store.ErrConflict, func(acc *model.Account) error {
		if acc.IsVendor != vendor {
			return store.ErrConflict
		}
		acc.Balance += amount
		return nil
	})
}

func (st *state) addRegionCredit(id string, region model.Region, credit model.Credit) (undo, error) {
	if !region.Valid() {
		return nil, fmt.Errorf("%w: invalid region %d", store.ErrConstraintViolation, uint8(region))
	}
	return st.mutateAccount(id, store.ErrRecordNotFound, func(acc *model.Account) error {
		acc.AccruedCredit.AddRegion(region, credit)
		return nil
	})
}

func (st *state) insertEntry(e *model.LedgerEntry) (undo, error) {
	if _, ok := st.entries[e.ID]; ok {
		return nil, fmt.Errorf("%w: ledger entry %s", store.ErrConstraintViolation, e.ID)
	}
	if e.Amount <= 0 || e.Fee < 0 || e.Credit < 0 {
		return nil, fmt.Errorf("%w: ledger entry %s", store.ErrConstraintViolation, e.ID)
	}
	st.seq++
	e.Seq = st.seq
	cp := *e
	st.entries[e.ID] = &cp
	st.order = append(st.order, &cp)
	return func() {
		delete(st.entries, e.ID)
		st.order = st.order[:len(st.order)-1]
		st.seq--
	}, nil
}

func (st *state) getEntry(id string) (*model.LedgerEntry, error) {
	e, ok := st.entries[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	return copyEntry(e), nil
}

func copyEntry(e *model.LedgerEntry) *model.LedgerEntry {
	cp := *e
	if e.FulfilledAt != nil {
		t := *e.FulfilledAt
		cp.FulfilledAt = &t
	}
	return &cp
}

func (st *state) pending(after store.EntryCursor, limit int) []*model.LedgerEntry {
	var candidates []*model.LedgerEntry
	for _, e := range st.order {
		if e.Status != model.StatusPending || e.Credit <= 0 {
			continue
		}
		if after.Before(e.CreatedAt.UnixNano(), e.Seq) {
			continue
		}
		candidates = append(candidates, e)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Seq < b.Seq
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]*model.LedgerEntry, len(candidates))
	for i, e := range candidates {
		out[i] = copyEntry(e)
	}
	return out
}

func (st *state) byPayer(payerID string, limit int) []*model.LedgerEntry {
	var out []*model.LedgerEntry
	for i := len(st.order) - 1; i >= 0 && len(out) < limit; i-- {
		if e := st.order[i]; e.PayerID == payerID {
			out = append(out, copyEntry(e))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (st *state) markFulfilled(id string, region model.Region, at time.Time) (bool, undo, error) {
	e, ok := st.entries[id]
	if !ok || e.Status != model.StatusPending {
		return false, nil, nil
	}
	before := *e
	fulfilledAt := at.UTC()
	e.Status = model.StatusFulfilled
	e.Region = region
	e.FulfilledAt = &fulfilledAt
	return true, func() { *e = before }, nil
}

func (st *state) insertSupply(ev *model.SupplyEvent) (undo, error) {
	for _, existing := range st.supply {
		if existing.ID == ev.ID {
			return nil, fmt.Errorf("%w: supply event %s", store.ErrConstraintViolation, ev.ID)
		}
	}
	cp := *ev
	st.supply = append(st.supply, &cp)
	return func() { st.supply = st.supply[:len(st.supply)-1] }, nil
}

func (st *state) listSupply(region model.Region, limit int) []*model.SupplyEvent {
	var out []*model.SupplyEvent
	for i := len(st.supply) - 1; i >= 0 && len(out) < limit; i-- {
		ev := st.supply[i]
		if region.Valid() && ev.Region != region {
			continue
		}
		cp := *ev
		out = append(out, &cp)
	}
	return out
}

func (st *state) claim(region model.Region) ([]*model.SupplyEvent, undo) {
	var (
		out     []*model.SupplyEvent
		claimed []*model.SupplyEvent
	)
	for _, ev := range st.supply {
		if ev.Region != region || ev.Claimed || ev.Leftover <= 0 {
			continue
		}
		ev.Claimed = true
		claimed = append(claimed, ev)
		cp := *ev
		out = append(out, &cp)
	}
	return out, func() {
		for _, ev := range claimed {
			ev.Claimed = false
		}
	}
}

func (st *state) release(ids []string) undo {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	var released []*model.SupplyEvent
	for _, ev := range st.supply {
		if _, ok := set[ev.ID]; ok && ev.Claimed {
			ev.Claimed = false
			released = append(released, ev)
		}
	}
	return func() {
		for _, ev := range released {
			ev.Claimed = true
		}
	}
}

func (st *state) bumpPool(will, did model.Credit) undo {
	before := st.pool
	st.pool.WillPlant += will
	st.pool.DidPlant += did
	st.pool.Version++
	return func() { st.pool = before }
}
