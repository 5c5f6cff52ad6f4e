package memory

import (
	"context"
	"time"

	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/store"
)

// txStore is the view handed to ExecTx callbacks. The owning Store's mutex
// is already held, so it touches state directly and journals every change.
type txStore struct {
	state   *state
	journal []undo
}

var _ store.Repository = (*txStore)(nil)

func (t *txStore) record(u undo, err error) error {
	if err == nil && u != nil {
		t.journal = append(t.journal, u)
	}
	return err
}

func (t *txStore) rollback() {
	for i := len(t.journal) - 1; i >= 0; i-- {
		t.journal[i]()
	}
	t.journal = nil
}

func (t *txStore) ExecTx(ctx context.Context, fn func(store.Repository) error) error {
	return store.ErrInTransaction
}

func (t *txStore) Close() error { return nil }

func (t *txStore) CreateAccount(ctx context.Context, acc *model.Account) error {
	return t.record(t.state.createAccount(acc))
}

func (t *txStore) DeleteAccount(ctx context.Context, id string) error {
	return t.record(t.state.deleteAccount(id))
}

func (t *txStore) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	return t.state.getAccount(id)
}

func (t *txStore) AccountExists(ctx context.Context, id string) (bool, error) {
	_, ok := t.state.accounts[id]
	return ok, nil
}

func (t *txStore) SearchAccountsByEmail(ctx context.Context, prefix string, limit int) ([]*model.AccountSummary, error) {
	return t.state.searchAccounts(prefix, limit), nil
}

func (t *txStore) SetVendor(ctx context.Context, id string, vendor bool) error {
	return t.record(t.state.setVendor(id, vendor))
}

func (t *txStore) DebitAccount(ctx context.Context, id string, amount int64, pledged model.Credit, expectedVersion int64) error {
	return t.record(t.state.debit(id, amount, pledged, expectedVersion))
}

func (t *txStore) CreditAccount(ctx context.Context, id string, amount int64) error {
	return t.record(t.state.credit(id, amount))
}

func (t *txStore) CreditPayee(ctx context.Context, id string, amount int64, vendor bool) error {
	return t.record(t.state.creditPayee(id, amount, vendor))
}

func (t *txStore) AddRegionCredit(ctx context.Context, id string, region model.Region, credit model.Credit) error {
	return t.record(t.state.addRegionCredit(id, region, credit))
}

func (t *txStore) InsertLedgerEntry(ctx context.Context, e *model.LedgerEntry) error {
	return t.record(t.state.insertEntry(e))
}

func (t *txStore) GetLedgerEntry(ctx context.Context, id string) (*model.LedgerEntry, error) {
	return t.state.getEntry(id)
}

func (t *txStore) ListPendingEntries(ctx context.Context, after store.EntryCursor, limit int) ([]*model.LedgerEntry, error) {
	return t.state.pending(after, limit), nil
}

func (t *txStore) ListEntriesByPayer(ctx context.Context, payerID string, limit int) ([]*model.LedgerEntry, error) {
	return t.state.byPayer(payerID, limit), nil
}

func (t *txStore) MarkEntryFulfilled(ctx context.Context, id string, region model.Region, at time.Time) (bool, error) {
	ok, u, err := t.state.markFulfilled(id, region, at)
	return ok, t.record(u, err)
}

func (t *txStore) InsertSupplyEvent(ctx context.Context, ev *model.SupplyEvent) error {
	return t.record(t.state.insertSupply(ev))
}

func (t *txStore) ListSupplyEvents(ctx context.Context, region model.Region, limit int) ([]*model.SupplyEvent, error) {
	return t.state.listSupply(region, limit), nil
}

func (t *txStore) ClaimLeftovers(ctx context.Context, region model.Region) ([]*model.SupplyEvent, error) {
	out, u := t.state.claim(region)
	return out, t.record(u, nil)
}

func (t *txStore) ReleaseLeftovers(ctx context.Context, ids []string) error {
	return t.record(t.state.release(ids), nil)
}

func (t *txStore) GetPool(ctx context.Context) (*model.GlobalPool, error) {
	p := t.state.pool
	return &p, nil
}

func (t *txStore) AddWillPlant(ctx context.Context, credit model.Credit) error {
	return t.record(t.state.bumpPool(credit, 0), nil)
}

func (t *txStore) AddDidPlant(ctx context.Context, credit model.Credit) error {
	return t.record(t.state.bumpPool(0, credit), nil)
}
