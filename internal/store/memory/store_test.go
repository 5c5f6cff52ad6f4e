package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/store"
)

func TestExecTxUndoesEveryMutation(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Unix(1700000000, 0).UTC()
	require.NoError(t, s.CreateAccount(ctx, &model.Account{ID: "alice", Email: "a@x.io", Balance: 100, CreatedAt: now}))
	require.NoError(t, s.InsertSupplyEvent(ctx, &model.SupplyEvent{ID: "s0", Region: model.RegionA, Leftover: 5, CreatedAt: now}))

	boom := errors.New("boom")
	err := s.ExecTx(ctx, func(r store.Repository) error {
		require.NoError(t, r.DebitAccount(ctx, "alice", 40, 40_000, 0))
		require.NoError(t, r.CreateAccount(ctx, &model.Account{ID: "bob", Email: "b@x.io", CreatedAt: now}))
		require.NoError(t, r.CreditAccount(ctx, "bob", 40))
		require.NoError(t, r.InsertLedgerEntry(ctx, &model.LedgerEntry{ID: "e1", PayerID: "alice", PayeeID: "bob", Amount: 40, Status: model.StatusPending, CreatedAt: now}))
		claimed, err := r.ClaimLeftovers(ctx, model.RegionA)
		require.NoError(t, err)
		require.Len(t, claimed, 1)
		require.NoError(t, r.AddWillPlant(ctx, 40_000))
		return boom
	})
	require.ErrorIs(t, err, boom)

	acc, err := s.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), acc.Balance)
	assert.Equal(t, model.Credit(0), acc.AccruedCredit.Total)
	assert.Equal(t, int64(0), acc.Version)

	_, err = s.GetAccount(ctx, "bob")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
	_, err = s.GetLedgerEntry(ctx, "e1")
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	pool, err := s.GetPool(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.GlobalPool{}, *pool)

	claimed, err := s.ClaimLeftovers(ctx, model.RegionA)
	require.NoError(t, err)
	assert.Len(t, claimed, 1)

	// sequence numbers are reused after rollback
	e := &model.LedgerEntry{ID: "e2", PayerID: "alice", PayeeID: "alice", Amount: 1, Status: model.StatusPending, CreatedAt: now}
	require.NoError(t, s.InsertLedgerEntry(ctx, e))
	assert.Equal(t, int64(1), e.Seq)
}

func TestReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.CreateAccount(ctx, &model.Account{ID: "alice", Balance: 10}))

	acc, err := s.GetAccount(ctx, "alice")
	require.NoError(t, err)
	acc.Balance = 999

	again, err := s.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(10), again.Balance)
}

func TestPendingOrdersByCreatedAtThenSeq(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Unix(1700000000, 0).UTC()

	add := func(id string, at time.Time, credit model.Credit) {
		require.NoError(t, s.InsertLedgerEntry(ctx, &model.LedgerEntry{
			ID: id, PayerID: "p", PayeeID: "q", Amount: 1, Credit: credit,
			Status: model.StatusPending, CreatedAt: at,
		}))
	}
	add("late", base.Add(time.Minute), 1)
	add("early", base, 1)
	add("early2", base, 1)
	add("empty", base, 0)

	page, err := s.ListPendingEntries(ctx, store.EntryCursor{}, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "early", page[0].ID)
	assert.Equal(t, "early2", page[1].ID)

	page, err = s.ListPendingEntries(ctx, store.CursorAfter(page[1]), 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "late", page[0].ID)
}

func TestDebitConflicts(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.CreateAccount(ctx, &model.Account{ID: "alice", Balance: 10}))

	assert.ErrorIs(t, s.DebitAccount(ctx, "alice", 5, 0, 3), store.ErrConflict)
	assert.ErrorIs(t, s.DebitAccount(ctx, "alice", 11, 0, 0), store.ErrConflict)
	assert.ErrorIs(t, s.DebitAccount(ctx, "ghost", 1, 0, 0), store.ErrConflict)
	require.NoError(t, s.DebitAccount(ctx, "alice", 10, 0, 0))
}

func TestNestedExecTxRejected(t *testing.T) {
	ctx := context.Background()
	s := New()
	err := s.ExecTx(ctx, func(r store.Repository) error {
		return r.ExecTx(ctx, func(store.Repository) error { return nil })
	})
	assert.ErrorIs(t, err, store.ErrInTransaction)
}

func TestCreditPayeeConflictsOnVendorChange(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.CreateAccount(ctx, &model.Account{ID: "shop", IsVendor: true}))

	err := s.ExecTx(ctx, func(r store.Repository) error {
		require.NoError(t, r.CreditPayee(ctx, "shop", 980, true))
		return r.CreditPayee(ctx, "shop", 20, false)
	})
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.ErrorIs(t, s.CreditPayee(ctx, "ghost", 1, false), store.ErrConflict)

	acc, err := s.GetAccount(ctx, "shop")
	require.NoError(t, err)
	assert.Equal(t, int64(0), acc.Balance)
}
