package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/lib/pq"
	sqlite "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/canopy/internal/model"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"), Migrations)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedAccount(t *testing.T, s *Store, id string, balance int64) *model.Account {
	t.Helper()
	acc := &model.Account{
		ID:        id,
		Email:     id + "@example.com",
		Balance:   balance,
		CreatedAt: time.Unix(1700000000, 0).UTC(),
	}
	require.NoError(t, s.CreateAccount(context.Background(), acc))
	return acc
}

func TestRebind(t *testing.T) {
	q := "UPDATE t SET a = ? WHERE b = ? AND c = ?"
	assert.Equal(t, q, dialectSQLite.rebind(q))
	assert.Equal(t, "UPDATE t SET a = $1 WHERE b = $2 AND c = $3", dialectPostgres.rebind(q))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\`, escapeLike(`a%b_c\`))
}

func TestAccountLifecycle(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	seedAccount(t, s, "alice", 500)
	err := s.CreateAccount(ctx, &model.Account{ID: "alice", Email: "x@example.com", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrAccountExists)

	acc, err := s.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(500), acc.Balance)
	assert.Equal(t, "alice@example.com", acc.Email)
	assert.Equal(t, int64(0), acc.Version)

	exists, err := s.AccountExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.SetVendor(ctx, "alice", true))
	acc, err = s.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, acc.IsVendor)
	assert.Equal(t, int64(1), acc.Version)

	require.NoError(t, s.DeleteAccount(ctx, "alice"))
	_, err = s.GetAccount(ctx, "alice")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.ErrorIs(t, s.DeleteAccount(ctx, "alice"), ErrRecordNotFound)
}

func TestDebitAccountCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	seedAccount(t, s, "alice", 1000)

	require.NoError(t, s.DebitAccount(ctx, "alice", 400, model.Credit(400_000), 0))

	// stale version
	err := s.DebitAccount(ctx, "alice", 100, 0, 0)
	assert.ErrorIs(t, err, ErrConflict)

	// overdraft
	err = s.DebitAccount(ctx, "alice", 601, 0, 1)
	assert.ErrorIs(t, err, ErrConflict)

	err = s.DebitAccount(ctx, "nobody", 1, 0, 0)
	assert.ErrorIs(t, err, ErrConflict)

	acc, err := s.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(600), acc.Balance)
	assert.Equal(t, model.Credit(400_000), acc.AccruedCredit.Total)
	assert.Equal(t, int64(1), acc.Version)
}

func TestCreditPayeeChecksVendorFlag(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	seedAccount(t, s, "shop", 0)
	require.NoError(t, s.SetVendor(ctx, "shop", true))

	require.NoError(t, s.CreditPayee(ctx, "shop", 980, true))
	assert.ErrorIs(t, s.CreditPayee(ctx, "shop", 1000, false), ErrConflict)
	assert.ErrorIs(t, s.CreditPayee(ctx, "ghost", 1000, false), ErrConflict)

	acc, err := s.GetAccount(ctx, "shop")
	require.NoError(t, err)
	assert.Equal(t, int64(980), acc.Balance)
}

func TestAddRegionCredit(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	seedAccount(t, s, "alice", 0)

	require.NoError(t, s.AddRegionCredit(ctx, "alice", model.RegionC, model.Credit(1_500_000)))
	require.NoError(t, s.AddRegionCredit(ctx, "alice", model.RegionC, model.Credit(500_000)))
	require.NoError(t, s.AddRegionCredit(ctx, "alice", model.RegionF, model.Credit(1)))

	acc, err := s.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, model.Credit(2_000_000), acc.AccruedCredit.Region(model.RegionC))
	assert.Equal(t, model.Credit(1), acc.AccruedCredit.Region(model.RegionF))
	assert.Equal(t, model.Credit(0), acc.AccruedCredit.Region(model.RegionA))

	assert.ErrorIs(t, s.AddRegionCredit(ctx, "nobody", model.RegionA, 1), ErrRecordNotFound)
	assert.ErrorIs(t, s.AddRegionCredit(ctx, "alice", model.Region(0), 1), ErrConstraintViolation)
}

func TestSearchAccountsByEmail(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	for _, id := range []string{"bob", "bobby", "carol", "bo_x"} {
		seedAccount(t, s, id, 0)
	}

	got, err := s.SearchAccountsByEmail(ctx, "bob", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "bob@example.com", got[0].Email)
	assert.Equal(t, "bobby@example.com", got[1].Email)

	got, err = s.SearchAccountsByEmail(ctx, "bo_", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bo_x", got[0].ID)

	got, err = s.SearchAccountsByEmail(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func insertEntry(t *testing.T, s *Store, id string, credit model.Credit, at time.Time) *model.LedgerEntry {
	t.Helper()
	e := &model.LedgerEntry{
		ID:        id,
		PayerID:   "alice",
		PayeeID:   "bob",
		Amount:    1000,
		Fee:       20,
		Credit:    credit,
		Status:    model.StatusPending,
		CreatedAt: at,
	}
	require.NoError(t, s.InsertLedgerEntry(context.Background(), e))
	return e
}

func TestPendingQueueKeyset(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	base := time.Unix(1700000000, 0).UTC()

	insertEntry(t, s, "e1", model.CreditPerTree, base)
	insertEntry(t, s, "e2", model.CreditPerTree, base)
	insertEntry(t, s, "zero", 0, base.Add(time.Second))
	insertEntry(t, s, "e3", model.CreditPerTree, base.Add(2*time.Second))

	page, err := s.ListPendingEntries(ctx, EntryCursor{}, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "e1", page[0].ID)
	assert.Equal(t, "e2", page[1].ID)
	assert.Less(t, page[0].Seq, page[1].Seq)

	page, err = s.ListPendingEntries(ctx, CursorAfter(page[1]), 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "e3", page[0].ID)

	ok, err := s.MarkEntryFulfilled(ctx, "e1", model.RegionB, base.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.MarkEntryFulfilled(ctx, "e1", model.RegionA, base.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	e, err := s.GetLedgerEntry(ctx, "e1")
	require.NoError(t, err)
	region, fulfilled := e.Fulfillment()
	assert.True(t, fulfilled)
	assert.Equal(t, model.RegionB, region)
	require.NotNil(t, e.FulfilledAt)

	page, err = s.ListPendingEntries(ctx, EntryCursor{}, 10)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestListEntriesByPayer(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	base := time.Unix(1700000000, 0).UTC()
	for i, id := range []string{"a", "b", "c"} {
		insertEntry(t, s, id, 0, base.Add(time.Duration(i)*time.Second))
	}

	got, err := s.ListEntriesByPayer(ctx, "alice", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c", got[0].ID)
	assert.Equal(t, "b", got[1].ID)

	got, err = s.ListEntriesByPayer(ctx, "bob", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClaimAndReleaseLeftovers(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	now := time.Unix(1700000000, 0).UTC()

	require.NoError(t, s.InsertSupplyEvent(ctx, &model.SupplyEvent{ID: "s1", Region: model.RegionA, Quantity: 5, Leftover: 500_000, CreatedAt: now}))
	require.NoError(t, s.InsertSupplyEvent(ctx, &model.SupplyEvent{ID: "s2", Region: model.RegionB, Quantity: 5, Leftover: 100, CreatedAt: now}))
	require.NoError(t, s.InsertSupplyEvent(ctx, &model.SupplyEvent{ID: "s3", Region: model.RegionA, Quantity: 5, CreatedAt: now}))

	claimed, err := s.ClaimLeftovers(ctx, model.RegionA)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, "s1", claimed[0].ID)

	again, err := s.ClaimLeftovers(ctx, model.RegionA)
	require.NoError(t, err)
	assert.Empty(t, again)

	require.NoError(t, s.ReleaseLeftovers(ctx, []string{"s1"}))
	claimed, err = s.ClaimLeftovers(ctx, model.RegionA)
	require.NoError(t, err)
	assert.Len(t, claimed, 1)

	all, err := s.ListSupplyEvents(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "s3", all[0].ID)

	onlyB, err := s.ListSupplyEvents(ctx, model.RegionB, 10)
	require.NoError(t, err)
	require.Len(t, onlyB, 1)
	assert.Equal(t, model.Credit(100), onlyB[0].Leftover)
}

func TestPoolCounters(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	require.NoError(t, s.AddWillPlant(ctx, 3_000_000))
	require.NoError(t, s.AddDidPlant(ctx, 1_000_000))

	pool, err := s.GetPool(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Credit(3_000_000), pool.WillPlant)
	assert.Equal(t, model.Credit(1_000_000), pool.DidPlant)
	assert.Equal(t, model.Credit(2_000_000), pool.Outstanding())
	assert.Equal(t, int64(2), pool.Version)
}

func TestExecTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	seedAccount(t, s, "alice", 100)

	boom := errors.New("boom")
	err := s.ExecTx(ctx, func(r Repository) error {
		require.NoError(t, r.CreditAccount(ctx, "alice", 50))
		require.NoError(t, r.AddWillPlant(ctx, 10))
		assert.ErrorIs(t, r.ExecTx(ctx, func(Repository) error { return nil }), ErrInTransaction)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	acc, err := s.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), acc.Balance)
	pool, err := s.GetPool(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Credit(0), pool.WillPlant)

	err = s.ExecTx(ctx, func(r Repository) error {
		return r.CreditAccount(ctx, "alice", 50)
	})
	require.NoError(t, err)
	acc, err = s.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(150), acc.Balance)
}

func TestClassifySerializationFailures(t *testing.T) {
	for _, code := range []string{pgSerializationFailure, pgDeadlockDetected} {
		err := fmt.Errorf("failed to credit account b: %w", &pq.Error{Code: pq.ErrorCode(code)})
		assert.ErrorIs(t, dialectPostgres.classify(err), ErrConflict, code)
	}

	unique := &pq.Error{Code: pgUniqueViolation}
	assert.Same(t, error(unique), dialectPostgres.classify(unique))

	busy := fmt.Errorf("failed to debit: %w", sqlite.Error{Code: sqlite.ErrBusy})
	assert.ErrorIs(t, dialectSQLite.classify(busy), ErrConflict)
	assert.Nil(t, dialectSQLite.classify(nil))
}

func TestExecTxMapsStatementConflicts(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	seedAccount(t, s, "alice", 100)

	err := s.ExecTx(ctx, func(r Repository) error {
		require.NoError(t, r.CreditAccount(ctx, "alice", 50))
		return fmt.Errorf("failed to debit account alice: %w", sqlite.Error{Code: sqlite.ErrLocked})
	})
	assert.ErrorIs(t, err, ErrConflict)

	acc, err := s.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), acc.Balance)
}
