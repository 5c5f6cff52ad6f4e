package store

import (
	"context"
	"time"

	"github.com/hance08/canopy/internal/model"
)

type AccountRepository interface {
	CreateAccount(ctx context.Context, acc *model.Account) error
	DeleteAccount(ctx context.Context, id string) error
	GetAccount(ctx context.Context, id string) (*model.Account, error)
	AccountExists(ctx context.Context, id string) (bool, error)
	SearchAccountsByEmail(ctx context.Context, prefix string, limit int) ([]*model.AccountSummary, error)
	SetVendor(ctx context.Context, id string, vendor bool) error

	// DebitAccount subtracts amount from the balance and adds pledged to the
	// accrued credit total, provided the row is still at expectedVersion.
	// A version mismatch or a missing row yields ErrConflict.
	DebitAccount(ctx context.Context, id string, amount int64, pledged model.Credit, expectedVersion int64) error
	CreditAccount(ctx context.Context, id string, amount int64) error

	// CreditPayee adds amount to the balance provided the vendor flag still
	// equals vendor. A changed flag or a missing row yields ErrConflict.
	CreditPayee(ctx context.Context, id string, amount int64, vendor bool) error
	AddRegionCredit(ctx context.Context, id string, region model.Region, credit model.Credit) error
}

type LedgerRepository interface {
	InsertLedgerEntry(ctx context.Context, e *model.LedgerEntry) error
	GetLedgerEntry(ctx context.Context, id string) (*model.LedgerEntry, error)

	// ListPendingEntries returns pending entries carrying credit, oldest
	// first, strictly after the cursor.
	ListPendingEntries(ctx context.Context, after EntryCursor, limit int) ([]*model.LedgerEntry, error)
	ListEntriesByPayer(ctx context.Context, payerID string, limit int) ([]*model.LedgerEntry, error)

	// MarkEntryFulfilled moves a pending entry to fulfilled. It reports false
	// when the entry was no longer pending.
	MarkEntryFulfilled(ctx context.Context, id string, region model.Region, at time.Time) (bool, error)
}

type SupplyRepository interface {
	InsertSupplyEvent(ctx context.Context, ev *model.SupplyEvent) error
	ListSupplyEvents(ctx context.Context, region model.Region, limit int) ([]*model.SupplyEvent, error)

	// ClaimLeftovers marks every unclaimed event of the region that still has
	// leftover supply as claimed and returns the events this call won.
	ClaimLeftovers(ctx context.Context, region model.Region) ([]*model.SupplyEvent, error)
	ReleaseLeftovers(ctx context.Context, ids []string) error
}

type PoolRepository interface {
	GetPool(ctx context.Context) (*model.GlobalPool, error)
	AddWillPlant(ctx context.Context, credit model.Credit) error
	AddDidPlant(ctx context.Context, credit model.Credit) error
}

type Repository interface {
	AccountRepository
	LedgerRepository
	SupplyRepository
	PoolRepository

	// ExecTx runs fn against a transactional view of the repository. The
	// work commits only when fn returns nil.
	ExecTx(ctx context.Context, fn func(Repository) error) error
	Close() error
}

// EntryCursor is a keyset position in the pending queue. The zero value
// starts from the oldest entry.
type EntryCursor struct {
	CreatedAt int64
	Seq       int64
}

func CursorAfter(e *model.LedgerEntry) EntryCursor {
	return EntryCursor{CreatedAt: e.CreatedAt.UnixNano(), Seq: e.Seq}
}

// Before reports whether the entry position (createdAt, seq) sorts before or
// at the cursor.
func (c EntryCursor) Before(createdAt, seq int64) bool {
	if createdAt != c.CreatedAt {
		return createdAt < c.CreatedAt
	}
	return seq <= c.Seq
}
