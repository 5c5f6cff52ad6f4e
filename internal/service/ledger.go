package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/store"
)

// LedgerService reads the transaction log.
type LedgerService struct {
	deps
}

func (ls *LedgerService) Get(ctx context.Context, id string) (*model.LedgerEntry, error) {
	e, err := ls.repo.GetLedgerEntry(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, storeErr(err, "read ledger entry")
	}
	return e, nil
}

// ByPayer returns the newest entries paid by payerID.
func (ls *LedgerService) ByPayer(ctx context.Context, payerID string, limit int) ([]*model.LedgerEntry, error) {
	if limit <= 0 {
		return nil, invalid("limit", "must be positive")
	}
	entries, err := ls.repo.ListEntriesByPayer(ctx, strings.TrimSpace(payerID), limit)
	return entries, storeErr(err, "list entries")
}

// Pending returns the head of the fulfillment queue.
func (ls *LedgerService) Pending(ctx context.Context, limit int) ([]*model.LedgerEntry, error) {
	if limit <= 0 {
		return nil, invalid("limit", "must be positive")
	}
	entries, err := ls.repo.ListPendingEntries(ctx, store.EntryCursor{}, limit)
	return entries, storeErr(err, "list pending entries")
}
