package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hance08/canopy/internal/model"
)

const entryColumns = `seq, id, payer_id, payee_id, amount, fee, credit, status, region, fulfilled_at, created_at`

func scanEntry(row rowScanner) (*model.LedgerEntry, error) {
	var (
		e           model.LedgerEntry
		credit      int64
		status      string
		region      sql.NullString
		fulfilledAt sql.NullInt64
		createdAt   int64
	)
	err := row.Scan(&e.Seq, &e.ID, &e.PayerID, &e.PayeeID, &e.Amount, &e.Fee,
		&credit, &status, &region, &fulfilledAt, &createdAt)
	if err != nil {
		return nil, err
	}
	e.Credit = model.Credit(credit)
	e.Status = model.EntryStatus(status)
	if region.Valid {
		r, err := model.ParseRegion(region.String)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.ID, err)
		}
		e.Region = r
	}
	if fulfilledAt.Valid {
		t := time.Unix(0, fulfilledAt.Int64).UTC()
		e.FulfilledAt = &t
	}
	e.CreatedAt = time.Unix(0, createdAt).UTC()
	return &e, nil
}

func (s *Store) scanEntries(rows *sql.Rows) ([]*model.LedgerEntry, error) {
	defer rows.Close()

	var out []*model.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) InsertLedgerEntry(ctx context.Context, e *model.LedgerEntry) error {
	query := `INSERT INTO ledger_entries (id, payer_id, payee_id, amount, fee, credit, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING seq`

	err := s.queryRow(ctx, query, e.ID, e.PayerID, e.PayeeID, e.Amount, e.Fee,
		int64(e.Credit), string(e.Status), e.CreatedAt.UnixNano()).Scan(&e.Seq)
	if err != nil {
		if s.dialect.isUniqueViolation(err) {
			return fmt.Errorf("%w: ledger entry %s", ErrConstraintViolation, e.ID)
		}
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	return nil
}

func (s *Store) GetLedgerEntry(ctx context.Context, id string) (*model.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE id = ?`

	e, err := scanEntry(s.queryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get ledger entry %s: %w", id, err)
	}
	return e, nil
}

func (s *Store) ListPendingEntries(ctx context.Context, after EntryCursor, limit int) ([]*model.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries
		WHERE status = ? AND credit > 0
		  AND (created_at > ? OR (created_at = ? AND seq > ?))
		ORDER BY created_at, seq
		LIMIT ?`

	rows, err := s.query(ctx, query, string(model.StatusPending),
		after.CreatedAt, after.CreatedAt, after.Seq, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending entries: %w", err)
	}
	return s.scanEntries(rows)
}

func (s *Store) ListEntriesByPayer(ctx context.Context, payerID string, limit int) ([]*model.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries
		WHERE payer_id = ?
		ORDER BY created_at DESC, seq DESC
		LIMIT ?`

	rows, err := s.query(ctx, query, payerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries of %s: %w", payerID, err)
	}
	return s.scanEntries(rows)
}

func (s *Store) MarkEntryFulfilled(ctx context.Context, id string, region model.Region, at time.Time) (bool, error) {
	query := `UPDATE ledger_entries
		SET status = ?, region = ?, fulfilled_at = ?
		WHERE id = ? AND status = ?`

	err := s.execAffectingOne(ctx, ErrConflict, query,
		string(model.StatusFulfilled), region.String(), at.UnixNano(), id, string(model.StatusPending))
	if errors.Is(err, ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to fulfil ledger entry %s: %w", id, err)
	}
	return true, nil
}
