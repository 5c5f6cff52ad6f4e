package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hance08/canopy/internal/model"
)

const accountColumns = `id, email, balance, credit_total,
	credit_region_a, credit_region_b, credit_region_c,
	credit_region_d, credit_region_e, credit_region_f,
	is_vendor, version, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*model.Account, error) {
	var (
		acc       model.Account
		total     int64
		byRegion  [model.RegionCount]int64
		createdAt int64
	)
	err := row.Scan(
		&acc.ID, &acc.Email, &acc.Balance, &total,
		&byRegion[0], &byRegion[1], &byRegion[2],
		&byRegion[3], &byRegion[4], &byRegion[5],
		&acc.IsVendor, &acc.Version, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	acc.AccruedCredit.Total = model.Credit(total)
	for i, r := range model.Regions() {
		acc.AccruedCredit.AddRegion(r, model.Credit(byRegion[i]))
	}
	acc.CreatedAt = time.Unix(0, createdAt).UTC()
	return &acc, nil
}

func (s *Store) CreateAccount(ctx context.Context, acc *model.Account) error {
	query := `INSERT INTO accounts (id, email, balance, is_vendor, version, created_at)
		VALUES (?, ?, ?, ?, 0, ?)`

	_, err := s.exec(ctx, query, acc.ID, acc.Email, acc.Balance, acc.IsVendor, acc.CreatedAt.UnixNano())
	if err != nil {
		if s.dialect.isUniqueViolation(err) {
			return ErrAccountExists
		}
		return fmt.Errorf("failed to insert account %s: %w", acc.ID, err)
	}
	acc.Version = 0
	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	err := s.execAffectingOne(ctx, ErrRecordNotFound, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return fmt.Errorf("failed to delete account %s: %w", id, err)
	}
	return err
}

func (s *Store) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`

	acc, err := scanAccount(s.queryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get account %s: %w", id, err)
	}
	return acc, nil
}

func (s *Store) AccountExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.queryRow(ctx, `SELECT EXISTS(SELECT 1 FROM accounts WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account %s: %w", id, err)
	}
	return exists, nil
}

func (s *Store) SearchAccountsByEmail(ctx context.Context, prefix string, limit int) ([]*model.AccountSummary, error) {
	query := `SELECT id, email, is_vendor FROM accounts
		WHERE email LIKE ? ESCAPE '\'
		ORDER BY email, id
		LIMIT ?`

	rows, err := s.query(ctx, query, escapeLike(prefix)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	defer rows.Close()

	var out []*model.AccountSummary
	for rows.Next() {
		var sum model.AccountSummary
		if err := rows.Scan(&sum.ID, &sum.Email, &sum.IsVendor); err != nil {
			return nil, fmt.Errorf("failed to scan account summary: %w", err)
		}
		out = append(out, &sum)
	}
	return out, rows.Err()
}

func (s *Store) SetVendor(ctx context.Context, id string, vendor bool) error {
	err := s.execAffectingOne(ctx, ErrRecordNotFound,
		`UPDATE accounts SET is_vendor = ?, version = version + 1 WHERE id = ?`, vendor, id)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return fmt.Errorf("failed to update vendor flag of %s: %w", id, err)
	}
	return err
}

func (s *Store) DebitAccount(ctx context.Context, id string, amount int64, pledged model.Credit, expectedVersion int64) error {
	query := `UPDATE accounts
		SET balance = balance - ?, credit_total = credit_total + ?, version = version + 1
		WHERE id = ? AND version = ? AND balance >= ?`

	err := s.execAffectingOne(ctx, ErrConflict, query, amount, int64(pledged), id, expectedVersion, amount)
	if err != nil && !errors.Is(err, ErrConflict) {
		return fmt.Errorf("failed to debit account %s: %w", id, err)
	}
	return err
}

func (s *Store) CreditAccount(ctx context.Context, id string, amount int64) error {
	err := s.execAffectingOne(ctx, ErrRecordNotFound,
		`UPDATE accounts SET balance = balance + ?, version = version + 1 WHERE id = ?`, amount, id)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return fmt.Errorf("failed to credit account %s: %w", id, err)
	}
	return err
}

func (s *Store) CreditPayee(ctx context.Context, id string, amount int64, vendor bool) error {
	err := s.execAffectingOne(ctx, ErrConflict,
		`UPDATE accounts SET balance = balance + ?, version = version + 1 WHERE id = ? AND is_vendor = ?`, amount, id, vendor)
	if err != nil && !errors.Is(err, ErrConflict) {
		return fmt.Errorf("failed to credit payee %s: %w", id, err)
	}
	return err
}

func (s *Store) AddRegionCredit(ctx context.Context, id string, region model.Region, credit model.Credit) error {
	if !region.Valid() {
		return fmt.Errorf("%w: invalid region %d", ErrConstraintViolation, uint8(region))
	}
	column := "credit_" + region.String()
	query := `UPDATE accounts SET ` + column + ` = ` + column + ` + ?, version = version + 1 WHERE id = ?`

	err := s.execAffectingOne(ctx, ErrRecordNotFound, query, int64(credit), id)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return fmt.Errorf("failed to add %s credit to %s: %w", region, id, err)
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
