package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hance08/canopy/internal/model"
)

const supplyColumns = `id, region, quantity, carried, consumed, leftover, claimed, created_at`

func scanSupplyEvent(row rowScanner) (*model.SupplyEvent, error) {
	var (
		ev                          model.SupplyEvent
		region                      string
		carried, consumed, leftover int64
		createdAt                   int64
	)
	err := row.Scan(&ev.ID, &region, &ev.Quantity, &carried, &consumed, &leftover, &ev.Claimed, &createdAt)
	if err != nil {
		return nil, err
	}
	r, err := model.ParseRegion(region)
	if err != nil {
		return nil, fmt.Errorf("supply event %s: %w", ev.ID, err)
	}
	ev.Region = r
	ev.Carried = model.Credit(carried)
	ev.Consumed = model.Credit(consumed)
	ev.Leftover = model.Credit(leftover)
	ev.CreatedAt = time.Unix(0, createdAt).UTC()
	return &ev, nil
}

func scanSupplyEvents(rows *sql.Rows) ([]*model.SupplyEvent, error) {
	defer rows.Close()

	var out []*model.SupplyEvent
	for rows.Next() {
		ev, err := scanSupplyEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supply event: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (s *Store) InsertSupplyEvent(ctx context.Context, ev *model.SupplyEvent) error {
	query := `INSERT INTO supply_events (id, region, quantity, carried, consumed, leftover, claimed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.exec(ctx, query, ev.ID, ev.Region.String(), ev.Quantity,
		int64(ev.Carried), int64(ev.Consumed), int64(ev.Leftover), ev.Claimed, ev.CreatedAt.UnixNano())
	if err != nil {
		if s.dialect.isUniqueViolation(err) {
			return fmt.Errorf("%w: supply event %s", ErrConstraintViolation, ev.ID)
		}
		return fmt.Errorf("failed to insert supply event: %w", err)
	}
	return nil
}

func (s *Store) ListSupplyEvents(ctx context.Context, region model.Region, limit int) ([]*model.SupplyEvent, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if region.Valid() {
		rows, err = s.query(ctx, `SELECT `+supplyColumns+` FROM supply_events
			WHERE region = ? ORDER BY seq DESC LIMIT ?`, region.String(), limit)
	} else {
		rows, err = s.query(ctx, `SELECT `+supplyColumns+` FROM supply_events
			ORDER BY seq DESC LIMIT ?`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list supply events: %w", err)
	}
	return scanSupplyEvents(rows)
}

func (s *Store) ClaimLeftovers(ctx context.Context, region model.Region) ([]*model.SupplyEvent, error) {
	query := `UPDATE supply_events SET claimed = ?
		WHERE region = ? AND claimed = ? AND leftover > 0
		RETURNING ` + supplyColumns

	rows, err := s.query(ctx, query, true, region.String(), false)
	if err != nil {
		return nil, fmt.Errorf("failed to claim leftovers in %s: %w", region, err)
	}
	return scanSupplyEvents(rows)
}

func (s *Store) ReleaseLeftovers(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, 0, len(ids)+1)
	args = append(args, false)
	for _, id := range ids {
		args = append(args, id)
	}

	_, err := s.exec(ctx, `UPDATE supply_events SET claimed = ? WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("failed to release leftovers: %w", err)
	}
	return nil
}
