package store

import (
	"context"
	"fmt"

	"github.com/hance08/canopy/internal/model"
)

func (s *Store) GetPool(ctx context.Context) (*model.GlobalPool, error) {
	var will, did int64
	pool := &model.GlobalPool{}
	err := s.queryRow(ctx, `SELECT will_plant, did_plant, version FROM global_pool WHERE id = 1`).
		Scan(&will, &did, &pool.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to read global pool: %w", err)
	}
	pool.WillPlant = model.Credit(will)
	pool.DidPlant = model.Credit(did)
	return pool, nil
}

func (s *Store) AddWillPlant(ctx context.Context, credit model.Credit) error {
	return s.bumpPool(ctx, "will_plant", credit)
}

func (s *Store) AddDidPlant(ctx context.Context, credit model.Credit) error {
	return s.bumpPool(ctx, "did_plant", credit)
}

func (s *Store) bumpPool(ctx context.Context, column string, credit model.Credit) error {
	query := `UPDATE global_pool SET ` + column + ` = ` + column + ` + ?, version = version + 1 WHERE id = 1`
	if err := s.execAffectingOne(ctx, ErrRecordNotFound, query, int64(credit)); err != nil {
		return fmt.Errorf("failed to update global pool %s: %w", column, err)
	}
	return nil
}
