package service

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/hance08/canopy/internal/events"
	"github.com/hance08/canopy/internal/log"
	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/store"
)

type FulfillmentService struct {
	deps
	threshold model.Credit
}

// FulfillmentReport summarises one matching pass.
type FulfillmentReport struct {
	Region         model.Region `json:"region"`
	Supplied       model.Credit `json:"supplied"`
	CarriedOver    model.Credit `json:"carried_over"`
	Consumed       model.Credit `json:"consumed_quantity"`
	Remaining      model.Credit `json:"remaining"`
	FulfilledCount int          `json:"fulfilled_entry_count"`
	SkippedCount   int          `json:"skipped_entry_count"`
	SupplyEventID  string       `json:"supply_event_id,omitempty"`
	EntryIDs       []string     `json:"fulfilled_entries,omitempty"`
}

// Fulfill plants quantity trees in region against the pending queue, oldest
// entry first. Entries larger than the remaining supply are skipped, never
// partially consumed, and the pass ends once the remaining supply is at or
// below the ignore threshold. Every entry commits in its own transaction.
func (fs *FulfillmentService) Fulfill(ctx context.Context, region model.Region, quantity int64) (*FulfillmentReport, error) {
	if !region.Valid() {
		return nil, invalid("region", "unknown region %d", uint8(region))
	}
	if quantity < 0 {
		return nil, invalid("quantity", "must not be negative, got %d", quantity)
	}
	if quantity > math.MaxInt64/int64(model.CreditPerTree)/2 {
		return nil, invalid("quantity", "%d is too large", quantity)
	}

	report := &FulfillmentReport{Region: region, Supplied: model.TreesToCredit(quantity)}
	if quantity == 0 {
		return report, nil
	}

	var claimed []*model.SupplyEvent
	if fs.config.Ledger.CarryOver {
		var err error
		claimed, err = fs.repo.ClaimLeftovers(ctx, region)
		if err != nil {
			return nil, storeErr(err, "claim leftovers")
		}
		for _, ev := range claimed {
			report.CarriedOver += ev.Leftover
		}
	}
	report.Remaining = report.Supplied + report.CarriedOver

	drainErr := fs.drain(ctx, report)

	// Committed entries must be accounted for even if ctx was cancelled
	// mid-pass.
	settleCtx := context.WithoutCancel(ctx)

	if report.Consumed == 0 {
		if err := fs.release(settleCtx, claimed); err != nil {
			return nil, errors.Join(drainErr, err)
		}
		if drainErr != nil {
			return nil, drainErr
		}
		log.Debugw("fulfillment found nothing to plant", "region", region, "supplied", report.Supplied.String())
		return report, nil
	}

	ev := &model.SupplyEvent{
		ID:        uuid.NewString(),
		Region:    region,
		Quantity:  quantity,
		Carried:   report.CarriedOver,
		Consumed:  report.Consumed,
		Leftover:  report.Remaining,
		CreatedAt: fs.clock.Now(),
	}
	if err := fs.repo.InsertSupplyEvent(settleCtx, ev); err != nil {
		log.Errorw("failed to record supply event", "region", region, "consumed", report.Consumed.String(), "error", err)
		return nil, errors.Join(drainErr, storeErr(err, "record supply event"))
	}
	report.SupplyEventID = ev.ID
	if drainErr != nil {
		return nil, drainErr
	}

	log.Infow("fulfillment pass complete",
		"region", region,
		"supplied", report.Supplied.String(),
		"carried", report.CarriedOver.String(),
		"consumed", report.Consumed.String(),
		"remaining", report.Remaining.String(),
		"fulfilled", report.FulfilledCount,
		"skipped", report.SkippedCount,
	)

	completed := events.FulfillmentCompleted{
		SupplyEventID: ev.ID,
		Region:        region,
		Quantity:      quantity,
		Consumed:      report.Consumed,
		Leftover:      report.Remaining,
		EntryIDs:      report.EntryIDs,
	}
	if err := fs.publisher.Publish(ctx, fs.config.Events.FulfillmentTopic, region.String(), completed); err != nil {
		log.Warnw("failed to publish fulfillment event", "supply_event", ev.ID, "error", err)
	}
	return report, nil
}

// drain walks the pending queue page by page, updating report as entries
// are fulfilled.
func (fs *FulfillmentService) drain(ctx context.Context, report *FulfillmentReport) error {
	pageSize := fs.config.Ledger.PageSize
	cursor := store.EntryCursor{}

	for report.Remaining > fs.threshold {
		page, err := fs.repo.ListPendingEntries(ctx, cursor, pageSize)
		if err != nil {
			return storeErr(err, "list pending entries")
		}

		for _, e := range page {
			cursor = store.CursorAfter(e)
			if report.Remaining <= fs.threshold {
				return nil
			}
			if e.Credit > report.Remaining {
				report.SkippedCount++
				continue
			}

			won, err := fs.fulfilEntry(ctx, e, report.Region)
			if err != nil {
				return err
			}
			if !won {
				continue
			}
			report.Remaining -= e.Credit
			report.Consumed += e.Credit
			report.FulfilledCount++
			report.EntryIDs = append(report.EntryIDs, e.ID)
		}

		if len(page) < pageSize {
			return nil
		}
	}
	return nil
}

// fulfilEntry marks e fulfilled and credits its payer and the pool. It
// reports false when a concurrent pass already took the entry.
func (fs *FulfillmentService) fulfilEntry(ctx context.Context, e *model.LedgerEntry, region model.Region) (bool, error) {
	won := false
	err := fs.repo.ExecTx(ctx, func(tx store.Repository) error {
		ok, err := tx.MarkEntryFulfilled(ctx, e.ID, region, fs.clock.Now())
		if err != nil || !ok {
			return err
		}
		if err := tx.AddRegionCredit(ctx, e.PayerID, region, e.Credit); err != nil {
			if !errors.Is(err, store.ErrRecordNotFound) {
				return err
			}
			log.Debugw("payer of fulfilled entry no longer exists", "entry", e.ID, "payer", e.PayerID)
		}
		if err := tx.AddDidPlant(ctx, e.Credit); err != nil {
			return err
		}
		won = true
		return nil
	})
	if err != nil {
		return false, storeErr(err, "fulfil entry "+e.ID)
	}
	return won, nil
}

func (fs *FulfillmentService) release(ctx context.Context, claimed []*model.SupplyEvent) error {
	if len(claimed) == 0 {
		return nil
	}
	ids := make([]string, len(claimed))
	for i, ev := range claimed {
		ids[i] = ev.ID
	}
	return storeErr(fs.repo.ReleaseLeftovers(ctx, ids), "release leftovers")
}

// ListSupply returns the most recent supply events, optionally of one region.
func (fs *FulfillmentService) ListSupply(ctx context.Context, region model.Region, limit int) ([]*model.SupplyEvent, error) {
	if limit <= 0 {
		return nil, invalid("limit", "must be positive")
	}
	evs, err := fs.repo.ListSupplyEvents(ctx, region, limit)
	return evs, storeErr(err, "list supply events")
}

// Pool reads the global pool.
func (fs *FulfillmentService) Pool(ctx context.Context) (*model.GlobalPool, error) {
	pool, err := fs.repo.GetPool(ctx)
	return pool, storeErr(err, "read pool")
}
