package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hance08/canopy/internal/config"
	"github.com/hance08/canopy/internal/events"
	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/store"
)

type Service struct {
	Config      *config.Config
	Account     *AccountService
	Transfer    *TransferService
	Fulfillment *FulfillmentService
	Ledger      *LedgerService
}

// deps is what every service shares.
type deps struct {
	repo      store.Repository
	config    *config.Config
	publisher events.Publisher
	clock     *model.Clock
}

func NewService(repo store.Repository, cfg *config.Config, pub events.Publisher) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if pub == nil {
		pub = events.NopPublisher{}
	}
	d := deps{repo: repo, config: cfg, publisher: pub, clock: model.NewClock()}

	feeRate, _ := cfg.FeeRateDecimal()
	threshold, _ := cfg.Threshold()

	return &Service{
		Config:      cfg,
		Account:     &AccountService{deps: d},
		Transfer:    newTransferService(d, feeRate),
		Fulfillment: &FulfillmentService{deps: d, threshold: threshold},
		Ledger:      &LedgerService{deps: d},
	}, nil
}

// WithClock replaces the clock used to stamp new records.
func (s *Service) WithClock(c *model.Clock) *Service {
	s.Account.clock = c
	s.Transfer.clock = c
	s.Fulfillment.clock = c
	s.Ledger.clock = c
	return s
}

func newTransferService(d deps, feeRate decimal.Decimal) *TransferService {
	return &TransferService{
		deps:          d,
		feeRate:       feeRate,
		creditPerUnit: d.config.CreditPerUnit(),
	}
}

func (d *deps) getAccount(ctx context.Context, id string) (*model.Account, error) {
	acc, err := d.repo.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, &AccountNotFoundError{AccountID: id}
		}
		return nil, storeErr(err, "read account")
	}
	return acc, nil
}
