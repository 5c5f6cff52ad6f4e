package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hance08/canopy/internal/constants"
	"github.com/hance08/canopy/internal/log"
	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/store"
	"github.com/hance08/canopy/internal/validation"
)

type AccountService struct {
	deps
}

// Profile is what a caller sees of an account. Self lookups carry the full
// account and its recent entries; others only the public projection.
type Profile struct {
	Self          bool                 `json:"self"`
	Account       *model.Account       `json:"account,omitempty"`
	RecentEntries []*model.LedgerEntry `json:"recent_entries,omitempty"`
	Public        *model.PublicProfile `json:"public,omitempty"`
}

// Create provisions an account with a zero balance and no credit.
func (as *AccountService) Create(ctx context.Context, id, email string) (*model.Account, error) {
	id = strings.TrimSpace(id)
	email = strings.TrimSpace(email)
	if err := validation.ValidateAccountID(id); err != nil {
		return nil, invalid("id", "%v", err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, invalid("email", "%v", err)
	}

	acc := &model.Account{ID: id, Email: email, CreatedAt: as.clock.Now()}
	if err := as.repo.CreateAccount(ctx, acc); err != nil {
		return nil, storeErr(err, "create account")
	}
	log.Infow("account created", "account", id)
	return acc, nil
}

// Delete removes the account record. Ledger entries naming it are kept.
func (as *AccountService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == as.config.Ledger.FeeSinkAccount {
		return invalid("id", "the fee sink account cannot be deleted")
	}
	if err := as.repo.DeleteAccount(ctx, id); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return &AccountNotFoundError{AccountID: id}
		}
		return storeErr(err, "delete account")
	}
	log.Infow("account deleted", "account", id)
	return nil
}

func (as *AccountService) Get(ctx context.Context, id string) (*model.Account, error) {
	return as.getAccount(ctx, strings.TrimSpace(id))
}

// Profile resolves target as seen by caller.
func (as *AccountService) Profile(ctx context.Context, callerID, targetID string) (*Profile, error) {
	acc, err := as.getAccount(ctx, strings.TrimSpace(targetID))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(callerID) != acc.ID {
		public := acc.Public()
		return &Profile{Public: &public}, nil
	}

	recent, err := as.repo.ListEntriesByPayer(ctx, acc.ID, as.config.Ledger.RecentEntries)
	if err != nil {
		return nil, storeErr(err, "list recent entries")
	}
	return &Profile{Self: true, Account: acc, RecentEntries: recent}, nil
}

// Search finds accounts whose email starts with prefix.
func (as *AccountService) Search(ctx context.Context, prefix string, limit int) ([]*model.AccountSummary, error) {
	if err := validation.ValidateEmailPrefix(prefix); err != nil {
		return nil, invalid("prefix", "%v", err)
	}
	if limit <= 0 {
		limit = constants.DefaultSearchLimit
	}
	found, err := as.repo.SearchAccountsByEmail(ctx, prefix, limit)
	return found, storeErr(err, "search accounts")
}

func (as *AccountService) SetVendor(ctx context.Context, id string, vendor bool) error {
	id = strings.TrimSpace(id)
	if err := as.repo.SetVendor(ctx, id, vendor); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return &AccountNotFoundError{AccountID: id}
		}
		return storeErr(err, "set vendor")
	}
	log.Infow("vendor flag updated", "account", id, "vendor", vendor)
	return nil
}

// EnsureFeeSink creates the fee sink account when it does not exist yet.
func (as *AccountService) EnsureFeeSink(ctx context.Context) error {
	id := as.config.Ledger.FeeSinkAccount
	exists, err := as.repo.AccountExists(ctx, id)
	if err != nil {
		return storeErr(err, "check fee sink")
	}
	if exists {
		return nil
	}

	acc := &model.Account{ID: id, Email: constants.FeeSinkEmail, CreatedAt: as.clock.Now()}
	err = as.repo.CreateAccount(ctx, acc)
	if errors.Is(err, store.ErrAccountExists) {
		return nil
	}
	if err != nil {
		return storeErr(err, "create fee sink")
	}
	log.Infow("fee sink account created", "account", id)
	return nil
}

// Deposit tops up an account from outside the ledger, e.g. a card payment.
func (as *AccountService) Deposit(ctx context.Context, id string, amount int64) (*model.Account, error) {
	id = strings.TrimSpace(id)
	if amount <= 0 {
		return nil, invalid("amount", "must be positive, got %d", amount)
	}
	if err := as.repo.CreditAccount(ctx, id, amount); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, &AccountNotFoundError{AccountID: id}
		}
		return nil, storeErr(err, "deposit")
	}
	log.Infow("deposit recorded", "account", id, "amount", amount)
	return as.getAccount(ctx, id)
}
