package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hance08/canopy/internal/events"
	"github.com/hance08/canopy/internal/log"
	"github.com/hance08/canopy/internal/model"
	"github.com/hance08/canopy/internal/store"
)

type TransferService struct {
	deps
	feeRate       decimal.Decimal
	creditPerUnit model.Credit
}

// Split is how a transfer amount is divided.
type Split struct {
	Fee    int64        `json:"fee"`
	Net    int64        `json:"net"`
	Credit model.Credit `json:"credit_amount"`
}

// Split computes the fee, payee net and tree credit of amount. Only
// transfers to vendors carry a fee and credit; the fee is truncated toward
// zero and the credit is kept exact.
func (ts *TransferService) Split(amount int64, vendor bool) Split {
	if !vendor {
		return Split{Net: amount}
	}
	fee := decimal.NewFromInt(amount).Mul(ts.feeRate).Truncate(0).IntPart()
	return Split{
		Fee:    fee,
		Net:    amount - fee,
		Credit: model.Credit(amount) * ts.creditPerUnit,
	}
}

// Transfer moves amount from payer to payee. The payer debit, payee and fee
// sink credits, pool increment and ledger append commit together or not at
// all. Conflicting concurrent updates are retried with exponential backoff.
func (ts *TransferService) Transfer(ctx context.Context, payerID, payeeID string, amount int64) (*model.LedgerEntry, error) {
	payerID = strings.TrimSpace(payerID)
	payeeID = strings.TrimSpace(payeeID)
	if err := ts.validate(payerID, payeeID, amount); err != nil {
		return nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = ts.config.Retry.InitialInterval
	b.MaxInterval = ts.config.Retry.MaxInterval

	attempt := 0
	op := func() (*model.LedgerEntry, error) {
		attempt++
		entry, err := ts.attempt(ctx, payerID, payeeID, amount)
		if err == nil {
			return entry, nil
		}
		if IsRetryable(err) {
			log.Debugw("transfer conflict", "payer", payerID, "payee", payeeID, "attempt", attempt)
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	entry, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(ts.config.Retry.MaxTries),
	)
	if err != nil {
		if IsRetryable(err) {
			log.Warnw("transfer gave up after conflicts", "payer", payerID, "payee", payeeID, "attempts", attempt)
		}
		return nil, err
	}

	log.Infow("transfer committed",
		"entry", entry.ID,
		"payer", entry.PayerID,
		"payee", entry.PayeeID,
		"amount", entry.Amount,
		"fee", entry.Fee,
		"credit", entry.Credit.String(),
		"attempts", attempt,
	)

	if err := ts.publisher.Publish(ctx, ts.config.Events.TransferTopic, entry.PayerID, events.NewTransferCompleted(entry)); err != nil {
		log.Warnw("failed to publish transfer event", "entry", entry.ID, "error", err)
	}
	return entry, nil
}

func (ts *TransferService) validate(payerID, payeeID string, amount int64) error {
	switch {
	case payerID == "":
		return invalid("payer", "account id is required")
	case payeeID == "":
		return invalid("payee", "account id is required")
	case payerID == payeeID:
		return invalid("payee", "cannot transfer to yourself")
	case amount <= 0:
		return invalid("amount", "must be positive, got %d", amount)
	case amount > math.MaxInt64/int64(ts.creditPerUnit):
		return invalid("amount", "%d is too large", amount)
	}
	return nil
}

func (ts *TransferService) attempt(ctx context.Context, payerID, payeeID string, amount int64) (*model.LedgerEntry, error) {
	payer, err := ts.getAccount(ctx, payerID)
	if err != nil {
		return nil, err
	}
	payee, err := ts.getAccount(ctx, payeeID)
	if err != nil {
		return nil, err
	}
	if payer.Balance < amount {
		return nil, InsufficientBalanceError{AccountID: payer.ID, Balance: payer.Balance, Amount: amount}
	}

	split := ts.Split(amount, payee.IsVendor)
	entry := &model.LedgerEntry{
		ID:        uuid.NewString(),
		PayerID:   payer.ID,
		PayeeID:   payee.ID,
		Amount:    amount,
		Fee:       split.Fee,
		Credit:    split.Credit,
		Status:    model.StatusPending,
		CreatedAt: ts.clock.Now(),
	}

	err = ts.repo.ExecTx(ctx, func(tx store.Repository) error {
		if err := tx.DebitAccount(ctx, payer.ID, amount, split.Credit, payer.Version); err != nil {
			return err
		}
		// the split was priced on the payee's vendor flag as read
		if err := tx.CreditPayee(ctx, payee.ID, split.Net, payee.IsVendor); err != nil {
			return err
		}
		if split.Fee > 0 {
			if err := tx.CreditAccount(ctx, ts.config.Ledger.FeeSinkAccount, split.Fee); err != nil {
				if errors.Is(err, store.ErrRecordNotFound) {
					return ErrFeeSinkMissing
				}
				return err
			}
		}
		if split.Credit > 0 {
			if err := tx.AddWillPlant(ctx, split.Credit); err != nil {
				return err
			}
		}
		return tx.InsertLedgerEntry(ctx, entry)
	})
	if err != nil {
		if errors.Is(err, ErrFeeSinkMissing) {
			return nil, err
		}
		return nil, storeErr(err, "commit transfer")
	}
	return entry, nil
}

// TransferResult is the outcome of a transfer as reported to callers.
type TransferResult struct {
	Status      string             `json:"status"`
	Code        Code               `json:"code"`
	LedgerEntry *model.LedgerEntry `json:"ledger_entry,omitempty"`
	Message     string             `json:"message"`
}

func NewTransferResult(entry *model.LedgerEntry, err error) TransferResult {
	if err != nil {
		return TransferResult{Status: "Error", Code: CodeOf(err), Message: err.Error()}
	}
	return TransferResult{Status: "Ok", Code: CodeOK, LedgerEntry: entry, Message: "Transaction completed."}
}
