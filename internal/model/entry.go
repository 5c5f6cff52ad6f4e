package model

import "time"

type EntryStatus string

const (
	StatusPending   EntryStatus = "pending"
	StatusFulfilled EntryStatus = "fulfilled"
)

// LedgerEntry records one transfer. Only the fulfillment fields change after
// creation, and they change once.
type LedgerEntry struct {
	ID          string      `json:"id"`
	Seq         int64       `json:"seq"`
	PayerID     string      `json:"payer_id"`
	PayeeID     string      `json:"payee_id"`
	Amount      int64       `json:"amount"`
	Fee         int64       `json:"fee"`
	Credit      Credit      `json:"credit_amount"`
	Status      EntryStatus `json:"fulfillment_status"`
	Region      Region      `json:"region,omitempty"`
	FulfilledAt *time.Time  `json:"fulfilled_at,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Net is the amount the payee received.
func (e *LedgerEntry) Net() int64 {
	return e.Amount - e.Fee
}

func (e *LedgerEntry) IsPending() bool {
	return e.Status == StatusPending
}

// Fulfillment reports the region the entry was fulfilled in.
func (e *LedgerEntry) Fulfillment() (Region, bool) {
	if e.Status != StatusFulfilled {
		return 0, false
	}
	return e.Region, true
}
