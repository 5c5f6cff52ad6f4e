// Package events defines the domain events emitted after ledger commits and
// the Publisher they are sent through.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/hance08/canopy/internal/model"
)

const (
	DefaultTransferTopic    = "canopy.transfer.completed"
	DefaultFulfillmentTopic = "canopy.fulfillment.completed"
)

// Publisher delivers an event to a topic. key groups related events for
// ordering.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
	Close() error
}

type TransferCompleted struct {
	EntryID   string       `json:"entry_id"`
	PayerID   string       `json:"payer_id"`
	PayeeID   string       `json:"payee_id"`
	Amount    int64        `json:"amount"`
	Fee       int64        `json:"fee"`
	Credit    model.Credit `json:"credit_amount"`
	CreatedAt time.Time    `json:"created_at"`
}

func NewTransferCompleted(e *model.LedgerEntry) TransferCompleted {
	return TransferCompleted{
		EntryID:   e.ID,
		PayerID:   e.PayerID,
		PayeeID:   e.PayeeID,
		Amount:    e.Amount,
		Fee:       e.Fee,
		Credit:    e.Credit,
		CreatedAt: e.CreatedAt,
	}
}

type FulfillmentCompleted struct {
	SupplyEventID string       `json:"supply_event_id,omitempty"`
	Region        model.Region `json:"region"`
	Quantity      int64        `json:"quantity"`
	Consumed      model.Credit `json:"consumed_quantity"`
	Leftover      model.Credit `json:"leftover"`
	EntryIDs      []string     `json:"entry_ids"`
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }

func (NopPublisher) Close() error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu       sync.Mutex
	Messages []Message
	Err      error
}

type Message struct {
	Topic string
	Key   string
	Event any
}

func (r *Recorder) Publish(_ context.Context, topic, key string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Messages = append(r.Messages, Message{Topic: topic, Key: key, Event: event})
	return nil
}

func (r *Recorder) Published() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.Messages...)
}

func (r *Recorder) Close() error { return nil }
