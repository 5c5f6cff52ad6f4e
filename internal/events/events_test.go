package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/canopy/internal/model"
)

func TestTransferCompletedJSON(t *testing.T) {
	e := &model.LedgerEntry{
		ID: "e1", PayerID: "alice", PayeeID: "bob",
		Amount: 999, Fee: 19, Credit: 999_000,
		CreatedAt: time.Unix(0, 0).UTC(),
	}
	data, err := json.Marshal(NewTransferCompleted(e))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "e1", got["entry_id"])
	assert.Equal(t, "0.999", got["credit_amount"])
	assert.EqualValues(t, 19, got["fee"])
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.Publish(context.Background(), "t", "k", 1))
	r.Err = errors.New("down")
	assert.Error(t, r.Publish(context.Background(), "t", "k", 2))

	msgs := r.Published()
	require.Len(t, msgs, 1)
	assert.Equal(t, Message{Topic: "t", Key: "k", Event: 1}, msgs[0])
}
