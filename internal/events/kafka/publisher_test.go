package kafka

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hance08/canopy/internal/events"
)

var _ events.Publisher = (*Publisher)(nil)

func TestNewPublisherWriterSettings(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092", "localhost:9093"})
	defer p.Close()

	assert.NotNil(t, p.writer.Addr)
	assert.Empty(t, p.writer.Topic)
	assert.Equal(t, kafka.RequireOne, p.writer.RequiredAcks)
	assert.IsType(t, &kafka.Hash{}, p.writer.Balancer)
}

func TestPublishRejectsUnencodableEvent(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"})
	defer p.Close()

	err := p.Publish(context.Background(), "topic", "key", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode chan int")
}
