package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/salesgo/backend/domain"
	"github.com/salesgo/backend/internal/infrastructure/journal"
)

func saleCreated(id string) *domain.SaleCreatedEvent {
	return &domain.SaleCreatedEvent{
		SaleID:      id,
		SaleNumber:  "S-1",
		TotalAmount: decimal.NewFromInt(100),
		BranchID:    "B1",
		CustomerID:  "C1",
	}
}

func TestBusDeliversToSubscribersInOrder(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t))

	var got []string
	bus.Subscribe("sale.created", func(ctx context.Context, event domain.Event) error {
		got = append(got, "first")
		return nil
	})
	bus.Subscribe("sale.created", func(ctx context.Context, event domain.Event) error {
		got = append(got, "second")
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), saleCreated("s1")))
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestBusReturnsFirstHandlerError(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t))
	boom := errors.New("boom")

	var secondCalled bool
	bus.Subscribe("sale.created", func(ctx context.Context, event domain.Event) error {
		return boom
	})
	bus.Subscribe("sale.created", func(ctx context.Context, event domain.Event) error {
		secondCalled = true
		return nil
	})

	assert.ErrorIs(t, bus.Publish(context.Background(), saleCreated("s1")), boom)
	assert.False(t, secondCalled)
}

func TestBusDropsEventsWithoutSubscribers(t *testing.T) {
	bus := NewBus(zaptest.NewLogger(t))
	assert.NoError(t, bus.Publish(context.Background(), saleCreated("s1")))
}

func TestJournaledPublisherRecordsAfterPublish(t *testing.T) {
	store, err := journal.Open(t.TempDir()+"/journal.db", "events")
	require.NoError(t, err)
	defer store.Close()

	bus := NewBus(zaptest.NewLogger(t))
	pub := WithJournal(bus, store, zaptest.NewLogger(t))

	require.NoError(t, pub.Publish(context.Background(), saleCreated("s1")))

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sale.created", entries[0].Name)

	var event domain.SaleCreatedEvent
	require.NoError(t, json.Unmarshal(entries[0].Payload, &event))
	assert.Equal(t, "s1", event.SaleID)
}

func TestJournaledPublisherSkipsJournalOnPublishFailure(t *testing.T) {
	store, err := journal.Open(t.TempDir()+"/journal.db", "events")
	require.NoError(t, err)
	defer store.Close()

	bus := NewBus(zaptest.NewLogger(t))
	boom := errors.New("transport down")
	bus.Subscribe("sale.created", func(ctx context.Context, event domain.Event) error {
		return boom
	})

	pub := WithJournal(bus, store, zaptest.NewLogger(t))
	assert.ErrorIs(t, pub.Publish(context.Background(), saleCreated("s1")), boom)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}
