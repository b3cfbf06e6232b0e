package fulfillment

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kafkax "github.com/safecodph/safecod-api/internal/kafka"
	"github.com/safecodph/safecod-api/internal/orders"
)

type fakeDedup struct{ seen map[string]bool }

func (f *fakeDedup) Seen(_ context.Context, id string) (bool, error) { return f.seen[id], nil }
func (f *fakeDedup) Mark(_ context.Context, id string) error {
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	f.seen[id] = true
	return nil
}

type fakeCache struct{ m map[string][]byte }

func (f *fakeCache) SetView(_ context.Context, code string, body []byte) {
	if f.m == nil {
		f.m = map[string][]byte{}
	}
	f.m[code] = body
}

type fakePublisher struct{ values [][]byte }

func (f *fakePublisher) Publish(_, value []byte, _ ...kafkago.Header) {
	f.values = append(f.values, value)
}

// instantAfter fires immediately so tests never wait on wall-clock delays.
func instantAfter(time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

func newService(store orders.Store) (*Service, *fakePublisher) {
	events := &fakePublisher{}
	return &Service{
		Store:       store,
		Dedup:       &fakeDedup{},
		Cache:       &fakeCache{},
		Events:      events,
		ServiceName: "fulfillment-test",
		StageDelay:  time.Hour, // must be irrelevant with instantAfter
		After:       instantAfter,
	}, events
}

func seedOrder(t *testing.T, store orders.Store, code string, status orders.Status) {
	t.Helper()
	require.NoError(t, store.Create(context.Background(), &orders.Order{
		OrderCode:   code,
		BuyerWallet: "0xabc",
		ProductID:   "prod_1",
		ProductName: "Fresh Mangoes (1kg)",
		AmountSUI:   0.01,
		Status:      status,
	}))
}

func statusChanges(t *testing.T, events *fakePublisher) []orders.OrderStatusChangedPayload {
	t.Helper()
	out := []orders.OrderStatusChangedPayload{}
	for _, v := range events.values {
		var env orders.Envelope
		require.NoError(t, json.Unmarshal(v, &env))
		require.Equal(t, orders.EventOrderStatusChanged, env.EventType)
		p, err := kafkax.UnwrapPayload[orders.OrderStatusChangedPayload](env.Payload)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func TestProgressRunsAllStages(t *testing.T) {
	store := orders.NewMemStore()
	seedOrder(t, store, "SCAAA1", orders.StatusPaid)
	svc, events := newService(store)

	require.NoError(t, svc.Progress(context.Background(), "SCAAA1", "trace-1"))

	o, err := store.GetByCode(context.Background(), "SCAAA1")
	require.NoError(t, err)
	assert.Equal(t, orders.StatusDelivered, o.Status)

	changes := statusChanges(t, events)
	require.Len(t, changes, 3)
	assert.Equal(t, orders.StatusShipped, changes[0].To)
	assert.Equal(t, orders.StatusOutForDelivery, changes[1].To)
	assert.Equal(t, orders.StatusDelivered, changes[2].To)
}

func TestProgressHaltsOnDispute(t *testing.T) {
	store := orders.NewMemStore()
	seedOrder(t, store, "SCAAA1", orders.StatusDisputed)
	svc, events := newService(store)

	require.NoError(t, svc.Progress(context.Background(), "SCAAA1", ""))

	o, err := store.GetByCode(context.Background(), "SCAAA1")
	require.NoError(t, err)
	assert.Equal(t, orders.StatusDisputed, o.Status, "automatic stages must not resurrect a disputed order")
	assert.Empty(t, events.values)
}

func TestProgressResumesFromCurrentStage(t *testing.T) {
	store := orders.NewMemStore()
	seedOrder(t, store, "SCAAA1", orders.StatusShipped)
	svc, events := newService(store)

	require.NoError(t, svc.Progress(context.Background(), "SCAAA1", ""))

	// the paid->shipped CAS fails and halts; shipped orders are driven by
	// their own pending progression, not restarted from scratch
	o, err := store.GetByCode(context.Background(), "SCAAA1")
	require.NoError(t, err)
	assert.Equal(t, orders.StatusShipped, o.Status)
	assert.Empty(t, events.values)
}

func TestProgressUnknownOrder(t *testing.T) {
	store := orders.NewMemStore()
	svc, events := newService(store)

	require.NoError(t, svc.Progress(context.Background(), "SCNOPE", ""))
	assert.Empty(t, events.values)
}

func fulfillmentMessage(t *testing.T, eventID, code string) kafkago.Message {
	t.Helper()
	env := orders.Envelope{
		EventID:       eventID,
		EventType:     orders.EventFulfillmentRequested,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      "safecod-api-test",
		CorrelationID: code,
		Payload:       kafkax.MustMarshal(orders.FulfillmentRequestedPayload{OrderCode: code}),
	}
	return kafkago.Message{Key: orders.PartitionKey(code), Value: kafkax.MustMarshal(env)}
}

func TestHandleFulfillmentRequested(t *testing.T) {
	store := orders.NewMemStore()
	seedOrder(t, store, "SCAAA1", orders.StatusPaid)
	svc, events := newService(store)

	m := fulfillmentMessage(t, uuid.NewString(), "SCAAA1")
	require.NoError(t, svc.HandleFulfillmentRequested(context.Background(), m))

	o, err := store.GetByCode(context.Background(), "SCAAA1")
	require.NoError(t, err)
	assert.Equal(t, orders.StatusDelivered, o.Status)
	assert.Len(t, events.values, 3)

	// same event_id again is a no-op
	require.NoError(t, svc.HandleFulfillmentRequested(context.Background(), m))
	assert.Len(t, events.values, 3)
}

func TestHandleIgnoresOtherEventTypes(t *testing.T) {
	store := orders.NewMemStore()
	seedOrder(t, store, "SCAAA1", orders.StatusPaid)
	svc, events := newService(store)

	env := orders.Envelope{
		EventID:   uuid.NewString(),
		EventType: orders.EventOrderCreated,
		Payload:   kafkax.MustMarshal(orders.OrderCreatedPayload{OrderCode: "SCAAA1"}),
	}
	m := kafkago.Message{Value: kafkax.MustMarshal(env)}
	require.NoError(t, svc.HandleFulfillmentRequested(context.Background(), m))

	o, err := store.GetByCode(context.Background(), "SCAAA1")
	require.NoError(t, err)
	assert.Equal(t, orders.StatusPaid, o.Status)
	assert.Empty(t, events.values)
}
