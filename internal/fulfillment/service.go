// Package fulfillment stands in for the seller/logistics integration: it
// consumes fulfillment requests and walks an order through
// paid -> shipped -> out_for_delivery -> delivered on a fixed cadence.
package fulfillment

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/safecodph/safecod-api/internal/kafka"
	"github.com/safecodph/safecod-api/internal/orders"
)

type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type ViewCache interface {
	SetView(ctx context.Context, code string, body []byte)
}

type Dedup interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

type Service struct {
	Store       orders.Store
	Dedup       Dedup
	Cache       ViewCache
	Events      Publisher // order.status.changed
	ServiceName string

	// StageDelay is the pause before each automatic transition (2s by
	// default, giving the original's 2s/4s/6s schedule).
	StageDelay time.Duration

	// After is overridable in tests; defaults to time.After.
	After func(d time.Duration) <-chan time.Time
}

// HandleFulfillmentRequested is the consumer handler for
// order.fulfillment.requested messages.
func (s *Service) HandleFulfillmentRequested(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventFulfillmentRequested {
		return nil
	}

	seen, _ := s.Dedup.Seen(ctx, env.EventID)
	if seen {
		return nil
	}
	_ = s.Dedup.Mark(ctx, env.EventID)

	p, err := kafkax.UnwrapPayload[orders.FulfillmentRequestedPayload](env.Payload)
	if err != nil {
		return err
	}
	return s.Progress(ctx, p.OrderCode, env.TraceID)
}

// Progress runs the staged transitions for one order. Each stage is applied
// with a compare-and-swap against its expected predecessor, so an order that
// was disputed (or manually advanced) in the meantime stops the remaining
// stages rather than being overwritten.
func (s *Service) Progress(ctx context.Context, code, trace string) error {
	for _, stage := range orders.FulfillmentStages() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.after(s.StageDelay):
		}

		o, err := s.Store.AdvanceStatus(ctx, code, stage.From, stage.To)
		if errors.Is(err, orders.ErrStatusConflict) {
			log.Info().Str("order_code", code).
				Str("stage", string(stage.To)).
				Msg("status moved, halting fulfillment")
			return nil
		}
		if errors.Is(err, orders.ErrNotFound) {
			log.Warn().Str("order_code", code).Msg("fulfillment for unknown order")
			return nil
		}
		if err != nil {
			return err
		}

		s.Cache.SetView(ctx, code, kafkax.MustMarshal(o.View()))
		s.publishStatusChanged(o, stage.From, trace)
		log.Info().Str("order_code", code).Str("status", string(o.Status)).Msg("order advanced")
	}
	return nil
}

func (s *Service) after(d time.Duration) <-chan time.Time {
	if s.After != nil {
		return s.After(d)
	}
	return time.After(d)
}

func (s *Service) publishStatusChanged(o *orders.Order, from orders.Status, trace string) {
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderStatusChanged,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		TraceID:       trace,
		CorrelationID: o.OrderCode,
		Payload: kafkax.MustMarshal(orders.OrderStatusChangedPayload{
			OrderCode: o.OrderCode,
			From:      from,
			To:        o.Status,
			UpdatedAt: o.UpdatedAt,
		}),
	}
	s.Events.Publish(orders.PartitionKey(o.OrderCode), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderStatusChanged)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
