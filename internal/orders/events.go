package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderCreated         = "OrderCreated"
	EventFulfillmentRequested = "FulfillmentRequested"
	EventOrderStatusChanged   = "OrderStatusChanged"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_code
	Payload       json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderCode      string  `json:"order_code"`
	BuyerWallet    string  `json:"buyer_wallet"`
	ProductID      string  `json:"product_id"`
	AmountSUI      float64 `json:"amount_sui"`
	EscrowTxDigest string  `json:"escrow_tx_digest,omitempty"`
}

type FulfillmentRequestedPayload struct {
	OrderCode string `json:"order_code"`
}

type OrderStatusChangedPayload struct {
	OrderCode string    `json:"order_code"`
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	UpdatedAt time.Time `json:"updated_at"`
}
