package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/safecodph/safecod-api/internal/catalog"
	kafkax "github.com/safecodph/safecod-api/internal/kafka"
	"github.com/safecodph/safecod-api/internal/orders"
	"github.com/safecodph/safecod-api/internal/redisx"
)

// Publisher is satisfied by *kafkax.Producer; tests use a recording fake.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// ViewCache fronts the store for GET-by-code; satisfied by *redisx.ViewCache.
type ViewCache interface {
	GetView(ctx context.Context, code string) ([]byte, bool)
	SetView(ctx context.Context, code string, body []byte)
}

// IdemStore keeps a repeated simulate call from double-driving one order.
type IdemStore interface {
	Claim(ctx context.Context, key string) bool
}

type OrdersHandler struct {
	Store   orders.Store
	Created Publisher // order.created
	Fulfill Publisher // order.fulfillment.requested
	Cache   ViewCache
	Idem    IdemStore
	Service string
}

type CreateOrderReq struct {
	BuyerWallet    string `json:"buyer_wallet"`
	ProductID      string `json:"product_id"`
	EscrowTxDigest string `json:"escrow_tx_digest"`
}

type createOrderResp struct {
	orders.View
	Message string `json:"message"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/api/orders", h.createOrder)
	r.Get("/api/orders/wallet/{wallet}", h.listByWallet)
	r.Get("/api/orders/{code}", h.getOrder)
	r.Put("/api/orders/{code}/status", h.updateStatus)
	r.Post("/api/orders/{code}/simulate", h.simulate)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.BuyerWallet == "" || req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing fields"})
		return
	}
	p, ok := catalog.Find(req.ProductID)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid product"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// snapshot name and price at creation time; payment already happened,
	// so the order is born paid
	o := &orders.Order{
		OrderCode:      orders.NewOrderCode(),
		BuyerWallet:    req.BuyerWallet,
		ProductID:      p.ID,
		ProductName:    p.Name,
		AmountSUI:      p.PriceSUI,
		Status:         orders.StatusPaid,
		EscrowTxDigest: req.EscrowTxDigest,
	}
	if err := h.Store.Create(ctx, o); err != nil {
		log.Error().Err(err).Str("order_code", o.OrderCode).Msg("create order")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create order"})
		return
	}

	view := o.View()
	h.Cache.SetView(ctx, o.OrderCode, kafkax.MustMarshal(view))

	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       middleware.GetReqID(r.Context()),
		CorrelationID: o.OrderCode,
		Payload: kafkax.MustMarshal(orders.OrderCreatedPayload{
			OrderCode:      o.OrderCode,
			BuyerWallet:    o.BuyerWallet,
			ProductID:      o.ProductID,
			AmountSUI:      o.AmountSUI,
			EscrowTxDigest: o.EscrowTxDigest,
		}),
	}
	h.Created.Publish(orders.PartitionKey(o.OrderCode), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)

	writeJSON(w, http.StatusOK, createOrderResp{View: view, Message: "Order created successfully"})
}

func (h *OrdersHandler) listByWallet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Store.ListByWallet(ctx, chi.URLParam(r, "wallet"))
	if err != nil {
		log.Error().Err(err).Msg("list orders by wallet")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if body, ok := h.Cache.GetView(ctx, code); ok {
		writeJSON(w, http.StatusOK, json.RawMessage(body))
		return
	}

	o, err := h.Store.GetByCode(ctx, code)
	if errors.Is(err, orders.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Order not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("order_code", code).Msg("get order")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch order"})
		return
	}

	body := kafkax.MustMarshal(o.View())
	h.Cache.SetView(ctx, code, body)
	writeJSON(w, http.StatusOK, json.RawMessage(body))
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	st := orders.Status(req.Status)
	if !st.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid status"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Store.UpdateStatus(ctx, code, st)
	if errors.Is(err, orders.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Order not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("order_code", code).Msg("update order status")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update order"})
		return
	}

	h.Cache.SetView(ctx, code, kafkax.MustMarshal(o.View()))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Status updated", "status": string(st)})
}

func (h *OrdersHandler) simulate(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Store.GetByCode(ctx, code)
	if errors.Is(err, orders.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Order not found"})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("order_code", code).Msg("simulate lookup")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch order"})
		return
	}

	if h.Idem.Claim(ctx, fmt.Sprintf(redisx.KeyIdemFulfill, o.OrderCode)) {
		ev := orders.Envelope{
			EventID:       uuid.NewString(),
			EventType:     orders.EventFulfillmentRequested,
			EventVersion:  1,
			OccurredAt:    time.Now().UTC(),
			Producer:      h.Service,
			TraceID:       middleware.GetReqID(r.Context()),
			CorrelationID: o.OrderCode,
			Payload:       kafkax.MustMarshal(orders.FulfillmentRequestedPayload{OrderCode: o.OrderCode}),
		}
		h.Fulfill.Publish(orders.PartitionKey(o.OrderCode), kafkax.MustMarshal(ev),
			kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventFulfillmentRequested)},
			kafkago.Header{Key: "x-event-version", Value: []byte("1")},
		)
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"message": "Simulation started"})
}
