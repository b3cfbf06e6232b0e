package orders

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("order not found")

	// ErrStatusConflict is returned by AdvanceStatus when the order's current
	// status no longer matches the expected one (e.g. the buyer disputed while
	// an automatic transition was pending).
	ErrStatusConflict = errors.New("order status changed concurrently")
)

// Store persists orders. Create and GetByCode/ListByWallet/UpdateStatus cover
// the ledger operations; AdvanceStatus is the compare-and-swap the fulfillment
// worker uses so a dispute halts pending automatic transitions instead of
// being silently overwritten.
//
// Status validity is the caller's concern; the store persists whatever
// member of the set it is handed.
type Store interface {
	// Create assigns id, version and timestamps, then persists o in place.
	Create(ctx context.Context, o *Order) error

	// GetByCode returns ErrNotFound when no order has the given code.
	GetByCode(ctx context.Context, code string) (*Order, error)

	// ListByWallet returns the wallet's orders in insertion order. An unknown
	// wallet yields an empty slice, not an error.
	ListByWallet(ctx context.Context, wallet string) ([]Order, error)

	// UpdateStatus unconditionally overwrites status, bumps updated_at and
	// version, and returns the stored record. ErrNotFound when code is
	// unknown; it never creates a record.
	UpdateStatus(ctx context.Context, code string, status Status) (*Order, error)

	// AdvanceStatus applies from -> to only if the current status equals
	// from. ErrStatusConflict when it does not, ErrNotFound when code is
	// unknown.
	AdvanceStatus(ctx context.Context, code string, from, to Status) (*Order, error)
}
