package redisx

import "time"

const (
	// Cached order view: order:view:{order_code} -> merged order+product JSON
	KeyOrderView = "order:view:%s"

	// Simulate idempotency: idem:order:fulfill:{order_code} -> 1
	KeyIdemFulfill = "idem:order:fulfill:%s"

	// Event dedup: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLViewCache   = 5 * time.Minute
	TTLIdempotency = 24 * time.Hour
	TTLDedup       = 48 * time.Hour
)
