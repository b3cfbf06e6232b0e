package redisx

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ViewCache holds the merged order+product JSON per order code so GETs
// skip the store when warm. Failures are swallowed: Redis is an
// accelerator here, the store stays the source of truth.
type ViewCache struct{ RDB *redis.Client }

func (c *ViewCache) GetView(ctx context.Context, code string) ([]byte, bool) {
	s, err := c.RDB.Get(ctx, fmt.Sprintf(KeyOrderView, code)).Result()
	if err != nil || s == "" {
		return nil, false
	}
	return []byte(s), true
}

func (c *ViewCache) SetView(ctx context.Context, code string, body []byte) {
	_ = c.RDB.Set(ctx, fmt.Sprintf(KeyOrderView, code), body, TTLViewCache).Err()
}

// IdemStore claims one-shot keys (SET NX). Claim reports whether this caller
// was first; on Redis errors it reports first=true so the operation is not
// lost, downstream dedup catches the duplicate.
type IdemStore struct{ RDB *redis.Client }

func (s *IdemStore) Claim(ctx context.Context, key string) bool {
	ok, err := s.RDB.SetNX(ctx, key, "1", TTLIdempotency).Result()
	if err != nil {
		return true
	}
	return ok
}

// Dedup tracks processed event IDs per consuming service.
type Dedup struct {
	RDB     *redis.Client
	Service string
}

func (d *Dedup) Seen(ctx context.Context, eventID string) (bool, error) {
	return Exists(ctx, d.RDB, fmt.Sprintf(KeyDedup, d.Service, eventID))
}

func (d *Dedup) Mark(ctx context.Context, eventID string) error {
	return d.RDB.Set(ctx, fmt.Sprintf(KeyDedup, d.Service, eventID), "1", TTLDedup).Err()
}
