package orders

import (
	"context"
	"sync"
	"time"
)

// MemStore is an in-memory Store used in tests and storeless dev runs.
// It keeps insertion order and applies the same CAS semantics as Repo.
type MemStore struct {
	mu     sync.Mutex
	seq    int64
	list   []*Order
	byCode map[string]*Order

	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{byCode: make(map[string]*Order)}
}

func (m *MemStore) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now().UTC()
}

func (m *MemStore) Create(_ context.Context, o *Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	o.ID = m.seq
	o.Version = 1
	now := m.now()
	o.CreatedAt = now
	o.UpdatedAt = now

	stored := *o
	m.list = append(m.list, &stored)
	m.byCode[stored.OrderCode] = &stored
	return nil
}

func (m *MemStore) GetByCode(_ context.Context, code string) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.byCode[code]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *MemStore) ListByWallet(_ context.Context, wallet string) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Order{}
	for _, o := range m.list {
		if o.BuyerWallet == wallet {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *MemStore) UpdateStatus(_ context.Context, code string, status Status) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.byCode[code]
	if !ok {
		return nil, ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = m.now()
	o.Version++
	cp := *o
	return &cp, nil
}

func (m *MemStore) AdvanceStatus(_ context.Context, code string, from, to Status) (*Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.byCode[code]
	if !ok {
		return nil, ErrNotFound
	}
	if o.Status != from {
		return nil, ErrStatusConflict
	}
	o.Status = to
	o.UpdatedAt = m.now()
	o.Version++
	cp := *o
	return &cp, nil
}
