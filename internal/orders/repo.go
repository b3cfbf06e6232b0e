package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo is the Postgres-backed Store. Every status mutation bumps version so
// AdvanceStatus can do a per-record compare-and-swap instead of the
// whole-document last-write-wins the original ledger had.
type Repo struct{ DB *pgxpool.Pool }

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id               BIGSERIAL PRIMARY KEY,
	order_code       TEXT NOT NULL UNIQUE,
	buyer_wallet     TEXT NOT NULL,
	product_id       TEXT NOT NULL,
	product_name     TEXT NOT NULL,
	amount_sui       DOUBLE PRECISION NOT NULL,
	status           TEXT NOT NULL,
	escrow_tx_digest TEXT,
	version          BIGINT NOT NULL DEFAULT 1,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_orders_buyer_wallet ON orders (buyer_wallet);
`

func (r *Repo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, schema)
	return err
}

const orderCols = `id, order_code, buyer_wallet, product_id, product_name,
	amount_sui, status, escrow_tx_digest, version, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var digest *string
	var status string
	err := row.Scan(&o.ID, &o.OrderCode, &o.BuyerWallet, &o.ProductID, &o.ProductName,
		&o.AmountSUI, &status, &digest, &o.Version, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Status = Status(status)
	if digest != nil {
		o.EscrowTxDigest = *digest
	}
	return &o, nil
}

func (r *Repo) Create(ctx context.Context, o *Order) error {
	var digest any
	if o.EscrowTxDigest != "" {
		digest = o.EscrowTxDigest
	}
	row := r.DB.QueryRow(ctx, `
		INSERT INTO orders (order_code, buyer_wallet, product_id, product_name, amount_sui, status, escrow_tx_digest)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, version, created_at, updated_at`,
		o.OrderCode, o.BuyerWallet, o.ProductID, o.ProductName, o.AmountSUI, string(o.Status), digest,
	)
	return row.Scan(&o.ID, &o.Version, &o.CreatedAt, &o.UpdatedAt)
}

func (r *Repo) GetByCode(ctx context.Context, code string) (*Order, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE order_code = $1`, code)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (r *Repo) ListByWallet(ctx context.Context, wallet string) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+orderCols+` FROM orders WHERE buyer_wallet = $1 ORDER BY id`, wallet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateStatus(ctx context.Context, code string, status Status) (*Order, error) {
	row := r.DB.QueryRow(ctx, `
		UPDATE orders
		SET status = $2, updated_at = now(), version = version + 1
		WHERE order_code = $1
		RETURNING `+orderCols, code, string(status))
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (r *Repo) AdvanceStatus(ctx context.Context, code string, from, to Status) (*Order, error) {
	row := r.DB.QueryRow(ctx, `
		UPDATE orders
		SET status = $3, updated_at = now(), version = version + 1
		WHERE order_code = $1 AND status = $2
		RETURNING `+orderCols, code, string(from), string(to))
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		// distinguish a missing order from a lost CAS
		if _, gerr := r.GetByCode(ctx, code); gerr != nil {
			return nil, gerr
		}
		return nil, ErrStatusConflict
	}
	return o, err
}
