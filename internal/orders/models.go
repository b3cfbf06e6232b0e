package orders

import "time"

type Order struct {
	ID             int64     `json:"id"`
	OrderCode      string    `json:"order_code"`
	BuyerWallet    string    `json:"buyer_wallet"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name"`
	AmountSUI      float64   `json:"amount_sui"`
	Status         Status    `json:"status"`
	EscrowTxDigest string    `json:"escrow_tx_digest,omitempty"`
	Version        int64     `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
