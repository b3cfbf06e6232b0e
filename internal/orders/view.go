package orders

import "github.com/safecodph/safecod-api/internal/catalog"

// View is the API representation of an order: the record merged with its
// catalog product. Product is nil if the catalog entry no longer exists
// (the snapshot fields on the order itself are still authoritative).
type View struct {
	Order
	Product *catalog.Product `json:"product,omitempty"`
}

func (o *Order) View() View {
	v := View{Order: *o}
	if p, ok := catalog.Find(o.ProductID); ok {
		v.Product = &p
	}
	return v
}
