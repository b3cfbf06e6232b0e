package orders

type Status string

const (
	StatusPaid           Status = "paid"
	StatusShipped        Status = "shipped"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCompleted      Status = "completed"
	StatusDisputed       Status = "disputed"
)

var allStatuses = map[Status]bool{
	StatusPaid:           true,
	StatusShipped:        true,
	StatusOutForDelivery: true,
	StatusDelivered:      true,
	StatusCompleted:      true,
	StatusDisputed:       true,
}

func (s Status) Valid() bool { return allStatuses[s] }

// Terminal statuses have no outgoing transitions: completed is the buyer
// confirming receipt, disputed freezes the order for manual resolution.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusDisputed
}

// FulfillmentStage is one step of the automatic delivery progression.
type FulfillmentStage struct {
	From Status
	To   Status
}

// FulfillmentStages returns the automatic progression in order. The final
// delivered -> completed hop is never automatic; only the buyer triggers it.
func FulfillmentStages() []FulfillmentStage {
	return []FulfillmentStage{
		{StatusPaid, StatusShipped},
		{StatusShipped, StatusOutForDelivery},
		{StatusOutForDelivery, StatusDelivered},
	}
}
