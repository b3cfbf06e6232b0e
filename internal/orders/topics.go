package orders

const (
	TopicOrderCreated         = "order.created"
	TopicFulfillmentRequested = "order.fulfillment.requested"
	TopicOrderStatusChanged   = "order.status.changed"
)

// Partition key = order_code, so all events for one order keep their order.
func PartitionKey(orderCode string) []byte { return []byte(orderCode) }
