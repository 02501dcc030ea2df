// Package broadcast delivers share-result messages to all connected
// clients. Delivery is fire-and-forget: at most once, no acknowledgment,
// and no replay for subscribers that join later.
package broadcast

// Publisher hands a message to the pub/sub transport for delivery to all
// current subscribers.
type Publisher interface {
	Publish(message string)
}

// NopPublisher discards all messages. Used when no share channel is
// configured.
type NopPublisher struct{}

// Publish discards the message
func (NopPublisher) Publish(string) {}
