package domain

import "context"

type Message struct {
	Key   []byte
	Value []byte
}

// SubscriberPort feeds inbound txn requests to the consumer loop. The
// returned channel is closed when ctx is cancelled or the source fails.
type SubscriberPort interface {
	Subscribe(ctx context.Context, topic, groupID string) (<-chan Message, error)
}
