package domain

import "time"

const EventOrderPlaced = "order.placed"

// OutboxEvent is written in the same request that mutates state and later
// published to Kafka by the poller, so downstream consumers never observe
// an event for state that was not persisted.
type OutboxEvent struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	EventType   string     `bson:"event_type" json:"eventType"`
	Payload     []byte     `bson:"payload" json:"payload"`
	Processed   bool       `bson:"processed" json:"processed"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	ProcessedAt *time.Time `bson:"processed_at,omitempty" json:"processedAt,omitempty"`
}
