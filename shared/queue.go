package shared

import "time"

// Message is a queue message as seen by a consumer. ID and PopReceipt
// together identify the message for delete/update operations.
type Message struct {
	ID            string
	PopReceipt    string
	Content       string
	DequeueCount  int64
	InsertedAt    time.Time
	ExpiresAt     time.Time
	NextVisibleAt time.Time
}
