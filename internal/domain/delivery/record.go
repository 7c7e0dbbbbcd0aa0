package delivery

import "time"

// Record is one attempt to deliver a message to the chat.
// Corresponds to the 'delivery_journal' table.
type Record struct {
	ID        int64
	ChatID    string
	Message   string
	Delivered bool
	Error     string // empty when Delivered is true
	SentAt    time.Time
}
