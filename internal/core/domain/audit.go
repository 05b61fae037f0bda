package domain

import "time"

// AuditEvent records one applied field change: which field moved, from what to
// what, who did it and to which journal.
type AuditEvent struct {
	EventID   string    `json:"eventID"` // Primary Key (UUID)
	JournalID string    `json:"journalID"`
	ActorID   string    `json:"actorID"` // UserID of the actor
	Field     string    `json:"field"`
	OldValue  string    `json:"oldValue"`
	NewValue  string    `json:"newValue"`
	CreatedAt time.Time `json:"createdAt"`
}
