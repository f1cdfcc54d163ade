package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is one SMS (or raw-interface exchange) stored for the admin log.
// Inbound and outbound messages share the table; an outbound reply points at
// the inbound message that caused it via InitialMessageID.
type Message struct {
	ID               uuid.UUID  `json:"id"`
	MessageSID       *string    `json:"message_sid,omitempty"` // provider id, "repl" for raw-interface messages
	Origin           string     `json:"origin"`
	Destination      string     `json:"destination"`
	Body             string     `json:"body"`
	InitialMessageID *uuid.UUID `json:"initial_message_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
