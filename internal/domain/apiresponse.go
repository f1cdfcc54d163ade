package domain

import (
	"time"

	"github.com/google/uuid"
)

// APIResponse is the write-only audit record of one upstream transit API call.
// The raw body is kept verbatim for debugging; nothing in the request path
// ever reads these rows back. MessageID correlates the call with the inbound
// message that triggered it, when that message was persisted successfully.
type APIResponse struct {
	ID        uuid.UUID  `json:"id"`
	Body      string     `json:"body"`
	Query     string     `json:"query"` // the relative path as requested, before URL encoding
	MessageID *uuid.UUID `json:"message_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
