package domain

import "time"

// Rider is a phone number known to the bot.
// New numbers are created unapproved the first time they text in; an admin
// flips Approved before the bot will answer them. TwelveHour selects the
// clock format used by schedule replies and is toggled by "settings clock".
type Rider struct {
	Number     string    `json:"number"`
	Name       *string   `json:"name,omitempty"` // set by an admin, nil until then
	Approved   bool      `json:"approved"`
	Admin      bool      `json:"admin"`
	TwelveHour bool      `json:"twelve_hour"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
