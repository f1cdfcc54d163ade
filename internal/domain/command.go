// Package domain contains the core data types for the textbus application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler, transit).
package domain

// Command is the parsed intent of one inbound message.
// It is a closed set: the only implementations live in this file.
// Construct one via service.ParseCommand; dispatch with a type switch.
type Command interface {
	isCommand()
}

// TimesCommand requests the schedule for a single stop.
// Routes is the optional filter from the message tail; it is always non-nil,
// and empty means "all routes".
type TimesCommand struct {
	StopNumber string
	Routes     []string
}

// StopsCommand requests the stops near a free-text location.
// Location keeps the sender's original casing; the upstream geocoder is
// case-aware for some landmark names.
type StopsCommand struct {
	Location string
}

// SettingsClockCommand toggles the sender's 12h/24h clock preference.
type SettingsClockCommand struct{}

// HelpCommand requests the command reference.
type HelpCommand struct{}

// UnknownCommand is anything the parser could not match.
type UnknownCommand struct{}

func (TimesCommand) isCommand()         {}
func (StopsCommand) isCommand()         {}
func (SettingsClockCommand) isCommand() {}
func (HelpCommand) isCommand()          {}
func (UnknownCommand) isCommand()       {}
