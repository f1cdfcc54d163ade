// Package service implements the bot's behaviour: parsing inbound text into
// a command and producing the single reply string each command renders.
// All upstream calls within one command are sequential; the reply ordering
// and the audit-record ordering are part of the observable contract.
package service

import (
	"regexp"
	"strings"

	"github.com/tmarsh/textbus/internal/domain"
)

var (
	// A bare 5-digit token is a stop number; an optional "times " prefix is
	// also accepted. Anything after the stop number is a route filter.
	timesPattern = regexp.MustCompile(`^(times )?(\d{5})(?:\s+(.*))?$`)
	stopsPattern = regexp.MustCompile(`^stops\s+(.*)$`)
)

// ParseCommand turns one inbound message into a Command. It is a pure
// function: no I/O, first match wins, and anything unmatched is Unknown.
func ParseCommand(text string) domain.Command {
	text = normalize(text)

	if m := timesPattern.FindStringSubmatch(text); m != nil {
		routes := []string{}
		routes = append(routes, strings.Fields(m[3])...)
		return domain.TimesCommand{StopNumber: m[2], Routes: routes}
	}

	if m := stopsPattern.FindStringSubmatch(text); m != nil {
		return domain.StopsCommand{Location: m[1]}
	}

	if text == "settings clock" {
		return domain.SettingsClockCommand{}
	}

	if strings.HasPrefix(text, "help") {
		return domain.HelpCommand{}
	}

	return domain.UnknownCommand{}
}

// normalize collapses whitespace runs to single spaces, trims, and
// lower-cases only the first token. Everything after the command keyword
// keeps its case: route filters and landmark names are matched verbatim
// downstream.
func normalize(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	fields[0] = strings.ToLower(fields[0])
	return strings.Join(fields, " ")
}
