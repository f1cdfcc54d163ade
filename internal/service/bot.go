package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tmarsh/textbus/internal/domain"
)

// Fetcher is the one upstream operation every command handler shares.
// It is satisfied by *transit.Client; tests substitute an httptest-backed
// client or a stub.
type Fetcher interface {
	Fetch(ctx context.Context, path string, messageID *uuid.UUID) (int, string, error)
}

// RiderStore is the slice of the rider repo the bot needs: persisting the
// clock-preference toggle. Defined here, in the consumer package, so tests
// can inject a function-field mock.
type RiderStore interface {
	SetTwelveHour(ctx context.Context, number string, twelveHour bool) error
}

// Bot dispatches parsed commands to their handlers. One Bot serves all
// requests; it holds no per-request state, so it is safe for concurrent use.
type Bot struct {
	transit Fetcher
	riders  RiderStore
	rootURL string
}

// NewBot constructs a Bot. rootURL is appended to help replies so riders can
// find the full documentation.
func NewBot(transit Fetcher, riders RiderStore, rootURL string) *Bot {
	return &Bot{transit: transit, riders: riders, rootURL: rootURL}
}

// HandleMessage parses body and runs the matching command, returning the
// reply text. rider is nil for the raw (non-SMS) interface; messageID is the
// persisted inbound message id used to correlate audit records, nil when the
// message insert failed.
//
// Empty-result outcomes ("no stops found", "no schedule found") come back as
// reply text, not errors. An error here means an upstream transport failure
// or a malformed upstream payload; the caller decides the fallback.
func (b *Bot) HandleMessage(ctx context.Context, body string, rider *domain.Rider, messageID *uuid.UUID) (string, error) {
	switch cmd := ParseCommand(body).(type) {
	case domain.TimesCommand:
		reply, err := b.handleTimes(ctx, cmd, rider, messageID)
		if err != nil {
			return "", fmt.Errorf("service.Bot.HandleMessage: %w", err)
		}
		return reply, nil
	case domain.StopsCommand:
		reply, err := b.handleStops(ctx, cmd, messageID)
		if err != nil {
			return "", fmt.Errorf("service.Bot.HandleMessage: %w", err)
		}
		return reply, nil
	case domain.SettingsClockCommand:
		reply, err := b.handleSettingsClock(ctx, rider)
		if err != nil {
			return "", fmt.Errorf("service.Bot.HandleMessage: %w", err)
		}
		return reply, nil
	default:
		// Help and Unknown both get the command reference.
		return b.helpReply(), nil
	}
}
