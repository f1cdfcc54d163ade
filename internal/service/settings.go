package service

import (
	"context"
	"fmt"

	"github.com/tmarsh/textbus/internal/domain"
)

// handleSettingsClock flips the rider's 12h/24h preference and confirms the
// new state. The raw interface has no rider, so there is nothing to toggle
// there; preferences only exist per phone number.
func (b *Bot) handleSettingsClock(ctx context.Context, rider *domain.Rider) (string, error) {
	if rider == nil {
		return "Cannot change settings with this interface", nil
	}

	twelveHour := !rider.TwelveHour
	if err := b.riders.SetTwelveHour(ctx, rider.Number, twelveHour); err != nil {
		return "", fmt.Errorf("handleSettingsClock: %w", err)
	}

	if twelveHour {
		return "times will now be in 12h format", nil
	}
	return "times will now be in 24h format", nil
}
