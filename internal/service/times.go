package service

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tmarsh/textbus/internal/domain"
	"github.com/tmarsh/textbus/internal/transit"
)

const (
	// maxReplyLength is the hard SMS-oriented ceiling. Whole schedule lines
	// are dropped once the reply would reach it; there is no ellipsis.
	maxReplyLength = 140

	// A departure running this many minutes behind schedule gets a "late"
	// annotation; one running at least a minute early gets "ahead".
	delayThresholdMinutes = 3
	aheadThresholdMinutes = 1
)

// handleTimes fetches a stop's schedule and renders it: a "{number} {name}"
// header, then departures sorted by estimated time, each prefixed with the
// rider's preferred clock format and annotated when off schedule.
func (b *Bot) handleTimes(ctx context.Context, cmd domain.TimesCommand, rider *domain.Rider, messageID *uuid.UUID) (string, error) {
	path := fmt.Sprintf("/v4/stops/%s/schedule.json?usage=short", cmd.StopNumber)

	status, body, err := b.transit.Fetch(ctx, path, messageID)
	if err != nil {
		return "", fmt.Errorf("handleTimes: %w", err)
	}
	if status < 200 || status > 299 {
		return fmt.Sprintf("No schedule found for stop %s, does it exist?", cmd.StopNumber), nil
	}

	var parsed transit.StopScheduleResponse
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return "", fmt.Errorf("handleTimes: decode schedule: %w", err)
	}

	reply := fmt.Sprintf("%d %s\n", parsed.StopSchedule.Stop.Number, parsed.StopSchedule.Stop.Name)

	type scheduleLine struct {
		estimated time.Time
		text      string
	}
	var lines []scheduleLine

	for _, routeSchedule := range parsed.StopSchedule.RouteSchedules {
		number := string(routeSchedule.Route.Number)
		if len(cmd.Routes) > 0 && !slices.Contains(cmd.Routes, number) {
			continue
		}

		for _, stop := range routeSchedule.ScheduledStops {
			estimated, err := transit.ParseScheduleTime(stop.Times.Departure.Estimated)
			if err != nil {
				return "", fmt.Errorf("handleTimes: estimated departure: %w", err)
			}
			scheduled, err := transit.ParseScheduleTime(stop.Times.Departure.Scheduled)
			if err != nil {
				return "", fmt.Errorf("handleTimes: scheduled departure: %w", err)
			}

			text := fmt.Sprintf("%s %s", number, stop.Variant.Name)

			delta := int(estimated.Sub(scheduled) / time.Minute)
			switch {
			case delta >= delayThresholdMinutes:
				text += fmt.Sprintf(" (%dmin late)", delta)
			case delta <= -aheadThresholdMinutes:
				text += fmt.Sprintf(" (%dmin ahead)", -delta)
			}

			lines = append(lines, scheduleLine{estimated: estimated, text: text})
		}
	}

	// Stable so departures with the same estimate keep upstream order.
	slices.SortStableFunc(lines, func(a, b scheduleLine) int {
		return a.estimated.Compare(b.estimated)
	})

	for _, line := range lines {
		rendered := formatClockTime(line.estimated, rider) + " " + line.text
		if len(reply)+len(rendered) >= maxReplyLength {
			break
		}
		reply += rendered + "\n"
	}

	return reply, nil
}

// formatClockTime renders a departure's time prefix. Riders default to the
// 12h clock ("4:29p", lower-cased am/pm with the trailing m dropped); the
// raw interface, which has no rider, gets the same default. 24h is zero-padded.
func formatClockTime(t time.Time, rider *domain.Rider) string {
	if rider != nil && !rider.TwelveHour {
		return t.Format("15:04")
	}
	return strings.TrimSuffix(strings.ToLower(t.Format("3:04PM")), "m")
}
