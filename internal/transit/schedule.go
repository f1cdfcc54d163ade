package transit

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ScheduleTimeLayout is the naive timestamp format used by the schedule
// endpoint. Times carry no zone and are never converted; they are compared
// and rendered as-is.
const ScheduleTimeLayout = "2006-01-02T15:04:05"

// ParseScheduleTime parses a naive schedule timestamp.
func ParseScheduleTime(value string) (time.Time, error) {
	t, err := time.Parse(ScheduleTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("transit.ParseScheduleTime: %w", err)
	}
	return t, nil
}

// StopScheduleResponse is the envelope of the stop-schedule endpoint.
type StopScheduleResponse struct {
	StopSchedule StopSchedule `json:"stop-schedule"`
}

// StopSchedule is one stop's full schedule.
type StopSchedule struct {
	Stop           ScheduleStop    `json:"stop"`
	RouteSchedules []RouteSchedule `json:"route-schedules"`
}

// ScheduleStop is the stop header of a schedule. The API documents it as a
// single object but has been observed returning a one-element array; both
// shapes decode to the same header.
type ScheduleStop struct {
	Number int64  `json:"number"`
	Name   string `json:"name"`
}

func (s *ScheduleStop) UnmarshalJSON(data []byte) error {
	type plain ScheduleStop // drops the method set to avoid recursion

	var one plain
	if err := json.Unmarshal(data, &one); err == nil {
		*s = ScheduleStop(one)
		return nil
	}

	var many []plain
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("stop is neither an object nor an array: %w", err)
	}
	if len(many) == 0 {
		return errors.New("stop array is empty")
	}
	*s = ScheduleStop(many[0])
	return nil
}

// RouteSchedule is the block of scheduled stops for one route.
type RouteSchedule struct {
	Route          Route           `json:"route"`
	ScheduledStops []ScheduledStop `json:"scheduled-stops"`
}

// ScheduledStop is a single departure within a route's block.
type ScheduledStop struct {
	Times   StopTimes `json:"times"`
	Variant Variant   `json:"variant"`
}

// StopTimes holds the departure pair; the estimated−scheduled delta drives
// the late/ahead annotation.
type StopTimes struct {
	Departure Departure `json:"departure"`
}

// Departure carries the raw naive timestamps for one departure.
type Departure struct {
	Estimated string `json:"estimated"`
	Scheduled string `json:"scheduled"`
}

// Variant is the destination branding of a departure (e.g. "Downtown").
type Variant struct {
	Name string `json:"name"`
}
