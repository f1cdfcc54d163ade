package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tmarsh/textbus/internal/domain"
	"github.com/tmarsh/textbus/internal/transit"
)

const (
	// stopsSearchDistanceMetres is the fixed radius of the nearby-stops query.
	stopsSearchDistanceMetres = 500

	// maxStopsToReturn caps the per-stop routes fan-out. Stops keep their
	// upstream (nearest-first) order; everything past the cap is ignored.
	maxStopsToReturn = 10
)

// handleStops chains geocode → nearby stops → per-stop routes and renders the
// multi-stop listing. Empty results get a friendly reply; a non-2xx status on
// any call in the chain is fatal, unlike the schedule lookup. The calls are deliberately sequential: one upstream
// request in flight per inbound message, and audit records land in call order.
func (b *Bot) handleStops(ctx context.Context, cmd domain.StopsCommand, messageID *uuid.UUID) (string, error) {
	locationsPath := fmt.Sprintf("/v4/locations:%s.json?usage=short", cmd.Location)

	status, body, err := b.transit.Fetch(ctx, locationsPath, messageID)
	if err != nil {
		return "", fmt.Errorf("handleStops: %w", err)
	}
	if status < 200 || status > 299 {
		return "", fmt.Errorf("handleStops: locations lookup returned status %d", status)
	}

	location, err := transit.ResolveLocation([]byte(body))
	if errors.Is(err, transit.ErrNoLocations) {
		return fmt.Sprintf("No locations found for %s", cmd.Location), nil
	}
	if err != nil {
		return "", fmt.Errorf("handleStops: %w", err)
	}

	stopsPath := fmt.Sprintf(
		"/v4/stops.json?lat=%s&lon=%s&distance=%d&usage=short",
		location.Latitude, location.Longitude, stopsSearchDistanceMetres,
	)

	status, body, err = b.transit.Fetch(ctx, stopsPath, messageID)
	if err != nil {
		return "", fmt.Errorf("handleStops: %w", err)
	}
	if status < 200 || status > 299 {
		return "", fmt.Errorf("handleStops: stops lookup returned status %d", status)
	}

	var stopsResponse transit.StopsResponse
	if err := json.Unmarshal([]byte(body), &stopsResponse); err != nil {
		return "", fmt.Errorf("handleStops: decode stops: %w", err)
	}

	if len(stopsResponse.Stops) == 0 {
		return fmt.Sprintf("No stops found within %dm of %s", stopsSearchDistanceMetres, location.Name), nil
	}

	stops := stopsResponse.Stops
	if len(stops) > maxStopsToReturn {
		stops = stops[:maxStopsToReturn]
	}

	reply := fmt.Sprintf("Stops near %s\n", location.Name)

	for _, stop := range stops {
		routesPath := fmt.Sprintf("/v4/routes.json?stop=%d", stop.Number)

		status, body, err := b.transit.Fetch(ctx, routesPath, messageID)
		if err != nil {
			return "", fmt.Errorf("handleStops: routes for stop %d: %w", stop.Number, err)
		}
		if status < 200 || status > 299 {
			return "", fmt.Errorf("handleStops: routes for stop %d returned status %d", stop.Number, status)
		}

		var routesResponse transit.RoutesResponse
		if err := json.Unmarshal([]byte(body), &routesResponse); err != nil {
			return "", fmt.Errorf("handleStops: decode routes for stop %d: %w", stop.Number, err)
		}

		// A stop served by no routes contributes nothing to the reply.
		if len(routesResponse.Routes) == 0 {
			continue
		}

		numbers := make([]transit.RouteNumber, len(routesResponse.Routes))
		for i, route := range routesResponse.Routes {
			numbers[i] = route.Number
		}
		transit.SortRouteNumbers(numbers)

		rendered := make([]string, len(numbers))
		for i, number := range numbers {
			rendered[i] = string(number)
		}

		reply += fmt.Sprintf("\n%d %s %s\n", stop.Number, stop.Name, strings.Join(rendered, " "))
	}

	return reply, nil
}
