package service_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmarsh/textbus/internal/service"
)

const unionStationLocations = `{
	"locations": [
		{
			"type": "monument",
			"name": "Via Rail Station (Union Station)",
			"address": {
				"street-number": 123,
				"street": {"name": "MainSt"},
				"centre": {"geographic": {"latitude": "49.88895", "longitude": "-97.13424"}}
			}
		}
	]
}`

const unionStationStops = `{
	"stops": [
		{"number": 10625, "name": "NB Main@Broadway (Union Station)"},
		{"number": 11052, "name": "WB Broadway@Main"},
		{"number": 10907, "name": "EB Forks Market@The Forks Market"}
	]
}`

func stopsBot(routesByStop map[string]string) (*service.Bot, *stubFetcher) {
	return newTestBot(func(path string) (int, string, error) {
		switch {
		case strings.HasPrefix(path, "/v4/locations:"):
			return http.StatusOK, unionStationLocations, nil
		case strings.HasPrefix(path, "/v4/stops.json"):
			return http.StatusOK, unionStationStops, nil
		case strings.HasPrefix(path, "/v4/routes.json?stop="):
			stop := strings.TrimPrefix(path, "/v4/routes.json?stop=")
			return http.StatusOK, routesByStop[stop], nil
		default:
			return http.StatusNotFound, "", nil
		}
	})
}

func TestHandleMessage_StopsRendersNearbyStopsWithSortedRoutes(t *testing.T) {
	bot, fetcher := stopsBot(map[string]string{
		"10625": `{"routes": [{"number": "BLUE"}, {"number": 14}, {"number": 2}]}`,
		"11052": `{"routes": []}`,
		"10907": `{"routes": [{"number": 38}]}`,
	})

	reply, err := bot.HandleMessage(context.Background(), "stops Union Station", nil, nil)

	require.NoError(t, err)
	// 11052 is served by no routes, so it contributes no line at all.
	assert.Equal(t,
		"Stops near Via Rail Station (Union Station) (123 MainSt)\n"+
			"\n10625 NB Main@Broadway (Union Station) 2 14 BLUE\n"+
			"\n10907 EB Forks Market@The Forks Market 38\n",
		reply,
	)

	// The dependent calls run in order: geocode, nearby stops with the
	// resolved coordinates verbatim, then one routes lookup per stop.
	require.Len(t, fetcher.paths, 5)
	assert.Equal(t, "/v4/locations:Union Station.json?usage=short", fetcher.paths[0])
	assert.Equal(t, "/v4/stops.json?lat=49.88895&lon=-97.13424&distance=500&usage=short", fetcher.paths[1])
	assert.Equal(t, "/v4/routes.json?stop=10625", fetcher.paths[2])
	assert.Equal(t, "/v4/routes.json?stop=11052", fetcher.paths[3])
	assert.Equal(t, "/v4/routes.json?stop=10907", fetcher.paths[4])
}

func TestHandleMessage_StopsNoLocations(t *testing.T) {
	bot, fetcher := newTestBot(func(path string) (int, string, error) {
		return http.StatusOK, `{"locations": []}`, nil
	})

	reply, err := bot.HandleMessage(context.Background(), "stops acab", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "No locations found for acab", reply)
	assert.Len(t, fetcher.paths, 1, "no stops query after an empty geocode")
}

func TestHandleMessage_StopsNoneNearby(t *testing.T) {
	bot, _ := newTestBot(func(path string) (int, string, error) {
		if strings.HasPrefix(path, "/v4/locations:") {
			return http.StatusOK, unionStationLocations, nil
		}
		return http.StatusOK, `{"stops": []}`, nil
	})

	reply, err := bot.HandleMessage(context.Background(), "stops Union Station", nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "No stops found within 500m of Via Rail Station (Union Station) (123 MainSt)", reply)
}

func TestHandleMessage_StopsCapsRoutesLookupsAtTen(t *testing.T) {
	var stops []string
	for i := 0; i < 12; i++ {
		stops = append(stops, fmt.Sprintf(`{"number": %d, "name": "Stop %d"}`, 20000+i, i))
	}
	bot, fetcher := newTestBot(func(path string) (int, string, error) {
		switch {
		case strings.HasPrefix(path, "/v4/locations:"):
			return http.StatusOK, unionStationLocations, nil
		case strings.HasPrefix(path, "/v4/stops.json"):
			return http.StatusOK, fmt.Sprintf(`{"stops": [%s]}`, strings.Join(stops, ",")), nil
		default:
			return http.StatusOK, `{"routes": [{"number": 1}]}`, nil
		}
	})

	reply, err := bot.HandleMessage(context.Background(), "stops Union Station", nil, nil)

	require.NoError(t, err)
	assert.Len(t, fetcher.paths, 12, "geocode + stops + ten routes lookups")
	assert.Contains(t, reply, "20009 Stop 9")
	assert.NotContains(t, reply, "20010 Stop 10")
}

func TestHandleMessage_StopsUpstreamErrorStatusIsFatal(t *testing.T) {
	// An upstream error body carries no "locations"/"stops"/"routes" key, so
	// a lenient decode would misread it as an empty result. The status makes
	// each of these fatal instead of a "nothing found" reply.
	tests := []struct {
		name     string
		failPath string
	}{
		{name: "locations lookup", failPath: "/v4/locations:"},
		{name: "stops lookup", failPath: "/v4/stops.json"},
		{name: "routes lookup", failPath: "/v4/routes.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot, _ := newTestBot(func(path string) (int, string, error) {
				if strings.HasPrefix(path, tt.failPath) {
					return http.StatusForbidden, `{"message": "invalid api key"}`, nil
				}
				switch {
				case strings.HasPrefix(path, "/v4/locations:"):
					return http.StatusOK, unionStationLocations, nil
				case strings.HasPrefix(path, "/v4/stops.json"):
					return http.StatusOK, unionStationStops, nil
				default:
					return http.StatusOK, `{"routes": [{"number": 1}]}`, nil
				}
			})

			reply, err := bot.HandleMessage(context.Background(), "stops Union Station", nil, nil)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "status 403")
			assert.Empty(t, reply)
		})
	}
}

func TestHandleMessage_StopsMalformedPayloadIsFatal(t *testing.T) {
	bot, _ := newTestBot(func(path string) (int, string, error) {
		if strings.HasPrefix(path, "/v4/locations:") {
			return http.StatusOK, unionStationLocations, nil
		}
		return http.StatusOK, `{"stops": `, nil
	})

	_, err := bot.HandleMessage(context.Background(), "stops Union Station", nil, nil)

	assert.Error(t, err)
}
