package transit

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// RouteNumber is a route identifier. The API types it inconsistently:
// numbered routes arrive as JSON numbers, lettered routes (e.g. "BLUE") as
// JSON strings. It is normalized to a string at decode time. Pure-numeric
// tokens keep their digit form so numeric ordering still applies.
type RouteNumber string

func (n *RouteNumber) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	// UseNumber keeps 16 as "16" instead of going through a float64.
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch value := v.(type) {
	case string:
		*n = RouteNumber(value)
	case json.Number:
		*n = RouteNumber(value.String())
	default:
		return fmt.Errorf("route number must be a string or a number, got %T", v)
	}
	return nil
}

// Route is one route serving a stop.
type Route struct {
	Number RouteNumber `json:"number"`
}

// RoutesResponse is the routes-at-a-stop listing.
type RoutesResponse struct {
	Routes []Route `json:"routes"`
}

// SortRouteNumbers orders routes for display: numeric routes ascending by
// value come first, then lettered routes alphabetically. The sort is stable
// so equal numbers keep their upstream order.
func SortRouteNumbers(routes []RouteNumber) {
	slices.SortStableFunc(routes, compareRouteNumbers)
}

func compareRouteNumbers(a, b RouteNumber) int {
	aValue, aErr := strconv.ParseUint(string(a), 10, 64)
	bValue, bErr := strconv.ParseUint(string(b), 10, 64)

	switch {
	case aErr == nil && bErr == nil:
		return cmp.Compare(aValue, bValue)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return cmp.Compare(string(a), string(b))
	}
}
