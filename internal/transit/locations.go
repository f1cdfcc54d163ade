package transit

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoLocations is returned by ResolveLocation when the geocoder matched
// nothing. Callers render this as a friendly "no locations found" reply;
// it is distinct from a malformed payload, which is a hard decode error.
var ErrNoLocations = errors.New("no locations")

// ResolvedLocation is the canonical result of geocoding free text.
// Latitude and Longitude are kept as the opaque decimal strings the API
// returned; they are reused verbatim as query parameters, never parsed,
// so no float round-trip can shift them.
type ResolvedLocation struct {
	Name      string
	Latitude  string
	Longitude string
}

// The locations endpoint returns a tagged union: each record carries a
// "type" of address, intersection, or monument, with variant-specific
// fields inline. A monument nests a full address.

type geographic struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type centre struct {
	Geographic geographic `json:"geographic"`
}

type street struct {
	Name string `json:"name"`
}

type address struct {
	StreetNumber int64  `json:"street-number"`
	Street       street `json:"street"`
	Centre       centre `json:"centre"`
}

type intersection struct {
	Street      street `json:"street"`
	CrossStreet street `json:"cross-street"`
	Centre      centre `json:"centre"`
}

type monument struct {
	Name    string  `json:"name"`
	Address address `json:"address"`
}

// ResolveLocation decodes a raw locations response and reduces it to the
// display name and coordinates of the first match. There is no
// disambiguation UI, so any records past the first are ignored.
func ResolveLocation(raw []byte) (ResolvedLocation, error) {
	var envelope struct {
		Locations []json.RawMessage `json:"locations"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ResolvedLocation{}, fmt.Errorf("transit.ResolveLocation: %w", err)
	}
	if len(envelope.Locations) == 0 {
		return ResolvedLocation{}, ErrNoLocations
	}

	first := envelope.Locations[0]
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(first, &tag); err != nil {
		return ResolvedLocation{}, fmt.Errorf("transit.ResolveLocation: read type tag: %w", err)
	}

	switch tag.Type {
	case "address":
		var a address
		if err := json.Unmarshal(first, &a); err != nil {
			return ResolvedLocation{}, fmt.Errorf("transit.ResolveLocation: decode address: %w", err)
		}
		return ResolvedLocation{
			Name:      fmt.Sprintf("%d %s", a.StreetNumber, a.Street.Name),
			Latitude:  a.Centre.Geographic.Latitude,
			Longitude: a.Centre.Geographic.Longitude,
		}, nil
	case "intersection":
		var i intersection
		if err := json.Unmarshal(first, &i); err != nil {
			return ResolvedLocation{}, fmt.Errorf("transit.ResolveLocation: decode intersection: %w", err)
		}
		return ResolvedLocation{
			Name:      fmt.Sprintf("%s@%s", i.Street.Name, i.CrossStreet.Name),
			Latitude:  i.Centre.Geographic.Latitude,
			Longitude: i.Centre.Geographic.Longitude,
		}, nil
	case "monument":
		var m monument
		if err := json.Unmarshal(first, &m); err != nil {
			return ResolvedLocation{}, fmt.Errorf("transit.ResolveLocation: decode monument: %w", err)
		}
		return ResolvedLocation{
			Name:      fmt.Sprintf("%s (%d %s)", m.Name, m.Address.StreetNumber, m.Address.Street.Name),
			Latitude:  m.Address.Centre.Geographic.Latitude,
			Longitude: m.Address.Centre.Geographic.Longitude,
		}, nil
	default:
		return ResolvedLocation{}, fmt.Errorf("transit.ResolveLocation: unknown location type %q", tag.Type)
	}
}
