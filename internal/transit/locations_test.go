package transit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmarsh/textbus/internal/transit"
)

const addressLocations = `{
	"locations": [
		{
			"type": "address",
			"street-number": 245,
			"street": {"name": "SmithSt"},
			"centre": {"geographic": {"latitude": "49.89218", "longitude": "-97.14084"}}
		}
	]
}`

const intersectionLocations = `{
	"locations": [
		{
			"type": "intersection",
			"street": {"name": "PortageAve"},
			"cross-street": {"name": "MainSt"},
			"centre": {"geographic": {"latitude": "49.89553", "longitude": "-97.13848"}}
		}
	]
}`

const monumentLocations = `{
	"locations": [
		{
			"type": "monument",
			"name": "Via Rail Station (Union Station)",
			"address": {
				"street-number": 123,
				"street": {"name": "Main Street"},
				"centre": {"geographic": {"latitude": "49.88895", "longitude": "-97.13424"}}
			}
		}
	]
}`

func TestResolveLocation_Address(t *testing.T) {
	location, err := transit.ResolveLocation([]byte(addressLocations))

	require.NoError(t, err)
	assert.Equal(t, "245 SmithSt", location.Name)
	assert.Equal(t, "49.89218", location.Latitude)
	assert.Equal(t, "-97.14084", location.Longitude)
}

func TestResolveLocation_Intersection(t *testing.T) {
	location, err := transit.ResolveLocation([]byte(intersectionLocations))

	require.NoError(t, err)
	assert.Equal(t, "PortageAve@MainSt", location.Name)
	assert.Equal(t, "49.89553", location.Latitude)
	assert.Equal(t, "-97.13848", location.Longitude)
}

func TestResolveLocation_Monument(t *testing.T) {
	location, err := transit.ResolveLocation([]byte(monumentLocations))

	require.NoError(t, err)
	assert.Equal(t, "Via Rail Station (Union Station) (123 Main Street)", location.Name)
	assert.Equal(t, "49.88895", location.Latitude)
	assert.Equal(t, "-97.13424", location.Longitude)
}

func TestResolveLocation_FirstRecordWins(t *testing.T) {
	payload := `{
		"locations": [
			{
				"type": "address",
				"street-number": 1,
				"street": {"name": "FirstSt"},
				"centre": {"geographic": {"latitude": "1", "longitude": "2"}}
			},
			{
				"type": "address",
				"street-number": 2,
				"street": {"name": "SecondSt"},
				"centre": {"geographic": {"latitude": "3", "longitude": "4"}}
			}
		]
	}`

	location, err := transit.ResolveLocation([]byte(payload))

	require.NoError(t, err)
	assert.Equal(t, "1 FirstSt", location.Name)
}

func TestResolveLocation_EmptyIsNoLocations(t *testing.T) {
	_, err := transit.ResolveLocation([]byte(`{"locations": []}`))

	assert.ErrorIs(t, err, transit.ErrNoLocations)
}

func TestResolveLocation_MalformedIsNotNoLocations(t *testing.T) {
	_, err := transit.ResolveLocation([]byte(`{"locations": `))

	require.Error(t, err)
	assert.NotErrorIs(t, err, transit.ErrNoLocations)
}

func TestResolveLocation_UnknownTypeIsAnError(t *testing.T) {
	_, err := transit.ResolveLocation([]byte(`{"locations": [{"type": "wormhole"}]}`))

	require.Error(t, err)
	assert.ErrorContains(t, err, "wormhole")
}
