package transit

// StopSummary is one stop from a stops-near-coordinates listing.
// It only carries what the per-stop routes lookup and the reply line need.
type StopSummary struct {
	Number int64  `json:"number"`
	Name   string `json:"name"`
}

// StopsResponse is the stops-within-a-radius listing, in upstream order.
type StopsResponse struct {
	Stops []StopSummary `json:"stops"`
}
