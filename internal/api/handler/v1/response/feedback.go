package response

// AverageRatingResponse carries the mean rating for an event. Average is
// null when the event has no feedback yet.
type AverageRatingResponse struct {
	EventID uint     `json:"event_id"`
	Average *float64 `json:"average"`
}
