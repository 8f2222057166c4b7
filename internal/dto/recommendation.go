package dto

// RecommendationRequest is the payload accepted by the recommendations endpoint.
// Pointers distinguish a missing field from a zero coordinate.
type RecommendationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}
