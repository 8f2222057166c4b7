package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/travel-buddy/api/internal/dto"
	"github.com/octobees/travel-buddy/api/internal/entity"
)

// Recommender assembles a recommendation for a validated coordinate.
type Recommender interface {
	Aggregate(ctx context.Context, coord entity.Coordinate) entity.RecommendationResponse
}

// RecommendationsHandler serves travel recommendations.
type RecommendationsHandler struct {
	recommender Recommender
}

// NewRecommendationsHandler constructs the handler.
func NewRecommendationsHandler(recommender Recommender) *RecommendationsHandler {
	return &RecommendationsHandler{recommender: recommender}
}

// Create handles POST /api/recommendations. The body of a successful response
// is the bare recommendation document, not the envelope.
func (h *RecommendationsHandler) Create(c echo.Context) error {
	var req dto.RecommendationRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if req.Latitude == nil || req.Longitude == nil {
		return Error(c, http.StatusBadRequest, "latitude and longitude are required")
	}

	coord := entity.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
	if err := coord.Validate(); err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	resp := h.recommender.Aggregate(c.Request().Context(), coord)
	return c.JSON(http.StatusOK, resp)
}
