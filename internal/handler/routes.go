package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightscheduler/internal/models"
	"github.com/dharmasatrya/flightscheduler/internal/ranking"
)

// FindRoute answers with the itinerary at the requested rank. Finding no
// itinerary is a normal answer: 200 with a null itinerary.
func (h *NetworkHandler) FindRoute(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req models.RouteRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}
	if err := req.Validate(); err != nil {
		return validationError(c, err)
	}

	result, err := h.network.FindRoutes(ctx, req.From, req.To, req.SortBy, req.Rank)
	if err != nil && !errors.Is(err, models.ErrNoRoute) {
		return errorJSON(c, err)
	}

	resp := models.RouteResponse{
		SearchCriteria: models.RouteCriteria{
			From:   req.From,
			To:     req.To,
			SortBy: string(result.Scheme),
			Rank:   req.Rank,
		},
		Metadata: models.RouteMetadata{
			TotalResults: result.Total,
			SelectedRank: result.Rank,
			SearchTimeMs: time.Since(startTime).Milliseconds(),
			CacheHit:     result.CacheHit,
		},
	}
	if err != nil {
		resp.Message = err.Error()
	} else {
		resp.Itinerary = newItineraryResponse(result.Route)
	}

	return c.JSON(http.StatusOK, resp)
}

func newItineraryResponse(r ranking.Ranked) *models.ItineraryResponse {
	resp := &models.ItineraryResponse{
		Legs:        make([]models.LegResponse, len(r.Itinerary.Legs)),
		Stopovers:   r.Metrics.Stopovers,
		Duration:    models.NewDuration(r.Metrics.Duration),
		FlightTime:  models.NewDuration(r.Metrics.FlightTime),
		LayoverTime: models.NewDuration(r.Metrics.LayoverTime),
		Cost:        models.NewPrice(r.Metrics.Cost),
	}

	for i, leg := range r.Itinerary.Legs {
		resp.Legs[i] = models.LegResponse{FlightResponse: models.NewFlightResponse(leg)}
		if i > 0 {
			layover := models.NewDuration(r.Layovers[i])
			resp.Legs[i].LayoverBefore = &layover
		}
	}
	return resp
}
