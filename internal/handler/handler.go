package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightscheduler/internal/models"
	"github.com/dharmasatrya/flightscheduler/internal/network"
)

type NetworkHandler struct {
	network *network.Network
}

func NewNetworkHandler(n *network.Network) *NetworkHandler {
	return &NetworkHandler{
		network: n,
	}
}

func (h *NetworkHandler) Register(api *echo.Group) {
	api.GET("/locations", h.ListLocations)
	api.POST("/locations", h.AddLocation)
	api.GET("/locations/:name", h.GetLocation)
	api.GET("/locations/:name/board", h.Board)

	api.GET("/flights", h.ListFlights)
	api.POST("/flights", h.AddFlight)
	api.GET("/flights/:id", h.GetFlight)
	api.DELETE("/flights/:id", h.RemoveFlight)
	api.POST("/flights/:id/book", h.Book)
	api.POST("/flights/:id/reset", h.ResetFlight)

	api.GET("/routes", h.FindRoute)
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}

	switch models.KindOf(err) {
	case models.KindInvalidFormat, models.KindRangeViolation, models.KindInvalidInput,
		models.KindSameLocation, models.KindInvalidScheme:
		return http.StatusBadRequest
	case models.KindUnknownLocation, models.KindUnknownFlight:
		return http.StatusNotFound
	case models.KindDuplicateName, models.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorJSON(c echo.Context, err error) error {
	code := statusFor(err)
	name := models.KindOf(err).String()
	if code == http.StatusGatewayTimeout {
		name = "search_timeout"
	}

	return c.JSON(code, models.ErrorResponse{
		Error:   name,
		Message: err.Error(),
		Code:    code,
	})
}

func bindError(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: "Failed to parse request: " + err.Error(),
		Code:    http.StatusBadRequest,
	})
}

func validationError(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
		Code:    http.StatusBadRequest,
	})
}

// flightID reads the :id path parameter; anything that is not an integer
// names no flight.
func flightID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, models.ErrUnknownFlight
	}
	return id, nil
}
