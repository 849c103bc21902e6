package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightscheduler/internal/models"
)

func (h *NetworkHandler) ListFlights(c echo.Context) error {
	flights := h.network.Flights()

	resp := make([]models.FlightResponse, len(flights))
	for i, f := range flights {
		resp[i] = models.NewFlightResponse(f)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *NetworkHandler) AddFlight(c echo.Context) error {
	var req models.AddFlightRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}
	if err := req.Validate(); err != nil {
		return validationError(c, err)
	}

	flight, err := h.network.AddFlight(req.Departure, req.Source, req.Destination, strconv.Itoa(req.Capacity), req.Booked)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, models.NewFlightResponse(flight))
}

func (h *NetworkHandler) GetFlight(c echo.Context) error {
	id, err := flightID(c)
	if err != nil {
		return errorJSON(c, err)
	}

	flight, err := h.network.Flight(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, models.NewFlightResponse(flight))
}

func (h *NetworkHandler) RemoveFlight(c echo.Context) error {
	id, err := flightID(c)
	if err != nil {
		return errorJSON(c, err)
	}

	if _, err := h.network.RemoveFlight(id); err != nil {
		return errorJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *NetworkHandler) Book(c echo.Context) error {
	id, err := flightID(c)
	if err != nil {
		return errorJSON(c, err)
	}

	var req models.BookRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}

	booking, flight, err := h.network.Book(id, req.Count())
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, models.BookingResponse{
		FlightID:  flight.ID,
		Requested: booking.Requested,
		Accepted:  booking.Accepted,
		TotalCost: models.NewPrice(booking.Total),
		Booked:    flight.Booked,
		Capacity:  flight.Capacity,
		Full:      booking.Full,
	})
}

func (h *NetworkHandler) ResetFlight(c echo.Context) error {
	id, err := flightID(c)
	if err != nil {
		return errorJSON(c, err)
	}

	flight, err := h.network.ResetFlight(id)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, models.NewFlightResponse(flight))
}
