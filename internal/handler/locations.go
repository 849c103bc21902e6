package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightscheduler/internal/models"
	"github.com/dharmasatrya/flightscheduler/internal/timetable"
)

func (h *NetworkHandler) ListLocations(c echo.Context) error {
	locations := h.network.Locations()

	resp := make([]models.LocationResponse, len(locations))
	for i, l := range locations {
		resp[i] = models.NewLocationResponse(l)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *NetworkHandler) AddLocation(c echo.Context) error {
	var req models.AddLocationRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c, err)
	}
	if err := req.Validate(); err != nil {
		return validationError(c, err)
	}

	loc, err := h.network.AddLocation(req.Name, req.Latitude, req.Longitude, req.Demand)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, models.NewLocationResponse(loc))
}

func (h *NetworkHandler) GetLocation(c echo.Context) error {
	loc, err := h.network.Location(c.Param("name"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, models.NewLocationResponse(loc))
}

func (h *NetworkHandler) Board(c echo.Context) error {
	mode, err := timetable.ParseMode(c.QueryParam("mode"))
	if err != nil {
		return errorJSON(c, err)
	}

	loc, err := h.network.Location(c.Param("name"))
	if err != nil {
		return errorJSON(c, err)
	}
	entries, err := h.network.FlightsByLocation(loc.Name, mode)
	if err != nil {
		return errorJSON(c, err)
	}

	resp := models.BoardResponse{
		Location: loc.Name,
		Mode:     string(mode),
		Entries:  make([]models.BoardEntryResponse, len(entries)),
	}
	for i, e := range entries {
		resp.Entries[i] = models.BoardEntryResponse{
			FlightID:    e.Flight.ID,
			Time:        e.Time.FullString(),
			Direction:   string(e.Direction),
			Counterpart: e.Counterpart().Name,
		}
	}

	return c.JSON(http.StatusOK, resp)
}
