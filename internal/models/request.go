package models

import "strings"

type AddLocationRequest struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Demand    float64 `json:"demand"`
}

func (r *AddLocationRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return ErrMissingName
	}
	return nil
}

type AddFlightRequest struct {
	Departure   string `json:"departure"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Capacity    int    `json:"capacity"`
	Booked      int    `json:"booked"`
}

func (r *AddFlightRequest) Validate() error {
	if strings.TrimSpace(r.Departure) == "" {
		return ErrMissingDeparture
	}
	if r.Source == "" {
		return ErrMissingSource
	}
	if r.Destination == "" {
		return ErrMissingDestination
	}
	return nil
}

type BookRequest struct {
	Passengers *int `json:"passengers,omitempty"`
}

// Count is the number of seats requested, one when omitted.
func (r BookRequest) Count() int {
	if r.Passengers == nil {
		return 1
	}
	return *r.Passengers
}

type RouteRequest struct {
	From   string `query:"from"`
	To     string `query:"to"`
	SortBy string `query:"sort_by"`
	Rank   int    `query:"rank"`
}

func (r *RouteRequest) Validate() error {
	if r.From == "" {
		return ErrMissingSource
	}
	if r.To == "" {
		return ErrMissingDestination
	}
	if r.SortBy == "" {
		r.SortBy = "duration"
	}
	if r.Rank == 0 {
		r.Rank = 1
	}
	return nil
}

const (
	ErrMissingName        ValidationError = "name is required"
	ErrMissingDeparture   ValidationError = "departure is required"
	ErrMissingSource      ValidationError = "source is required"
	ErrMissingDestination ValidationError = "destination is required"
)
