package models

import "github.com/dharmasatrya/flightscheduler/pkg/currency"

type Duration struct {
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
	TotalMinutes int `json:"total_minutes"`
}

func NewDuration(minutes int) Duration {
	return Duration{
		Hours:        minutes / 60,
		Minutes:      minutes % 60,
		TotalMinutes: minutes,
	}
}

type Price struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Formatted string  `json:"formatted"`
}

func NewPrice(amount float64) Price {
	return Price{
		Amount:    currency.Round2(amount),
		Currency:  "USD",
		Formatted: currency.FormatUSD(amount),
	}
}

type LocationResponse struct {
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Demand     float64 `json:"demand"`
	Departures int     `json:"departures"`
	Arrivals   int     `json:"arrivals"`
}

func NewLocationResponse(l *Location) LocationResponse {
	return LocationResponse{
		Name:       l.Name,
		Latitude:   l.Lat,
		Longitude:  l.Lon,
		Demand:     l.Demand,
		Departures: len(l.departing),
		Arrivals:   len(l.arriving),
	}
}

type FlightResponse struct {
	ID          int      `json:"id"`
	Departure   string   `json:"departure"`
	Arrival     string   `json:"arrival"`
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	DistanceKm  float64  `json:"distance_km"`
	Duration    Duration `json:"duration"`
	TicketPrice Price    `json:"ticket_price"`
	Capacity    int      `json:"capacity"`
	Booked      int      `json:"booked"`
	Full        bool     `json:"full"`
}

func NewFlightResponse(f *Flight) FlightResponse {
	return FlightResponse{
		ID:          f.ID,
		Departure:   f.Departure.FullString(),
		Arrival:     f.Arrival().FullString(),
		Source:      f.Source.Name,
		Destination: f.Destination.Name,
		DistanceKm:  f.Distance(),
		Duration:    NewDuration(f.Duration()),
		TicketPrice: NewPrice(f.TicketPrice()),
		Capacity:    f.Capacity,
		Booked:      f.Booked,
		Full:        f.IsFull(),
	}
}

type BookingResponse struct {
	FlightID  int   `json:"flight_id"`
	Requested int   `json:"requested"`
	Accepted  int   `json:"accepted"`
	TotalCost Price `json:"total_cost"`
	Booked    int   `json:"booked"`
	Capacity  int   `json:"capacity"`
	Full      bool  `json:"full"`
}

type LegResponse struct {
	FlightResponse
	LayoverBefore *Duration `json:"layover_before,omitempty"`
}

type ItineraryResponse struct {
	Legs        []LegResponse `json:"legs"`
	Stopovers   int           `json:"stopovers"`
	Duration    Duration      `json:"duration"`
	FlightTime  Duration      `json:"flight_time"`
	LayoverTime Duration      `json:"layover_time"`
	Cost        Price         `json:"cost"`
}

type RouteCriteria struct {
	From   string `json:"from"`
	To     string `json:"to"`
	SortBy string `json:"sort_by"`
	Rank   int    `json:"rank"`
}

type RouteMetadata struct {
	TotalResults int   `json:"total_results"`
	SelectedRank int   `json:"selected_rank"`
	SearchTimeMs int64 `json:"search_time_ms"`
	CacheHit     bool  `json:"cache_hit"`
}

type RouteResponse struct {
	SearchCriteria RouteCriteria      `json:"search_criteria"`
	Metadata       RouteMetadata      `json:"metadata"`
	Itinerary      *ItineraryResponse `json:"itinerary"`
	Message        string             `json:"message,omitempty"`
}

type BoardEntryResponse struct {
	FlightID    int    `json:"flight_id"`
	Time        string `json:"time"`
	Direction   string `json:"direction"`
	Counterpart string `json:"counterpart"`
}

type BoardResponse struct {
	Location string               `json:"location"`
	Mode     string               `json:"mode"`
	Entries  []BoardEntryResponse `json:"entries"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
