package models

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

const (
	MaxLatitude  = 85.0
	MaxLongitude = 180.0
	MaxDemand    = 1.0
)

// Location is an airport. It records the ids of flights departing from and
// arriving at it; it never owns those flights.
type Location struct {
	Name   string
	Lat    float64
	Lon    float64
	Demand float64

	departing []int
	arriving  []int
}

func NewLocation(name string, lat, lon, demand float64) (*Location, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if !inRange(lat, MaxLatitude) {
		return nil, ErrInvalidLatitude
	}
	if !inRange(lon, MaxLongitude) {
		return nil, ErrInvalidLongitude
	}
	if !inRange(demand, MaxDemand) {
		return nil, ErrInvalidDemand
	}

	return &Location{Name: name, Lat: lat, Lon: lon, Demand: demand}, nil
}

// ParseLocation builds a Location from text fields. A field that is not a
// number reports the same error as one that is out of range.
func ParseLocation(name, lat, lon, demand string) (*Location, error) {
	latNum, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return nil, ErrInvalidLatitude
	}
	lonNum, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return nil, ErrInvalidLongitude
	}
	demandNum, err := strconv.ParseFloat(strings.TrimSpace(demand), 64)
	if err != nil {
		return nil, ErrInvalidDemand
	}

	return NewLocation(name, latNum, lonNum, demandNum)
}

func inRange(v, limit float64) bool {
	return !math.IsNaN(v) && v >= -limit && v <= limit
}

// Key is the case-insensitive identity of the location.
func (l *Location) Key() string {
	return NameKey(l.Name)
}

func NameKey(name string) string {
	return strings.ToLower(name)
}

// Clone returns a copy that shares no mutable state with l.
func (l *Location) Clone() *Location {
	c := *l
	c.departing = slices.Clone(l.departing)
	c.arriving = slices.Clone(l.arriving)
	return &c
}

// Departing returns the ids of flights leaving here, in admission order.
func (l *Location) Departing() []int {
	return slices.Clone(l.departing)
}

// Arriving returns the ids of flights landing here, in admission order.
func (l *Location) Arriving() []int {
	return slices.Clone(l.arriving)
}

func (l *Location) AttachDeparture(flightID int) {
	l.departing = append(l.departing, flightID)
}

func (l *Location) AttachArrival(flightID int) {
	l.arriving = append(l.arriving, flightID)
}

func (l *Location) DetachDeparture(flightID int) {
	l.departing = removeID(l.departing, flightID)
}

func (l *Location) DetachArrival(flightID int) {
	l.arriving = removeID(l.arriving, flightID)
}

func removeID(ids []int, id int) []int {
	return slices.DeleteFunc(ids, func(v int) bool { return v == id })
}
