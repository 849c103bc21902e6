package models

import (
	"errors"
	"fmt"

	"github.com/dharmasatrya/flightscheduler/internal/daytime"
	"github.com/dharmasatrya/flightscheduler/internal/pricing"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidFormat
	KindRangeViolation
	KindInvalidInput
	KindUnknownLocation
	KindUnknownFlight
	KindDuplicateName
	KindSameLocation
	KindConflict
	KindInvalidScheme
	KindNoRoute
	KindIOFailure
)

var kindNames = map[Kind]string{
	KindUnknown:         "unknown",
	KindInvalidFormat:   "invalid_format",
	KindRangeViolation:  "range_violation",
	KindInvalidInput:    "invalid_input",
	KindUnknownLocation: "unknown_location",
	KindUnknownFlight:   "unknown_flight",
	KindDuplicateName:   "duplicate_name",
	KindSameLocation:    "same_location",
	KindConflict:        "conflict",
	KindInvalidScheme:   "invalid_scheme",
	KindNoRoute:         "no_route",
	KindIOFailure:       "io_failure",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrEmptyName        ValidationError = "location name cannot be empty"
	ErrDuplicateName    ValidationError = "this location already exists"
	ErrInvalidLatitude  ValidationError = "invalid latitude: it must be a number of degrees between -85 and +85"
	ErrInvalidLongitude ValidationError = "invalid longitude: it must be a number of degrees between -180 and +180"
	ErrInvalidDemand    ValidationError = "invalid demand coefficient: it must be a number between -1 and +1"
	ErrInvalidCapacity  ValidationError = "invalid positive integer capacity"
	ErrInvalidBooked    ValidationError = "invalid booked count: it must be between 0 and the capacity"
	ErrSameLocation     ValidationError = "source and destination cannot be the same place"
	ErrInvalidScheme    ValidationError = "invalid sorting property: must be either cost, duration, stopovers, layover, or flight_time"
	ErrInvalidMode      ValidationError = "invalid listing mode: must be either departures, arrivals, or schedule"
)

type LookupError string

func (e LookupError) Error() string {
	return string(e)
}

const (
	ErrUnknownSource      LookupError = "invalid starting location"
	ErrUnknownDestination LookupError = "invalid ending location"
	ErrUnknownLocation    LookupError = "this location does not exist in the system"
	ErrUnknownFlight      LookupError = "invalid flight id"
)

var (
	ErrInvalidFormat     = daytime.ErrInvalidFormat
	ErrInvalidPassengers = pricing.ErrInvalidPassengers

	// ErrNoRoute is a valid outcome of a route query, not a failure.
	ErrNoRoute = errors.New("no flights with 3 or less stopovers are available")
)

type ConflictRole int

const (
	RoleDeparting ConflictRole = iota
	RoleArriving
)

func (r ConflictRole) String() string {
	if r == RoleArriving {
		return "arriving at"
	}
	return "departing from"
}

// ConflictError names the existing flight a rejected candidate clashes
// with, and the runway event (departure or arrival) that clashed.
type ConflictError struct {
	FlightID int
	Location string
	At       daytime.DayTime
	Role     ConflictRole
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("scheduling conflict: this flight clashes with Flight %d %s %s on %s",
		e.FlightID, e.Role, e.Location, e.At.FullString())
}

// IOError is raised by import and export when the underlying reader or
// writer fails, as opposed to a single malformed row.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return KindConflict
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return KindIOFailure
	}

	switch {
	case errors.Is(err, ErrInvalidFormat):
		return KindInvalidFormat
	case errors.Is(err, ErrNoRoute):
		return KindNoRoute
	case errors.Is(err, ErrInvalidPassengers):
		return KindInvalidInput
	}

	var lookup LookupError
	if errors.As(err, &lookup) {
		if lookup == ErrUnknownFlight {
			return KindUnknownFlight
		}
		return KindUnknownLocation
	}

	var validation ValidationError
	if errors.As(err, &validation) {
		switch validation {
		case ErrDuplicateName:
			return KindDuplicateName
		case ErrSameLocation:
			return KindSameLocation
		case ErrInvalidScheme:
			return KindInvalidScheme
		case ErrInvalidLatitude, ErrInvalidLongitude, ErrInvalidDemand, ErrInvalidCapacity, ErrInvalidBooked:
			return KindRangeViolation
		default:
			return KindInvalidInput
		}
	}

	return KindUnknown
}
