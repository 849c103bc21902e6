// Package conflict decides whether a candidate flight may share runways
// with the flights already scheduled at its source and destination.
//
// Two runway events clash when they fall within daytime.ConflictWindow of
// each other, measured around the week. Four categories are checked in a
// fixed order and the first one holding any clash rejects the candidate:
//
//  1. departures from the source vs the candidate's departure
//  2. arrivals at the source vs the candidate's departure
//  3. departures from the destination vs the candidate's arrival
//  4. arrivals at the destination vs the candidate's arrival
//
// Only one clashing flight is reported: the earliest one strictly after the
// candidate's event if there is one, otherwise the latest clashing flight.
// "After" uses the linear daytime.Compare, not the circular distance.
package conflict

import (
	"github.com/dharmasatrya/flightscheduler/internal/daytime"
	"github.com/dharmasatrya/flightscheduler/internal/models"
)

// Schedule exposes the flights already using a location's runway.
type Schedule interface {
	Departing(loc *models.Location) []*models.Flight
	Arriving(loc *models.Location) []*models.Flight
}

type category struct {
	flights []*models.Flight
	role    models.ConflictRole
	event   func(*models.Flight) daytime.DayTime
	ref     daytime.DayTime
}

func departureOf(f *models.Flight) daytime.DayTime { return f.Departure }
func arrivalOf(f *models.Flight) daytime.DayTime   { return f.Arrival() }

// Check returns nil when candidate can be admitted, or a
// *models.ConflictError naming the flight it clashes with. It never
// mutates the schedule or the candidate.
func Check(candidate *models.Flight, s Schedule) error {
	departure := candidate.Departure
	arrival := candidate.Arrival()

	categories := []category{
		{s.Departing(candidate.Source), models.RoleDeparting, departureOf, departure},
		{s.Arriving(candidate.Source), models.RoleArriving, arrivalOf, departure},
		{s.Departing(candidate.Destination), models.RoleDeparting, departureOf, arrival},
		{s.Arriving(candidate.Destination), models.RoleArriving, arrivalOf, arrival},
	}

	for _, c := range categories {
		clashes := c.clashes()
		if len(clashes) == 0 {
			continue
		}

		reported := c.pick(clashes)
		location := reported.Source.Name
		if c.role == models.RoleArriving {
			location = reported.Destination.Name
		}

		return &models.ConflictError{
			FlightID: reported.ID,
			Location: location,
			At:       c.event(reported),
			Role:     c.role,
		}
	}

	return nil
}

func (c category) clashes() []*models.Flight {
	var out []*models.Flight
	for _, f := range c.flights {
		if daytime.IsConflicted(c.event(f), c.ref) {
			out = append(out, f)
		}
	}
	return out
}

// pick selects which clash to report. clashes must not be empty.
func (c category) pick(clashes []*models.Flight) *models.Flight {
	var earliestAfter, latest *models.Flight

	for _, f := range clashes {
		t := c.event(f)

		if daytime.Compare(t, c.ref) > 0 {
			if earliestAfter == nil || daytime.Compare(t, c.event(earliestAfter)) < 0 {
				earliestAfter = f
			}
		}
		if latest == nil || daytime.Compare(t, c.event(latest)) > 0 {
			latest = f
		}
	}

	if earliestAfter != nil {
		return earliestAfter
	}
	return latest
}
