package timetable

import (
	"sort"
	"strings"

	"github.com/dharmasatrya/flightscheduler/internal/daytime"
	"github.com/dharmasatrya/flightscheduler/internal/models"
)

type Mode string

const (
	ModeDepartures Mode = "departures"
	ModeArrivals   Mode = "arrivals"
	ModeSchedule   Mode = "schedule"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case ModeDepartures:
		return ModeDepartures, nil
	case ModeArrivals:
		return ModeArrivals, nil
	case ModeSchedule, "":
		return ModeSchedule, nil
	default:
		return "", models.ErrInvalidMode
	}
}

type Direction string

const (
	Departure Direction = "departure"
	Arrival   Direction = "arrival"
)

// Entry is one line of a location's board: a flight and the time it uses
// the location's runway.
type Entry struct {
	Flight    *models.Flight
	Time      daytime.DayTime
	Direction Direction
}

// Counterpart is the other end of the flight.
func (e Entry) Counterpart() *models.Location {
	if e.Direction == Arrival {
		return e.Flight.Source
	}
	return e.Flight.Destination
}

func (e Entry) Describe() string {
	if e.Direction == Arrival {
		return "Arrival from " + e.Counterpart().Name
	}
	return "Departure to " + e.Counterpart().Name
}

// Board lists the runway events of one location ordered by time. In
// schedule mode arrivals precede departures at the same minute.
func Board(departing, arriving []*models.Flight, mode Mode) []Entry {
	entries := make([]Entry, 0, len(departing)+len(arriving))

	if mode == ModeArrivals || mode == ModeSchedule {
		for _, f := range arriving {
			entries = append(entries, Entry{Flight: f, Time: f.Arrival(), Direction: Arrival})
		}
	}
	if mode == ModeDepartures || mode == ModeSchedule {
		for _, f := range departing {
			entries = append(entries, Entry{Flight: f, Time: f.Departure, Direction: Departure})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return daytime.Compare(entries[i].Time, entries[j].Time) < 0
	})

	return entries
}

// SortFlights orders flights by departure time, then by source name.
func SortFlights(flights []*models.Flight) {
	sort.SliceStable(flights, func(i, j int) bool {
		if c := daytime.Compare(flights[i].Departure, flights[j].Departure); c != 0 {
			return c < 0
		}
		return flights[i].Source.Name < flights[j].Source.Name
	})
}

func SortLocations(locations []*models.Location) {
	sort.SliceStable(locations, func(i, j int) bool {
		return locations[i].Name < locations[j].Name
	})
}
