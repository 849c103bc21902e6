package shell

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/dharmasatrya/flightscheduler/internal/csvio"
	"github.com/dharmasatrya/flightscheduler/internal/models"
	"github.com/dharmasatrya/flightscheduler/internal/timetable"
	"github.com/dharmasatrya/flightscheduler/pkg/currency"
)

const (
	flightRule = "-------------------------------------------------------"
	travelRule = "-------------------------------------------------------------"
)

func (s *Shell) flight(args []string) {
	if len(args) < 2 {
		s.println("Usage:\nFLIGHT <id> [BOOK/REMOVE/RESET] [num]\nFLIGHT ADD <departure time> <from> <to> <capacity>\nFLIGHT IMPORT/EXPORT <filename>")
		return
	}

	switch strings.ToUpper(args[1]) {
	case "ADD":
		if len(args) < 7 {
			s.println("Usage:   FLIGHT ADD <departure time> <from> <to> <capacity>\nExample: FLIGHT ADD Monday 18:00 Sydney Melbourne 120")
			return
		}
		f, err := s.network.AddFlight(args[2]+" "+args[3], args[4], args[5], args[6], 0)
		if err != nil {
			s.fail(err)
			return
		}
		s.printf("Successfully added Flight %d.\n", f.ID)

	case "IMPORT":
		if len(args) < 3 {
			s.println("Error reading file.")
			return
		}
		res, err := csvio.ImportFlightsFile(args[2], s.network)
		if err != nil {
			s.println("Error reading file.")
			return
		}
		s.reportImport(res, "flight")

	case "EXPORT":
		if len(args) < 3 {
			s.println("Error writing file.")
			return
		}
		if err := csvio.ExportFlightsFile(args[2], s.network.Flights()); err != nil {
			s.println("Error writing file.")
		}

	default:
		s.flightByID(args)
	}
}

func (s *Shell) flightByID(args []string) {
	id, err := strconv.Atoi(args[1])
	if err != nil {
		s.println("Invalid Flight ID.")
		return
	}
	f, err := s.network.Flight(id)
	if err != nil {
		s.println("Invalid Flight ID.")
		return
	}

	action := ""
	if len(args) >= 3 {
		action = strings.ToUpper(args[2])
	}

	switch action {
	case "BOOK":
		passengers := 1
		if len(args) >= 4 {
			if passengers, err = strconv.Atoi(args[3]); err != nil {
				s.fail(models.ErrInvalidPassengers)
				return
			}
		}
		booking, _, err := s.network.Book(id, passengers)
		if err != nil {
			s.fail(err)
			return
		}
		if booking.Accepted > 0 {
			s.printf("Booked %d passengers on flight %d for a total cost of %s\n",
				booking.Accepted, id, currency.FormatUSD(booking.Total))
		}
		if booking.Full {
			s.println("Flight is now full.")
		}

	case "REMOVE":
		if _, err := s.network.RemoveFlight(id); err != nil {
			s.fail(err)
			return
		}
		s.printf("Removed Flight %d, %s %s --> %s, from the flight schedule.\n",
			f.ID, f.Departure, f.Source.Name, f.Destination.Name)

	case "RESET":
		if _, err := s.network.ResetFlight(id); err != nil {
			s.fail(err)
			return
		}
		s.printf("Reset passengers booked to 0 for Flight %d, %s %s --> %s.\n",
			f.ID, f.Departure, f.Source.Name, f.Destination.Name)

	default:
		duration := f.Duration()
		s.printf("Flight %d\n", f.ID)
		s.printf("Departure:    %s %s\n", f.Departure, f.Source.Name)
		s.printf("Arrival:      %s %s\n", f.Arrival(), f.Destination.Name)
		s.printf("Distance:     %skm\n", currency.FormatInt(int64(math.Round(f.Distance()))))
		s.printf("Duration:     %dh %dm\n", duration/60, duration%60)
		s.printf("Ticket Cost:  %s\n", currency.FormatUSD(f.TicketPrice()))
		s.printf("Passengers:   %d/%d\n", f.Booked, f.Capacity)
	}
}

func (s *Shell) flights() {
	s.println("Flights")
	s.println(flightRule)
	s.println("ID   Departure   Arrival     Source --> Destination")
	s.println(flightRule)

	flights := s.network.Flights()
	for _, f := range flights {
		s.printf("%4d %s   %s   %s --> %s\n", f.ID, f.Departure, f.Arrival(), f.Source.Name, f.Destination.Name)
	}
	if len(flights) == 0 {
		s.println("(None)")
	}
}

func (s *Shell) location(args []string) {
	if len(args) < 2 {
		s.println("Usage:\nLOCATION <name>\nLOCATION ADD <name> <latitude> <longitude> <demand_coefficient>\nLOCATION IMPORT/EXPORT <filename>")
		return
	}

	switch strings.ToUpper(args[1]) {
	case "ADD":
		if len(args) < 6 {
			s.println("Usage:   LOCATION ADD <name> <lat> <long> <demand_coefficient>\nExample: LOCATION ADD Sydney -33.847927 150.651786 0.2")
			return
		}
		loc, err := s.network.AddLocationText(args[2], args[3], args[4], args[5])
		if err != nil {
			s.fail(err)
			return
		}
		s.printf("Successfully added location %s.\n", loc.Name)

	case "IMPORT":
		if len(args) < 3 {
			s.println("Error reading file.")
			return
		}
		res, err := csvio.ImportLocationsFile(args[2], s.network)
		if err != nil {
			s.println("Error reading file.")
			return
		}
		s.reportImport(res, "location")

	case "EXPORT":
		if len(args) < 3 {
			s.println("Error writing file.")
			return
		}
		if err := csvio.ExportLocationsFile(args[2], s.network.Locations()); err != nil {
			s.println("Error writing file.")
		}

	default:
		loc, err := s.network.Location(args[1])
		if err != nil {
			s.println("Invalid location name.")
			return
		}
		s.printf("Location:    %s\n", loc.Name)
		s.printf("Latitude:    %6f\n", loc.Lat)
		s.printf("Longitude:   %6f\n", loc.Lon)
		s.printf("Demand:      %+.4f\n", loc.Demand)
	}
}

func (s *Shell) locations() {
	locations := s.network.Locations()
	s.printf("Locations (%d):\n", len(locations))
	if len(locations) == 0 {
		s.println("(None)")
		return
	}

	names := make([]string, len(locations))
	for i, l := range locations {
		names[i] = l.Name
	}
	s.println(strings.Join(names, ", "))
}

func (s *Shell) reportImport(res csvio.Result, noun string) {
	s.printf("Imported %s.\n", plural(res.Imported, noun))
	switch {
	case res.Invalid == 1:
		s.println("1 line was invalid.")
	case res.Invalid > 1:
		s.printf("%d lines were invalid.\n", res.Invalid)
	}
}

func (s *Shell) travel(ctx context.Context, args []string) {
	if len(args) < 3 {
		s.println("Usage: TRAVEL <from> <to> [cost/duration/stopovers/layover/flight_time]")
		return
	}

	scheme := ""
	if len(args) >= 4 {
		scheme = args[3]
	}
	rank := 1
	if len(args) >= 5 {
		if n, err := strconv.Atoi(args[4]); err == nil {
			rank = n
		}
	}

	res, err := s.network.FindRoutes(ctx, args[1], args[2], scheme, rank)
	switch {
	case errors.Is(err, models.ErrUnknownSource):
		s.println("Starting location not found.")
		return
	case errors.Is(err, models.ErrUnknownDestination):
		s.println("Ending location not found.")
		return
	case errors.Is(err, models.ErrNoRoute):
		from, _ := s.network.Location(args[1])
		to, _ := s.network.Location(args[2])
		s.printf("Sorry, no flights with 3 or less stopovers are available from %s to %s.\n", from.Name, to.Name)
		return
	case err != nil:
		s.fail(err)
		return
	}

	route := res.Route
	s.printf("Legs:             %d\n", route.Itinerary.Len())
	s.printf("Total Duration:   %dh %dm\n", route.Metrics.Duration/60, route.Metrics.Duration%60)
	s.printf("Total Cost:       %s\n", currency.FormatUSD(route.Metrics.Cost))
	s.println(travelRule)
	s.println("ID   Cost      Departure   Arrival     Source --> Destination")
	s.println(travelRule)

	for i, leg := range route.Itinerary.Legs {
		if i > 0 {
			layover := route.Layovers[i]
			s.printf("LAYOVER %dh %dm at %s\n", layover/60, layover%60, leg.Source.Name)
		}
		s.printf("%4d $%8.2f %s   %s   %s --> %s\n", leg.ID, currency.Round2(leg.TicketPrice()),
			leg.Departure, leg.Arrival(), leg.Source.Name, leg.Destination.Name)
	}
}

func (s *Shell) board(args []string) {
	if len(args) < 2 {
		s.fail(models.ErrUnknownLocation)
		return
	}
	loc, err := s.network.Location(args[1])
	if err != nil {
		s.fail(err)
		return
	}

	mode, _ := timetable.ParseMode(args[0])
	entries, err := s.network.FlightsByLocation(loc.Name, mode)
	if err != nil {
		s.fail(err)
		return
	}

	s.println(loc.Name)
	s.println(flightRule)
	s.println("ID   Time        Departure/Arrival to/from Location")
	s.println(flightRule)
	for _, e := range entries {
		s.printf("%4d %s   %s\n", e.Flight.ID, e.Time, e.Describe())
	}
	if len(entries) == 0 {
		s.println("(None)")
	}
}
