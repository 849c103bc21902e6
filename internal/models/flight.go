package models

import (
	"github.com/dharmasatrya/flightscheduler/internal/daytime"
	"github.com/dharmasatrya/flightscheduler/internal/pricing"
)

// Flight is a weekly scheduled service between two locations. Distance,
// duration, arrival and price are derived on demand, never stored.
type Flight struct {
	ID          int
	Departure   daytime.DayTime
	Source      *Location
	Destination *Location
	Capacity    int
	Booked      int
}

// NewFlight validates a candidate flight. The id is left for the network
// to assign at admission.
func NewFlight(departure daytime.DayTime, source, destination *Location, capacity, booked int) (*Flight, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if source == destination || source.Key() == destination.Key() {
		return nil, ErrSameLocation
	}
	if booked < 0 || booked > capacity {
		return nil, ErrInvalidBooked
	}

	return &Flight{
		Departure:   departure,
		Source:      source,
		Destination: destination,
		Capacity:    capacity,
		Booked:      booked,
	}, nil
}

// Clone copies the flight and both of its endpoints.
func (f *Flight) Clone() *Flight {
	c := *f
	c.Source = f.Source.Clone()
	c.Destination = f.Destination.Clone()
	return &c
}

func (f *Flight) Fare() pricing.Fare {
	return pricing.Fare{
		DistanceKm:        f.Distance(),
		SourceDemand:      f.Source.Demand,
		DestinationDemand: f.Destination.Demand,
	}
}

// Distance in km, rounded to four decimal places.
func (f *Flight) Distance() float64 {
	return pricing.Distance(f.Source.Lat, f.Source.Lon, f.Destination.Lat, f.Destination.Lon)
}

// Duration in minutes.
func (f *Flight) Duration() int {
	return pricing.Duration(f.Distance())
}

func (f *Flight) Arrival() daytime.DayTime {
	return f.Departure.AddMinutes(f.Duration())
}

// TicketPrice is the price of the next seat at the current fill ratio.
func (f *Flight) TicketPrice() float64 {
	return f.Fare().Price(f.Booked, f.Capacity)
}

func (f *Flight) IsFull() bool {
	return f.Booked >= f.Capacity
}

func (f *Flight) Available() int {
	return max(f.Capacity-f.Booked, 0)
}

// Book sells up to n seats, pricing each at the fill ratio left by the
// previous one. It leaves the flight untouched when n is not positive.
func (f *Flight) Book(n int) (pricing.Booking, error) {
	booking, err := f.Fare().Book(f.Booked, f.Capacity, n)
	if err != nil {
		return pricing.Booking{}, err
	}
	f.Booked = booking.Booked
	return booking, nil
}

func (f *Flight) Reset() {
	f.Booked = 0
}

// Itinerary is an ordered chain of legs; each leg departs from the
// location the previous one arrived at.
type Itinerary struct {
	Legs []*Flight
}

func (it Itinerary) Len() int {
	return len(it.Legs)
}

func (it Itinerary) Origin() *Location {
	if len(it.Legs) == 0 {
		return nil
	}
	return it.Legs[0].Source
}

func (it Itinerary) Destination() *Location {
	if len(it.Legs) == 0 {
		return nil
	}
	return it.Legs[len(it.Legs)-1].Destination
}

// Connected reports whether every leg starts where the previous one ended.
func (it Itinerary) Connected() bool {
	for i := 1; i < len(it.Legs); i++ {
		if it.Legs[i].Source.Key() != it.Legs[i-1].Destination.Key() {
			return false
		}
	}
	return true
}

func (it Itinerary) FlightIDs() []int {
	ids := make([]int, len(it.Legs))
	for i, leg := range it.Legs {
		ids[i] = leg.ID
	}
	return ids
}
