package network

import (
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dharmasatrya/flightscheduler/internal/cache"
	"github.com/dharmasatrya/flightscheduler/internal/conflict"
	"github.com/dharmasatrya/flightscheduler/internal/daytime"
	"github.com/dharmasatrya/flightscheduler/internal/models"
	"github.com/dharmasatrya/flightscheduler/internal/pricing"
	"github.com/dharmasatrya/flightscheduler/internal/routing"
	"github.com/dharmasatrya/flightscheduler/internal/timetable"
)

type Config struct {
	// SearchTimeout bounds one route query, cache round-trip included.
	SearchTimeout time.Duration
	MaxLegs       int
	Cache         cache.Cache
}

func DefaultConfig() Config {
	return Config{
		SearchTimeout: 10 * time.Second,
		MaxLegs:       routing.MaxLegs,
		Cache:         cache.NewNoOpCache(),
	}
}

// Network owns every location and flight of one schedule. Flights live in
// an arena keyed by id; locations only hold the ids of the flights using
// them. All methods are safe for concurrent use and return copies.
type Network struct {
	mu       sync.RWMutex
	id       uuid.UUID
	config   Config
	revision uint64

	locations map[string]*models.Location
	flights   map[int]*models.Flight
	nextID    int
}

func New(config Config) *Network {
	if config.Cache == nil {
		config.Cache = cache.NewNoOpCache()
	}
	if config.MaxLegs < 1 {
		config.MaxLegs = routing.MaxLegs
	}

	return &Network{
		id:        uuid.New(),
		config:    config,
		locations: make(map[string]*models.Location),
		flights:   make(map[int]*models.Flight),
	}
}

func (n *Network) ID() string {
	return n.id.String()
}

// Revision increases with every successful mutation.
func (n *Network) Revision() uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.revision
}

func (n *Network) AddLocation(name string, lat, lon, demand float64) (*models.Location, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.checkNewName(name); err != nil {
		return nil, err
	}
	loc, err := models.NewLocation(name, lat, lon, demand)
	if err != nil {
		return nil, err
	}
	return n.insertLocation(loc), nil
}

// AddLocationText is AddLocation for unparsed fields, as read from a file
// or a command line.
func (n *Network) AddLocationText(name, lat, lon, demand string) (*models.Location, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.checkNewName(name); err != nil {
		return nil, err
	}
	loc, err := models.ParseLocation(name, lat, lon, demand)
	if err != nil {
		return nil, err
	}
	return n.insertLocation(loc), nil
}

func (n *Network) checkNewName(name string) error {
	if strings.TrimSpace(name) == "" {
		return models.ErrEmptyName
	}
	if _, exists := n.locations[models.NameKey(name)]; exists {
		return models.ErrDuplicateName
	}
	return nil
}

func (n *Network) insertLocation(loc *models.Location) *models.Location {
	n.locations[loc.Key()] = loc
	n.revision++
	log.Printf("network: added location %s", loc.Name)
	return loc.Clone()
}

// AddFlight validates and admits a weekly flight. Checks run in a fixed
// order (source, destination, departure, capacity, endpoints, booked count,
// runway conflicts) and the first failure is returned with the network
// unchanged.
func (n *Network) AddFlight(departure, source, destination, capacity string, booked int) (*models.Flight, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	src, ok := n.locations[models.NameKey(source)]
	if !ok {
		return nil, models.ErrUnknownSource
	}
	dst, ok := n.locations[models.NameKey(destination)]
	if !ok {
		return nil, models.ErrUnknownDestination
	}
	dep, err := daytime.Parse(departure)
	if err != nil {
		return nil, err
	}
	seats, err := strconv.Atoi(strings.TrimSpace(capacity))
	if err != nil {
		return nil, models.ErrInvalidCapacity
	}

	flight, err := models.NewFlight(dep, src, dst, seats, booked)
	if err != nil {
		return nil, err
	}
	if err := conflict.Check(flight, schedule(n.flights)); err != nil {
		return nil, err
	}

	flight.ID = n.nextID
	n.nextID++
	n.flights[flight.ID] = flight
	src.AttachDeparture(flight.ID)
	dst.AttachArrival(flight.ID)
	n.revision++

	log.Printf("network: added flight %d %s -> %s on %s", flight.ID, src.Name, dst.Name, dep.FullString())
	return flight.Clone(), nil
}

// Book sells up to passengers seats on a flight and returns what was sold
// with the flight as it stands afterwards.
func (n *Network) Book(id, passengers int) (pricing.Booking, *models.Flight, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	flight, ok := n.flights[id]
	if !ok {
		return pricing.Booking{}, nil, models.ErrUnknownFlight
	}
	booking, err := flight.Book(passengers)
	if err != nil {
		return pricing.Booking{}, nil, err
	}
	if booking.Accepted > 0 {
		n.revision++
	}

	return booking, flight.Clone(), nil
}

// RemoveFlight deletes a flight and detaches it from both of its
// locations. Its id is not reused.
func (n *Network) RemoveFlight(id int) (*models.Flight, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	flight, ok := n.flights[id]
	if !ok {
		return nil, models.ErrUnknownFlight
	}

	flight.Source.DetachDeparture(id)
	flight.Destination.DetachArrival(id)
	delete(n.flights, id)
	n.revision++

	log.Printf("network: removed flight %d", id)
	return flight.Clone(), nil
}

func (n *Network) ResetFlight(id int) (*models.Flight, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	flight, ok := n.flights[id]
	if !ok {
		return nil, models.ErrUnknownFlight
	}

	flight.Reset()
	n.revision++

	log.Printf("network: reset bookings of flight %d", id)
	return flight.Clone(), nil
}

func (n *Network) Flight(id int) (*models.Flight, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	flight, ok := n.flights[id]
	if !ok {
		return nil, models.ErrUnknownFlight
	}
	return flight.Clone(), nil
}

// Flights lists every flight ordered by departure, then by source name.
func (n *Network) Flights() []*models.Flight {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]*models.Flight, 0, len(n.flights))
	for _, f := range n.flights {
		out = append(out, f.Clone())
	}
	timetable.SortFlights(out)
	return out
}

func (n *Network) Location(name string) (*models.Location, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	loc, ok := n.locations[models.NameKey(name)]
	if !ok {
		return nil, models.ErrUnknownLocation
	}
	return loc.Clone(), nil
}

// Locations lists every location ordered by name.
func (n *Network) Locations() []*models.Location {
	n.mu.RLock()
	defer n.mu.RUnlock()

	out := make([]*models.Location, 0, len(n.locations))
	for _, loc := range n.locations {
		out = append(out, loc.Clone())
	}
	timetable.SortLocations(out)
	return out
}

// FlightsByLocation returns a location's board for mode, ordered by the
// time each flight uses the runway.
func (n *Network) FlightsByLocation(name string, mode timetable.Mode) ([]timetable.Entry, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	loc, ok := n.locations[models.NameKey(name)]
	if !ok {
		return nil, models.ErrUnknownLocation
	}

	s := schedule(n.flights)
	entries := timetable.Board(s.Departing(loc), s.Arriving(loc), mode)
	for i := range entries {
		entries[i].Flight = entries[i].Flight.Clone()
	}
	return entries, nil
}

// schedule resolves a location's flight ids against the arena. It is only
// used while the network lock is held.
type schedule map[int]*models.Flight

func (s schedule) Departing(loc *models.Location) []*models.Flight {
	return s.resolve(loc.Departing())
}

func (s schedule) Arriving(loc *models.Location) []*models.Flight {
	return s.resolve(loc.Arriving())
}

func (s schedule) resolve(ids []int) []*models.Flight {
	out := make([]*models.Flight, 0, len(ids))
	for _, id := range ids {
		if f, ok := s[id]; ok {
			out = append(out, f)
		}
	}
	return out
}

var (
	_ conflict.Schedule = schedule(nil)
	_ routing.Graph     = schedule(nil)
)
