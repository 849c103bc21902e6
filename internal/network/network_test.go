package network

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flightscheduler/internal/cache"
	"github.com/dharmasatrya/flightscheduler/internal/models"
	"github.com/dharmasatrya/flightscheduler/internal/ranking"
	"github.com/dharmasatrya/flightscheduler/internal/timetable"
)

// newLine builds three locations one degree of longitude apart on the
// equator; each hop is a 9 minute flight.
func newLine(t *testing.T, config Config) *Network {
	t.Helper()
	n := New(config)
	for i, name := range []string{"Alpha", "Bravo", "Charlie"} {
		_, err := n.AddLocation(name, 0, float64(i), 0)
		require.NoError(t, err)
	}
	return n
}

func mustAddFlight(t *testing.T, n *Network, departure, source, destination string) *models.Flight {
	t.Helper()
	f, err := n.AddFlight(departure, source, destination, "100", 0)
	require.NoError(t, err)
	return f
}

func TestAddLocation(t *testing.T) {
	n := newLine(t, DefaultConfig())

	_, err := n.AddLocation("ALPHA", 1, 1, 0)
	assert.ErrorIs(t, err, models.ErrDuplicateName)

	_, err = n.AddLocation("Delta", 90, 0, 0)
	assert.ErrorIs(t, err, models.ErrInvalidLatitude)

	_, err = n.AddLocation("  ", 0, 0, 0)
	assert.ErrorIs(t, err, models.ErrEmptyName)

	loc, err := n.AddLocation("Delta", -33.8, 151.2, -0.5)
	require.NoError(t, err)
	assert.Equal(t, "Delta", loc.Name)

	got, err := n.Location("delta")
	require.NoError(t, err)
	assert.Equal(t, -33.8, got.Lat)
}

func TestAddLocationText(t *testing.T) {
	n := newLine(t, DefaultConfig())

	tests := []struct {
		name, lat, lon, demand string
		want                   error
	}{
		{"Bravo", "abc", "abc", "abc", models.ErrDuplicateName},
		{"Delta", "north", "0", "0", models.ErrInvalidLatitude},
		{"Delta", "0", "181", "0", models.ErrInvalidLongitude},
		{"Delta", "0", "0", "1.5", models.ErrInvalidDemand},
	}
	for _, tt := range tests {
		_, err := n.AddLocationText(tt.name, tt.lat, tt.lon, tt.demand)
		assert.ErrorIs(t, err, tt.want)
	}

	_, err := n.AddLocationText("Delta", " 10.5", "20", "0.25")
	require.NoError(t, err)
	assert.Len(t, n.Locations(), 4)
}

func TestAddFlightValidationOrder(t *testing.T) {
	n := newLine(t, DefaultConfig())

	tests := []struct {
		name                 string
		dep, src, dst, seats string
		booked               int
		want                 models.Kind
		wantErr              error
	}{
		{"unknown source first", "someday", "Nowhere", "Nowhere", "x", 0, models.KindUnknownLocation, models.ErrUnknownSource},
		{"unknown destination", "someday", "Alpha", "Nowhere", "x", 0, models.KindUnknownLocation, models.ErrUnknownDestination},
		{"time before capacity", "someday", "Alpha", "Bravo", "x", 0, models.KindInvalidFormat, models.ErrInvalidFormat},
		{"non numeric capacity", "Monday 09:00", "Alpha", "Bravo", "x", 0, models.KindRangeViolation, models.ErrInvalidCapacity},
		{"zero capacity", "Monday 09:00", "Alpha", "Bravo", "0", 0, models.KindRangeViolation, models.ErrInvalidCapacity},
		{"same location", "Monday 09:00", "Alpha", "alpha", "10", 0, models.KindSameLocation, models.ErrSameLocation},
		{"overbooked", "Monday 09:00", "Alpha", "Bravo", "10", 11, models.KindRangeViolation, models.ErrInvalidBooked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.AddFlight(tt.dep, tt.src, tt.dst, tt.seats, tt.booked)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.want, models.KindOf(err))
		})
	}

	assert.Empty(t, n.Flights())
}

func TestAddFlightAssignsSequentialIDs(t *testing.T) {
	n := newLine(t, DefaultConfig())

	first := mustAddFlight(t, n, "Monday 09:00", "Alpha", "Bravo")
	second := mustAddFlight(t, n, "Tuesday 09:00", "alpha", "CHARLIE")

	assert.Equal(t, 0, first.ID)
	assert.Equal(t, 1, second.ID)
	assert.Equal(t, "Charlie", second.Destination.Name)

	alpha, err := n.Location("Alpha")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, alpha.Departing())
}

func TestAddFlightRunwayWindow(t *testing.T) {
	n := newLine(t, DefaultConfig())
	mustAddFlight(t, n, "Monday 09:00", "Alpha", "Bravo")
	before := n.Revision()

	_, err := n.AddFlight("Monday 10:00", "Alpha", "Charlie", "100", 0)
	var conflictErr *models.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, 0, conflictErr.FlightID)
	assert.Equal(t, models.RoleDeparting, conflictErr.Role)
	assert.Equal(t, "Alpha", conflictErr.Location)

	// rejection leaves no trace
	assert.Equal(t, before, n.Revision())
	alpha, err := n.Location("Alpha")
	require.NoError(t, err)
	assert.Equal(t, []int{0}, alpha.Departing())

	f, err := n.AddFlight("Monday 10:01", "Alpha", "Charlie", "100", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, f.ID)
}

func TestBook(t *testing.T) {
	n := newLine(t, DefaultConfig())
	f := mustAddFlight(t, n, "Monday 09:00", "Alpha", "Bravo")

	_, _, err := n.Book(42, 1)
	assert.ErrorIs(t, err, models.ErrUnknownFlight)

	_, _, err = n.Book(f.ID, 0)
	assert.ErrorIs(t, err, models.ErrInvalidPassengers)

	before := n.Revision()
	booking, after, err := n.Book(f.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, booking.Accepted)
	assert.Equal(t, 3, after.Booked)
	assert.Greater(t, booking.Total, 0.0)
	assert.Greater(t, n.Revision(), before)

	stored, err := n.Flight(f.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Booked)
}

func TestBookConcurrently(t *testing.T) {
	n := newLine(t, DefaultConfig())
	f := mustAddFlight(t, n, "Monday 09:00", "Alpha", "Bravo")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := n.Book(f.ID, 5)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := n.Flight(f.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, stored.Booked)
}

func TestRemoveFlight(t *testing.T) {
	n := newLine(t, DefaultConfig())
	f := mustAddFlight(t, n, "Monday 09:00", "Alpha", "Bravo")

	removed, err := n.RemoveFlight(f.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ID, removed.ID)

	alpha, _ := n.Location("Alpha")
	bravo, _ := n.Location("Bravo")
	assert.Empty(t, alpha.Departing())
	assert.Empty(t, bravo.Arriving())

	_, err = n.Flight(f.ID)
	assert.ErrorIs(t, err, models.ErrUnknownFlight)
	_, err = n.RemoveFlight(f.ID)
	assert.ErrorIs(t, err, models.ErrUnknownFlight)

	// the runway slot is free again and the id is not reused
	again := mustAddFlight(t, n, "Monday 09:30", "Alpha", "Bravo")
	assert.Equal(t, 1, again.ID)
}

func TestResetFlight(t *testing.T) {
	n := newLine(t, DefaultConfig())
	f := mustAddFlight(t, n, "Monday 09:00", "Alpha", "Bravo")
	_, _, err := n.Book(f.ID, 7)
	require.NoError(t, err)

	reset, err := n.ResetFlight(f.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reset.Booked)

	_, err = n.ResetFlight(99)
	assert.ErrorIs(t, err, models.ErrUnknownFlight)
}

func TestReturnedValuesAreCopies(t *testing.T) {
	n := newLine(t, DefaultConfig())
	f := mustAddFlight(t, n, "Monday 09:00", "Alpha", "Bravo")

	f.Booked = 99
	f.Source.Name = "Mutated"

	stored, err := n.Flight(f.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Booked)
	assert.Equal(t, "Alpha", stored.Source.Name)
}

func TestFlightsListing(t *testing.T) {
	n := newLine(t, DefaultConfig())
	mustAddFlight(t, n, "Wednesday 09:00", "Alpha", "Bravo")
	mustAddFlight(t, n, "Monday 09:00", "Bravo", "Charlie")
	_, err := n.AddLocation("Delta", 0, 3, 0)
	require.NoError(t, err)
	mustAddFlight(t, n, "Monday 09:00", "Alpha", "Delta")

	var ids []int
	for _, f := range n.Flights() {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []int{2, 1, 0}, ids)

	var names []string
	for _, l := range n.Locations() {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie", "Delta"}, names)
}

func TestFlightsByLocation(t *testing.T) {
	n := newLine(t, DefaultConfig())
	mustAddFlight(t, n, "Monday 09:00", "Alpha", "Bravo")
	mustAddFlight(t, n, "Monday 07:00", "Bravo", "Charlie")

	entries, err := n.FlightsByLocation("bravo", timetable.ModeSchedule)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Flight.ID)
	assert.Equal(t, timetable.Departure, entries[0].Direction)
	assert.Equal(t, 0, entries[1].Flight.ID)
	assert.Equal(t, timetable.Arrival, entries[1].Direction)
	assert.Equal(t, "Monday 09:09", entries[1].Time.FullString())

	_, err = n.FlightsByLocation("Nowhere", timetable.ModeSchedule)
	assert.ErrorIs(t, err, models.ErrUnknownLocation)
}

// countingCache is an in-memory cache.Cache that records traffic.
type countingCache struct {
	mu         sync.Mutex
	entries    map[cache.RouteKey][][]int
	hits, sets int
}

func newCountingCache() *countingCache {
	return &countingCache{entries: make(map[cache.RouteKey][][]int)}
}

func (c *countingCache) Get(ctx context.Context, key cache.RouteKey) ([][]int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	routes, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return routes, ok
}

func (c *countingCache) Set(ctx context.Context, key cache.RouteKey, routes [][]int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = routes
	c.sets++
	return nil
}

func (c *countingCache) Close() error { return nil }

// newRoutes has two ways from Alpha to Charlie: a 19 minute direct flight
// (id 2) and a connection through Bravo (ids 0, 1) with 18 minutes in the
// air and a 171 minute layover.
func newRoutes(t *testing.T, config Config) *Network {
	n := newLine(t, config)
	mustAddFlight(t, n, "Monday 09:00", "Alpha", "Bravo")
	mustAddFlight(t, n, "Monday 12:00", "Bravo", "Charlie")
	mustAddFlight(t, n, "Tuesday 09:00", "Alpha", "Charlie")
	return n
}

func TestFindRoutes(t *testing.T) {
	n := newRoutes(t, DefaultConfig())
	ctx := context.Background()

	tests := []struct {
		scheme   string
		rank     int
		wantIDs  []int
		wantRank int
	}{
		{"", 1, []int{2}, 1},
		{"duration", 2, []int{0, 1}, 2},
		{"stopovers", 1, []int{2}, 1},
		{"flight_time", 1, []int{0, 1}, 1},
		{"layover", 0, []int{2}, 1},
		{"duration", 9, []int{0, 1}, 2},
	}

	for _, tt := range tests {
		res, err := n.FindRoutes(ctx, "alpha", "charlie", tt.scheme, tt.rank)
		require.NoError(t, err)
		assert.Equal(t, tt.wantIDs, res.Route.Itinerary.FlightIDs(), "scheme %q rank %d", tt.scheme, tt.rank)
		assert.Equal(t, tt.wantRank, res.Rank)
		assert.Equal(t, 2, res.Total)
	}

	res, err := n.FindRoutes(ctx, "Alpha", "Charlie", "duration", 2)
	require.NoError(t, err)
	assert.Equal(t, 171, res.Route.Metrics.LayoverTime)
	assert.Equal(t, 18, res.Route.Metrics.FlightTime)
	assert.Equal(t, 189, res.Route.Metrics.Duration)
	assert.Equal(t, []int{0, 171}, res.Route.Layovers)
}

func TestFindRoutesErrors(t *testing.T) {
	n := newRoutes(t, DefaultConfig())
	ctx := context.Background()

	_, err := n.FindRoutes(ctx, "Nowhere", "Nowhere", "bogus", 1)
	assert.ErrorIs(t, err, models.ErrUnknownSource)

	_, err = n.FindRoutes(ctx, "Alpha", "Nowhere", "bogus", 1)
	assert.ErrorIs(t, err, models.ErrUnknownDestination)

	_, err = n.FindRoutes(ctx, "Alpha", "Charlie", "bogus", 1)
	assert.ErrorIs(t, err, models.ErrInvalidScheme)

	res, err := n.FindRoutes(ctx, "Charlie", "Alpha", "cost", 1)
	assert.ErrorIs(t, err, models.ErrNoRoute)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, ranking.SchemeCost, res.Scheme)

	_, err = n.FindRoutes(ctx, "Alpha", "alpha", "", 1)
	assert.ErrorIs(t, err, models.ErrNoRoute)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = n.FindRoutes(cancelled, "Alpha", "Charlie", "", 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindRoutesUsesCacheUntilMutation(t *testing.T) {
	c := newCountingCache()
	config := DefaultConfig()
	config.Cache = c
	n := newRoutes(t, config)
	ctx := context.Background()

	first, err := n.FindRoutes(ctx, "Alpha", "Charlie", "cost", 1)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	assert.Equal(t, 1, c.sets)

	second, err := n.FindRoutes(ctx, "Alpha", "Charlie", "cost", 1)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Route.Itinerary.FlightIDs(), second.Route.Itinerary.FlightIDs())
	assert.InDelta(t, first.Route.Metrics.Cost, second.Route.Metrics.Cost, 1e-9)

	_, _, err = n.Book(2, 10)
	require.NoError(t, err)

	third, err := n.FindRoutes(ctx, "Alpha", "Charlie", "cost", 1)
	require.NoError(t, err)
	assert.False(t, third.CacheHit)
	assert.Equal(t, 1, c.hits)
	assert.Equal(t, 2, c.sets)
}

func TestNetworksDoNotShareCacheEntries(t *testing.T) {
	c := newCountingCache()
	config := DefaultConfig()
	config.Cache = c
	a := newRoutes(t, config)
	b := newRoutes(t, config)
	ctx := context.Background()

	_, err := a.FindRoutes(ctx, "Alpha", "Charlie", "", 1)
	require.NoError(t, err)
	res, err := b.FindRoutes(ctx, "Alpha", "Charlie", "", 1)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
	assert.False(t, res.CacheHit)
}

func TestRoutesAreCopies(t *testing.T) {
	n := newRoutes(t, DefaultConfig())

	res, err := n.FindRoutes(context.Background(), "Alpha", "Charlie", "", 1)
	require.NoError(t, err)
	res.Route.Itinerary.Legs[0].Booked = 50

	stored, err := n.Flight(res.Route.Itinerary.Legs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Booked)
}

func TestMaxLegsOption(t *testing.T) {
	config := DefaultConfig()
	config.MaxLegs = 1
	n := newRoutes(t, config)

	res, err := n.FindRoutes(context.Background(), "Alpha", "Charlie", "flight_time", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, []int{2}, res.Route.Itinerary.FlightIDs())
}
