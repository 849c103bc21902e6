package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flightscheduler/internal/daytime"
)

func mustLocation(t *testing.T, name string, lat, lon, demand float64) *Location {
	t.Helper()
	l, err := NewLocation(name, lat, lon, demand)
	require.NoError(t, err)
	return l
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name                string
		lat, lon, demand    string
		wantErr             error
		wantLat, wantDemand float64
	}{
		{name: "Sydney", lat: "-33.847927", lon: "150.651786", demand: "0.2", wantLat: -33.847927, wantDemand: 0.2},
		{name: "Edge", lat: "85", lon: "-180", demand: "-1", wantLat: 85, wantDemand: -1},
		{name: "Trimmed", lat: " 10 ", lon: " 20", demand: "0 ", wantLat: 10},
		{name: "North", lat: "85.01", lon: "0", demand: "0", wantErr: ErrInvalidLatitude},
		{name: "Garbage", lat: "north", lon: "0", demand: "0", wantErr: ErrInvalidLatitude},
		{name: "NaN", lat: "NaN", lon: "0", demand: "0", wantErr: ErrInvalidLatitude},
		{name: "East", lat: "0", lon: "180.5", demand: "0", wantErr: ErrInvalidLongitude},
		{name: "Inf", lat: "0", lon: "+Inf", demand: "0", wantErr: ErrInvalidLongitude},
		{name: "Busy", lat: "0", lon: "0", demand: "1.5", wantErr: ErrInvalidDemand},
		{name: "Blank", lat: "0", lon: "0", demand: "", wantErr: ErrInvalidDemand},
		{name: " ", lat: "0", lon: "0", demand: "0", wantErr: ErrEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseLocation(tt.name, tt.lat, tt.lon, tt.demand)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, loc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLat, loc.Lat)
			assert.Equal(t, tt.wantDemand, loc.Demand)
		})
	}
}

func TestLocationBackReferences(t *testing.T) {
	loc := mustLocation(t, "Perth", -31.95, 115.86, 0)

	loc.AttachDeparture(3)
	loc.AttachDeparture(7)
	loc.AttachArrival(5)

	assert.Equal(t, []int{3, 7}, loc.Departing())
	assert.Equal(t, []int{5}, loc.Arriving())

	loc.DetachDeparture(3)
	loc.DetachArrival(5)
	assert.Equal(t, []int{7}, loc.Departing())
	assert.Empty(t, loc.Arriving())

	ids := loc.Departing()
	ids[0] = 99
	assert.Equal(t, []int{7}, loc.Departing(), "callers get a copy")

	assert.Equal(t, "perth", loc.Key())
}

func TestNewFlight(t *testing.T) {
	a := mustLocation(t, "A", 0, 0, 0)
	b := mustLocation(t, "B", 0, 1, 0)
	aAgain := mustLocation(t, "a", 5, 5, 0)
	dep := daytime.MustParse("Monday 10:00")

	_, err := NewFlight(dep, a, b, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = NewFlight(dep, a, a, 10, 0)
	assert.ErrorIs(t, err, ErrSameLocation)

	_, err = NewFlight(dep, a, aAgain, 10, 0)
	assert.ErrorIs(t, err, ErrSameLocation, "names compare case-insensitively")

	_, err = NewFlight(dep, a, b, 10, 11)
	assert.ErrorIs(t, err, ErrInvalidBooked)

	_, err = NewFlight(dep, a, b, 10, -1)
	assert.ErrorIs(t, err, ErrInvalidBooked)

	f, err := NewFlight(dep, a, b, 10, 10)
	require.NoError(t, err)
	assert.True(t, f.IsFull())
	assert.Equal(t, 0, f.Available())
}

func TestFlightDerivedValues(t *testing.T) {
	a := mustLocation(t, "A", 0, 0, 0)
	b := mustLocation(t, "B", 0, 1, 0)

	f, err := NewFlight(daytime.MustParse("Sunday 23:55"), a, b, 100, 0)
	require.NoError(t, err)

	assert.InDelta(t, 111.19, f.Distance(), 0.01)
	assert.Equal(t, 9, f.Duration())
	assert.Equal(t, "Monday 00:04", f.Arrival().FullString())
	assert.InDelta(t, 33.36, f.TicketPrice(), 0.01)
}

func TestFlightBookAndReset(t *testing.T) {
	a := mustLocation(t, "A", 0, 0, 0)
	b := mustLocation(t, "B", 0, 1, 0)

	f, err := NewFlight(daytime.MustParse("Monday 10:00"), a, b, 4, 1)
	require.NoError(t, err)

	_, err = f.Book(0)
	assert.ErrorIs(t, err, ErrInvalidPassengers)
	assert.Equal(t, 1, f.Booked, "failed booking must not mutate")

	booking, err := f.Book(10)
	require.NoError(t, err)
	assert.Equal(t, 3, booking.Accepted)
	assert.True(t, booking.Full)
	assert.Equal(t, 4, f.Booked)

	f.Reset()
	assert.Equal(t, 0, f.Booked)
	assert.False(t, f.IsFull())
}

func TestFlightClone(t *testing.T) {
	a := mustLocation(t, "A", 0, 0, 0)
	b := mustLocation(t, "B", 0, 1, 0)
	a.AttachDeparture(4)

	f, err := NewFlight(daytime.MustParse("Monday 10:00"), a, b, 4, 1)
	require.NoError(t, err)
	f.ID = 4

	c := f.Clone()
	require.Equal(t, f.ID, c.ID)
	assert.NotSame(t, f.Source, c.Source)
	assert.NotSame(t, f.Destination, c.Destination)

	c.Booked = 3
	c.Source.Demand = 0.5
	c.Source.AttachDeparture(9)

	assert.Equal(t, 1, f.Booked)
	assert.Zero(t, a.Demand)
	assert.Equal(t, []int{4}, a.Departing())
	assert.Equal(t, []int{4, 9}, c.Source.Departing())
}

func TestItinerary(t *testing.T) {
	a := mustLocation(t, "A", 0, 0, 0)
	b := mustLocation(t, "B", 0, 1, 0)
	c := mustLocation(t, "C", 1, 1, 0)

	ab := &Flight{ID: 1, Source: a, Destination: b}
	bc := &Flight{ID: 2, Source: b, Destination: c}
	ca := &Flight{ID: 3, Source: c, Destination: a}

	it := Itinerary{Legs: []*Flight{ab, bc}}
	assert.True(t, it.Connected())
	assert.Equal(t, a, it.Origin())
	assert.Equal(t, c, it.Destination())
	assert.Equal(t, []int{1, 2}, it.FlightIDs())
	assert.Equal(t, 2, it.Len())

	assert.False(t, Itinerary{Legs: []*Flight{ab, ca}}.Connected())
	assert.Nil(t, Itinerary{}.Origin())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindUnknown},
		{errors.New("boom"), KindUnknown},
		{ErrInvalidFormat, KindInvalidFormat},
		{fmt.Errorf("row 3: %w", ErrInvalidLatitude), KindRangeViolation},
		{ErrInvalidCapacity, KindRangeViolation},
		{ErrDuplicateName, KindDuplicateName},
		{ErrSameLocation, KindSameLocation},
		{ErrInvalidScheme, KindInvalidScheme},
		{ErrMissingName, KindInvalidInput},
		{ErrInvalidPassengers, KindInvalidInput},
		{ErrUnknownSource, KindUnknownLocation},
		{ErrUnknownLocation, KindUnknownLocation},
		{ErrUnknownFlight, KindUnknownFlight},
		{ErrNoRoute, KindNoRoute},
		{&ConflictError{FlightID: 1}, KindConflict},
		{&IOError{Op: "read", Err: errors.New("disk")}, KindIOFailure},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestConflictErrorMessage(t *testing.T) {
	err := &ConflictError{
		FlightID: 4,
		Location: "Sydney",
		At:       daytime.MustParse("Monday 09:30"),
		Role:     RoleDeparting,
	}
	assert.Equal(t, "scheduling conflict: this flight clashes with Flight 4 departing from Sydney on Monday 09:30", err.Error())

	err.Role = RoleArriving
	assert.Contains(t, err.Error(), "arriving at Sydney")
}

func TestResponses(t *testing.T) {
	assert.Equal(t, Duration{Hours: 2, Minutes: 5, TotalMinutes: 125}, NewDuration(125))

	p := NewPrice(1234.567)
	assert.Equal(t, 1234.57, p.Amount)
	assert.Equal(t, "$1,234.57", p.Formatted)

	count := 3
	assert.Equal(t, 3, BookRequest{Passengers: &count}.Count())
	assert.Equal(t, 1, BookRequest{}.Count())

	req := RouteRequest{From: "a", To: "b"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "duration", req.SortBy)
	assert.Equal(t, 1, req.Rank)
}
