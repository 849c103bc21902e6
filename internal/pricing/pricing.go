package pricing

import (
	"errors"
	"math"
)

const (
	EarthRadiusKm = 6371.0

	// CruiseSpeedKmh is the average speed every flight is assumed to hold.
	CruiseSpeedKmh = 720.0

	// BaseRate is the per-100km fare before demand adjustment.
	BaseRate = 30.0

	// DemandWeight scales the destination/source demand difference.
	DemandWeight = 4.0
)

var ErrInvalidPassengers = errors.New("invalid number of passengers to book")

// Distance is the great-circle distance in km between two coordinates,
// rounded to four decimal places.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	rLat1 := toRadians(lat1)
	rLat2 := toRadians(lat2)

	a := math.Pow(math.Sin(dLat/2), 2) + math.Pow(math.Sin(dLon/2), 2)*math.Cos(rLat1)*math.Cos(rLat2)
	c := 2 * math.Asin(math.Sqrt(a))

	return math.Round(EarthRadiusKm*c*10000) / 10000
}

// Duration is the flight time in whole minutes for a leg of distanceKm.
func Duration(distanceKm float64) int {
	return int(math.Round(distanceKm / CruiseSpeedKmh * 60))
}

// Multiplier maps the booked/capacity ratio onto the fare multiplier. The
// curve is continuous: 0.8 at 0.5 and 1.0 at 0.7.
func Multiplier(fillRatio float64) float64 {
	switch {
	case fillRatio >= 0 && fillRatio <= 0.5:
		return -0.4*fillRatio + 1
	case fillRatio > 0.5 && fillRatio <= 0.7:
		return fillRatio + 0.3
	case fillRatio > 0.7 && fillRatio <= 1:
		return (0.2/math.Pi)*math.Atan(20*fillRatio-14) + 1
	default:
		return 0
	}
}

// Fare holds the route-dependent inputs of the ticket price.
type Fare struct {
	DistanceKm        float64
	SourceDemand      float64
	DestinationDemand float64
}

// Price is the price of the next seat on a flight that already has booked
// of capacity seats taken.
func (f Fare) Price(booked, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	fillRatio := float64(booked) / float64(capacity)
	return Multiplier(fillRatio) * (f.DistanceKm / 100) *
		(BaseRate + DemandWeight*(f.DestinationDemand-f.SourceDemand))
}

type Booking struct {
	Requested int
	Accepted  int
	Total     float64
	Booked    int
	Full      bool
}

// Book sells up to requested seats one at a time, re-pricing after every
// seat. Seats beyond the remaining capacity are not sold. Total is rounded
// to cents once, after the last seat.
func (f Fare) Book(booked, capacity, requested int) (Booking, error) {
	if requested <= 0 {
		return Booking{}, ErrInvalidPassengers
	}

	accepted := min(requested, max(capacity-booked, 0))

	total := 0.0
	for i := 0; i < accepted; i++ {
		total += f.Price(booked, capacity)
		booked++
	}

	return Booking{
		Requested: requested,
		Accepted:  accepted,
		Total:     math.Round(total*100) / 100,
		Booked:    booked,
		Full:      booked >= capacity,
	}, nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
