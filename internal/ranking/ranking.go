package ranking

import (
	"cmp"
	"sort"
	"strings"

	"github.com/dharmasatrya/flightscheduler/internal/daytime"
	"github.com/dharmasatrya/flightscheduler/internal/models"
)

type Scheme string

const (
	SchemeCost       Scheme = "cost"
	SchemeDuration   Scheme = "duration"
	SchemeStopovers  Scheme = "stopovers"
	SchemeLayover    Scheme = "layover"
	SchemeFlightTime Scheme = "flight_time"

	DefaultScheme = SchemeDuration
)

var Schemes = []Scheme{SchemeCost, SchemeDuration, SchemeStopovers, SchemeLayover, SchemeFlightTime}

// ParseScheme accepts a scheme name in any case; an empty name selects
// DefaultScheme.
func ParseScheme(s string) (Scheme, error) {
	if s == "" {
		return DefaultScheme, nil
	}
	candidate := Scheme(strings.ToLower(s))
	for _, known := range Schemes {
		if candidate == known {
			return known, nil
		}
	}
	return "", models.ErrInvalidScheme
}

// Metrics are all in minutes except Cost. Duration always equals
// FlightTime + LayoverTime.
type Metrics struct {
	FlightTime  int
	Duration    int
	LayoverTime int
	Stopovers   int
	Cost        float64
}

type Ranked struct {
	Itinerary models.Itinerary
	Metrics   Metrics

	// Layovers[i] is the wait before leg i; Layovers[0] is always zero.
	Layovers []int
}

// Measure scores an itinerary against the flights' current fill ratios.
// It reads prices, it does not book. Layovers wrap into the next week
// when a connection departs earlier in the week than the previous leg
// lands.
func Measure(it models.Itinerary) Ranked {
	r := Ranked{
		Itinerary: it,
		Layovers:  make([]int, len(it.Legs)),
	}

	for i, leg := range it.Legs {
		r.Metrics.FlightTime += leg.Duration()
		r.Metrics.Cost += leg.TicketPrice()
		if i > 0 {
			r.Layovers[i] = daytime.ForwardGap(it.Legs[i-1].Arrival(), leg.Departure)
			r.Metrics.LayoverTime += r.Layovers[i]
		}
	}

	r.Metrics.Duration = r.Metrics.FlightTime + r.Metrics.LayoverTime
	r.Metrics.Stopovers = max(len(it.Legs)-1, 0)
	return r
}

func Score(its []models.Itinerary) []Ranked {
	ranked := make([]Ranked, len(its))
	for i, it := range its {
		ranked[i] = Measure(it)
	}
	return ranked
}

func comparator(scheme Scheme) func(a, b Metrics) int {
	switch scheme {
	case SchemeCost:
		return func(a, b Metrics) int {
			return cmpOr(cmp.Compare(a.Cost, b.Cost), cmp.Compare(a.Duration, b.Duration))
		}
	case SchemeStopovers:
		return func(a, b Metrics) int {
			return cmpOr(cmp.Compare(a.Stopovers, b.Stopovers), cmp.Compare(a.Duration, b.Duration), cmp.Compare(a.Cost, b.Cost))
		}
	case SchemeLayover:
		return func(a, b Metrics) int {
			return cmpOr(cmp.Compare(a.LayoverTime, b.LayoverTime), cmp.Compare(a.Duration, b.Duration), cmp.Compare(a.Cost, b.Cost))
		}
	case SchemeFlightTime:
		return func(a, b Metrics) int {
			return cmpOr(cmp.Compare(a.FlightTime, b.FlightTime), cmp.Compare(a.Duration, b.Duration), cmp.Compare(a.Cost, b.Cost))
		}
	default:
		return func(a, b Metrics) int {
			return cmpOr(cmp.Compare(a.Duration, b.Duration), cmp.Compare(a.Cost, b.Cost))
		}
	}
}

// Sort orders ranked ascending by scheme. Itineraries that tie on every key
// keep their discovery order.
func Sort(ranked []Ranked, scheme Scheme) {
	compare := comparator(scheme)
	sort.SliceStable(ranked, func(i, j int) bool {
		return compare(ranked[i].Metrics, ranked[j].Metrics) < 0
	})
}

// Select returns the rank-th itinerary (1-based) and the rank actually
// used; rank is clamped into [1, len(ranked)].
func Select(ranked []Ranked, rank int) (Ranked, int, error) {
	if len(ranked) == 0 {
		return Ranked{}, 0, models.ErrNoRoute
	}
	rank = min(max(rank, 1), len(ranked))
	return ranked[rank-1], rank, nil
}

// cmpOr returns the first of vals that is non-zero, or zero if all are zero.
// It mirrors cmp.Or, which is unavailable before Go 1.22.
func cmpOr(vals ...int) int {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}
