// Package routing enumerates itineraries between two locations by walking
// the flight graph depth-first.
//
// The walk keeps an explicit stack, one frame per location on the current
// path, so the depth bound is enforced structurally rather than by the Go
// call stack. A branch ends as soon as it reaches the target; otherwise it
// is expanded through every departing flight until MaxLegs legs have been
// taken. Flights and locations may repeat across and within branches; only
// the depth bound limits the search.
//
// Complexity: O(d^MaxLegs) where d is the largest out-degree.
package routing

import (
	"context"
	"slices"

	"github.com/dharmasatrya/flightscheduler/internal/models"
)

// MaxLegs is the longest itinerary returned by default (three stopovers).
const MaxLegs = 4

type Graph interface {
	Departing(loc *models.Location) []*models.Flight
}

type Options struct {
	// MaxLegs bounds the number of flights in one itinerary.
	MaxLegs int
}

type Option func(*Options)

func DefaultOptions() Options {
	return Options{MaxLegs: MaxLegs}
}

// WithMaxLegs overrides the depth bound. Values below one are ignored.
func WithMaxLegs(n int) Option {
	return func(o *Options) {
		if n >= 1 {
			o.MaxLegs = n
		}
	}
}

type frame struct {
	options []*models.Flight
	next    int
}

// Search returns every itinerary from source to target within the depth
// bound, in depth-first discovery order. A query whose source is its target
// has no itineraries. The only error is ctx's.
func Search(ctx context.Context, g Graph, source, target *models.Location, opts ...Option) ([]models.Itinerary, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	if source.Key() == target.Key() {
		return nil, nil
	}

	var found []models.Itinerary
	legs := make([]*models.Flight, 0, o.MaxLegs)
	stack := []frame{{options: g.Departing(source)}}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		top := &stack[len(stack)-1]
		if top.next >= len(top.options) {
			stack = stack[:len(stack)-1]
			if len(legs) > 0 {
				legs = legs[:len(legs)-1]
			}
			continue
		}

		leg := top.options[top.next]
		top.next++
		legs = append(legs, leg)

		switch {
		case leg.Destination.Key() == target.Key():
			found = append(found, models.Itinerary{Legs: slices.Clone(legs)})
			legs = legs[:len(legs)-1]
		case len(legs) >= o.MaxLegs:
			legs = legs[:len(legs)-1]
		default:
			stack = append(stack, frame{options: g.Departing(leg.Destination)})
		}
	}

	return found, nil
}
