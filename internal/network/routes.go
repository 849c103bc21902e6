package network

import (
	"context"
	"log"

	"github.com/dharmasatrya/flightscheduler/internal/cache"
	"github.com/dharmasatrya/flightscheduler/internal/models"
	"github.com/dharmasatrya/flightscheduler/internal/ranking"
	"github.com/dharmasatrya/flightscheduler/internal/routing"
)

type RouteResult struct {
	Scheme ranking.Scheme
	Route  ranking.Ranked
	// Rank is the 1-based position actually returned after clamping.
	Rank     int
	Total    int
	CacheHit bool
}

// FindRoutes ranks every itinerary from one location to another and returns
// the one at rank. Unknown endpoints are reported before an invalid scheme.
// When nothing connects the two locations the error is models.ErrNoRoute
// and the result still carries the scheme and a zero Total.
func (n *Network) FindRoutes(ctx context.Context, from, to, scheme string, rank int) (RouteResult, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	src, ok := n.locations[models.NameKey(from)]
	if !ok {
		return RouteResult{}, models.ErrUnknownSource
	}
	dst, ok := n.locations[models.NameKey(to)]
	if !ok {
		return RouteResult{}, models.ErrUnknownDestination
	}
	sch, err := ranking.ParseScheme(scheme)
	if err != nil {
		return RouteResult{}, err
	}

	result := RouteResult{Scheme: sch}
	ranked, hit, err := n.rankRoutes(ctx, src, dst, sch)
	if err != nil {
		return result, err
	}
	result.Total = len(ranked)
	result.CacheHit = hit

	selected, used, err := ranking.Select(ranked, rank)
	if err != nil {
		return result, err
	}
	result.Route = cloneRanked(selected)
	result.Rank = used
	return result, nil
}

// rankRoutes must be called with the read lock held.
func (n *Network) rankRoutes(ctx context.Context, src, dst *models.Location, scheme ranking.Scheme) ([]ranking.Ranked, bool, error) {
	ctx, cancel := n.searchContext(ctx)
	defer cancel()

	key := cache.RouteKey{
		NetworkID: n.id.String(),
		Revision:  n.revision,
		From:      src.Key(),
		To:        dst.Key(),
		Scheme:    string(scheme),
	}

	if ids, found := n.config.Cache.Get(ctx, key); found {
		if its, ok := n.resolveItineraries(ids); ok {
			return ranking.Score(its), true, nil
		}
	}

	its, err := routing.Search(ctx, schedule(n.flights), src, dst, routing.WithMaxLegs(n.config.MaxLegs))
	if err != nil {
		return nil, false, err
	}
	ranked := ranking.Score(its)
	ranking.Sort(ranked, scheme)

	if err := n.config.Cache.Set(ctx, key, routeIDs(ranked)); err != nil {
		log.Printf("network: failed to cache routes %s -> %s: %v", src.Name, dst.Name, err)
	}

	return ranked, false, nil
}

func (n *Network) searchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if n.config.SearchTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, n.config.SearchTimeout)
}

// resolveItineraries rebuilds cached id lists. It reports false if any id
// no longer names a flight.
func (n *Network) resolveItineraries(routes [][]int) ([]models.Itinerary, bool) {
	its := make([]models.Itinerary, len(routes))
	for i, ids := range routes {
		legs := make([]*models.Flight, len(ids))
		for j, id := range ids {
			f, ok := n.flights[id]
			if !ok {
				return nil, false
			}
			legs[j] = f
		}
		its[i] = models.Itinerary{Legs: legs}
	}
	return its, true
}

func routeIDs(ranked []ranking.Ranked) [][]int {
	out := make([][]int, len(ranked))
	for i, r := range ranked {
		out[i] = r.Itinerary.FlightIDs()
	}
	return out
}

func cloneRanked(r ranking.Ranked) ranking.Ranked {
	legs := make([]*models.Flight, len(r.Itinerary.Legs))
	for i, leg := range r.Itinerary.Legs {
		legs[i] = leg.Clone()
	}
	r.Itinerary = models.Itinerary{Legs: legs}
	r.Layovers = append([]int(nil), r.Layovers...)
	return r
}
