package journeyplanner

import (
	"context"
	"reflect"

	"github.com/travigo/hkmtr/pkg/dataaggregator/query"
	"github.com/travigo/hkmtr/pkg/dataaggregator/source"
	"github.com/travigo/hkmtr/pkg/network"
	"github.com/travigo/hkmtr/pkg/resolver"
	"github.com/travigo/hkmtr/pkg/routecache"
)

// Source plans routes with the resolver, through the route cache when there is one
type Source struct {
	Resolver *resolver.Resolver
	Cache    *routecache.Cache
}

func (s Source) GetName() string {
	return "Journey Planner"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(resolver.Route{}),
	}
}

func (s Source) Lookup(q any) (interface{}, error) {
	switch q := q.(type) {
	case query.Route:
		return s.RouteQuery(q)
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (s Source) RouteQuery(q query.Route) (*resolver.Route, error) {
	origin := StationID(s.Resolver.Network(), q.Origin)
	destination := StationID(s.Resolver.Network(), q.Destination)

	if s.Cache == nil {
		return s.Resolver.ShortestPath(origin, destination)
	}

	ctx := q.Context
	if ctx == nil {
		ctx = context.Background()
	}

	return s.Cache.ShortestPath(ctx, s.Resolver, origin, destination)
}

// StationID resolves a station code to its ID, identifiers that match nothing are returned as given
func StationID(n *network.Network, identifier string) string {
	station, err := n.LookupStation(identifier)
	if err != nil {
		return identifier
	}

	return station.ID
}
