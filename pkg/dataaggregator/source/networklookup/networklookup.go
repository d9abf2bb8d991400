package networklookup

import (
	"fmt"
	"reflect"

	"github.com/travigo/hkmtr/pkg/dataaggregator/query"
	"github.com/travigo/hkmtr/pkg/dataaggregator/source"
	"github.com/travigo/hkmtr/pkg/network"
	"github.com/travigo/hkmtr/pkg/reference"
)

// Source answers the static reference queries from a loaded bundle
type Source struct {
	Bundle *reference.Bundle
}

func (s Source) GetName() string {
	return "Network Lookup"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(network.Station{}),
		reflect.TypeOf([]network.Station{}),
		reflect.TypeOf(network.Line{}),
		reflect.TypeOf([]network.Line{}),
		reflect.TypeOf([]network.Neighbour{}),
		reflect.TypeOf([]reference.Facility{}),
		reflect.TypeOf([]reference.RidershipRecord{}),
	}
}

func (s Source) Lookup(q any) (interface{}, error) {
	n := s.Bundle.Network

	switch q := q.(type) {
	case query.Station:
		return n.LookupStation(q.Identifier)
	case query.Stations:
		if q.LineID == "" {
			return n.Stations(), nil
		}
		return n.StationsOnLine(q.LineID)
	case query.Line:
		return n.Line(q.Identifier)
	case query.Lines:
		return n.Lines(), nil
	case query.Neighbours:
		station, err := n.LookupStation(q.StationID)
		if err != nil {
			return nil, err
		}
		return n.Neighbours(station.ID)
	case query.Facilities:
		station, err := n.LookupStation(q.StationID)
		if err != nil {
			return nil, err
		}
		facilities := s.Bundle.FacilitiesAt(station.ID)
		if facilities == nil {
			facilities = []reference.Facility{}
		}
		return facilities, nil
	case query.Ridership:
		scope := q.Scope
		if scope == "" {
			scope = reference.ScopeAll
		}
		ridership := s.Bundle.RidershipFor(scope)
		if len(ridership) == 0 {
			return nil, fmt.Errorf("ridership for %s: %w", scope, network.ErrNotFound)
		}
		return ridership, nil
	default:
		return nil, source.UnsupportedSourceError
	}
}
