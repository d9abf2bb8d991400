package fareslookup

import (
	"fmt"
	"reflect"

	"github.com/travigo/hkmtr/pkg/dataaggregator/query"
	"github.com/travigo/hkmtr/pkg/dataaggregator/source"
	"github.com/travigo/hkmtr/pkg/dataaggregator/source/journeyplanner"
	"github.com/travigo/hkmtr/pkg/fares"
	"github.com/travigo/hkmtr/pkg/network"
	"github.com/travigo/hkmtr/pkg/resolver"
)

type Source struct {
	Resolver *resolver.Resolver
}

func (s Source) GetName() string {
	return "Fares Lookup"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(resolver.Quote{}),
	}
}

func (s Source) Lookup(q any) (interface{}, error) {
	switch q := q.(type) {
	case query.FareQuote:
		return s.FareQuoteQuery(q)
	default:
		return nil, source.UnsupportedSourceError
	}
}

func (s Source) FareQuoteQuery(q query.FareQuote) (*resolver.Quote, error) {
	n := s.Resolver.Network()

	quote, err := s.Resolver.Quote(journeyplanner.StationID(n, q.Origin), journeyplanner.StationID(n, q.Destination))
	if err != nil {
		return nil, err
	}

	if q.Class == "" {
		return quote, nil
	}

	class, err := fares.ParseClass(q.Class)
	if err != nil {
		return nil, err
	}

	amount, exists := quote.Fares[class]
	if !exists {
		return nil, fmt.Errorf("no %s fare from %s to %s: %w", class, quote.OriginID, quote.DestinationID, network.ErrNotFound)
	}

	quote.Fares = map[fares.Class]network.Cost{class: amount}
	derived := quote.Derived
	quote.Derived = []fares.Class{}
	for _, derivedClass := range derived {
		if derivedClass == class {
			quote.Derived = append(quote.Derived, class)
		}
	}

	return quote, nil
}
