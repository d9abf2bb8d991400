package resolver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/travigo/hkmtr/pkg/fares"
	"github.com/travigo/hkmtr/pkg/network"
)

// DefaultFareUnit is HK$0.10, the smallest amount fares are quoted in
const DefaultFareUnit network.Cost = 10

type Options struct {
	InterchangePenalty network.Cost
	FareUnit           network.Cost
	FareTolerance      network.Cost
	Rules              *fares.Rules
}

func DefaultOptions() Options {
	return Options{
		FareUnit: DefaultFareUnit,
	}
}

// Resolver answers route and fare queries over one network and fare table.
// It holds no mutable state so a single Resolver can serve any number of goroutines.
type Resolver struct {
	network *network.Network
	fares   *fares.Table
	options Options
}

func New(n *network.Network, table *fares.Table, options Options) (*Resolver, error) {
	if n == nil {
		return nil, fmt.Errorf("resolver needs a network: %w", network.ErrInvalidData)
	}
	if options.InterchangePenalty < 0 {
		return nil, fmt.Errorf("negative interchange penalty %s: %w", options.InterchangePenalty, network.ErrInvalidData)
	}
	if options.InterchangePenalty > network.MaxCost {
		return nil, fmt.Errorf("interchange penalty %s is above %s: %w", options.InterchangePenalty, network.MaxCost, network.ErrInvalidData)
	}
	if options.FareUnit < 0 {
		return nil, fmt.Errorf("negative fare unit %s: %w", options.FareUnit, network.ErrInvalidData)
	}
	if options.FareTolerance < 0 {
		return nil, fmt.Errorf("negative fare tolerance %s: %w", options.FareTolerance, network.ErrInvalidData)
	}
	if options.FareUnit == 0 {
		options.FareUnit = DefaultFareUnit
	}

	return &Resolver{
		network: n,
		fares:   table,
		options: options,
	}, nil
}

func (r *Resolver) Network() *network.Network {
	return r.network
}

func (r *Resolver) FareTable() *fares.Table {
	return r.fares
}

func (r *Resolver) Options() Options {
	return r.options
}

// Fingerprint identifies the options that change query results, together with the network version it
// scopes memoised answers
func (r *Resolver) Fingerprint() string {
	hash := sha256.New()

	fmt.Fprintf(hash, "penalty=%d|unit=%d|tolerance=%d", r.options.InterchangePenalty, r.options.FareUnit, r.options.FareTolerance)
	for _, class := range r.options.Rules.Classes() {
		fmt.Fprintf(hash, "|%s=%s", class, r.options.Rules.Source(class))
	}
	if r.fares != nil {
		for _, entry := range r.fares.Entries() {
			fmt.Fprintf(hash, "|%s>%s", entry.FromID, entry.ToID)
			for _, class := range fares.Classes {
				if amount, exists := entry.Fares[class]; exists {
					fmt.Fprintf(hash, ",%s=%d", class, amount)
				}
			}
		}
	}

	return hex.EncodeToString(hash.Sum(nil))[:16]
}

// Fare returns the adult fare between two stations.
// A published fare table entry wins, otherwise the segment cost of the shortest path is rounded half up
// to the fare unit. Interchange penalties steer the route but are never charged.
func (r *Resolver) Fare(origin string, destination string) (network.Cost, error) {
	if err := r.checkStations(origin, destination); err != nil {
		return 0, err
	}

	if entry, found := r.fares.Lookup(origin, destination); found {
		return entry.Adult(), nil
	}

	route, err := r.ShortestPath(origin, destination)
	if err != nil {
		return 0, err
	}

	return r.derivedFare(route), nil
}

func (r *Resolver) derivedFare(route *Route) network.Cost {
	return fares.RoundHalfUp(route.SegmentCost, r.options.FareUnit)
}

func (r *Resolver) checkStations(origin string, destination string) error {
	if _, err := r.network.Station(origin); err != nil {
		return fmt.Errorf("origin: %w", err)
	}
	if _, err := r.network.Station(destination); err != nil {
		return fmt.Errorf("destination: %w", err)
	}

	return nil
}

type FareSource string

const (
	FareSourceTable   FareSource = "table"
	FareSourceNetwork FareSource = "network"
)

// Quote is the fare of every class between two stations
type Quote struct {
	OriginID      string                       `json:"origin" groups:"basic"`
	DestinationID string                       `json:"destination" groups:"basic"`
	Source        FareSource                   `json:"source" groups:"basic"`
	Fares         map[fares.Class]network.Cost `json:"fares" groups:"basic"`
	Derived       []fares.Class                `json:"derived" groups:"detailed"`
	Route         *Route                       `json:"route,omitempty" groups:"detailed"`
}

// Quote returns every fare class it can. Classes missing from the fare table are derived from the
// adult fare by the configured rules, classes without a rule are left out.
func (r *Resolver) Quote(origin string, destination string) (*Quote, error) {
	if err := r.checkStations(origin, destination); err != nil {
		return nil, err
	}

	quote := &Quote{
		OriginID:      origin,
		DestinationID: destination,
		Fares:         map[fares.Class]network.Cost{},
		Derived:       []fares.Class{},
	}

	route, err := r.ShortestPath(origin, destination)
	if err != nil && !errors.Is(err, network.ErrNoRoute) {
		return nil, err
	}
	quote.Route = route

	entry, found := r.fares.Lookup(origin, destination)
	switch {
	case found:
		quote.Source = FareSourceTable
		for class, amount := range entry.Fares {
			quote.Fares[class] = amount
		}
	case route != nil:
		quote.Source = FareSourceNetwork
		quote.Fares[fares.ClassAdult] = r.derivedFare(route)
	default:
		return nil, err
	}

	env := fares.RuleEnv{
		Adult: quote.Fares[fares.ClassAdult].Float64(),
	}
	if route != nil {
		env.Stations = len(route.Stations)
		env.Interchanges = route.Interchanges
	}

	for _, class := range fares.Classes {
		if _, exists := quote.Fares[class]; exists {
			continue
		}

		amount, err := r.options.Rules.Derive(class, env, r.options.FareUnit)
		if errors.Is(err, network.ErrNotFound) {
			continue
		} else if err != nil {
			return nil, err
		}

		quote.Fares[class] = amount
		quote.Derived = append(quote.Derived, class)
	}

	return quote, nil
}
