package fares

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/travigo/hkmtr/pkg/network"
)

type Class string

const (
	ClassAdult   Class = "adult"
	ClassStudent Class = "student"
	ClassChild   Class = "child"
	ClassSingle  Class = "single"
)

// Classes lists every known fare class, adult first
var Classes = []Class{ClassAdult, ClassStudent, ClassChild, ClassSingle}

func ParseClass(value string) (Class, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ClassAdult, nil
	}

	for _, class := range Classes {
		if string(class) == value {
			return class, nil
		}
	}

	return "", fmt.Errorf("fare class %s: %w", value, network.ErrNotFound)
}

// Entry is the published fare between an ordered pair of stations
type Entry struct {
	FromID string                 `json:"from" groups:"basic"`
	ToID   string                 `json:"to" groups:"basic"`
	Fares  map[Class]network.Cost `json:"fares" groups:"basic"`
}

func (e Entry) Adult() network.Cost {
	return e.Fares[ClassAdult]
}

type pair struct {
	from string
	to   string
}

// Table is the authoritative fare lookup keyed on (origin, destination).
// Entries are directional, A->B says nothing about B->A.
type Table struct {
	entries map[pair]Entry
	order   []pair
}

// NewTable checks every entry against the network, each must name known stations and carry an adult fare
func NewTable(n *network.Network, entries []Entry) (*Table, error) {
	table := &Table{
		entries: map[pair]Entry{},
	}

	for _, entry := range entries {
		entry.FromID = strings.TrimSpace(entry.FromID)
		entry.ToID = strings.TrimSpace(entry.ToID)

		if _, err := n.Station(entry.FromID); err != nil {
			return nil, fmt.Errorf("fare entry references unknown station %s: %w", entry.FromID, network.ErrInvalidData)
		}
		if _, err := n.Station(entry.ToID); err != nil {
			return nil, fmt.Errorf("fare entry references unknown station %s: %w", entry.ToID, network.ErrInvalidData)
		}
		if _, exists := entry.Fares[ClassAdult]; !exists {
			return nil, fmt.Errorf("fare entry %s-%s has no adult fare: %w", entry.FromID, entry.ToID, network.ErrInvalidData)
		}

		fares := make(map[Class]network.Cost, len(entry.Fares))
		for class, amount := range entry.Fares {
			if amount < 0 {
				return nil, fmt.Errorf("fare entry %s-%s has negative %s fare: %w", entry.FromID, entry.ToID, class, network.ErrInvalidData)
			}
			if amount > network.MaxCost {
				return nil, fmt.Errorf("fare entry %s-%s has %s fare above %s: %w", entry.FromID, entry.ToID, class, network.MaxCost, network.ErrInvalidData)
			}
			fares[class] = amount
		}
		entry.Fares = fares

		key := pair{from: entry.FromID, to: entry.ToID}
		if existing, exists := table.entries[key]; exists {
			if !sameFares(existing.Fares, entry.Fares) {
				return nil, fmt.Errorf("fare entry %s-%s is listed twice with different fares: %w", entry.FromID, entry.ToID, network.ErrInvalidData)
			}
			continue
		}

		table.entries[key] = entry
		table.order = append(table.order, key)
	}

	sort.Slice(table.order, func(i, j int) bool {
		if table.order[i].from != table.order[j].from {
			return table.order[i].from < table.order[j].from
		}
		return table.order[i].to < table.order[j].to
	})

	return table, nil
}

func sameFares(a map[Class]network.Cost, b map[Class]network.Cost) bool {
	if len(a) != len(b) {
		return false
	}
	for class, amount := range a {
		if other, exists := b[class]; !exists || other != amount {
			return false
		}
	}

	return true
}

// Lookup returns the entry published for origin to destination
func (t *Table) Lookup(origin string, destination string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}

	entry, exists := t.entries[pair{from: origin, to: destination}]
	if !exists {
		return Entry{}, false
	}

	return entry.clone(), true
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.order)
}

// Entries returns a copy of every entry ordered by origin then destination
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}

	entries := make([]Entry, 0, len(t.order))
	for _, key := range t.order {
		entries = append(entries, t.entries[key].clone())
	}

	return entries
}

func (e Entry) clone() Entry {
	fares := make(map[Class]network.Cost, len(e.Fares))
	for class, amount := range e.Fares {
		fares[class] = amount
	}
	e.Fares = fares

	return e
}

// RoundHalfUp rounds a non-negative cost to the nearest multiple of unit, halves go up.
// A unit of zero or less leaves the cost untouched.
func RoundHalfUp(cost network.Cost, unit network.Cost) network.Cost {
	if unit <= 0 {
		return cost
	}

	return (cost + unit/2) / unit * unit
}

// roundingEpsilon absorbs binary representation error, 4.55 * 100 is 454.99999999999994
const roundingEpsilon = 1e-9

// RoundDollarsHalfUp rounds an amount in dollars straight to the nearest multiple of unit, halves go up.
// A unit of zero or less rounds to the nearest hundredth.
func RoundDollarsHalfUp(value float64, unit network.Cost) network.Cost {
	if unit <= 0 {
		unit = 1
	}

	return network.Cost(math.Floor(value*network.CostScale/float64(unit)+0.5+roundingEpsilon)) * unit
}
