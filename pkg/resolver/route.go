package resolver

import (
	"container/heap"
	"fmt"

	"github.com/travigo/hkmtr/pkg/network"
)

type Leg struct {
	LineID   string       `json:"line" groups:"basic"`
	Stations []string     `json:"stations" groups:"basic"`
	Cost     network.Cost `json:"cost" groups:"basic"`
}

type Route struct {
	OriginID      string   `json:"origin" groups:"basic"`
	DestinationID string   `json:"destination" groups:"basic"`
	Stations      []string `json:"stations" groups:"basic"`
	Legs          []Leg    `json:"legs" groups:"detailed"`

	// TotalCost includes interchange penalties, SegmentCost is the plain sum of segment costs
	TotalCost    network.Cost `json:"total_cost" groups:"basic"`
	SegmentCost  network.Cost `json:"segment_cost" groups:"basic"`
	Interchanges int          `json:"interchanges" groups:"basic"`
}

// weight orders candidate paths: cost, then interchanges, then stations visited
type weight struct {
	cost         network.Cost
	interchanges int
	stations     int
}

func (w weight) less(o weight) bool {
	if w.cost != o.cost {
		return w.cost < o.cost
	}
	if w.interchanges != o.interchanges {
		return w.interchanges < o.interchanges
	}
	return w.stations < o.stations
}

// state is a station reached on a line, line is -1 at the origin
type state struct {
	station int
	line    int
}

type label struct {
	weight      weight
	segmentCost network.Cost
	previous    state
	hasPrevious bool
}

type queueItem struct {
	state  state
	weight weight
}

type queue []queueItem

func (q queue) Len() int { return len(q) }

// Exhausted weights fall back to station then line index, both of which follow identifier order
func (q queue) Less(i, j int) bool {
	if q[i].weight != q[j].weight {
		return q[i].weight.less(q[j].weight)
	}
	if q[i].state.station != q[j].state.station {
		return q[i].state.station < q[j].state.station
	}
	return q[i].state.line < q[j].state.line
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(queueItem)) }

func (q *queue) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}

// ShortestPath finds the cheapest route between two stations.
// Changing line at a station adds the interchange penalty. Equal cost routes prefer fewer interchanges
// and then fewer stations.
func (r *Resolver) ShortestPath(origin string, destination string) (*Route, error) {
	originIndex, err := r.network.Index(origin)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	destinationIndex, err := r.network.Index(destination)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	start := state{station: originIndex, line: -1}
	labels := map[state]label{
		start: {weight: weight{stations: 1}},
	}
	settled := map[state]bool{}

	pending := &queue{{state: start, weight: weight{stations: 1}}}

	for pending.Len() > 0 {
		current := heap.Pop(pending).(queueItem)
		if settled[current.state] {
			continue
		}
		settled[current.state] = true

		if current.state.station == destinationIndex {
			return r.buildRoute(labels, current.state), nil
		}

		currentLabel := labels[current.state]

		r.network.VisitEdges(current.state.station, func(edge network.Edge) {
			next := state{station: edge.To, line: edge.Line}
			if settled[next] {
				return
			}

			candidate := weight{
				cost:         currentLabel.weight.cost + edge.Cost,
				interchanges: currentLabel.weight.interchanges,
				stations:     currentLabel.weight.stations + 1,
			}
			if current.state.line != -1 && current.state.line != edge.Line {
				candidate.cost += r.options.InterchangePenalty
				candidate.interchanges++
			}

			existing, seen := labels[next]
			if seen && !candidate.less(existing.weight) {
				return
			}

			labels[next] = label{
				weight:      candidate,
				segmentCost: currentLabel.segmentCost + edge.Cost,
				previous:    current.state,
				hasPrevious: true,
			}
			heap.Push(pending, queueItem{state: next, weight: candidate})
		})
	}

	return nil, fmt.Errorf("%s to %s: %w", origin, destination, network.ErrNoRoute)
}

func (r *Resolver) buildRoute(labels map[state]label, end state) *Route {
	var states []state
	for current := end; ; {
		states = append(states, current)

		currentLabel := labels[current]
		if !currentLabel.hasPrevious {
			break
		}
		current = currentLabel.previous
	}

	for i, j := 0, len(states)-1; i < j; i, j = i+1, j-1 {
		states[i], states[j] = states[j], states[i]
	}

	endLabel := labels[end]
	route := &Route{
		OriginID:      r.network.StationID(states[0].station),
		DestinationID: r.network.StationID(end.station),
		Stations:      make([]string, 0, len(states)),
		Legs:          []Leg{},
		TotalCost:     endLabel.weight.cost,
		SegmentCost:   endLabel.segmentCost,
		Interchanges:  endLabel.weight.interchanges,
	}

	for i, current := range states {
		stationID := r.network.StationID(current.station)
		route.Stations = append(route.Stations, stationID)

		if i == 0 {
			continue
		}

		lineID := r.network.LineID(current.line)
		segmentCost := labels[current].segmentCost - labels[states[i-1]].segmentCost

		if len(route.Legs) == 0 || route.Legs[len(route.Legs)-1].LineID != lineID {
			route.Legs = append(route.Legs, Leg{
				LineID:   lineID,
				Stations: []string{route.Stations[i-1]},
			})
		}

		leg := &route.Legs[len(route.Legs)-1]
		leg.Stations = append(leg.Stations, stationID)
		leg.Cost += segmentCost
	}

	return route
}
