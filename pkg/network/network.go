package network

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/slices"
)

// Network is the immutable graph of stations and segments.
// It is safe for concurrent use once built, every accessor hands out copies.
type Network struct {
	version string

	stations     []Station
	stationIndex map[string]int
	codeIndex    map[string]int

	lines     []Line
	lineIndex map[string]int

	segments  []Segment
	adjacency [][]Edge
}

type segmentKey struct {
	from string
	to   string
	line string
}

// New validates the records and builds the network.
// Every station referenced by a line or segment must exist, as must every line referenced by
// a station or segment. Any violation is returned wrapped in ErrInvalidData.
func New(records Records) (*Network, error) {
	n := &Network{
		stationIndex: map[string]int{},
		codeIndex:    map[string]int{},
		lineIndex:    map[string]int{},
	}

	// Stations
	stations := make([]Station, 0, len(records.Stations))
	for _, station := range records.Stations {
		station = station.clone()
		station.ID = strings.TrimSpace(station.ID)
		station.Code = strings.TrimSpace(station.Code)

		if station.ID == "" {
			return nil, fmt.Errorf("station with name %q has no identifier: %w", station.Name, ErrInvalidData)
		}
		if _, exists := n.stationIndex[station.ID]; exists {
			return nil, fmt.Errorf("duplicate station %s: %w", station.ID, ErrInvalidData)
		}

		n.stationIndex[station.ID] = -1
		stations = append(stations, station)
	}
	sort.Slice(stations, func(i, j int) bool {
		return stations[i].ID < stations[j].ID
	})

	// Lines
	lines := make([]Line, 0, len(records.Lines))
	for _, line := range records.Lines {
		line = line.clone()
		line.ID = strings.TrimSpace(line.ID)

		if line.ID == "" {
			return nil, fmt.Errorf("line with name %q has no identifier: %w", line.Name, ErrInvalidData)
		}
		if _, exists := n.lineIndex[line.ID]; exists {
			return nil, fmt.Errorf("duplicate line %s: %w", line.ID, ErrInvalidData)
		}

		seen := map[string]bool{}
		for _, stationID := range line.StationIDs {
			if _, exists := n.stationIndex[stationID]; !exists {
				return nil, fmt.Errorf("line %s references unknown station %s: %w", line.ID, stationID, ErrInvalidData)
			}
			if seen[stationID] {
				return nil, fmt.Errorf("line %s lists station %s more than once: %w", line.ID, stationID, ErrInvalidData)
			}
			seen[stationID] = true
		}

		n.lineIndex[line.ID] = -1
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ID < lines[j].ID
	})

	for i, station := range stations {
		n.stationIndex[station.ID] = i
		if station.Code != "" {
			if _, exists := n.codeIndex[station.Code]; exists {
				return nil, fmt.Errorf("duplicate station code %s: %w", station.Code, ErrInvalidData)
			}
			n.codeIndex[station.Code] = i
		}
	}
	for i, line := range lines {
		n.lineIndex[line.ID] = i
	}

	// Segments
	canonical := map[segmentKey]Cost{}
	for _, segment := range records.Segments {
		from := strings.TrimSpace(segment.FromID)
		to := strings.TrimSpace(segment.ToID)
		lineID := strings.TrimSpace(segment.LineID)

		if _, exists := n.stationIndex[from]; !exists {
			return nil, fmt.Errorf("segment references unknown station %s: %w", from, ErrInvalidData)
		}
		if _, exists := n.stationIndex[to]; !exists {
			return nil, fmt.Errorf("segment references unknown station %s: %w", to, ErrInvalidData)
		}
		if _, exists := n.lineIndex[lineID]; !exists {
			return nil, fmt.Errorf("segment %s-%s references unknown line %s: %w", from, to, lineID, ErrInvalidData)
		}
		if from == to {
			return nil, fmt.Errorf("segment %s-%s on line %s is a loop: %w", from, to, lineID, ErrInvalidData)
		}
		if segment.Cost < 0 {
			return nil, fmt.Errorf("segment %s-%s on line %s has negative cost %s: %w", from, to, lineID, segment.Cost, ErrInvalidData)
		}
		if segment.Cost > MaxCost {
			return nil, fmt.Errorf("segment %s-%s on line %s costs %s, above %s: %w", from, to, lineID, segment.Cost, MaxCost, ErrInvalidData)
		}

		if to < from {
			from, to = to, from
		}
		key := segmentKey{from: from, to: to, line: lineID}

		if existing, exists := canonical[key]; exists && existing != segment.Cost {
			return nil, fmt.Errorf("segment %s-%s on line %s has conflicting costs %s and %s: %w", from, to, lineID, existing, segment.Cost, ErrInvalidData)
		}
		canonical[key] = segment.Cost
	}

	keys := make([]segmentKey, 0, len(canonical))
	for key := range canonical {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b segmentKey) int {
		if c := strings.Compare(a.from, b.from); c != 0 {
			return c
		}
		if c := strings.Compare(a.to, b.to); c != 0 {
			return c
		}
		return strings.Compare(a.line, b.line)
	})

	n.adjacency = make([][]Edge, len(stations))
	n.segments = make([]Segment, 0, len(keys))
	stationLines := make([]map[string]bool, len(stations))
	for i := range stations {
		stationLines[i] = map[string]bool{}
	}

	for _, key := range keys {
		cost := canonical[key]
		fromIndex := n.stationIndex[key.from]
		toIndex := n.stationIndex[key.to]
		lineIndex := n.lineIndex[key.line]

		n.segments = append(n.segments, Segment{FromID: key.from, ToID: key.to, LineID: key.line, Cost: cost})
		n.adjacency[fromIndex] = append(n.adjacency[fromIndex], Edge{To: toIndex, Line: lineIndex, Cost: cost})
		n.adjacency[toIndex] = append(n.adjacency[toIndex], Edge{To: fromIndex, Line: lineIndex, Cost: cost})

		stationLines[fromIndex][key.line] = true
		stationLines[toIndex][key.line] = true
	}

	for i := range n.adjacency {
		edges := n.adjacency[i]
		sort.Slice(edges, func(a, b int) bool {
			if edges[a].To != edges[b].To {
				return edges[a].To < edges[b].To
			}
			return edges[a].Line < edges[b].Line
		})
	}

	// A station belongs to every line it declares, every line listing it and every line with a segment touching it
	for _, line := range lines {
		for _, stationID := range line.StationIDs {
			stationLines[n.stationIndex[stationID]][line.ID] = true
		}
	}
	for i := range stations {
		for _, lineID := range stations[i].Lines {
			lineID = strings.TrimSpace(lineID)
			if _, exists := n.lineIndex[lineID]; !exists {
				return nil, fmt.Errorf("station %s references unknown line %s: %w", stations[i].ID, lineID, ErrInvalidData)
			}
			stationLines[i][lineID] = true
		}

		stationLineIDs := make([]string, 0, len(stationLines[i]))
		for lineID := range stationLines[i] {
			stationLineIDs = append(stationLineIDs, lineID)
		}
		slices.Sort(stationLineIDs)
		stations[i].Lines = stationLineIDs

		if len(stations[i].Accessibility) > 0 {
			flags := slices.Clone(stations[i].Accessibility)
			slices.Sort(flags)
			stations[i].Accessibility = slices.Compact(flags)
		}
	}

	n.stations = stations
	n.lines = lines
	n.version = n.computeVersion()

	return n, nil
}

func (n *Network) computeVersion() string {
	hash := sha256.New()

	for _, station := range n.stations {
		fmt.Fprintf(hash, "S|%s|%s|%s|%s|%s|%s\n", station.ID, station.Code, station.Name, station.ChineseName,
			strings.Join(station.Lines, ","), strings.Join(station.Accessibility, ","))
		if station.Location != nil {
			fmt.Fprintf(hash, "L|%v\n", station.Location.Coordinates)
		}
	}
	for _, line := range n.lines {
		fmt.Fprintf(hash, "N|%s|%s|%s|%s\n", line.ID, line.Name, line.Colour, strings.Join(line.StationIDs, ","))
	}
	for _, segment := range n.segments {
		fmt.Fprintf(hash, "E|%s|%s|%s|%d\n", segment.FromID, segment.ToID, segment.LineID, segment.Cost)
	}

	return hex.EncodeToString(hash.Sum(nil))
}

// Version identifies the content of the network, equal records give equal versions
func (n *Network) Version() string {
	return n.version
}

func (n *Network) Station(id string) (Station, error) {
	index, exists := n.stationIndex[id]
	if !exists {
		return Station{}, fmt.Errorf("station %s: %w", id, ErrNotFound)
	}

	return n.stations[index].clone(), nil
}

func (n *Network) StationByCode(code string) (Station, error) {
	index, exists := n.codeIndex[code]
	if !exists {
		return Station{}, fmt.Errorf("station code %s: %w", code, ErrNotFound)
	}

	return n.stations[index].clone(), nil
}

// LookupStation resolves either a station identifier or a station code
func (n *Network) LookupStation(identifier string) (Station, error) {
	if station, err := n.Station(identifier); err == nil {
		return station, nil
	}

	return n.StationByCode(identifier)
}

func (n *Network) Stations() []Station {
	stations := make([]Station, len(n.stations))
	for i := range n.stations {
		stations[i] = n.stations[i].clone()
	}

	return stations
}

func (n *Network) Line(id string) (Line, error) {
	index, exists := n.lineIndex[id]
	if !exists {
		return Line{}, fmt.Errorf("line %s: %w", id, ErrNotFound)
	}

	return n.lines[index].clone(), nil
}

func (n *Network) Lines() []Line {
	lines := make([]Line, len(n.lines))
	for i := range n.lines {
		lines[i] = n.lines[i].clone()
	}

	return lines
}

func (n *Network) Segments() []Segment {
	return slices.Clone(n.segments)
}

// StationsOnLine returns the stations served by a line in line order
func (n *Network) StationsOnLine(lineID string) ([]Station, error) {
	index, exists := n.lineIndex[lineID]
	if !exists {
		return nil, fmt.Errorf("line %s: %w", lineID, ErrNotFound)
	}

	line := n.lines[index]
	stations := make([]Station, 0, len(line.StationIDs))
	for _, stationID := range line.StationIDs {
		stations = append(stations, n.stations[n.stationIndex[stationID]].clone())
	}

	return stations, nil
}

// Neighbours returns every adjacent station with the line and cost of the joining segment,
// ordered by station then line
func (n *Network) Neighbours(stationID string) ([]Neighbour, error) {
	index, exists := n.stationIndex[stationID]
	if !exists {
		return nil, fmt.Errorf("station %s: %w", stationID, ErrNotFound)
	}

	neighbours := make([]Neighbour, 0, len(n.adjacency[index]))
	for _, edge := range n.adjacency[index] {
		neighbours = append(neighbours, Neighbour{
			StationID: n.stations[edge.To].ID,
			LineID:    n.lines[edge.Line].ID,
			Cost:      edge.Cost,
		})
	}

	return neighbours, nil
}

// Len is the number of stations, station indexes run from 0 to Len()-1 in identifier order
func (n *Network) Len() int {
	return len(n.stations)
}

func (n *Network) Index(stationID string) (int, error) {
	index, exists := n.stationIndex[stationID]
	if !exists {
		return -1, fmt.Errorf("station %s: %w", stationID, ErrNotFound)
	}

	return index, nil
}

func (n *Network) StationID(index int) string {
	return n.stations[index].ID
}

func (n *Network) LineID(index int) string {
	return n.lines[index].ID
}

// VisitEdges calls visit for every edge leaving the station at index, in neighbour order
func (n *Network) VisitEdges(index int, visit func(Edge)) {
	for _, edge := range n.adjacency[index] {
		visit(edge)
	}
}
