package network

type Line struct {
	ID         string   `json:"id" groups:"basic"`
	Name       string   `json:"name" groups:"basic"`
	Colour     string   `json:"colour" groups:"basic"`
	StationIDs []string `json:"stations" groups:"detailed"`
}

func (l *Line) clone() Line {
	copied := *l
	copied.StationIDs = append([]string(nil), l.StationIDs...)

	return copied
}

// Segment is an undirected edge between two adjacent stations on one line
type Segment struct {
	FromID string `json:"from" groups:"basic"`
	ToID   string `json:"to" groups:"basic"`
	LineID string `json:"line" groups:"basic"`
	Cost   Cost   `json:"cost" groups:"basic"`
}

// Neighbour is one adjacency of a station
type Neighbour struct {
	StationID string `json:"station" groups:"basic"`
	LineID    string `json:"line" groups:"basic"`
	Cost      Cost   `json:"cost" groups:"basic"`
}

// Edge is the index based form of a Neighbour used by graph searches
type Edge struct {
	To   int
	Line int
	Cost Cost
}

// Records are the raw tables a Network is built from
type Records struct {
	Stations []Station
	Lines    []Line
	Segments []Segment
}
