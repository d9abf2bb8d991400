package query

// Station matches on a station ID or its three letter code
type Station struct {
	Identifier string
}

// Stations lists every station, or those on a line in line order when LineID is set
type Stations struct {
	LineID string
}

type Line struct {
	Identifier string
}

type Lines struct{}

type Neighbours struct {
	StationID string
}

type Facilities struct {
	StationID string
}

type Ridership struct {
	Scope string
}
