package network

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func islandLineRecords() Records {
	return Records{
		Stations: []Station{
			{ID: "CEN", Code: "CEN", Name: "Central", Location: NewLocation(22.2819, 114.1582)},
			{ID: "ADM", Code: "ADM", Name: "Admiralty", Accessibility: []string{"lift", "tactile", "lift"}},
			{ID: "WAC", Code: "WAC", Name: "Wan Chai"},
		},
		Lines: []Line{
			{ID: "ISL", Name: "Island Line", Colour: "#007DC5", StationIDs: []string{"CEN", "ADM", "WAC"}},
		},
		Segments: []Segment{
			{FromID: "CEN", ToID: "ADM", LineID: "ISL", Cost: 500},
			{FromID: "WAC", ToID: "ADM", LineID: "ISL", Cost: 500},
		},
	}
}

func TestNewBuildsNetwork(t *testing.T) {
	n, err := New(islandLineRecords())
	require.NoError(t, err)

	assert.Equal(t, 3, n.Len())
	assert.NotEmpty(t, n.Version())

	station, err := n.Station("ADM")
	require.NoError(t, err)
	assert.Equal(t, "Admiralty", station.Name)
	assert.Equal(t, []string{"ISL"}, station.Lines)
	assert.Equal(t, []string{"lift", "tactile"}, station.Accessibility)
	assert.True(t, station.HasAccessibility("lift"))

	central, err := n.StationByCode("CEN")
	require.NoError(t, err)
	require.NotNil(t, central.Location)
	assert.Equal(t, []float64{114.1582, 22.2819}, central.Location.Coordinates)

	segments := n.Segments()
	require.Len(t, segments, 2)
	assert.Equal(t, Segment{FromID: "ADM", ToID: "CEN", LineID: "ISL", Cost: 500}, segments[0])
	assert.Equal(t, Segment{FromID: "ADM", ToID: "WAC", LineID: "ISL", Cost: 500}, segments[1])
}

func TestNeighbours(t *testing.T) {
	n, err := New(islandLineRecords())
	require.NoError(t, err)

	neighbours, err := n.Neighbours("ADM")
	require.NoError(t, err)
	assert.Equal(t, []Neighbour{
		{StationID: "CEN", LineID: "ISL", Cost: 500},
		{StationID: "WAC", LineID: "ISL", Cost: 500},
	}, neighbours)

	neighbours, err = n.Neighbours("CEN")
	require.NoError(t, err)
	assert.Equal(t, []Neighbour{{StationID: "ADM", LineID: "ISL", Cost: 500}}, neighbours)

	_, err = n.Neighbours("XXX")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStationsOnLine(t *testing.T) {
	n, err := New(islandLineRecords())
	require.NoError(t, err)

	stations, err := n.StationsOnLine("ISL")
	require.NoError(t, err)
	require.Len(t, stations, 3)
	assert.Equal(t, "CEN", stations[0].ID)
	assert.Equal(t, "ADM", stations[1].ID)
	assert.Equal(t, "WAC", stations[2].ID)

	_, err = n.StationsOnLine("KTL")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnknownIdentifiersAreNotFound(t *testing.T) {
	n, err := New(islandLineRecords())
	require.NoError(t, err)

	_, err = n.Station("XXX")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = n.StationByCode("XXX")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = n.LookupStation("XXX")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = n.Line("XXX")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = n.Index("XXX")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccessorsReturnCopies(t *testing.T) {
	n, err := New(islandLineRecords())
	require.NoError(t, err)

	station, err := n.Station("ADM")
	require.NoError(t, err)
	station.Lines[0] = "MUTATED"
	station.Accessibility[0] = "MUTATED"

	line, err := n.Line("ISL")
	require.NoError(t, err)
	line.StationIDs[0] = "MUTATED"

	again, err := n.Station("ADM")
	require.NoError(t, err)
	assert.Equal(t, []string{"ISL"}, again.Lines)
	assert.Equal(t, "lift", again.Accessibility[0])

	stations, err := n.StationsOnLine("ISL")
	require.NoError(t, err)
	assert.Equal(t, "CEN", stations[0].ID)
}

func TestVersionIsIndependentOfInputOrder(t *testing.T) {
	a, err := New(islandLineRecords())
	require.NoError(t, err)

	reordered := islandLineRecords()
	reordered.Stations[0], reordered.Stations[2] = reordered.Stations[2], reordered.Stations[0]
	reordered.Segments[0], reordered.Segments[1] = reordered.Segments[1], reordered.Segments[0]
	b, err := New(reordered)
	require.NoError(t, err)

	assert.Equal(t, a.Version(), b.Version())

	changed := islandLineRecords()
	changed.Segments[0].Cost = 600
	c, err := New(changed)
	require.NoError(t, err)

	assert.NotEqual(t, a.Version(), c.Version())
}

func TestStationLinesAreDerived(t *testing.T) {
	records := islandLineRecords()
	records.Stations = append(records.Stations, Station{ID: "TST", Name: "Tsim Sha Tsui", Lines: []string{"TWL"}})
	records.Lines = append(records.Lines, Line{ID: "TWL", Name: "Tsuen Wan Line"})
	records.Segments = append(records.Segments, Segment{FromID: "ADM", ToID: "TST", LineID: "TWL", Cost: 800})

	n, err := New(records)
	require.NoError(t, err)

	admiralty, err := n.Station("ADM")
	require.NoError(t, err)
	assert.Equal(t, []string{"ISL", "TWL"}, admiralty.Lines)

	tst, err := n.Station("TST")
	require.NoError(t, err)
	assert.Equal(t, []string{"TWL"}, tst.Lines)
}

func TestIdenticalDuplicateSegmentsAreMerged(t *testing.T) {
	records := islandLineRecords()
	records.Segments = append(records.Segments, Segment{FromID: "ADM", ToID: "CEN", LineID: "ISL", Cost: 500})

	n, err := New(records)
	require.NoError(t, err)
	assert.Len(t, n.Segments(), 2)
}

func TestNewRejectsInvalidData(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Records)
	}{
		{
			name: "segment with unknown station",
			mutate: func(r *Records) {
				r.Segments = append(r.Segments, Segment{FromID: "WAC", ToID: "CAB", LineID: "ISL", Cost: 500})
			},
		},
		{
			name: "segment with unknown line",
			mutate: func(r *Records) {
				r.Segments = append(r.Segments, Segment{FromID: "WAC", ToID: "CEN", LineID: "XXX", Cost: 500})
			},
		},
		{
			name: "line with unknown station",
			mutate: func(r *Records) {
				r.Lines[0].StationIDs = append(r.Lines[0].StationIDs, "CAB")
			},
		},
		{
			name: "line listing a station twice",
			mutate: func(r *Records) {
				r.Lines[0].StationIDs = append(r.Lines[0].StationIDs, "CEN")
			},
		},
		{
			name: "station with unknown line",
			mutate: func(r *Records) {
				r.Stations[0].Lines = []string{"XXX"}
			},
		},
		{
			name: "duplicate station",
			mutate: func(r *Records) {
				r.Stations = append(r.Stations, Station{ID: "CEN"})
			},
		},
		{
			name: "duplicate station code",
			mutate: func(r *Records) {
				r.Stations = append(r.Stations, Station{ID: "CEN2", Code: "CEN"})
			},
		},
		{
			name: "station without identifier",
			mutate: func(r *Records) {
				r.Stations = append(r.Stations, Station{Name: "Nowhere"})
			},
		},
		{
			name: "duplicate line",
			mutate: func(r *Records) {
				r.Lines = append(r.Lines, Line{ID: "ISL"})
			},
		},
		{
			name: "negative cost",
			mutate: func(r *Records) {
				r.Segments[0].Cost = -1
			},
		},
		{
			name: "cost above the maximum",
			mutate: func(r *Records) {
				r.Segments[0].Cost = MaxCost + 1
			},
		},
		{
			name: "loop segment",
			mutate: func(r *Records) {
				r.Segments = append(r.Segments, Segment{FromID: "CEN", ToID: "CEN", LineID: "ISL", Cost: 1})
			},
		},
		{
			name: "conflicting duplicate segment",
			mutate: func(r *Records) {
				r.Segments = append(r.Segments, Segment{FromID: "ADM", ToID: "CEN", LineID: "ISL", Cost: 700})
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			records := islandLineRecords()
			test.mutate(&records)

			n, err := New(records)
			assert.Nil(t, n)
			assert.ErrorIs(t, err, ErrInvalidData)
		})
	}
}

func TestVisitEdges(t *testing.T) {
	n, err := New(islandLineRecords())
	require.NoError(t, err)

	index, err := n.Index("ADM")
	require.NoError(t, err)

	var visited []string
	n.VisitEdges(index, func(edge Edge) {
		visited = append(visited, n.StationID(edge.To)+"/"+n.LineID(edge.Line))
	})

	assert.Equal(t, []string{"CEN/ISL", "WAC/ISL"}, visited)
}
