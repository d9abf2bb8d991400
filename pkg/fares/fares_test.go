package fares

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/hkmtr/pkg/network"
)

func testNetwork(t *testing.T) *network.Network {
	n, err := network.New(network.Records{
		Stations: []network.Station{
			{ID: "CEN", Name: "Central"},
			{ID: "ADM", Name: "Admiralty"},
			{ID: "WAC", Name: "Wan Chai"},
		},
		Lines: []network.Line{
			{ID: "ISL", Name: "Island Line", StationIDs: []string{"CEN", "ADM", "WAC"}},
		},
		Segments: []network.Segment{
			{FromID: "CEN", ToID: "ADM", LineID: "ISL", Cost: 500},
			{FromID: "ADM", ToID: "WAC", LineID: "ISL", Cost: 500},
		},
	})
	require.NoError(t, err)

	return n
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		cost     network.Cost
		unit     network.Cost
		expected network.Cost
	}{
		{1000, 10, 1000},
		{455, 10, 460},
		{454, 10, 450},
		{445, 10, 450},
		{0, 10, 0},
		{1234, 50, 1250},
		{1224, 50, 1200},
		{1234, 0, 1234},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, RoundHalfUp(test.cost, test.unit), "%d to %d", test.cost, test.unit)
	}
}

func TestParseClass(t *testing.T) {
	class, err := ParseClass("")
	require.NoError(t, err)
	assert.Equal(t, ClassAdult, class)

	class, err = ParseClass(" Student ")
	require.NoError(t, err)
	assert.Equal(t, ClassStudent, class)

	_, err = ParseClass("senior")
	assert.ErrorIs(t, err, network.ErrNotFound)
}

func TestTableLookup(t *testing.T) {
	table, err := NewTable(testNetwork(t), []Entry{
		{FromID: "CEN", ToID: "WAC", Fares: map[Class]network.Cost{ClassAdult: 1000, ClassStudent: 500}},
		{FromID: "ADM", ToID: "CEN", Fares: map[Class]network.Cost{ClassAdult: 500}},
		{FromID: "CEN", ToID: "WAC", Fares: map[Class]network.Cost{ClassAdult: 1000, ClassStudent: 500}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, table.Len())

	entry, found := table.Lookup("CEN", "WAC")
	require.True(t, found)
	assert.Equal(t, network.Cost(1000), entry.Adult())
	assert.Equal(t, network.Cost(500), entry.Fares[ClassStudent])

	_, found = table.Lookup("WAC", "CEN")
	assert.False(t, found)

	entries := table.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "ADM", entries[0].FromID)
	assert.Equal(t, "CEN", entries[1].FromID)

	entries[1].Fares[ClassAdult] = 1
	entry, _ = table.Lookup("CEN", "WAC")
	assert.Equal(t, network.Cost(1000), entry.Adult())
}

func TestNilTable(t *testing.T) {
	var table *Table

	_, found := table.Lookup("CEN", "WAC")
	assert.False(t, found)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Entries())
}

func TestNewTableRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
	}{
		{"unknown origin", Entry{FromID: "XXX", ToID: "CEN", Fares: map[Class]network.Cost{ClassAdult: 100}}},
		{"unknown destination", Entry{FromID: "CEN", ToID: "XXX", Fares: map[Class]network.Cost{ClassAdult: 100}}},
		{"missing adult fare", Entry{FromID: "CEN", ToID: "ADM", Fares: map[Class]network.Cost{ClassChild: 100}}},
		{"negative fare", Entry{FromID: "CEN", ToID: "ADM", Fares: map[Class]network.Cost{ClassAdult: -100}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewTable(testNetwork(t), []Entry{test.entry})
			assert.ErrorIs(t, err, network.ErrInvalidData)
		})
	}

	_, err := NewTable(testNetwork(t), []Entry{
		{FromID: "CEN", ToID: "ADM", Fares: map[Class]network.Cost{ClassAdult: 500}},
		{FromID: "CEN", ToID: "ADM", Fares: map[Class]network.Cost{ClassAdult: 600}},
	})
	assert.ErrorIs(t, err, network.ErrInvalidData)
}
