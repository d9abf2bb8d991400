package reference

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/hkmtr/pkg/fares"
	"github.com/travigo/hkmtr/pkg/network"
)

func testData() Data {
	return Data{
		Records: network.Records{
			Stations: []network.Station{
				{ID: "CEN", Name: "Central"},
				{ID: "ADM", Name: "Admiralty"},
			},
			Lines: []network.Line{
				{ID: "ISL", Name: "Island Line", StationIDs: []string{"CEN", "ADM"}},
			},
			Segments: []network.Segment{
				{FromID: "CEN", ToID: "ADM", LineID: "ISL", Cost: 500},
			},
		},
		Fares: []fares.Entry{
			{FromID: "CEN", ToID: "ADM", Fares: map[fares.Class]network.Cost{fares.ClassAdult: 500}},
		},
		Ridership: []RidershipRecord{
			{Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Passengers: 3000000},
			{Date: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), Scope: ScopeAll, Passengers: 5000000},
			{Date: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), Scope: "ISL", Passengers: 900000},
		},
		Facilities: []Facility{
			{StationID: "CEN", Type: "Lift", Description: "Street to concourse"},
			{StationID: "ADM", Type: "Tactile Guide Path"},
			{StationID: "CEN", Type: "Accessible Toilet"},
		},
	}
}

func TestBuild(t *testing.T) {
	data := testData()
	bundle, err := Build("hk-mtr-test", data)
	require.NoError(t, err)

	assert.Equal(t, "hk-mtr-test", bundle.DatasetID)
	assert.Equal(t, 1, bundle.Fares.Len())

	central, err := bundle.Network.Station("CEN")
	require.NoError(t, err)
	assert.Equal(t, []string{"Accessible Toilet", "Lift"}, central.Accessibility)

	// the input tables are left alone
	assert.Empty(t, data.Records.Stations[0].Accessibility)

	require.Len(t, bundle.Ridership, 3)
	assert.Equal(t, ScopeAll, bundle.Ridership[0].Scope)
	assert.Equal(t, "ISL", bundle.Ridership[1].Scope)
	assert.Equal(t, 2020, bundle.Ridership[2].Date.Year())
	assert.Len(t, bundle.RidershipFor(ScopeAll), 2)

	assert.Len(t, bundle.FacilitiesAt("CEN"), 2)
	assert.Equal(t, "ADM", bundle.Facilities[0].StationID)
}

func TestRebuildFromBuiltStations(t *testing.T) {
	bundle, err := Build("hk-mtr-test", testData())
	require.NoError(t, err)

	data := testData()
	data.Records.Stations = bundle.Network.Stations()

	rebuilt, err := Build("hk-mtr-test", data)
	require.NoError(t, err)

	central, err := rebuilt.Network.Station("CEN")
	require.NoError(t, err)
	assert.Equal(t, []string{"Accessible Toilet", "Lift"}, central.Accessibility)
	assert.Equal(t, bundle.Network.Version(), rebuilt.Network.Version())
}

func TestBuildRejectsInvalidData(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Data)
	}{
		{"facility at unknown station", func(d *Data) {
			d.Facilities = append(d.Facilities, Facility{StationID: "XXX", Type: "Lift"})
		}},
		{"fare for unknown station", func(d *Data) {
			d.Fares = append(d.Fares, fares.Entry{FromID: "XXX", ToID: "CEN", Fares: map[fares.Class]network.Cost{fares.ClassAdult: 1}})
		}},
		{"ridership for unknown scope", func(d *Data) {
			d.Ridership = append(d.Ridership, RidershipRecord{Scope: "XXX", Passengers: 1})
		}},
		{"negative ridership", func(d *Data) {
			d.Ridership = append(d.Ridership, RidershipRecord{Scope: ScopeAll, Passengers: -1})
		}},
		{"segment for unknown station", func(d *Data) {
			d.Records.Segments = append(d.Records.Segments, network.Segment{FromID: "CEN", ToID: "XXX", LineID: "ISL", Cost: 1})
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data := testData()
			test.mutate(&data)

			_, err := Build("hk-mtr-test", data)
			assert.ErrorIs(t, err, network.ErrInvalidData)
		})
	}
}
