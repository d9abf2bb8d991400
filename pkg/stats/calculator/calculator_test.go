package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/hkmtr/pkg/fares"
	"github.com/travigo/hkmtr/pkg/network"
	"github.com/travigo/hkmtr/pkg/reference"
)

func year(y int) time.Time {
	return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func adultFare(from string, to string, amount network.Cost) fares.Entry {
	return fares.Entry{FromID: from, ToID: to, Fares: map[fares.Class]network.Cost{fares.ClassAdult: amount}}
}

func testBundle(t *testing.T, ridership []reference.RidershipRecord) *reference.Bundle {
	bundle, err := reference.Build("hk-mtr-test", reference.Data{
		Records: network.Records{
			Stations: []network.Station{
				{ID: "CEN", Name: "Central", Lines: []string{"ISL", "TWL"}},
				{ID: "ADM", Name: "Admiralty", Lines: []string{"ISL", "TWL"}},
				{ID: "WAC", Name: "Wan Chai", Lines: []string{"ISL"}},
			},
			Lines: []network.Line{
				{ID: "ISL", Name: "Island Line", Colour: "#007DC5", StationIDs: []string{"CEN", "ADM", "WAC"}},
				{ID: "TWL", Name: "Tsuen Wan Line", Colour: "#E2231A", StationIDs: []string{"CEN", "ADM"}},
			},
			Segments: []network.Segment{
				{FromID: "CEN", ToID: "ADM", LineID: "ISL", Cost: 500},
				{FromID: "ADM", ToID: "WAC", LineID: "ISL", Cost: 500},
				{FromID: "CEN", ToID: "ADM", LineID: "TWL", Cost: 500},
			},
		},
		Fares: []fares.Entry{
			adultFare("CEN", "ADM", 460),
			adultFare("ADM", "CEN", 460),
			adultFare("CEN", "WAC", 550),
			adultFare("WAC", "CEN", 1230),
		},
		Ridership: ridership,
		Facilities: []reference.Facility{
			{StationID: "ADM", Type: "Lift"},
			{StationID: "ADM", Type: "Tactile Guide Path"},
			{StationID: "ADM", Type: "Lift"},
			{StationID: "WAC", Type: "Lift"},
		},
	})
	require.NoError(t, err)

	return bundle
}

func TestGetSummary(t *testing.T) {
	summary := GetSummary(testBundle(t, nil))

	assert.Equal(t, "hk-mtr-test", summary.DatasetID)
	assert.NotEmpty(t, summary.Version)
	assert.Equal(t, 3, summary.Stations)
	assert.Equal(t, 2, summary.Lines)
	assert.Equal(t, 3, summary.Segments)
	assert.Equal(t, 4, summary.FareCombinations)
	assert.Equal(t, 4, summary.AccessibilityRecords)
	assert.Equal(t, 2, summary.StationsWithFacilities)

	require.NotNil(t, summary.Fares)
	assert.Equal(t, FareStats{Min: 460, Max: 1230, Mean: 675, Median: 505}, *summary.Fares)
}

func TestGetFareStatsEmpty(t *testing.T) {
	assert.Nil(t, GetFareStats(nil))
}

func TestGetLines(t *testing.T) {
	lines := GetLines(testBundle(t, nil))

	require.Len(t, lines, 2)
	assert.Equal(t, "ISL", lines[0].ID)
	assert.Equal(t, "Island Line", lines[0].Name)
	assert.Equal(t, 3, lines[0].Stations)
	assert.Equal(t, 2, lines[0].Segments)
	assert.Equal(t, []string{"CEN", "ADM"}, lines[0].InterchangeStations)
	assert.Equal(t, "TWL", lines[1].ID)
	assert.Equal(t, 2, lines[1].Stations)
}

func TestGetRidershipTrend(t *testing.T) {
	bundle := testBundle(t, []reference.RidershipRecord{
		{Date: year(2018), Passengers: 4800000},
		{Date: year(2019), Passengers: 5000000},
		{Date: year(2020), Passengers: 3000000},
		{Date: year(2024), Passengers: 4000000},
		{Date: year(2024).AddDate(0, 6, 0), Passengers: 4500000},
		{Date: year(2024), Scope: "ISL", Passengers: 900000},
	})

	trend := GetRidershipTrend(bundle, "")

	assert.Equal(t, reference.ScopeAll, trend.Scope)
	require.Len(t, trend.Years, 4)
	require.NotNil(t, trend.PreCovid)
	assert.Equal(t, int64(5000000), trend.PreCovid.Passengers)
	require.NotNil(t, trend.CovidLow)
	assert.Equal(t, int64(3000000), trend.CovidLow.Passengers)
	require.NotNil(t, trend.Latest)
	assert.Equal(t, YearRidership{Year: 2024, Passengers: 4250000}, *trend.Latest)

	require.NotNil(t, trend.CovidChangePercent)
	assert.Equal(t, -40.0, *trend.CovidChangePercent)
	require.NotNil(t, trend.RecoveryPercent)
	assert.Equal(t, 62.5, *trend.RecoveryPercent)

	lineTrend := GetRidershipTrend(bundle, "ISL")
	require.Len(t, lineTrend.Years, 1)
	assert.Nil(t, lineTrend.PreCovid)
	assert.Nil(t, lineTrend.RecoveryPercent)
}

func TestGetRidershipTrendEmpty(t *testing.T) {
	trend := GetRidershipTrend(testBundle(t, nil), reference.ScopeAll)

	assert.Empty(t, trend.Years)
	assert.Nil(t, trend.Latest)
}

func TestGetAccessibilityRanking(t *testing.T) {
	bundle := testBundle(t, nil)

	ranking := GetAccessibilityRanking(bundle, 0)
	require.Len(t, ranking, 2)
	assert.Equal(t, "ADM", ranking[0].StationID)
	assert.Equal(t, "Admiralty", ranking[0].Name)
	assert.Equal(t, 3, ranking[0].Facilities)
	assert.Equal(t, []string{"Lift", "Tactile Guide Path"}, ranking[0].Types)
	assert.Equal(t, "WAC", ranking[1].StationID)

	assert.Len(t, GetAccessibilityRanking(bundle, 1), 1)
}
