package calculator

import (
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/travigo/hkmtr/pkg/reference"
)

const (
	PreCovidYear = 2019
	CovidYear    = 2020
)

type YearRidership struct {
	Year       int   `json:"year" groups:"basic"`
	Passengers int64 `json:"passengers" groups:"basic"`
}

type RidershipTrend struct {
	Scope string          `json:"scope" groups:"basic"`
	Years []YearRidership `json:"years" groups:"basic"`

	PreCovid *YearRidership `json:"pre_covid,omitempty" groups:"basic"`
	CovidLow *YearRidership `json:"covid_low,omitempty" groups:"basic"`
	Latest   *YearRidership `json:"latest,omitempty" groups:"basic"`

	// CovidChangePercent compares the covid year with the year before it
	CovidChangePercent *float64 `json:"covid_change_percent,omitempty" groups:"basic"`
	// RecoveryPercent is how much of the covid drop the latest year has made up
	RecoveryPercent *float64 `json:"recovery_percent,omitempty" groups:"basic"`
}

// GetRidershipTrend averages the records of a scope per calendar year
func GetRidershipTrend(bundle *reference.Bundle, scope string) RidershipTrend {
	if scope == "" {
		scope = reference.ScopeAll
	}

	trend := RidershipTrend{
		Scope: scope,
		Years: []YearRidership{},
	}

	perYear := map[int]stats.Float64Data{}
	for _, record := range bundle.RidershipFor(scope) {
		year := record.Date.Year()
		perYear[year] = append(perYear[year], float64(record.Passengers))
	}

	for year, passengers := range perYear {
		mean, _ := passengers.Mean()
		rounded, _ := stats.Round(mean, 0)

		trend.Years = append(trend.Years, YearRidership{Year: year, Passengers: int64(rounded)})
	}
	sort.Slice(trend.Years, func(i, j int) bool {
		return trend.Years[i].Year < trend.Years[j].Year
	})

	if len(trend.Years) == 0 {
		return trend
	}

	for i := range trend.Years {
		switch trend.Years[i].Year {
		case PreCovidYear:
			trend.PreCovid = &trend.Years[i]
		case CovidYear:
			trend.CovidLow = &trend.Years[i]
		}
	}
	trend.Latest = &trend.Years[len(trend.Years)-1]

	if trend.PreCovid != nil && trend.CovidLow != nil && trend.PreCovid.Passengers > 0 {
		change := percentage(trend.CovidLow.Passengers-trend.PreCovid.Passengers, trend.PreCovid.Passengers)
		trend.CovidChangePercent = &change

		drop := trend.PreCovid.Passengers - trend.CovidLow.Passengers
		if drop > 0 && trend.Latest.Year > CovidYear {
			recovery := percentage(trend.Latest.Passengers-trend.CovidLow.Passengers, drop)
			trend.RecoveryPercent = &recovery
		}
	}

	return trend
}

func percentage(part int64, whole int64) float64 {
	value, _ := stats.Round(float64(part)/float64(whole)*100, 1)
	return value
}
