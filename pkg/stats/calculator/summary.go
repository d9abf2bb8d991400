package calculator

import (
	"github.com/montanaflynn/stats"
	"github.com/travigo/hkmtr/pkg/fares"
	"github.com/travigo/hkmtr/pkg/network"
	"github.com/travigo/hkmtr/pkg/reference"
)

type Summary struct {
	DatasetID string `json:"dataset" groups:"basic"`
	Version   string `json:"version" groups:"basic"`

	Stations         int `json:"stations" groups:"basic"`
	Lines            int `json:"lines" groups:"basic"`
	Segments         int `json:"segments" groups:"basic"`
	FareCombinations int `json:"fare_combinations" groups:"basic"`

	AccessibilityRecords   int `json:"accessibility_records" groups:"basic"`
	StationsWithFacilities int `json:"stations_with_facilities" groups:"detailed"`

	Fares *FareStats `json:"fares,omitempty" groups:"basic"`
}

// FareStats describes the adult fares of the fare table
type FareStats struct {
	Min    network.Cost `json:"min" groups:"basic"`
	Max    network.Cost `json:"max" groups:"basic"`
	Mean   network.Cost `json:"mean" groups:"basic"`
	Median network.Cost `json:"median" groups:"basic"`
}

func GetSummary(bundle *reference.Bundle) Summary {
	summary := Summary{
		DatasetID:            bundle.DatasetID,
		Version:              bundle.Network.Version(),
		Stations:             bundle.Network.Len(),
		Lines:                len(bundle.Network.Lines()),
		Segments:             len(bundle.Network.Segments()),
		FareCombinations:     bundle.Fares.Len(),
		AccessibilityRecords: len(bundle.Facilities),
	}

	stationsWithFacilities := map[string]bool{}
	for _, facility := range bundle.Facilities {
		stationsWithFacilities[facility.StationID] = true
	}
	summary.StationsWithFacilities = len(stationsWithFacilities)

	summary.Fares = GetFareStats(bundle.Fares)

	return summary
}

// GetFareStats returns nil for an empty fare table
func GetFareStats(table *fares.Table) *FareStats {
	entries := table.Entries()
	if len(entries) == 0 {
		return nil
	}

	adultFares := make(stats.Float64Data, 0, len(entries))
	for _, entry := range entries {
		adultFares = append(adultFares, entry.Adult().Float64())
	}

	minimum, _ := adultFares.Min()
	maximum, _ := adultFares.Max()
	mean, _ := adultFares.Mean()
	median, _ := adultFares.Median()

	return &FareStats{
		Min:    network.CostFromFloat(minimum),
		Max:    network.CostFromFloat(maximum),
		Mean:   network.CostFromFloat(mean),
		Median: network.CostFromFloat(median),
	}
}
