package calculator

import (
	"sort"

	"github.com/travigo/hkmtr/pkg/reference"
)

type StationAccessibility struct {
	StationID  string   `json:"station" groups:"basic"`
	Name       string   `json:"name" groups:"basic"`
	Facilities int      `json:"facilities" groups:"basic"`
	Types      []string `json:"types" groups:"detailed"`
}

// GetAccessibilityRanking ranks stations by facility count, limit <= 0 returns every station with a facility
func GetAccessibilityRanking(bundle *reference.Bundle, limit int) []StationAccessibility {
	perStation := map[string]*StationAccessibility{}

	for _, facility := range bundle.Facilities {
		ranked, exists := perStation[facility.StationID]
		if !exists {
			ranked = &StationAccessibility{StationID: facility.StationID, Types: []string{}}
			if station, err := bundle.Network.Station(facility.StationID); err == nil {
				ranked.Name = station.Name
			}
			perStation[facility.StationID] = ranked
		}

		ranked.Facilities++
	}

	ranking := make([]StationAccessibility, 0, len(perStation))
	for stationID, ranked := range perStation {
		if station, err := bundle.Network.Station(stationID); err == nil {
			ranked.Types = append(ranked.Types, station.Accessibility...)
		}
		ranking = append(ranking, *ranked)
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Facilities != ranking[j].Facilities {
			return ranking[i].Facilities > ranking[j].Facilities
		}
		return ranking[i].StationID < ranking[j].StationID
	})

	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}

	return ranking
}
