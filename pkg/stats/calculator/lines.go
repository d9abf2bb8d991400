package calculator

import (
	"sort"

	"github.com/travigo/hkmtr/pkg/reference"
)

type LineStats struct {
	ID       string `json:"id" groups:"basic"`
	Name     string `json:"name" groups:"basic"`
	Colour   string `json:"colour" groups:"basic"`
	Stations int    `json:"stations" groups:"basic"`
	Segments int    `json:"segments" groups:"detailed"`

	InterchangeStations []string `json:"interchange_stations" groups:"detailed"`
}

// GetLines returns the lines with the most stations first
func GetLines(bundle *reference.Bundle) []LineStats {
	n := bundle.Network

	segmentsPerLine := map[string]int{}
	for _, segment := range n.Segments() {
		segmentsPerLine[segment.LineID]++
	}

	var lineStats []LineStats
	for _, line := range n.Lines() {
		stats := LineStats{
			ID:                  line.ID,
			Name:                line.Name,
			Colour:              line.Colour,
			Stations:            len(line.StationIDs),
			Segments:            segmentsPerLine[line.ID],
			InterchangeStations: []string{},
		}

		for _, stationID := range line.StationIDs {
			station, err := n.Station(stationID)
			if err == nil && len(station.Lines) > 1 {
				stats.InterchangeStations = append(stats.InterchangeStations, stationID)
			}
		}

		lineStats = append(lineStats, stats)
	}

	sort.SliceStable(lineStats, func(i, j int) bool {
		if lineStats[i].Stations != lineStats[j].Stations {
			return lineStats[i].Stations > lineStats[j].Stations
		}
		return lineStats[i].ID < lineStats[j].ID
	})

	return lineStats
}
