package reference

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/travigo/hkmtr/pkg/fares"
	"github.com/travigo/hkmtr/pkg/network"
)

// ScopeAll is the ridership scope covering the whole network
const ScopeAll = "ALL"

type RidershipRecord struct {
	Date       time.Time `json:"date" groups:"basic"`
	Scope      string    `json:"scope" groups:"basic"`
	Passengers int64     `json:"passengers" groups:"basic"`
}

type Facility struct {
	StationID   string `json:"station" groups:"basic"`
	Type        string `json:"type" groups:"basic"`
	Description string `json:"description" groups:"detailed"`
	Location    string `json:"location" groups:"detailed"`
}

// Data is every table one dataset yields before it is checked
type Data struct {
	Records    network.Records
	Fares      []fares.Entry
	Ridership  []RidershipRecord
	Facilities []Facility
}

// Bundle is the validated reference data everything else reads from
type Bundle struct {
	DatasetID string

	Network    *network.Network
	Fares      *fares.Table
	Ridership  []RidershipRecord
	Facilities []Facility
}

// Build validates the tables and cross references them. Facility types are folded into the
// accessibility flags of their station before the network is built.
func Build(datasetID string, data Data) (*Bundle, error) {
	records := data.Records

	stationIndex := map[string]int{}
	for i, station := range records.Stations {
		stationIndex[strings.TrimSpace(station.ID)] = i
	}

	stationsCopied := false
	for _, facility := range data.Facilities {
		index, exists := stationIndex[facility.StationID]
		if !exists {
			return nil, fmt.Errorf("facility %s references unknown station %s: %w", facility.Type, facility.StationID, network.ErrInvalidData)
		}
		if facility.Type == "" || records.Stations[index].HasAccessibility(facility.Type) {
			continue
		}

		if !stationsCopied {
			records.Stations = append([]network.Station(nil), records.Stations...)
			stationsCopied = true
		}

		station := &records.Stations[index]
		station.Accessibility = append(append([]string(nil), station.Accessibility...), facility.Type)
	}

	n, err := network.New(records)
	if err != nil {
		return nil, err
	}

	table, err := fares.NewTable(n, data.Fares)
	if err != nil {
		return nil, err
	}

	ridership := make([]RidershipRecord, 0, len(data.Ridership))
	for _, record := range data.Ridership {
		if record.Passengers < 0 {
			return nil, fmt.Errorf("ridership for %s on %s is negative: %w", record.Scope, record.Date.Format(time.DateOnly), network.ErrInvalidData)
		}
		if record.Scope == "" {
			record.Scope = ScopeAll
		}
		if record.Scope != ScopeAll {
			_, stationErr := n.Station(record.Scope)
			_, lineErr := n.Line(record.Scope)
			if stationErr != nil && lineErr != nil {
				return nil, fmt.Errorf("ridership scope %s is neither a station nor a line: %w", record.Scope, network.ErrInvalidData)
			}
		}

		ridership = append(ridership, record)
	}
	sort.SliceStable(ridership, func(i, j int) bool {
		if !ridership[i].Date.Equal(ridership[j].Date) {
			return ridership[i].Date.Before(ridership[j].Date)
		}
		return ridership[i].Scope < ridership[j].Scope
	})

	facilities := append([]Facility(nil), data.Facilities...)
	sort.SliceStable(facilities, func(i, j int) bool {
		if facilities[i].StationID != facilities[j].StationID {
			return facilities[i].StationID < facilities[j].StationID
		}
		return facilities[i].Type < facilities[j].Type
	})

	return &Bundle{
		DatasetID:  datasetID,
		Network:    n,
		Fares:      table,
		Ridership:  ridership,
		Facilities: facilities,
	}, nil
}

func (b *Bundle) FacilitiesAt(stationID string) []Facility {
	var facilities []Facility
	for _, facility := range b.Facilities {
		if facility.StationID == stationID {
			facilities = append(facilities, facility)
		}
	}

	return facilities
}

// RidershipFor returns the records of one scope in date order
func (b *Bundle) RidershipFor(scope string) []RidershipRecord {
	var records []RidershipRecord
	for _, record := range b.Ridership {
		if record.Scope == scope {
			records = append(records, record)
		}
	}

	return records
}
