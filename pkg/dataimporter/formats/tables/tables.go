package tables

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/hkmtr/pkg/dataimporter/datasets"
	"github.com/travigo/hkmtr/pkg/dataimporter/formats"
	"github.com/travigo/hkmtr/pkg/fares"
	"github.com/travigo/hkmtr/pkg/network"
	"github.com/travigo/hkmtr/pkg/reference"
	"github.com/travigo/hkmtr/pkg/util"
)

const (
	StationsFile   = "stations.csv"
	LinesFile      = "lines.csv"
	SegmentsFile   = "segments.csv"
	FaresFile      = "fares.csv"
	RidershipFile  = "ridership.csv"
	FacilitiesFile = "facilities.csv"
)

// Tables reads the plain station, line and segment tables
type Tables struct {
	Stations   []stationRow
	Lines      []lineRow
	Segments   []segmentRow
	Fares      []fareRow
	Ridership  []ridershipRow
	Facilities []facilityRow
}

func (t *Tables) Files(supported datasets.SupportedObjects) []formats.File {
	files := []formats.File{
		{Name: StationsFile, Required: true},
		{Name: LinesFile, Required: true},
		{Name: SegmentsFile, Required: true},
	}

	if supported.Fares {
		files = append(files, formats.File{Name: FaresFile})
	}
	if supported.Ridership {
		files = append(files, formats.File{Name: RidershipFile})
	}
	if supported.Facilities {
		files = append(files, formats.File{Name: FacilitiesFile})
	}

	return files
}

func (t *Tables) ParseFile(name string, reader io.Reader) error {
	fileMap := map[string]interface{}{
		StationsFile:   &t.Stations,
		LinesFile:      &t.Lines,
		SegmentsFile:   &t.Segments,
		FaresFile:      &t.Fares,
		RidershipFile:  &t.Ridership,
		FacilitiesFile: &t.Facilities,
	}

	destination, exists := fileMap[name]
	if !exists {
		return fmt.Errorf("unknown table %s", name)
	}

	log.Info().Str("file", name).Msg("Loading file")

	if err := formats.UnmarshalCSV(reader, destination); err != nil {
		log.Error().Str("file", name).Err(err).Msg("Failed to parse csv file")
		return err
	}

	return nil
}

func (t *Tables) Data(options formats.Options) (reference.Data, error) {
	var data reference.Data

	for _, row := range t.Stations {
		station := network.Station{
			ID:            strings.TrimSpace(row.ID),
			Code:          strings.TrimSpace(row.Code),
			Name:          strings.TrimSpace(row.Name),
			ChineseName:   strings.TrimSpace(row.ChineseName),
			Lines:         util.SplitList(row.Lines),
			Accessibility: util.SplitList(row.Accessibility),
		}

		latitude, hasLatitude, err := formats.ParseOptionalFloat(row.Latitude)
		if err != nil {
			return data, fmt.Errorf("station %s latitude: %w", station.ID, err)
		}
		longitude, hasLongitude, err := formats.ParseOptionalFloat(row.Longitude)
		if err != nil {
			return data, fmt.Errorf("station %s longitude: %w", station.ID, err)
		}
		if hasLatitude && hasLongitude {
			station.Location = network.NewLocation(latitude, longitude)
		}

		data.Records.Stations = append(data.Records.Stations, station)
	}

	for _, row := range t.Lines {
		data.Records.Lines = append(data.Records.Lines, network.Line{
			ID:         strings.TrimSpace(row.ID),
			Name:       strings.TrimSpace(row.Name),
			Colour:     strings.TrimSpace(row.Colour),
			StationIDs: util.SplitList(row.Stations),
		})
	}

	for _, row := range t.Segments {
		cost, present, err := formats.ParseOptionalCost(row.Cost)
		if err != nil {
			return data, fmt.Errorf("segment %s-%s: %w", row.FromID, row.ToID, err)
		}
		if !present {
			cost = options.DefaultSegmentCost
		}

		data.Records.Segments = append(data.Records.Segments, network.Segment{
			FromID: strings.TrimSpace(row.FromID),
			ToID:   strings.TrimSpace(row.ToID),
			LineID: strings.TrimSpace(row.LineID),
			Cost:   cost,
		})
	}

	if options.SupportedObjects.Fares {
		for _, row := range t.Fares {
			entry := fares.Entry{
				FromID: strings.TrimSpace(row.FromID),
				ToID:   strings.TrimSpace(row.ToID),
				Fares:  map[fares.Class]network.Cost{},
			}

			adult, err := network.ParseCost(row.Adult)
			if err != nil {
				return data, fmt.Errorf("fare %s-%s: %w", entry.FromID, entry.ToID, err)
			}
			entry.Fares[fares.ClassAdult] = adult

			for class, cell := range map[fares.Class]string{
				fares.ClassStudent: row.Student,
				fares.ClassChild:   row.Child,
				fares.ClassSingle:  row.Single,
			} {
				amount, present, err := formats.ParseOptionalCost(cell)
				if err != nil {
					return data, fmt.Errorf("fare %s-%s %s: %w", entry.FromID, entry.ToID, class, err)
				}
				if present {
					entry.Fares[class] = amount
				}
			}

			data.Fares = append(data.Fares, entry)
		}
	}

	if options.SupportedObjects.Ridership {
		for _, row := range t.Ridership {
			date, err := parseDate(row.Date)
			if err != nil {
				return data, err
			}

			passengers, err := strconv.ParseInt(strings.TrimSpace(row.Passengers), 10, 64)
			if err != nil {
				return data, fmt.Errorf("ridership passengers %q: %w", row.Passengers, network.ErrInvalidData)
			}

			data.Ridership = append(data.Ridership, reference.RidershipRecord{
				Date:       date,
				Scope:      strings.TrimSpace(row.Scope),
				Passengers: passengers,
			})
		}
	}

	if options.SupportedObjects.Facilities {
		for _, row := range t.Facilities {
			data.Facilities = append(data.Facilities, reference.Facility{
				StationID:   strings.TrimSpace(row.StationID),
				Type:        strings.TrimSpace(row.Type),
				Description: strings.TrimSpace(row.Description),
				Location:    strings.TrimSpace(row.Location),
			})
		}
	}

	return data, nil
}

// parseDate accepts a full date or a bare year, which stands for the 1st of January
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range []string{time.DateOnly, "2006"} {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("ridership date %q: %w", value, network.ErrInvalidData)
}
