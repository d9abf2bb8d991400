package opendata

import (
	"fmt"
	"io"
	"math"
	"sort"
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
	LinesAndStationsFile = "mtr_lines_and_stations.csv"
	FaresFile            = "mtr_lines_fares.csv"
	FacilitiesFile       = "barrier_free_facilities.csv"
	RidershipFile        = "processed_ridership.csv"
)

// mainDirection is the track whose sequence gives the published line order
const mainDirection = "DT"

// OpenData reads the MTR tables published on DATA.GOV.HK. Those list stations by line, direction and
// sequence, so segments are derived from neighbouring sequence numbers.
type OpenData struct {
	LineStations []lineStationRow
	Fares        []fareRow
	Facilities   []facilityRow
	Ridership    []ridershipRow
}

func (o *OpenData) Files(supported datasets.SupportedObjects) []formats.File {
	files := []formats.File{
		{Name: LinesAndStationsFile, Required: true},
	}

	if supported.Fares {
		files = append(files, formats.File{Name: FaresFile})
	}
	if supported.Facilities {
		files = append(files, formats.File{Name: FacilitiesFile})
	}
	if supported.Ridership {
		files = append(files, formats.File{Name: RidershipFile})
	}

	return files
}

func (o *OpenData) ParseFile(name string, reader io.Reader) error {
	fileMap := map[string]interface{}{
		LinesAndStationsFile: &o.LineStations,
		FaresFile:            &o.Fares,
		FacilitiesFile:       &o.Facilities,
		RidershipFile:        &o.Ridership,
	}

	destination, exists := fileMap[name]
	if !exists {
		return fmt.Errorf("unknown open data file %s", name)
	}

	log.Info().Str("file", name).Msg("Loading file")

	if err := formats.UnmarshalCSV(reader, destination); err != nil {
		log.Error().Str("file", name).Err(err).Msg("Failed to parse csv file")
		return err
	}

	return nil
}

type sequencedStation struct {
	code     string
	sequence float64
}

func (o *OpenData) Data(options formats.Options) (reference.Data, error) {
	var data reference.Data

	stations := map[string]*network.Station{}
	var stationOrder []string
	numericIDs := map[string]string{}

	tracks := map[string]map[string][]sequencedStation{}

	for _, row := range o.LineStations {
		code := strings.TrimSpace(row.StationCode)
		lineCode := strings.TrimSpace(row.LineCode)
		direction := strings.TrimSpace(row.Direction)
		if code == "" || lineCode == "" {
			continue
		}

		sequence, err := strconv.ParseFloat(strings.TrimSpace(row.Sequence), 64)
		if err != nil {
			return data, fmt.Errorf("station %s on %s %s has sequence %q: %w", code, lineCode, direction, row.Sequence, network.ErrInvalidData)
		}

		station, exists := stations[code]
		if !exists {
			station = &network.Station{
				ID:          code,
				Code:        code,
				Name:        strings.TrimSpace(row.EnglishName),
				ChineseName: strings.TrimSpace(row.ChineseName),
			}
			stations[code] = station
			stationOrder = append(stationOrder, code)
		}
		station.Lines = append(station.Lines, lineCode)

		if numericID := normaliseNumericID(row.StationID); numericID != "" {
			if existing, exists := numericIDs[numericID]; exists && existing != code {
				return data, fmt.Errorf("station id %s is used by both %s and %s: %w", numericID, existing, code, network.ErrInvalidData)
			}
			numericIDs[numericID] = code
		}

		if tracks[lineCode] == nil {
			tracks[lineCode] = map[string][]sequencedStation{}
		}
		tracks[lineCode][direction] = append(tracks[lineCode][direction], sequencedStation{code: code, sequence: sequence})
	}

	for _, code := range stationOrder {
		station := *stations[code]
		station.Lines = util.RemoveDuplicateStrings(station.Lines, nil)
		data.Records.Stations = append(data.Records.Stations, station)
	}

	lineCodes := make([]string, 0, len(tracks))
	for lineCode := range tracks {
		lineCodes = append(lineCodes, lineCode)
	}
	sort.Strings(lineCodes)

	for _, lineCode := range lineCodes {
		directions := make([]string, 0, len(tracks[lineCode]))
		for direction := range tracks[lineCode] {
			directions = append(directions, direction)
		}
		sort.Slice(directions, func(i, j int) bool {
			if (directions[i] == mainDirection) != (directions[j] == mainDirection) {
				return directions[i] == mainDirection
			}
			return directions[i] < directions[j]
		})

		line := network.Line{
			ID:   lineCode,
			Name: lineCode,
		}

		for _, direction := range directions {
			track := tracks[lineCode][direction]
			sort.SliceStable(track, func(i, j int) bool {
				return track[i].sequence < track[j].sequence
			})

			for i, stop := range track {
				line.StationIDs = append(line.StationIDs, stop.code)

				if i > 0 && track[i-1].code != stop.code {
					data.Records.Segments = append(data.Records.Segments, network.Segment{
						FromID: track[i-1].code,
						ToID:   stop.code,
						LineID: lineCode,
						Cost:   options.DefaultSegmentCost,
					})
				}
			}
		}

		line.StationIDs = util.RemoveDuplicateStrings(line.StationIDs, nil)
		data.Records.Lines = append(data.Records.Lines, line)
	}

	resolveStation := func(value string) (string, bool) {
		if code, exists := numericIDs[normaliseNumericID(value)]; exists {
			return code, true
		}
		value = strings.TrimSpace(value)
		if _, exists := stations[value]; exists {
			return value, true
		}
		return "", false
	}

	if options.SupportedObjects.Fares {
		skipped := 0
		for _, row := range o.Fares {
			from, fromFound := resolveStation(row.SourceID)
			to, toFound := resolveStation(row.DestinationID)
			if !fromFound || !toFound {
				skipped++
				continue
			}

			entry := fares.Entry{
				FromID: from,
				ToID:   to,
				Fares:  map[fares.Class]network.Cost{},
			}

			adult, err := network.ParseCost(row.OctopusAdult)
			if err != nil {
				return data, fmt.Errorf("fare %s-%s: %w", from, to, err)
			}
			entry.Fares[fares.ClassAdult] = adult

			for class, cell := range map[fares.Class]string{
				fares.ClassStudent: row.OctopusStudent,
				fares.ClassChild:   row.OctopusChild,
				fares.ClassSingle:  row.SingleAdult,
			} {
				amount, present, err := formats.ParseOptionalCost(cell)
				if err != nil {
					return data, fmt.Errorf("fare %s-%s %s: %w", from, to, class, err)
				}
				if present {
					entry.Fares[class] = amount
				}
			}

			data.Fares = append(data.Fares, entry)
		}

		if skipped > 0 {
			log.Warn().Int("skipped", skipped).Msg("Fares referencing stations outside the line table were skipped")
		}
	}

	if options.SupportedObjects.Facilities {
		skipped := 0
		for _, row := range o.Facilities {
			stationID, found := resolveStation(row.StationNumber)
			if !found {
				skipped++
				continue
			}

			data.Facilities = append(data.Facilities, reference.Facility{
				StationID:   stationID,
				Type:        strings.TrimSpace(row.Type),
				Description: strings.TrimSpace(row.Description),
				Location:    strings.TrimSpace(row.Location),
			})
		}

		if skipped > 0 {
			log.Warn().Int("skipped", skipped).Msg("Facilities at unknown stations were skipped")
		}
	}

	if options.SupportedObjects.Ridership {
		for _, row := range o.Ridership {
			year, err := strconv.Atoi(strings.TrimSpace(row.Year))
			if err != nil {
				return data, fmt.Errorf("ridership year %q: %w", row.Year, network.ErrInvalidData)
			}

			thousands, err := strconv.ParseFloat(strings.TrimSpace(row.DailyRidershipThousands), 64)
			if err != nil {
				return data, fmt.Errorf("ridership for %d %q: %w", year, row.DailyRidershipThousands, network.ErrInvalidData)
			}

			data.Ridership = append(data.Ridership, reference.RidershipRecord{
				Date:       time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
				Scope:      reference.ScopeAll,
				Passengers: int64(math.Round(thousands * 1000)),
			})
		}
	}

	return data, nil
}

// normaliseNumericID maps "1", "1.0" and " 01 " to the same key
func normaliseNumericID(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if number, err := strconv.ParseFloat(value, 64); err == nil && number == math.Trunc(number) {
		return strconv.FormatInt(int64(number), 10)
	}

	return value
}
