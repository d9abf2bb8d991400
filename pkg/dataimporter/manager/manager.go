package manager

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/hkmtr/pkg/database"
	"github.com/travigo/hkmtr/pkg/dataimporter/datasets"
	"github.com/travigo/hkmtr/pkg/dataimporter/formats"
	"github.com/travigo/hkmtr/pkg/dataimporter/formats/opendata"
	"github.com/travigo/hkmtr/pkg/dataimporter/formats/tables"
	"github.com/travigo/hkmtr/pkg/network"
	"github.com/travigo/hkmtr/pkg/reference"
	"github.com/travigo/hkmtr/pkg/resolver"
	"github.com/travigo/hkmtr/pkg/transforms"
	"github.com/travigo/hkmtr/pkg/util"
)

const maxConcurrentDownloads = 4

type fetchedFile struct {
	file     formats.File
	contents []byte
}

func newFormat(dataset *datasets.DataSet) (formats.Format, error) {
	switch dataset.Format {
	case datasets.DataSetFormatTables:
		return &tables.Tables{}, nil
	case datasets.DataSetFormatOpenData:
		return &opendata.OpenData{}, nil
	default:
		return nil, fmt.Errorf("unrecognised format %s for dataset %s", dataset.Format, dataset.Identifier)
	}
}

// LoadDataset fetches every file of the dataset, parses it and builds the validated bundle.
// Datasets with VerifyFares set fail with ErrInvalidData when the fare table disagrees with the network.
func LoadDataset(ctx context.Context, dataset *datasets.DataSet, options resolver.Options) (*reference.Bundle, error) {
	format, err := newFormat(dataset)
	if err != nil {
		return nil, err
	}

	log.Info().Str("id", dataset.Identifier).Str("format", string(dataset.Format)).Msg("Loading dataset")

	fetchPool := pool.NewWithResults[*fetchedFile]().
		WithContext(ctx).
		WithCancelOnError().
		WithMaxGoroutines(maxConcurrentDownloads)

	for _, file := range format.Files(dataset.SupportedObjects) {
		fetchPool.Go(func(ctx context.Context) (*fetchedFile, error) {
			contents, err := readFile(ctx, dataset, file.Name)
			if errors.Is(err, errFileMissing) && !file.Required {
				log.Warn().Str("id", dataset.Identifier).Str("file", file.Name).Msg("Optional file not available")
				return nil, nil
			} else if err != nil {
				return nil, fmt.Errorf("reading %s: %w", file.Name, err)
			}

			return &fetchedFile{file: file, contents: contents}, nil
		})
	}

	fetched, err := fetchPool.Wait()
	if err != nil {
		return nil, err
	}

	// parse in the format's file order
	for _, file := range format.Files(dataset.SupportedObjects) {
		for _, fetchedFile := range fetched {
			if fetchedFile == nil || fetchedFile.file.Name != file.Name {
				continue
			}

			if err := format.ParseFile(file.Name, bytes.NewReader(fetchedFile.contents)); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", file.Name, err)
			}
		}
	}

	data, err := format.Data(formats.Options{
		DefaultSegmentCost: network.CostFromFloat(dataset.DefaultSegmentCost),
		SupportedObjects:   dataset.SupportedObjects,
	})
	if err != nil {
		return nil, err
	}

	return BuildBundle(dataset, data, options)
}

// BuildBundle applies the dataset's ignore list and the transforms before validating the data
func BuildBundle(dataset *datasets.DataSet, data reference.Data, options resolver.Options) (*reference.Bundle, error) {
	data.Records = ignoreLines(data.Records, dataset.IgnoreObjects.Lines)

	linesTransformed := transforms.Transform(data.Records.Lines)
	stationsTransformed := transforms.Transform(data.Records.Stations)

	bundle, err := reference.Build(dataset.Identifier, data)
	if err != nil {
		return nil, err
	}

	if dataset.VerifyFares {
		mismatches, err := VerifyDataset(bundle, options)
		for _, mismatch := range mismatches {
			log.Warn().Str("id", dataset.Identifier).Msg(mismatch.String())
		}
		if err != nil {
			return nil, err
		}
	}

	log.Info().
		Str("id", dataset.Identifier).
		Str("version", bundle.Network.Version()).
		Int("stations", bundle.Network.Len()).
		Int("lines", len(bundle.Network.Lines())).
		Int("fares", bundle.Fares.Len()).
		Int("transforms", linesTransformed+stationsTransformed).
		Msg("Loaded dataset")

	return bundle, nil
}

func ignoreLines(records network.Records, ignored []string) network.Records {
	if len(ignored) == 0 {
		return records
	}

	isIgnored := func(lineID string) bool {
		for _, ignoredID := range ignored {
			if ignoredID == lineID {
				return true
			}
		}
		return false
	}

	filtered := network.Records{}
	for _, line := range records.Lines {
		if !isIgnored(line.ID) {
			filtered.Lines = append(filtered.Lines, line)
		}
	}
	for _, segment := range records.Segments {
		if !isIgnored(segment.LineID) {
			filtered.Segments = append(filtered.Segments, segment)
		}
	}
	for _, station := range records.Stations {
		station.Lines = append([]string(nil), station.Lines...)
		util.InPlaceFilter(&station.Lines, func(lineID string) bool {
			return !isIgnored(lineID)
		})
		filtered.Stations = append(filtered.Stations, station)
	}

	return filtered
}

// VerifyDataset checks the published fares of a bundle against fares derived from its segments
func VerifyDataset(bundle *reference.Bundle, options resolver.Options) ([]resolver.Mismatch, error) {
	r, err := resolver.New(bundle.Network, bundle.Fares, options)
	if err != nil {
		return nil, err
	}

	return r.VerifyFareTable()
}

// ImportDataset loads a dataset and stores it in MongoDB
func ImportDataset(ctx context.Context, dataset *datasets.DataSet, options resolver.Options) error {
	bundle, err := LoadDataset(ctx, dataset, options)
	if err != nil {
		return err
	}

	if err := database.ImportData(ctx, bundle); err != nil {
		return err
	}

	log.Info().Str("id", dataset.Identifier).Msg("Imported dataset")

	return nil
}
