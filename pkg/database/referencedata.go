package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/travigo/hkmtr/pkg/fares"
	"github.com/travigo/hkmtr/pkg/network"
	"github.com/travigo/hkmtr/pkg/reference"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDatasetNotImported is returned when loading a dataset that was never imported
var ErrDatasetNotImported = errors.New("dataset not imported")

// DatasetRecord is the metadata kept for every imported dataset
type DatasetRecord struct {
	Identifier     string    `bson:"identifier"`
	ImportID       string    `bson:"importid"`
	NetworkVersion string    `bson:"networkversion"`
	ImportedAt     time.Time `bson:"importedat"`

	Stations   int `bson:"stations"`
	Lines      int `bson:"lines"`
	Segments   int `bson:"segments"`
	Fares      int `bson:"fares"`
	Ridership  int `bson:"ridership"`
	Facilities int `bson:"facilities"`
}

type record[T any] struct {
	DatasetID string `bson:"datasetid"`
	ImportID  string `bson:"importid"`
	Record    T      `bson:"record"`
}

func wrapRecords[T any](datasetID string, importID string, items []T) []interface{} {
	documents := make([]interface{}, 0, len(items))
	for _, item := range items {
		documents = append(documents, record[T]{DatasetID: datasetID, ImportID: importID, Record: item})
	}

	return documents
}

func importFilter(datasetID string, importID string) bson.M {
	return bson.M{"datasetid": datasetID, "importid": importID}
}

// staleFilter matches every record of the dataset that does not belong to the current import
func staleFilter(datasetID string, importID string) bson.M {
	return bson.M{"datasetid": datasetID, "importid": bson.M{"$ne": importID}}
}

// recordStore is the part of MongoDB an import writes to
type recordStore interface {
	InsertRecords(ctx context.Context, collectionName string, documents []interface{}) error
	DeleteRecords(ctx context.Context, collectionName string, filter bson.M) error
	ReplaceMetadata(ctx context.Context, metadata DatasetRecord) error
}

type mongoStore struct{}

func (mongoStore) InsertRecords(ctx context.Context, collectionName string, documents []interface{}) error {
	_, err := GetCollection(collectionName).InsertMany(ctx, documents, options.InsertMany().SetOrdered(false))
	return err
}

func (mongoStore) DeleteRecords(ctx context.Context, collectionName string, filter bson.M) error {
	_, err := GetCollection(collectionName).DeleteMany(ctx, filter)
	return err
}

func (mongoStore) ReplaceMetadata(ctx context.Context, metadata DatasetRecord) error {
	_, err := GetCollection(DatasetsCollection).ReplaceOne(ctx,
		bson.M{"identifier": metadata.Identifier},
		metadata,
		options.Replace().SetUpsert(true),
	)
	return err
}

type collectionRecords struct {
	collectionName string
	documents      []interface{}
}

// ImportData stores the bundle's tables under a new import ID. The dataset metadata only moves to the
// new import once every table is written, so a failed import leaves the previous one readable.
func ImportData(ctx context.Context, bundle *reference.Bundle) error {
	return importData(ctx, mongoStore{}, bundle, uuid.NewString())
}

func importData(ctx context.Context, store recordStore, bundle *reference.Bundle, importID string) error {
	datasetID := bundle.DatasetID
	segments := bundle.Network.Segments()
	fareEntries := bundle.Fares.Entries()

	tables := []collectionRecords{
		{StationsCollection, wrapRecords(datasetID, importID, bundle.Network.Stations())},
		{LinesCollection, wrapRecords(datasetID, importID, bundle.Network.Lines())},
		{SegmentsCollection, wrapRecords(datasetID, importID, segments)},
		{FaresCollection, wrapRecords(datasetID, importID, fareEntries)},
		{RidershipCollection, wrapRecords(datasetID, importID, bundle.Ridership)},
		{FacilitiesCollection, wrapRecords(datasetID, importID, bundle.Facilities)},
	}

	for _, table := range tables {
		if len(table.documents) == 0 {
			continue
		}

		if err := store.InsertRecords(ctx, table.collectionName, table.documents); err != nil {
			discardImport(ctx, store, datasetID, importID)
			return fmt.Errorf("inserting %s: %w", table.collectionName, err)
		}

		log.Debug().Str("collection", table.collectionName).Str("dataset", datasetID).Int("length", len(table.documents)).Msg("Bulk write")
	}

	metadata := DatasetRecord{
		Identifier:     datasetID,
		ImportID:       importID,
		NetworkVersion: bundle.Network.Version(),
		ImportedAt:     time.Now().UTC(),
		Stations:       bundle.Network.Len(),
		Lines:          len(bundle.Network.Lines()),
		Segments:       len(segments),
		Fares:          len(fareEntries),
		Ridership:      len(bundle.Ridership),
		Facilities:     len(bundle.Facilities),
	}
	if err := store.ReplaceMetadata(ctx, metadata); err != nil {
		discardImport(ctx, store, datasetID, importID)
		return fmt.Errorf("recording import: %w", err)
	}

	// records of earlier imports are unreachable now, failing to remove them only wastes space
	for _, collectionName := range recordCollections {
		if err := store.DeleteRecords(ctx, collectionName, staleFilter(datasetID, importID)); err != nil {
			log.Error().Err(err).Str("collection", collectionName).Str("dataset", datasetID).Msg("Failed to remove previous import")
		}
	}

	return nil
}

func discardImport(ctx context.Context, store recordStore, datasetID string, importID string) {
	for _, collectionName := range recordCollections {
		if err := store.DeleteRecords(ctx, collectionName, importFilter(datasetID, importID)); err != nil {
			log.Error().Err(err).Str("collection", collectionName).Str("importid", importID).Msg("Failed to discard partial import")
		}
	}
}

func loadRecords[T any](ctx context.Context, collectionName string, datasetID string, importID string) ([]T, error) {
	cursor, err := GetCollection(collectionName).Find(ctx, importFilter(datasetID, importID))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", collectionName, err)
	}
	defer cursor.Close(ctx)

	var items []T
	for cursor.Next(ctx) {
		var document record[T]
		if err := cursor.Decode(&document); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", collectionName, err)
		}

		items = append(items, document.Record)
	}

	return items, cursor.Err()
}

// LoadData reads back the tables of an imported dataset along with its metadata
func LoadData(ctx context.Context, datasetID string) (reference.Data, *DatasetRecord, error) {
	var metadata DatasetRecord
	err := GetCollection(DatasetsCollection).FindOne(ctx, bson.M{"identifier": datasetID}).Decode(&metadata)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return reference.Data{}, nil, fmt.Errorf("%s: %w", datasetID, ErrDatasetNotImported)
	} else if err != nil {
		return reference.Data{}, nil, err
	}

	var data reference.Data

	if data.Records.Stations, err = loadRecords[network.Station](ctx, StationsCollection, datasetID, metadata.ImportID); err != nil {
		return data, nil, err
	}
	if data.Records.Lines, err = loadRecords[network.Line](ctx, LinesCollection, datasetID, metadata.ImportID); err != nil {
		return data, nil, err
	}
	if data.Records.Segments, err = loadRecords[network.Segment](ctx, SegmentsCollection, datasetID, metadata.ImportID); err != nil {
		return data, nil, err
	}
	if data.Fares, err = loadRecords[fares.Entry](ctx, FaresCollection, datasetID, metadata.ImportID); err != nil {
		return data, nil, err
	}
	if data.Ridership, err = loadRecords[reference.RidershipRecord](ctx, RidershipCollection, datasetID, metadata.ImportID); err != nil {
		return data, nil, err
	}
	if data.Facilities, err = loadRecords[reference.Facility](ctx, FacilitiesCollection, datasetID, metadata.ImportID); err != nil {
		return data, nil, err
	}

	return data, &metadata, nil
}

// ListDatasets returns the metadata of every imported dataset
func ListDatasets(ctx context.Context) ([]DatasetRecord, error) {
	cursor, err := GetCollection(DatasetsCollection).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "identifier", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var datasets []DatasetRecord
	if err := cursor.All(ctx, &datasets); err != nil {
		return nil, err
	}

	return datasets, nil
}
