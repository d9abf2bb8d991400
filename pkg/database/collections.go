package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	StationsCollection   = "stations"
	LinesCollection      = "lines"
	SegmentsCollection   = "segments"
	FaresCollection      = "fares"
	RidershipCollection  = "ridership"
	FacilitiesCollection = "facilities"
	DatasetsCollection   = "datasets"
)

var recordCollections = []string{
	StationsCollection,
	LinesCollection,
	SegmentsCollection,
	FaresCollection,
	RidershipCollection,
	FacilitiesCollection,
}

func createIndexes() {
	for _, collectionName := range recordCollections {
		collection := GetCollection(collectionName)
		index := []mongo.IndexModel{
			{
				Keys: bson.D{{Key: "datasetid", Value: 1}, {Key: "importid", Value: 1}},
			},
		}

		opts := options.CreateIndexes()
		_, err := collection.Indexes().CreateMany(context.Background(), index, opts)
		if err != nil {
			log.Error().Err(err).Str("collection", collectionName).Msg("Creating Index")
		}
	}

	datasetsCollection := GetCollection(DatasetsCollection)
	datasetsIndex := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "identifier", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := datasetsCollection.Indexes().CreateMany(context.Background(), datasetsIndex, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Str("collection", DatasetsCollection).Msg("Creating Index")
	}
}
