package database

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/hkmtr/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInstance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var MongoGlobalInstance *MongoInstance

const defaultMongoConnectionString = "mongodb://localhost:27017/"
const defaultMongoDatabase = "hkmtr"

func connectionSettings() (string, string) {
	connectionString := defaultMongoConnectionString
	dbName := defaultMongoDatabase

	env := util.GetEnvironmentVariables()

	if env["HKMTR_MONGODB_CONNECTION"] != "" {
		connectionString = env["HKMTR_MONGODB_CONNECTION"]
	}

	if env["HKMTR_MONGODB_DATABASE"] != "" {
		dbName = env["HKMTR_MONGODB_DATABASE"]
	}

	return connectionString, dbName
}

func Connect() error {
	connectionString, dbName := connectionSettings()

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(connectionString))
	if err != nil {
		return err
	}

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.MaxElapsedTime = 2 * time.Minute

	err = backoff.RetryNotify(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return client.Ping(ctx, nil)
	}, retryBackoff, func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("retry", wait.String()).Msg("MongoDB not reachable yet")
	})
	if err != nil {
		return err
	}

	MongoGlobalInstance = &MongoInstance{
		Client:   client,
		Database: client.Database(dbName),
	}

	log.Info().Str("database", dbName).Msg("Connected to MongoDB")

	createIndexes()

	return nil
}

func GetCollection(collectionName string) *mongo.Collection {
	return MongoGlobalInstance.Database.Collection(collectionName)
}
