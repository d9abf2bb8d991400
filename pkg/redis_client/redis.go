package redis_client

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/travigo/hkmtr/pkg/util"
)

var Client *redis.Client

const defaultConnectionAddress = "localhost:6379"
const defaultConnectionPassword = ""
const defaultDatabase = 0

func connectionOptions() (*redis.Options, error) {
	address := defaultConnectionAddress
	password := defaultConnectionPassword
	database := defaultDatabase

	env := util.GetEnvironmentVariables()

	if env["HKMTR_REDIS_ADDRESS"] != "" {
		address = env["HKMTR_REDIS_ADDRESS"]
	}

	if env["HKMTR_REDIS_PASSWORD"] != "" {
		password = env["HKMTR_REDIS_PASSWORD"]
	}

	if env["HKMTR_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["HKMTR_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return nil, err
		}
	}

	return &redis.Options{
		Addr:     address,
		Password: password,
		DB:       database,
	}, nil
}

func Connect() error {
	connectionOptions, err := connectionOptions()
	if err != nil {
		return err
	}

	Client = redis.NewClient(connectionOptions)

	return Client.Ping(context.Background()).Err()
}
