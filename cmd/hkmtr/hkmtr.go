package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/hkmtr/pkg/api"
	"github.com/travigo/hkmtr/pkg/dataimporter"
	plannercli "github.com/travigo/hkmtr/pkg/resolver/cli"
	statscli "github.com/travigo/hkmtr/pkg/stats/cli"
	"github.com/travigo/hkmtr/pkg/transforms"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatal().Err(err).Msg("Failed to read .env")
	}

	if os.Getenv("HKMTR_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("HKMTR_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	transforms.SetupClient()

	app := &cli.App{
		Name:        "hkmtr",
		Description: "Hong Kong MTR reference data, route and fare service",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			dataimporter.RegisterCLI(),
			plannercli.RegisterCLI(),
			statscli.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
