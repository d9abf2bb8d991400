package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/hkmtr/pkg/config"
	"github.com/travigo/hkmtr/pkg/dataaggregator/global"
	"github.com/travigo/hkmtr/pkg/dataimporter/manager"
	"github.com/travigo/hkmtr/pkg/redis_client"
	"github.com/travigo/hkmtr/pkg/resolver"
	"github.com/travigo/hkmtr/pkg/routecache"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:     "dataset",
						Usage:    "ID of the dataset to serve",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "from-database",
						Usage: "Serve the copy of the dataset imported into MongoDB",
					},
				},
				Action: func(c *cli.Context) error {
					planner, err := config.LoadPlanner()
					if err != nil {
						return err
					}

					options, err := planner.ResolverOptions()
					if err != nil {
						return err
					}

					bundle, err := manager.LoadBundle(c.Context, c.String("dataset"), c.Bool("from-database"), options)
					if err != nil {
						return err
					}

					r, err := resolver.New(bundle.Network, bundle.Fares, options)
					if err != nil {
						return err
					}

					var routeCache *routecache.Cache
					if planner.Cache.Enabled {
						if err := redis_client.Connect(); err != nil {
							log.Fatal().Err(err).Msg("Failed to connect to Redis")
						}

						routeCache = routecache.New(redis_client.Client, r, planner.Cache.Expiration)
					}

					global.Setup(bundle, r, routeCache)

					log.Info().Str("listen", c.String("listen")).Str("dataset", bundle.DatasetID).Msg("Starting web API")

					return SetupServer(c.String("listen"))
				},
			},
		},
	}
}
