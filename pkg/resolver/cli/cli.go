package cli

import (
	"fmt"
	"os"

	"github.com/travigo/hkmtr/pkg/config"
	"github.com/travigo/hkmtr/pkg/dataaggregator/source/journeyplanner"
	"github.com/travigo/hkmtr/pkg/dataimporter/manager"
	"github.com/travigo/hkmtr/pkg/resolver"
	"github.com/travigo/hkmtr/pkg/util"
	"github.com/urfave/cli/v2"
)

var datasetFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "dataset",
		Usage:    "ID of the dataset",
		Required: true,
	},
	&cli.BoolFlag{
		Name:  "from-database",
		Usage: "Use the copy of the dataset imported into MongoDB",
	},
	&cli.BoolFlag{
		Name:  "pretty",
		Usage: "Print Go values instead of JSON",
	},
}

func loadResolver(c *cli.Context) (*resolver.Resolver, error) {
	if c.NArg() != 2 {
		return nil, fmt.Errorf("expected <origin> <destination>, got %d arguments", c.NArg())
	}

	planner, err := config.LoadPlanner()
	if err != nil {
		return nil, err
	}

	options, err := planner.ResolverOptions()
	if err != nil {
		return nil, err
	}

	bundle, err := manager.LoadBundle(c.Context, c.String("dataset"), c.Bool("from-database"), options)
	if err != nil {
		return nil, err
	}

	return resolver.New(bundle.Network, bundle.Fares, options)
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "planner",
		Usage: "Resolve routes and fares between two stations",
		Subcommands: []*cli.Command{
			{
				Name:      "route",
				Usage:     "Minimum cost route between two stations",
				ArgsUsage: "<origin> <destination>",
				Flags:     datasetFlags,
				Action: func(c *cli.Context) error {
					r, err := loadResolver(c)
					if err != nil {
						return err
					}

					n := r.Network()
					route, err := r.ShortestPath(journeyplanner.StationID(n, c.Args().Get(0)), journeyplanner.StationID(n, c.Args().Get(1)))
					if err != nil {
						return err
					}

					return util.WriteOutput(os.Stdout, route, c.Bool("pretty"))
				},
			},
			{
				Name:      "fare",
				Usage:     "Fare quote between two stations",
				ArgsUsage: "<origin> <destination>",
				Flags:     datasetFlags,
				Action: func(c *cli.Context) error {
					r, err := loadResolver(c)
					if err != nil {
						return err
					}

					n := r.Network()
					quote, err := r.Quote(journeyplanner.StationID(n, c.Args().Get(0)), journeyplanner.StationID(n, c.Args().Get(1)))
					if err != nil {
						return err
					}

					return util.WriteOutput(os.Stdout, quote, c.Bool("pretty"))
				},
			},
		},
	}
}
