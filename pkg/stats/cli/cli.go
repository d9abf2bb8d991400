package cli

import (
	"os"

	"github.com/travigo/hkmtr/pkg/config"
	"github.com/travigo/hkmtr/pkg/dataimporter/manager"
	"github.com/travigo/hkmtr/pkg/reference"
	"github.com/travigo/hkmtr/pkg/stats/calculator"
	"github.com/travigo/hkmtr/pkg/util"
	"github.com/urfave/cli/v2"
)

func statsCommand(name string, usage string, flags []cli.Flag, calculate func(*cli.Context, *reference.Bundle) interface{}) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "dataset",
				Usage:    "ID of the dataset",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "from-database",
				Usage: "Use the copy of the dataset imported into MongoDB",
			},
		}, flags...),
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

			return util.WriteOutput(os.Stdout, calculate(c, bundle), false)
		},
	}
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Summary statistics of a dataset",
		Subcommands: []*cli.Command{
			statsCommand("summary", "Totals and fare statistics", nil, func(c *cli.Context, bundle *reference.Bundle) interface{} {
				return calculator.GetSummary(bundle)
			}),
			statsCommand("lines", "Stations per line", nil, func(c *cli.Context, bundle *reference.Bundle) interface{} {
				return calculator.GetLines(bundle)
			}),
			statsCommand("ridership", "Ridership by year", []cli.Flag{
				&cli.StringFlag{
					Name:  "scope",
					Value: reference.ScopeAll,
					Usage: "station or line ID, or ALL",
				},
			}, func(c *cli.Context, bundle *reference.Bundle) interface{} {
				return calculator.GetRidershipTrend(bundle, c.String("scope"))
			}),
			statsCommand("accessibility", "Stations ranked by barrier free facilities", []cli.Flag{
				&cli.IntFlag{
					Name:  "limit",
					Value: 10,
				},
			}, func(c *cli.Context, bundle *reference.Bundle) interface{} {
				return calculator.GetAccessibilityRanking(bundle, c.Int("limit"))
			}),
		},
	}
}
