package dataimporter

import (
	"os"
	"time"

	"github.com/travigo/hkmtr/pkg/config"
	"github.com/travigo/hkmtr/pkg/database"
	"github.com/travigo/hkmtr/pkg/dataimporter/datasets"
	"github.com/travigo/hkmtr/pkg/dataimporter/manager"
	"github.com/travigo/hkmtr/pkg/util"
	"github.com/urfave/cli/v2"

	"github.com/rs/zerolog/log"
)

type datasetListing struct {
	Identifier  string `json:"identifier"`
	Format      string `json:"format,omitempty"`
	Provider    string `json:"provider,omitempty"`
	Source      string `json:"source,omitempty"`
	VerifyFares bool   `json:"verify_fares"`

	NetworkVersion string     `json:"network_version,omitempty"`
	ImportID       string     `json:"import_id,omitempty"`
	ImportedAt     *time.Time `json:"imported_at,omitempty"`
}

// listDatasets joins the registry with the imports found in MongoDB, imports of datasets
// no longer registered are listed on their own
func listDatasets(registered []datasets.DataSet, imported []database.DatasetRecord) []datasetListing {
	imports := map[string]database.DatasetRecord{}
	for _, record := range imported {
		imports[record.Identifier] = record
	}

	listing := []datasetListing{}
	for _, dataset := range registered {
		entry := datasetListing{
			Identifier:  dataset.Identifier,
			Format:      string(dataset.Format),
			Provider:    dataset.Provider.Name,
			Source:      dataset.Source,
			VerifyFares: dataset.VerifyFares,
		}

		if record, exists := imports[dataset.Identifier]; exists {
			entry.addImport(record)
			delete(imports, dataset.Identifier)
		}

		listing = append(listing, entry)
	}

	for _, record := range imported {
		if _, unregistered := imports[record.Identifier]; !unregistered {
			continue
		}

		entry := datasetListing{Identifier: record.Identifier}
		entry.addImport(record)
		listing = append(listing, entry)
	}

	return listing
}

func (l *datasetListing) addImport(record database.DatasetRecord) {
	importedAt := record.ImportedAt
	l.NetworkVersion = record.NetworkVersion
	l.ImportID = record.ImportID
	l.ImportedAt = &importedAt
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Load MTR reference datasets and import them into MongoDB",
		Subcommands: []*cli.Command{
			{
				Name:  "dataset",
				Usage: "Import a dataset",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "ID of the dataset",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "repeat-every",
						Usage:    "Repeat this dataset import every X (a Go duration)",
						Required: false,
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					planner, err := config.LoadPlanner()
					if err != nil {
						return err
					}
					options, err := planner.ResolverOptions()
					if err != nil {
						return err
					}

					datasetid := c.String("id")

					repeatEvery := c.String("repeat-every")
					repeat := repeatEvery != ""
					var repeatDuration time.Duration
					if repeat {
						repeatDuration, err = time.ParseDuration(repeatEvery)

						if err != nil {
							return err
						}
					}

					dataset, err := manager.GetDataset(datasetid)
					if err != nil {
						return err
					}

					for {
						startTime := time.Now()

						err := manager.ImportDataset(c.Context, &dataset, options)

						if err != nil {
							return err
						}
						if !repeat {
							break
						}

						executionDuration := time.Since(startTime)
						log.Info().Msgf("Operation took %s", executionDuration.String())

						waitTime := repeatDuration - executionDuration

						if waitTime.Seconds() > 0 {
							time.Sleep(waitTime)
						}
					}

					return nil
				},
			},
			{
				Name:  "validate",
				Usage: "Load a dataset and check its fare table without importing it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "ID of the dataset",
						Required: true,
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

					dataset, err := manager.GetDataset(c.String("id"))
					if err != nil {
						return err
					}

					dataset.VerifyFares = true
					bundle, err := manager.LoadDataset(c.Context, &dataset, options)
					if err != nil {
						return err
					}

					log.Info().Str("id", dataset.Identifier).Int("fares", bundle.Fares.Len()).Msg("Dataset is valid")

					return nil
				},
			},
			{
				Name:  "list",
				Usage: "List the registered datasets",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "imported",
						Usage: "Include the network version of each dataset imported into MongoDB",
					},
				},
				Action: func(c *cli.Context) error {
					registered, err := manager.GetRegisteredDataSets()
					if err != nil {
						return err
					}

					var imported []database.DatasetRecord
					if c.Bool("imported") {
						if err := database.Connect(); err != nil {
							return err
						}

						imported, err = database.ListDatasets(c.Context)
						if err != nil {
							return err
						}
					}

					return util.WriteOutput(os.Stdout, listDatasets(registered, imported), false)
				},
			},
		},
	}
}
