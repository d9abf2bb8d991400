package manager

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/travigo/hkmtr/pkg/database"
	"github.com/travigo/hkmtr/pkg/reference"
	"github.com/travigo/hkmtr/pkg/resolver"
)

// LoadBundle loads a registered dataset from its source, or the copy imported into MongoDB.
// Imported copies passed fare verification when they were imported.
func LoadBundle(ctx context.Context, identifier string, fromDatabase bool, options resolver.Options) (*reference.Bundle, error) {
	if !fromDatabase {
		dataset, err := GetDataset(identifier)
		if err != nil {
			return nil, err
		}

		return LoadDataset(ctx, &dataset, options)
	}

	if err := database.Connect(); err != nil {
		return nil, err
	}

	data, metadata, err := database.LoadData(ctx, identifier)
	if err != nil {
		return nil, err
	}

	bundle, err := reference.Build(identifier, data)
	if err != nil {
		return nil, err
	}

	if bundle.Network.Version() != metadata.NetworkVersion {
		log.Warn().
			Str("id", identifier).
			Str("imported", metadata.NetworkVersion).
			Str("loaded", bundle.Network.Version()).
			Msg("Stored dataset does not match the imported network version")
	}

	log.Info().Str("id", identifier).Str("importid", metadata.ImportID).Time("imported", metadata.ImportedAt).Msg("Loaded dataset from database")

	return bundle, nil
}
