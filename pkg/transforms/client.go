package transforms

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/travigo/hkmtr/pkg/util"
	"gopkg.in/yaml.v3"
)

var transforms []*TransformDefinition

func SetupClient() {
	directory := filepath.Join(util.GetDataDirectory(), "transforms")

	if err := LoadDirectory(directory); err != nil {
		log.Fatal().Err(err).Msg("Failed to load transforms directory")
	}
}

// LoadDirectory replaces the loaded definitions with those of every yaml file under directory.
// A missing directory leaves no transforms loaded.
func LoadDirectory(directory string) error {
	var loaded []*TransformDefinition

	err := filepath.Walk(directory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() || filepath.Ext(path) != ".yaml" {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading transforms file")

			transformYaml, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			definitions, err := decodeDefinitions(transformYaml)
			if err != nil {
				return err
			}
			loaded = append(loaded, definitions...)

			return nil
		})
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("directory", directory).Msg("No transforms directory")
	} else if err != nil {
		return err
	}

	transforms = loaded

	return nil
}

func decodeDefinitions(transformYaml []byte) ([]*TransformDefinition, error) {
	var definitions []*TransformDefinition

	decoder := yaml.NewDecoder(bytes.NewReader(transformYaml))
	for {
		var document []*TransformDefinition
		err := decoder.Decode(&document)
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		definitions = append(definitions, document...)
	}

	return definitions, nil
}
