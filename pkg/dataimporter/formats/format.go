package formats

import (
	"io"

	"github.com/travigo/hkmtr/pkg/dataimporter/datasets"
	"github.com/travigo/hkmtr/pkg/network"
	"github.com/travigo/hkmtr/pkg/reference"
)

// File is one table a format reads
type File struct {
	Name     string
	Required bool
}

type Options struct {
	DefaultSegmentCost network.Cost
	SupportedObjects   datasets.SupportedObjects
}

type Format interface {
	Files(datasets.SupportedObjects) []File
	ParseFile(string, io.Reader) error
	Data(Options) (reference.Data, error)
}
