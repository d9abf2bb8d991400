package formats

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/travigo/hkmtr/pkg/network"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// UnmarshalCSV decodes a CSV table into destination, tolerating a UTF-8 byte order mark and short rows
func UnmarshalCSV(reader io.Reader, destination interface{}) error {
	// Allow us to ignore those naughty records that have missing columns
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		return r
	})

	return gocsv.Unmarshal(transform.NewReader(reader, unicode.BOMOverride(unicode.UTF8.NewDecoder())), destination)
}

// ParseOptionalCost parses a cost cell, an empty cell is reported as absent
func ParseOptionalCost(value string) (network.Cost, bool, error) {
	if strings.TrimSpace(value) == "" {
		return 0, false, nil
	}

	cost, err := network.ParseCost(value)
	if err != nil {
		return 0, false, err
	}

	return cost, true, nil
}

func ParseOptionalFloat(value string) (float64, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%q is not a number: %w", value, network.ErrInvalidData)
	}

	return parsed, true, nil
}
