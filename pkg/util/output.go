package util

import (
	"encoding/json"
	"io"

	"github.com/kr/pretty"
)

// WriteOutput prints value as indented JSON, or as a Go value dump when goSyntax is set
func WriteOutput(w io.Writer, value interface{}, goSyntax bool) error {
	if goSyntax {
		_, err := pretty.Fprintf(w, "%# v\n", value)
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(value)
}
