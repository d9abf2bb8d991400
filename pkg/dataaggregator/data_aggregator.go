package dataaggregator

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/rs/zerolog/log"
	"github.com/travigo/hkmtr/pkg/dataaggregator/source"
)

type Aggregator struct {
	Sources []DataSource
}

var GlobalAggregator Aggregator

func (a *Aggregator) RegisterSource(source DataSource) {
	a.Sources = append(a.Sources, source)

	log.Debug().Str("name", source.GetName()).Msg("Registering new Data Source")
}

// Lookup asks every source supporting T in registration order, skipping those that cannot answer the query
func Lookup[T any](query any) (T, error) {
	var empty T

	lookupType := reflect.TypeOf(*new(T))
	if lookupType.Kind() == reflect.Pointer {
		lookupType = lookupType.Elem()
	}

	for _, dataSource := range GlobalAggregator.Sources {
		matches := false

		for _, supportedType := range dataSource.Supports() {
			if lookupType == supportedType {
				matches = true
				break
			}
		}

		if !matches {
			continue
		}

		returnValue, returnError := dataSource.Lookup(query)
		if errors.Is(returnError, source.UnsupportedSourceError) {
			continue
		}

		if returnValue == nil {
			return empty, returnError
		}

		typedValue, ok := returnValue.(T)
		if !ok {
			return empty, fmt.Errorf("source %s returned %T for %s", dataSource.GetName(), returnValue, lookupType)
		}

		return typedValue, returnError
	}

	return empty, fmt.Errorf("no data source answers %T for %s: %w", query, lookupType, source.UnsupportedSourceError)
}
