package statistics

import (
	"reflect"

	"github.com/travigo/hkmtr/pkg/dataaggregator/query"
	"github.com/travigo/hkmtr/pkg/dataaggregator/source"
	"github.com/travigo/hkmtr/pkg/reference"
	"github.com/travigo/hkmtr/pkg/stats/calculator"
)

type Source struct {
	Bundle *reference.Bundle

	summary calculator.Summary
	lines   []calculator.LineStats
}

func (s *Source) Setup() {
	s.summary = calculator.GetSummary(s.Bundle)
	s.lines = calculator.GetLines(s.Bundle)
}

func (s *Source) GetName() string {
	return "Statistics"
}

func (s *Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(calculator.Summary{}),
		reflect.TypeOf([]calculator.LineStats{}),
		reflect.TypeOf(calculator.RidershipTrend{}),
		reflect.TypeOf([]calculator.StationAccessibility{}),
	}
}

func (s *Source) Lookup(q any) (interface{}, error) {
	switch q := q.(type) {
	case query.Summary:
		return s.summary, nil
	case query.LineStats:
		return append([]calculator.LineStats(nil), s.lines...), nil
	case query.RidershipTrend:
		return calculator.GetRidershipTrend(s.Bundle, q.Scope), nil
	case query.AccessibilityRanking:
		return calculator.GetAccessibilityRanking(s.Bundle, q.Limit), nil
	default:
		return nil, source.UnsupportedSourceError
	}
}
