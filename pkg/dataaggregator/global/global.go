package global

import (
	"github.com/travigo/hkmtr/pkg/dataaggregator"
	"github.com/travigo/hkmtr/pkg/dataaggregator/source/fareslookup"
	"github.com/travigo/hkmtr/pkg/dataaggregator/source/journeyplanner"
	"github.com/travigo/hkmtr/pkg/dataaggregator/source/networklookup"
	"github.com/travigo/hkmtr/pkg/dataaggregator/source/statistics"
	"github.com/travigo/hkmtr/pkg/reference"
	"github.com/travigo/hkmtr/pkg/resolver"
	"github.com/travigo/hkmtr/pkg/routecache"
)

// Setup registers the sources for one loaded dataset, routeCache may be nil
func Setup(bundle *reference.Bundle, r *resolver.Resolver, routeCache *routecache.Cache) {
	dataaggregator.GlobalAggregator = dataaggregator.Aggregator{}

	dataaggregator.GlobalAggregator.RegisterSource(networklookup.Source{Bundle: bundle})
	dataaggregator.GlobalAggregator.RegisterSource(journeyplanner.Source{Resolver: r, Cache: routeCache})
	dataaggregator.GlobalAggregator.RegisterSource(fareslookup.Source{Resolver: r})

	statisticsSource := &statistics.Source{Bundle: bundle}
	statisticsSource.Setup()
	dataaggregator.GlobalAggregator.RegisterSource(statisticsSource)
}
