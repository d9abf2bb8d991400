package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/hkmtr/pkg/dataaggregator"
	"github.com/travigo/hkmtr/pkg/dataaggregator/query"
	"github.com/travigo/hkmtr/pkg/network"
	"github.com/travigo/hkmtr/pkg/resolver"
)

// fareQuoteResponse is a resolver.Quote keyed on plain strings so sheriff can reduce it
type fareQuoteResponse struct {
	OriginID      string                  `json:"origin" groups:"basic"`
	DestinationID string                  `json:"destination" groups:"basic"`
	Source        resolver.FareSource     `json:"source" groups:"basic"`
	Fares         map[string]network.Cost `json:"fares" groups:"basic"`
	Derived       []string                `json:"derived" groups:"detailed"`
	Route         *resolver.Route         `json:"route,omitempty" groups:"detailed"`
}

func FaresRouter(router fiber.Router) {
	router.Get("/:origin/:destination", getFareBetweenStations)
}

func getFareBetweenStations(c *fiber.Ctx) error {
	quote, err := dataaggregator.Lookup[*resolver.Quote](query.FareQuote{
		Origin:      c.Params("origin"),
		Destination: c.Params("destination"),
		Class:       c.Query("class"),
	})
	if err != nil {
		return sendError(c, err)
	}

	response := fareQuoteResponse{
		OriginID:      quote.OriginID,
		DestinationID: quote.DestinationID,
		Source:        quote.Source,
		Fares:         map[string]network.Cost{},
		Derived:       []string{},
		Route:         quote.Route,
	}
	for class, amount := range quote.Fares {
		response.Fares[string(class)] = amount
	}
	for _, class := range quote.Derived {
		response.Derived = append(response.Derived, string(class))
	}

	return sendReduced(c, response)
}
