package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/hkmtr/pkg/dataaggregator"
	"github.com/travigo/hkmtr/pkg/dataaggregator/query"
	"github.com/travigo/hkmtr/pkg/resolver"
)

func PlannerRouter(router fiber.Router) {
	router.Get("/:origin/:destination", getRouteBetweenStations)
}

func getRouteBetweenStations(c *fiber.Ctx) error {
	route, err := dataaggregator.Lookup[*resolver.Route](query.Route{
		Context:     c.UserContext(),
		Origin:      c.Params("origin"),
		Destination: c.Params("destination"),
	})
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, route)
}
