package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/hkmtr/pkg/dataaggregator"
	"github.com/travigo/hkmtr/pkg/dataaggregator/query"
	"github.com/travigo/hkmtr/pkg/network"
)

func LinesRouter(router fiber.Router) {
	router.Get("/", listLines)
	router.Get("/:identifier", getLine)
	router.Get("/:identifier/stations", getLineStations)
}

func listLines(c *fiber.Ctx) error {
	lines, err := dataaggregator.Lookup[[]network.Line](query.Lines{})
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, lines)
}

func getLine(c *fiber.Ctx) error {
	line, err := dataaggregator.Lookup[network.Line](query.Line{
		Identifier: c.Params("identifier"),
	})
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, line)
}

func getLineStations(c *fiber.Ctx) error {
	stations, err := dataaggregator.Lookup[[]network.Station](query.Stations{
		LineID: c.Params("identifier"),
	})
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, stations)
}
