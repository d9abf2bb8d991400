package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/hkmtr/pkg/dataaggregator"
	"github.com/travigo/hkmtr/pkg/dataaggregator/query"
	"github.com/travigo/hkmtr/pkg/network"
	"github.com/travigo/hkmtr/pkg/reference"
)

func StationsRouter(router fiber.Router) {
	router.Get("/", listStations)
	router.Get("/:identifier", getStation)
	router.Get("/:identifier/neighbours", getStationNeighbours)
	router.Get("/:identifier/facilities", getStationFacilities)
}

func listStations(c *fiber.Ctx) error {
	stations, err := dataaggregator.Lookup[[]network.Station](query.Stations{
		LineID: c.Query("line"),
	})
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, stations)
}

func getStation(c *fiber.Ctx) error {
	station, err := dataaggregator.Lookup[network.Station](query.Station{
		Identifier: c.Params("identifier"),
	})
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, station)
}

func getStationNeighbours(c *fiber.Ctx) error {
	neighbours, err := dataaggregator.Lookup[[]network.Neighbour](query.Neighbours{
		StationID: c.Params("identifier"),
	})
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, neighbours)
}

func getStationFacilities(c *fiber.Ctx) error {
	facilities, err := dataaggregator.Lookup[[]reference.Facility](query.Facilities{
		StationID: c.Params("identifier"),
	})
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, facilities)
}
