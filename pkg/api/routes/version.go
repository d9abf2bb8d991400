package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/hkmtr/pkg/dataaggregator"
	"github.com/travigo/hkmtr/pkg/dataaggregator/query"
	"github.com/travigo/hkmtr/pkg/stats/calculator"
)

func APIVersion(c *fiber.Ctx) error {
	summary, err := dataaggregator.Lookup[calculator.Summary](query.Summary{})
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(fiber.Map{
		"version":         "v1",
		"dataset":         summary.DatasetID,
		"network_version": summary.Version,
	})
}
