package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/hkmtr/pkg/dataaggregator"
	"github.com/travigo/hkmtr/pkg/dataaggregator/query"
	"github.com/travigo/hkmtr/pkg/stats/calculator"
)

func StatsRouter(router fiber.Router) {
	router.Get("/summary", getSummaryStats)
	router.Get("/lines", getLineStats)
	router.Get("/ridership", getRidershipStats)
	router.Get("/accessibility", getAccessibilityStats)
}

func getSummaryStats(c *fiber.Ctx) error {
	summary, err := dataaggregator.Lookup[calculator.Summary](query.Summary{})
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, summary)
}

func getLineStats(c *fiber.Ctx) error {
	lines, err := dataaggregator.Lookup[[]calculator.LineStats](query.LineStats{})
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, lines)
}

func getRidershipStats(c *fiber.Ctx) error {
	trend, err := dataaggregator.Lookup[calculator.RidershipTrend](query.RidershipTrend{
		Scope: c.Query("scope"),
	})
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, trend)
}

func getAccessibilityStats(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	if limit < 0 {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter limit should be a positive integer",
		})
	}

	ranking, err := dataaggregator.Lookup[[]calculator.StationAccessibility](query.AccessibilityRanking{
		Limit: limit,
	})
	if err != nil {
		return sendError(c, err)
	}

	return sendReduced(c, ranking)
}
