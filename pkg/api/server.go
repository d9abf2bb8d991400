package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/hkmtr/pkg/api/routes"
)

func NewApp() *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.StationsRouter(group.Group("/stations"))
	routes.LinesRouter(group.Group("/lines"))

	routes.PlannerRouter(group.Group("/planner"))
	routes.FaresRouter(group.Group("/fares"))

	routes.StatsRouter(group.Group("/stats"))

	return webApp
}

func SetupServer(listen string) error {
	return NewApp().Listen(listen)
}
