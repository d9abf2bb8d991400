package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/hkmtr/pkg/network"
)

func sendError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, network.ErrNotFound):
		c.SendStatus(fiber.StatusNotFound)
	case errors.Is(err, network.ErrInvalidData):
		c.SendStatus(fiber.StatusUnprocessableEntity)
	case errors.Is(err, network.ErrNoRoute):
		c.SendStatus(fiber.StatusConflict)
	default:
		c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}

// sendReduced writes the basic fields of value, or every field when the request asks for detail=full
func sendReduced(c *fiber.Ctx, value interface{}) error {
	groups := []string{"basic"}
	if c.Query("detail") == "full" {
		groups = append(groups, "detailed")
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, value)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sherrif could not reduce response",
		})
	}

	return c.JSON(reduced)
}
