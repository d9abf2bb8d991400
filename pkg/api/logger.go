package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func requestLevel(code int) zerolog.Level {
	switch {
	case code >= fiber.StatusInternalServerError:
		return zerolog.ErrorLevel
	case code >= fiber.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger logs one line per request, route is the matched pattern so planner lookups group together
func NewLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()
		err := c.Next()

		code := c.Response().StatusCode()
		if fiberErr, ok := err.(*fiber.Error); ok {
			code = fiberErr.Code
		}

		event := log.WithLevel(requestLevel(code)).
			Int("status", code).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", c.Route().Path).
			Str("ip", c.IP()).
			Dur("latency", time.Since(startTime)).
			Str("user-agent", c.Get(fiber.HeaderUserAgent))

		if query := c.Request().URI().QueryString(); len(query) > 0 {
			event = event.Bytes("query", query)
		}
		if err != nil {
			event = event.Err(err)
		}

		event.Msg("HTTP request")

		return err
	}
}
