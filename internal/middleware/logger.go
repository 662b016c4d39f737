package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// RequestLogger logs one line per request once the handler chain returns.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	log = log.With().Str("component", "http").Logger()
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		code := c.Response().StatusCode()
		if err != nil {
			code = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
		}

		event := log.Info()
		switch {
		case code >= fiber.StatusInternalServerError:
			event = log.Error().Err(err)
		case code >= fiber.StatusBadRequest:
			event = log.Debug()
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", code).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}
