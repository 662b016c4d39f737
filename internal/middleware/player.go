package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// PlayerIDHeader carries the caller's player id; the playerId query
// parameter is the fallback for WebSocket clients that cannot set headers.
const PlayerIDHeader = "X-Player-ID"

func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := c.Get(PlayerIDHeader)
		if playerID == "" {
			playerID = c.Query("playerId")
		}

		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		// Store in context for this request
		c.Locals("playerID", playerID)
		return c.Next()
	}
}
