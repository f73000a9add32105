package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// EnsurePlayerID stores the caller's player id in c.Locals("playerID"). The
// id comes from the X-Player-ID header, falling back to the playerId query.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		log.Trace().Str("player", playerID).Str("path", c.Path()).Msg("player identified")
		c.Locals("playerID", playerID)
		return c.Next()
	}
}
