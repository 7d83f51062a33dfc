package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// PlaybackTick validates the playback heartbeat body
func PlaybackTick() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			SessionID      string  `json:"session_id" validate:"required"`
			PlayedSeconds  float64 `json:"played_seconds" validate:"gte=0"`
			PlayedFraction float64 `json:"played_fraction" validate:"gte=0,lte=1"`
			Ended          bool    `json:"ended"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedPlaybackTick", reqData)
		return c.Next()
	}
}
