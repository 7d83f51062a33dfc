package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services/progress"

	"github.com/gofiber/fiber/v2"
)

// StartPlayback opens a strict-playback session for a video lesson
func StartPlayback(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	report, err := progress.Engine.StartPlayback(userID, uint(lessonID))
	if err != nil {
		switch err {
		case progress.ErrLessonNotFound:
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		case progress.ErrNotVideoLesson:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson is not a video lesson!", nil)
		case progress.ErrNotEnrolled:
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start playback!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Playback session started!", report)
}

// ReportPlayback validates one player progress tick. A rejected forward
// seek is not an error: the response carries the position to resume from.
func ReportPlayback(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedPlaybackTick").(*struct {
		SessionID      string  `json:"session_id" validate:"required"`
		PlayedSeconds  float64 `json:"played_seconds" validate:"gte=0"`
		PlayedFraction float64 `json:"played_fraction" validate:"gte=0,lte=1"`
		Ended          bool    `json:"ended"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	report, err := progress.Engine.ReportPlayback(reqData.SessionID, reqData.PlayedSeconds, reqData.PlayedFraction, reqData.Ended)
	if err != nil {
		if err == progress.ErrSessionNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Playback session not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record playback progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Playback progress recorded!", report)
}

// EndPlayback closes a playback session
func EndPlayback(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sessionID := c.Params("session_id")
	progress.Engine.EndPlayback(sessionID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Playback session closed!", nil)
}
