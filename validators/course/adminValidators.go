package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse validates the course creation body
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title" validate:"required,min=3"`
			Description  string `json:"description"`
			Author       string `json:"author" validate:"required"`
			Duration     int64  `json:"duration" validate:"gte=0"`
			ThumbnailURL string `json:"thumbnail_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCreateCourse", reqData)
		return c.Next()
	}
}

// CreateLesson validates the lesson creation body
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title           string `json:"title" validate:"required,min=3"`
			Description     string `json:"description"`
			LessonType      string `json:"lesson_type" validate:"required,oneof=VIDEO TEXT QUIZ"`
			TextContent     string `json:"text_content"`
			VideoURL        string `json:"video_url"`
			DurationSeconds int    `json:"duration_seconds" validate:"gte=0"`
			OrderIndex      int    `json:"order_index" validate:"gte=0"`
			IsPublished     bool   `json:"is_published"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCreateLesson", reqData)
		return c.Next()
	}
}

// CreateQuiz validates the quiz authoring body
func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title     string `json:"title" validate:"required,min=3"`
			Questions []struct {
				Prompt  string `json:"prompt" validate:"required"`
				Options []struct {
					OptionText string `json:"option_text" validate:"required"`
					IsCorrect  bool   `json:"is_correct"`
				} `json:"options" validate:"required,min=2,dive"`
			} `json:"questions" validate:"required,min=1,dive"`
			Rewards *struct {
				First      int `json:"first" validate:"gte=0"`
				Second     int `json:"second" validate:"gte=0"`
				Third      int `json:"third" validate:"gte=0"`
				FourthPlus int `json:"fourth_plus" validate:"gte=0"`
			} `json:"rewards"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCreateQuiz", reqData)
		return c.Next()
	}
}

// RejectCertificate validates the rejection reason body
func RejectCertificate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Reason string `json:"reason" validate:"required"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		c.Locals("validatedCertificateReject", reqData)
		return c.Next()
	}
}
