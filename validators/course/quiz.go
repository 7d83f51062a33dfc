package courseValidator

import (
	"lms/middleware"
	"lms/services/progress"

	"github.com/gofiber/fiber/v2"
)

// QuizSubmission validates the answer payload for a quiz submission
func QuizSubmission() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Answers []progress.SubmittedAnswer `json:"answers" validate:"required,min=1,dive"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}

		// Duplicate answers for the same question are ambiguous, reject them.
		seen := make(map[uint]bool, len(reqData.Answers))
		for _, a := range reqData.Answers {
			if seen[a.QuestionID] {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Duplicate answer for the same question!", nil)
			}
			seen[a.QuestionID] = true
		}

		c.Locals("validatedQuizSubmission", reqData)
		return c.Next()
	}
}
