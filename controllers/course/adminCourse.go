package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateCourse creates a new draft course (admin/instructor)
func CreateCourse(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCreateCourse").(*struct {
		Title        string `json:"title" validate:"required,min=3"`
		Description  string `json:"description"`
		Author       string `json:"author" validate:"required"`
		Duration     int64  `json:"duration" validate:"gte=0"`
		ThumbnailURL string `json:"thumbnail_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Author:       reqData.Author,
		Duration:     reqData.Duration,
		ThumbnailURL: reqData.ThumbnailURL,
		Status:       "DRAFT",
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// PublishCourse flips a draft course live so learners can enroll
func PublishCourse(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsPublished = true
	course.Status = "ACTIVE"
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// CreateLesson adds a lesson to a course (admin/instructor)
func CreateLesson(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCreateLesson").(*struct {
		Title           string `json:"title" validate:"required,min=3"`
		Description     string `json:"description"`
		LessonType      string `json:"lesson_type" validate:"required,oneof=VIDEO TEXT QUIZ"`
		TextContent     string `json:"text_content"`
		VideoURL        string `json:"video_url"`
		DurationSeconds int    `json:"duration_seconds" validate:"gte=0"`
		OrderIndex      int    `json:"order_index" validate:"gte=0"`
		IsPublished     bool   `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reqData.LessonType == courseModels.LessonTypeVideo && reqData.VideoURL == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Video lessons require a video URL!", nil)
	}

	lesson := courseModels.Lesson{
		CourseID:        uint(courseID),
		Title:           reqData.Title,
		Description:     reqData.Description,
		LessonType:      reqData.LessonType,
		TextContent:     reqData.TextContent,
		VideoURL:        reqData.VideoURL,
		DurationSeconds: reqData.DurationSeconds,
		OrderIndex:      reqData.OrderIndex,
		IsPublished:     reqData.IsPublished,
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

// CreateQuiz attaches a quiz with questions and options to a QUIZ lesson
func CreateQuiz(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID := c.Locals("lessonID").(int)

	reqData, ok := c.Locals("validatedCreateQuiz").(*struct {
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
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var lesson courseModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if lesson.LessonType != courseModels.LessonTypeQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quizzes can only be attached to QUIZ lessons!", nil)
	}

	// Every question needs at least one correct option or it is ungradeable.
	for _, q := range reqData.Questions {
		hasCorrect := false
		for _, o := range q.Options {
			if o.IsCorrect {
				hasCorrect = true
				break
			}
		}
		if !hasCorrect {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Every question must have a correct option!", nil)
		}
	}

	quiz := courseModels.Quiz{
		LessonID: uint(lessonID),
		Title:    reqData.Title,
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}
		for qi, q := range reqData.Questions {
			question := courseModels.QuizQuestion{
				QuizID:     quiz.ID,
				Prompt:     q.Prompt,
				OrderIndex: qi,
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
			for oi, o := range q.Options {
				option := courseModels.QuizOption{
					QuestionID: question.ID,
					OptionText: o.OptionText,
					IsCorrect:  o.IsCorrect,
					OrderIndex: oi,
				}
				if err := tx.Create(&option).Error; err != nil {
					return err
				}
			}
		}
		if reqData.Rewards != nil {
			schedule := courseModels.RewardSchedule{
				QuizID:     quiz.ID,
				First:      reqData.Rewards.First,
				Second:     reqData.Rewards.Second,
				Third:      reqData.Rewards.Third,
				FourthPlus: reqData.Rewards.FourthPlus,
			}
			if err := tx.Create(&schedule).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}
