package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)

	// Progress
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetUserProgress)
	courseGroup.Post("/:id/lesson/:lessonId/complete", middleware.JWTMiddleware, validators.CourseID(), validators.LessonID(), controllers.MarkLessonComplete)

	// Video playback sessions
	lessonGroup := app.Group("/lesson")
	lessonGroup.Post("/:lessonId/playback/start", middleware.JWTMiddleware, validators.LessonID(), controllers.StartPlayback)
	lessonGroup.Post("/playback/tick", middleware.JWTMiddleware, validators.PlaybackTick(), controllers.ReportPlayback)
	lessonGroup.Delete("/playback/:session_id", middleware.JWTMiddleware, controllers.EndPlayback)

	// Quizzes
	lessonGroup.Get("/:lessonId/quiz", middleware.JWTMiddleware, validators.LessonID(), controllers.GetQuiz)

	quizGroup := app.Group("/quiz")
	quizGroup.Post("/:quizId/submit", middleware.JWTMiddleware, validators.QuizID(), validators.QuizSubmission(), controllers.SubmitQuiz)
	quizGroup.Get("/:quizId/attempts", middleware.JWTMiddleware, validators.QuizID(), controllers.GetQuizAttempts)
}
