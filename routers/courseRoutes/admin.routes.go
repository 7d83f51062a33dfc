package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up course authoring and certificate admin routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course")

	adminGroup.Post("/create", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("manage-course"), validators.CreateCourse(), controllers.CreateCourse)
	adminGroup.Post("/:id/publish", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("manage-course"), validators.CourseID(), controllers.PublishCourse)
	adminGroup.Post("/:id/lesson", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("manage-course"), validators.CourseID(), validators.CreateLesson(), controllers.CreateLesson)

	lessonGroup := app.Group("/admin/lesson")
	lessonGroup.Post("/:lessonId/quiz", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("manage-course"), validators.LessonID(), validators.CreateQuiz(), controllers.CreateQuiz)

	certGroup := app.Group("/admin/certificate")
	certGroup.Post("/:requestId/approve", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("approve-certificate"), validators.RequestID(), controllers.ApproveCertificate)
	certGroup.Post("/:requestId/reject", middleware.JWTMiddleware, middleware.CheckPermissionMiddleware("approve-certificate"), validators.RequestID(), validators.RejectCertificate(), controllers.RejectCertificate)
}
