package userRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up the learner's own enrollment, points and certificate routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/enrollments", middleware.JWTMiddleware, validators.GetUserEnrollments(), controllers.GetEnrollments)
	userGroup.Get("/points", middleware.JWTMiddleware, controllers.GetPointsAndRank)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
	userGroup.Post("/course/:id/certificate", middleware.JWTMiddleware, validators.CourseID(), controllers.RequestCertificate)
}
