package utils

import (
	"log"
	"time"

	"lms/config"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/go-resty/resty/v2"
)

// NotifyCourseCompletion is the completion hook: it emails the learner and
// posts the event to the configured webhook, if any. Runs outside the
// request path, so failures are only logged.
func NotifyCourseCompletion(userID, courseID uint) {
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		log.Printf("Completion notify: user %d not found: %v", userID, err)
		return
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		log.Printf("Completion notify: course %d not found: %v", courseID, err)
		return
	}

	SendCourseCompletionEmail(user.Email, user.Name, course.Title)

	if config.AppConfig.ProgressWebhookURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":        "course.completed",
			"user_id":      userID,
			"course_id":    courseID,
			"course_title": course.Title,
			"completed_at": time.Now().UTC().Format(time.RFC3339),
		}).
		Post(config.AppConfig.ProgressWebhookURL)
	if err != nil {
		log.Printf("Completion webhook failed: %v", err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("Completion webhook returned %d: %s", resp.StatusCode(), resp.String())
	}
}
