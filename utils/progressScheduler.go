package utils

import (
	"log"
	"time"

	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
	"lms/services/progress"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[PROGRESS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// purgeStalePlaybackSessions drops playback sessions with no heartbeat
// within the configured idle window.
func purgeStalePlaybackSessions() {
	maxIdle := time.Duration(config.AppConfig.SessionIdleMinutes) * time.Minute
	if purged := progress.Engine.PurgeStaleSessions(maxIdle); purged > 0 {
		logScheduler("Purged stale playback sessions")
	}
}

// reconcileEnrollmentStatuses re-derives enrollment status from the
// progress rows. Normally the two are updated together; this repairs
// drift after crashes or manual data fixes.
func reconcileEnrollmentStatuses() {
	db := database.Database.Db

	var rows []courseModels.CourseProgress
	if err := db.Where("is_deleted = ?", false).Find(&rows).Error; err != nil {
		logScheduler("Error fetching progress rows: " + err.Error())
		return
	}

	fixed := 0
	for _, cp := range rows {
		want := cp.Status
		if want == courseModels.ProgressYetToStart {
			want = "ENROLLED"
		}

		var enrollment courseModels.Enrollment
		err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", cp.UserID, cp.CourseID, false).
			First(&enrollment).Error
		if err != nil {
			continue
		}

		if enrollment.Status != want {
			enrollment.Status = want
			if err := db.Save(&enrollment).Error; err == nil {
				fixed++
			}
		}
	}

	if fixed > 0 {
		logScheduler("Reconciled enrollment statuses")
	}
}

// StartSessionPurgeScheduler runs every 10 minutes
func StartSessionPurgeScheduler(c *cron.Cron) {
	c.AddFunc("*/10 * * * *", func() {
		purgeStalePlaybackSessions()
	})
	logScheduler("Session purge scheduler started - runs every 10 minutes")
}

// StartEnrollmentReconcileScheduler runs hourly
func StartEnrollmentReconcileScheduler(c *cron.Cron) {
	c.AddFunc("0 * * * *", func() {
		reconcileEnrollmentStatuses()
	})
	logScheduler("Enrollment reconcile scheduler started - runs hourly")
}

// InitializeProgressSchedulers initializes all background jobs
func InitializeProgressSchedulers() *cron.Cron {
	logScheduler("Initializing progress schedulers...")

	c := cron.New()

	StartSessionPurgeScheduler(c)
	StartEnrollmentReconcileScheduler(c)

	c.Start()

	logScheduler("All progress schedulers initialized successfully")
	return c
}
