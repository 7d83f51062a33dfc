package main

import (
	"log"

	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
)

// Seeds a small demo catalog so the API has something to serve locally.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	var count int64
	db.Model(&courseModels.Course{}).Count(&count)
	if count > 0 {
		log.Println("Courses already present, skipping seed")
		return
	}

	course := courseModels.Course{
		Title:       "Go for Backend Developers",
		Description: "A hands-on introduction to building HTTP services in Go.",
		Author:      "SkillForge Academy",
		Duration:    6,
		Status:      "ACTIVE",
		IsPublished: true,
	}
	if err := db.Create(&course).Error; err != nil {
		log.Fatalf("Failed to seed course: %v", err)
	}

	lessons := []courseModels.Lesson{
		{
			CourseID:    course.ID,
			Title:       "Why Go?",
			LessonType:  courseModels.LessonTypeText,
			TextContent: "Go is a statically typed, compiled language designed for building reliable network services.",
			OrderIndex:  0,
			IsPublished: true,
		},
		{
			CourseID:        course.ID,
			Title:           "Setting Up Your Environment",
			LessonType:      courseModels.LessonTypeVideo,
			VideoURL:        "https://cdn.example.com/videos/go-setup.mp4",
			DurationSeconds: 420,
			OrderIndex:      1,
			IsPublished:     true,
		},
		{
			CourseID:    course.ID,
			Title:       "Checkpoint: Go Basics",
			LessonType:  courseModels.LessonTypeQuiz,
			OrderIndex:  2,
			IsPublished: true,
		},
	}
	for i := range lessons {
		if err := db.Create(&lessons[i]).Error; err != nil {
			log.Fatalf("Failed to seed lesson: %v", err)
		}
	}

	quiz := courseModels.Quiz{
		LessonID: lessons[2].ID,
		Title:    "Go Basics Checkpoint",
	}
	if err := db.Create(&quiz).Error; err != nil {
		log.Fatalf("Failed to seed quiz: %v", err)
	}

	question := courseModels.QuizQuestion{
		QuizID: quiz.ID,
		Prompt: "Which command compiles and runs a Go program in one step?",
	}
	if err := db.Create(&question).Error; err != nil {
		log.Fatalf("Failed to seed question: %v", err)
	}

	options := []courseModels.QuizOption{
		{QuestionID: question.ID, OptionText: "go run", IsCorrect: true, OrderIndex: 0},
		{QuestionID: question.ID, OptionText: "go vet", OrderIndex: 1},
		{QuestionID: question.ID, OptionText: "go fmt", OrderIndex: 2},
	}
	for i := range options {
		if err := db.Create(&options[i]).Error; err != nil {
			log.Fatalf("Failed to seed option: %v", err)
		}
	}

	log.Printf("Seeded course %q with %d lessons", course.Title, len(lessons))
}
