package course

import "gorm.io/gorm"

// Lesson types decide which collaborator records completion:
// VIDEO through the playback guard, TEXT through an explicit
// acknowledgement, QUIZ through a quiz submission.
const (
	LessonTypeVideo = "VIDEO"
	LessonTypeText  = "TEXT"
	LessonTypeQuiz  = "QUIZ"
)

// Lesson represents one ordered unit of course content
type Lesson struct {
	gorm.Model
	CourseID        uint   `json:"course_id" gorm:"index;not null"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	LessonType      string `json:"lesson_type" gorm:"default:'TEXT'"` // VIDEO, TEXT, QUIZ
	TextContent     string `json:"text_content" gorm:"type:text"`     // For TEXT type
	VideoURL        string `json:"video_url"`                         // For VIDEO type
	DurationSeconds int    `json:"duration_seconds" gorm:"default:0"` // Video length in seconds
	OrderIndex      int    `json:"order_index" gorm:"default:0"`      // Order within course
	IsPublished     bool   `json:"is_published" gorm:"default:false"`
	IsDeleted       bool   `gorm:"default:false"`
}
