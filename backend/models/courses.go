package models

import "gorm.io/gorm"

// Course statuses. New courses start as DRAFT; moderation moves a course
// from IN_REVIEW to one of the review outcomes.
const (
	CourseStatusDraft            = "DRAFT"
	CourseStatusInReview         = "IN_REVIEW"
	CourseStatusPublished        = "PUBLISHED"
	CourseStatusRejected         = "REJECTED"
	CourseStatusChangesRequested = "CHANGES_REQUESTED"
)

// Lesson types. VIDEO, DOCUMENT and LAB lessons carry a content reference;
// QUIZ lessons point at a quiz instead.
const (
	LessonTypeVideo    = "VIDEO"
	LessonTypeDocument = "DOCUMENT"
	LessonTypeQuiz     = "QUIZ"
	LessonTypeLab      = "LAB"
)

type Course struct {
	gorm.Model
	Title           string   `gorm:"not null" json:"title"`
	Subtitle        string   `json:"subtitle"`
	Description     string   `json:"description"`
	Status          string   `gorm:"default:DRAFT" json:"status"`
	Level           string   `json:"level"` // beginner, intermediate, advanced
	Language        string   `json:"language"`
	Price           float64  `json:"price"`
	CategoryID      uint     `json:"categoryId"`
	InstructorID    uint     `json:"instructorId"`
	Objectives      []string `gorm:"serializer:json" json:"objectives"`
	Features        []string `gorm:"serializer:json" json:"features"`
	DurationSeconds int      `json:"duration"`
	ImageURL        string   `json:"imageUrl"`
	Modules         []Module `json:"modules"`
}

type Module struct {
	gorm.Model
	CourseID    uint     `gorm:"not null;index" json:"courseId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ModuleOrder int      `json:"moduleOrder"`
	Lessons     []Lesson `json:"lessons"`
}

type Lesson struct {
	gorm.Model
	ModuleID        uint   `gorm:"not null;index" json:"moduleId"`
	Title           string `json:"title"`
	LessonOrder     int    `json:"lessonOrder"`
	Type            string `json:"type"`
	ContentURL      string `json:"contentUrl"`
	DurationMinutes int    `json:"duration"`
	QuizID          uint   `json:"quizId"`
}

type Category struct {
	gorm.Model
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
}

// Enrollment links a learner to a course and carries the progress numbers
// the analytics views read back out.
type Enrollment struct {
	gorm.Model
	UserID           uint    `gorm:"not null;index" json:"userId"`
	CourseID         uint    `gorm:"not null;index" json:"courseId"`
	LessonsCompleted int     `json:"lessonsCompleted"`
	HoursSpent       float64 `json:"hoursSpent"`
	CompletionRate   float64 `json:"completionRate"`
	LastAccessed     string  `json:"lastAccessed"`
}
