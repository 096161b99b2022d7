package models

import "gorm.io/gorm"

// Question types as authored in the editor. The backend storage tag is
// coarser: any choice question is stored as QCM, anything else as TEXTE.
// The authored single/multiple distinction is not recoverable after save.
const (
	QuestionTypeSingleChoice   = "SINGLE_CHOICE"
	QuestionTypeMultipleChoice = "MULTIPLE_CHOICE"

	BackendQuestionTypeQCM   = "QCM"
	BackendQuestionTypeTexte = "TEXTE"
)

type Quiz struct {
	gorm.Model
	Title           string     `gorm:"not null" json:"title"`
	CourseID        uint       `gorm:"not null;index" json:"courseId"`
	LessonID        uint       `json:"lessonId"`
	DurationMinutes int        `json:"durationMinutes"`
	ScoreMinimum    int        `json:"scoreMinimum"`
	Questions       []Question `json:"questions"`
}

type Question struct {
	gorm.Model
	QuizID    uint       `gorm:"not null;index" json:"quizId"`
	Content   string     `json:"content"`
	Type      string     `json:"type"` // stored backend tag: QCM or TEXTE
	Points    int        `json:"points"`
	Responses []Response `json:"reponses"`
}

type Response struct {
	gorm.Model
	QuestionID uint   `gorm:"not null;index" json:"questionId"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"isCorrect"`
}

// BackendQuestionType collapses the editor's question type into the stored
// tag: SINGLE_CHOICE and MULTIPLE_CHOICE become QCM, anything else TEXTE.
func BackendQuestionType(editorType string) string {
	switch editorType {
	case QuestionTypeSingleChoice, QuestionTypeMultipleChoice:
		return BackendQuestionTypeQCM
	default:
		return BackendQuestionTypeTexte
	}
}

// EditorQuestionType maps a stored tag back for editing. QCM defaults to
// SINGLE_CHOICE since the original distinction is lost on save.
func EditorQuestionType(backendType string) string {
	if backendType == BackendQuestionTypeQCM {
		return QuestionTypeSingleChoice
	}
	return backendType
}
