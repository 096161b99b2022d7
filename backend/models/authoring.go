package models

// Authoring payloads. These are the editor-facing contracts: the save-modules
// endpoint receives the full desired module list for a course (not a delta),
// keyed by presence or absence of ids on nested objects, and the quiz editor
// submits one quiz object with its nested questions and responses.

type SaveModulesRequest struct {
	CourseID   uint          `json:"courseId" validate:"required"`
	CourseType string        `json:"courseType"`
	Modules    []ModuleInput `json:"modules" validate:"dive"`
}

type ModuleInput struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title" validate:"required,min=2"`
	Description string        `json:"description"`
	ModuleOrder int           `json:"moduleOrder" validate:"required,min=1"`
	Lessons     []LessonInput `json:"lessons" validate:"required,min=1,dive"`
}

// LessonInput carries type-conditional requirements enforced by a
// struct-level validation: VIDEO, DOCUMENT and LAB lessons need a contentUrl,
// QUIZ lessons need a quizId.
type LessonInput struct {
	ID              uint   `json:"id"`
	Title           string `json:"title" validate:"required,min=2"`
	LessonOrder     int    `json:"lessonOrder" validate:"required,min=1"`
	Type            string `json:"type" validate:"required,oneof=VIDEO DOCUMENT QUIZ LAB"`
	ContentURL      string `json:"contentUrl"`
	DurationMinutes int    `json:"duration" validate:"omitempty,min=0"`
	QuizID          uint   `json:"quizId"`
}

type QuizInput struct {
	ID              uint            `json:"id"`
	Title           string          `json:"title" validate:"required"`
	CourseID        uint            `json:"courseId" validate:"required"`
	LessonID        uint            `json:"lessonId"`
	DurationMinutes int             `json:"durationMinutes" validate:"required,min=1"`
	ScoreMinimum    int             `json:"scoreMinimum" validate:"min=0,max=100"`
	Questions       []QuestionInput `json:"questions" validate:"required,min=1,dive"`
}

type QuestionInput struct {
	ID        uint            `json:"id"`
	Content   string          `json:"content" validate:"required"`
	Type      string          `json:"type" validate:"required,oneof=SINGLE_CHOICE MULTIPLE_CHOICE"`
	Points    int             `json:"points" validate:"required,min=1"`
	Responses []ResponseInput `json:"reponses" validate:"required,min=2,dive"`
}

type ResponseInput struct {
	ID        uint   `json:"id"`
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type CourseInput struct {
	Title           string   `json:"title" validate:"required,min=2"`
	Subtitle        string   `json:"subtitle"`
	Description     string   `json:"description"`
	Level           string   `json:"level"`
	Language        string   `json:"language"`
	Price           float64  `json:"price" validate:"min=0"`
	CategoryID      uint     `json:"categoryId" validate:"required"`
	InstructorID    uint     `json:"instructorId" validate:"required"`
	Objectives      []string `json:"objectives"`
	Features        []string `json:"features"`
	DurationSeconds int      `json:"duration" validate:"omitempty,min=0"`
}

// CourseUpdateInput is partial: empty fields are left untouched.
type CourseUpdateInput struct {
	Title           string   `json:"title" validate:"omitempty,min=2"`
	Subtitle        string   `json:"subtitle"`
	Description     string   `json:"description"`
	Level           string   `json:"level"`
	Language        string   `json:"language"`
	Price           *float64 `json:"price" validate:"omitempty,min=0"`
	CategoryID      uint     `json:"categoryId"`
	Objectives      []string `json:"objectives"`
	Features        []string `json:"features"`
	DurationSeconds *int     `json:"duration" validate:"omitempty,min=0"`
}

type CategoryInput struct {
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description"`
}

type AnnouncementInput struct {
	Title          string `json:"title" validate:"required,min=2"`
	Message        string `json:"message" validate:"required"`
	TargetAudience string `json:"targetAudience" validate:"required,oneof=ALL INSTRUCTORS LEARNERS"`
}

// DecisionInput backs reject and request-changes actions, both of which
// demand a non-empty free-text reason.
type DecisionInput struct {
	Reason string `json:"reason" validate:"required"`
}

type ApplicationInput struct {
	UserID    uint   `json:"userId" validate:"required"`
	Biography string `json:"biography" validate:"required"`
	Expertise string `json:"expertise" validate:"required"`
}
