package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"
	"project/backend/validation"
)

type QuizzesController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Content *ContentCache
}

func NewQuizzesController(db *gorm.DB, cfg *config.Config, content *ContentCache) *QuizzesController {
	return &QuizzesController{DB: db, Cfg: cfg, Content: content}
}

func (qc *QuizzesController) GetQuizzesByCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var quizzes []models.Quiz
	err = qc.DB.Preload("Questions", orderQuestions).Preload("Questions.Responses").
		Where("course_id = ?", courseID).Order("id").Find(&quizzes).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if quizzes == nil {
		quizzes = []models.Quiz{}
	}
	for i := range quizzes {
		editorQuiz(&quizzes[i])
	}

	return utils.Success(c, fiber.StatusOK, quizzes)
}

func (qc *QuizzesController) GetQuiz(c *fiber.Ctx) error {
	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	var quiz models.Quiz
	err = qc.DB.Preload("Questions", orderQuestions).Preload("Questions.Responses").
		First(&quiz, quizID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	editorQuiz(&quiz)

	return utils.Success(c, fiber.StatusOK, quiz)
}

// CreateQuiz stores a whole quiz object with its nested questions and
// responses. Question types are collapsed to the stored QCM/TEXTE tag.
func (qc *QuizzesController) CreateQuiz(c *fiber.Ctx) error {
	var input models.QuizInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := validation.Check(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var course models.Course
	if err := qc.DB.First(&course, input.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	quiz := quizFromInput(input)
	if err := qc.DB.Create(&quiz).Error; err != nil {
		return utils.InternalServerError(c, "Could not create quiz")
	}
	qc.Content.Invalidate(quiz.CourseID)

	editorQuiz(&quiz)
	return utils.Created(c, quiz)
}

// UpdateQuiz replaces the quiz and its whole question tree with the
// submitted object.
func (qc *QuizzesController) UpdateQuiz(c *fiber.Ctx) error {
	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	var input models.QuizInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := validation.Check(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var quiz models.Quiz
	if err := qc.DB.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	previousCourseID := quiz.CourseID

	err = qc.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteQuizChildren(tx, quiz.ID); err != nil {
			return err
		}

		quiz.Title = input.Title
		quiz.CourseID = input.CourseID
		quiz.LessonID = input.LessonID
		quiz.DurationMinutes = input.DurationMinutes
		quiz.ScoreMinimum = input.ScoreMinimum
		quiz.Questions = questionsFromInput(input.Questions)
		return tx.Save(&quiz).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not update quiz")
	}
	// moving a quiz to another course leaves both aggregates stale
	qc.Content.Invalidate(previousCourseID)
	qc.Content.Invalidate(quiz.CourseID)

	editorQuiz(&quiz)
	return utils.Success(c, fiber.StatusOK, quiz)
}

func (qc *QuizzesController) DeleteQuiz(c *fiber.Ctx) error {
	quizID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid quiz ID")
	}

	var quiz models.Quiz
	if err := qc.DB.First(&quiz, quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Quiz not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	err = qc.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteQuizChildren(tx, quiz.ID); err != nil {
			return err
		}
		return tx.Delete(&quiz).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete quiz")
	}
	qc.Content.Invalidate(quiz.CourseID)

	return utils.Message(c, fiber.StatusOK, "Quiz deleted")
}

func quizFromInput(input models.QuizInput) models.Quiz {
	return models.Quiz{
		Title:           input.Title,
		CourseID:        input.CourseID,
		LessonID:        input.LessonID,
		DurationMinutes: input.DurationMinutes,
		ScoreMinimum:    input.ScoreMinimum,
		Questions:       questionsFromInput(input.Questions),
	}
}

func questionsFromInput(inputs []models.QuestionInput) []models.Question {
	questions := make([]models.Question, 0, len(inputs))
	for _, q := range inputs {
		question := models.Question{
			Content: q.Content,
			Type:    models.BackendQuestionType(q.Type),
			Points:  q.Points,
		}
		for _, r := range q.Responses {
			question.Responses = append(question.Responses, models.Response{
				Text:      r.Text,
				IsCorrect: r.IsCorrect,
			})
		}
		questions = append(questions, question)
	}
	return questions
}

func deleteQuizChildren(tx *gorm.DB, quizID uint) error {
	var questions []models.Question
	if err := tx.Where("quiz_id = ?", quizID).Find(&questions).Error; err != nil {
		return err
	}
	for _, q := range questions {
		if err := tx.Where("question_id = ?", q.ID).Delete(&models.Response{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error
}

// editorQuiz maps stored question tags back to editor-level types. The
// authored single/multiple distinction is lost on save, so QCM comes back
// as SINGLE_CHOICE.
func editorQuiz(quiz *models.Quiz) {
	if quiz.Questions == nil {
		quiz.Questions = []models.Question{}
	}
	for i := range quiz.Questions {
		quiz.Questions[i].Type = models.EditorQuestionType(quiz.Questions[i].Type)
		if quiz.Questions[i].Responses == nil {
			quiz.Questions[i].Responses = []models.Response{}
		}
	}
}

func orderQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
