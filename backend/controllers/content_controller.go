package controllers

import (
	"errors"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"
)

// CourseContent is the aggregated authoring view of one course: the course
// row, its ordered module tree with nested lessons, and its quizzes.
type CourseContent struct {
	Course  models.Course   `json:"course"`
	Modules []models.Module `json:"modules"`
	Quizzes []models.Quiz   `json:"quizzes"`
}

// ContentCache keeps aggregated course content per course id. Expanding the
// same course twice without an intervening mutation hits the cache instead
// of the database; collapse never discards an entry. Every module or quiz
// mutation for a course must invalidate its entry.
type ContentCache struct {
	mu      sync.Mutex
	entries map[uint]*CourseContent
}

func NewContentCache() *ContentCache {
	return &ContentCache{entries: make(map[uint]*CourseContent)}
}

func (cache *ContentCache) get(courseID uint) (*CourseContent, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	content, ok := cache.entries[courseID]
	return content, ok
}

func (cache *ContentCache) put(courseID uint, content *CourseContent) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.entries[courseID] = content
}

// Invalidate drops the cached content for a course.
func (cache *ContentCache) Invalidate(courseID uint) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	delete(cache.entries, courseID)
}

type ContentController struct {
	DB    *gorm.DB
	Cfg   *config.Config
	Cache *ContentCache
}

func NewContentController(db *gorm.DB, cfg *config.Config, cache *ContentCache) *ContentController {
	return &ContentController{DB: db, Cfg: cfg, Cache: cache}
}

// GetCourseContent assembles the full course -> module -> lesson tree plus
// the course's quizzes. Nothing is cached on failure, so a failed expand
// leaves the course unloaded rather than partially merged.
func (cc *ContentController) GetCourseContent(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	if content, ok := cc.Cache.get(uint(courseID)); ok {
		return utils.Success(c, fiber.StatusOK, content)
	}

	content, err := cc.load(uint(courseID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not load course content")
	}

	cc.Cache.put(uint(courseID), content)
	return utils.Success(c, fiber.StatusOK, content)
}

func (cc *ContentController) load(courseID uint) (*CourseContent, error) {
	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		return nil, err
	}

	var modules []models.Module
	err := cc.DB.Preload("Lessons", orderLessons).
		Where("course_id = ?", courseID).Order("module_order").Find(&modules).Error
	if err != nil {
		return nil, err
	}
	for i := range modules {
		if modules[i].Lessons == nil {
			modules[i].Lessons = []models.Lesson{}
		}
	}
	if modules == nil {
		modules = []models.Module{}
	}

	var quizzes []models.Quiz
	err = cc.DB.Preload("Questions", orderQuestions).Preload("Questions.Responses").
		Where("course_id = ?", courseID).Order("id").Find(&quizzes).Error
	if err != nil {
		return nil, err
	}
	if quizzes == nil {
		quizzes = []models.Quiz{}
	}

	normalizeCourse(&course)

	return &CourseContent{Course: course, Modules: modules, Quizzes: quizzes}, nil
}
