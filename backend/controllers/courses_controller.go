package controllers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/listing"
	"project/backend/models"
	"project/backend/utils"
	"project/backend/validation"
)

type CoursesController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Content *ContentCache
}

func NewCoursesController(db *gorm.DB, cfg *config.Config, content *ContentCache) *CoursesController {
	return &CoursesController{DB: db, Cfg: cfg, Content: content}
}

// GetAllCourses returns every course, optionally narrowed by an in-memory
// substring search over title/subtitle/description and by status/category
// filters. The whole list is loaded before filtering; there is no pagination.
func (cc *CoursesController) GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := cc.DB.Order("id").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	courses = listing.Search(courses, c.Query("search"), func(course models.Course) []string {
		return []string{course.Title, course.Subtitle, course.Description}
	})

	var preds []listing.Predicate[models.Course]
	if status := c.Query("status"); status != "" {
		preds = append(preds, func(course models.Course) bool { return course.Status == status })
	}
	if categoryID, err := strconv.Atoi(c.Query("categoryId")); err == nil && categoryID > 0 {
		preds = append(preds, func(course models.Course) bool { return course.CategoryID == uint(categoryID) })
	}
	courses = listing.Apply(courses, preds...)

	if courses == nil {
		courses = []models.Course{}
	}
	for i := range courses {
		normalizeCourse(&courses[i])
	}
	return utils.Success(c, fiber.StatusOK, courses)
}

func (cc *CoursesController) GetCoursesByCategory(c *fiber.Ctx) error {
	categoryID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid category ID")
	}

	var courses []models.Course
	if err := cc.DB.Where("category_id = ?", categoryID).Order("id").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if courses == nil {
		courses = []models.Course{}
	}
	for i := range courses {
		normalizeCourse(&courses[i])
	}
	return utils.Success(c, fiber.StatusOK, courses)
}

func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	err = cc.DB.Preload("Modules", orderModules).Preload("Modules.Lessons", orderLessons).
		First(&course, courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	normalizeCourse(&course)

	return utils.Success(c, fiber.StatusOK, course)
}

// CreateCourse accepts either a JSON body or a multipart form with a
// "course" JSON field plus an optional "image" file. New courses always
// start as DRAFT with an empty module list.
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	input, err := cc.parseCourseBody(c)
	if err != nil {
		return utils.BadRequest(c, "Cannot parse course data")
	}
	if fields := validation.Check(*input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	course := models.Course{
		Title:           input.Title,
		Subtitle:        input.Subtitle,
		Description:     input.Description,
		Status:          models.CourseStatusDraft,
		Level:           input.Level,
		Language:        input.Language,
		Price:           input.Price,
		CategoryID:      input.CategoryID,
		InstructorID:    input.InstructorID,
		Objectives:      input.Objectives,
		Features:        input.Features,
		DurationSeconds: input.DurationSeconds,
		Modules:         []models.Module{},
	}

	if file, ferr := c.FormFile("image"); ferr == nil && file != nil {
		url, uerr := utils.SaveUploadedFile(cc.Cfg, file)
		if uerr != nil {
			return utils.InternalServerError(c, "Could not store course image")
		}
		course.ImageURL = url
	}

	if err := cc.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}
	normalizeCourse(&course)

	return utils.Created(c, course)
}

// UpdateCourse applies a partial update; empty fields are left untouched.
func (cc *CoursesController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var input models.CourseUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := validation.Check(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Subtitle != "" {
		course.Subtitle = input.Subtitle
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Level != "" {
		course.Level = input.Level
	}
	if input.Language != "" {
		course.Language = input.Language
	}
	if input.Price != nil {
		course.Price = *input.Price
	}
	if input.CategoryID != 0 {
		course.CategoryID = input.CategoryID
	}
	if input.Objectives != nil {
		course.Objectives = input.Objectives
	}
	if input.Features != nil {
		course.Features = input.Features
	}
	if input.DurationSeconds != nil {
		course.DurationSeconds = *input.DurationSeconds
	}

	if file, ferr := c.FormFile("image"); ferr == nil && file != nil {
		url, uerr := utils.SaveUploadedFile(cc.Cfg, file)
		if uerr != nil {
			return utils.InternalServerError(c, "Could not store course image")
		}
		course.ImageURL = url
	}

	if err := cc.DB.Save(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}
	cc.Content.Invalidate(course.ID)

	return utils.Success(c, fiber.StatusOK, course)
}

func (cc *CoursesController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	if err := cc.DB.Delete(&models.Course{}, courseID).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}
	cc.Content.Invalidate(uint(courseID))

	return utils.Message(c, fiber.StatusOK, "Course deleted")
}

// SubmitForReview moves a DRAFT or CHANGES_REQUESTED course into the
// moderation queue.
func (cc *CoursesController) SubmitForReview(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if course.Status != models.CourseStatusDraft && course.Status != models.CourseStatusChangesRequested {
		return utils.Conflict(c, "Only draft courses can be submitted for review")
	}

	course.Status = models.CourseStatusInReview
	if err := cc.DB.Save(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not submit course")
	}
	cc.Content.Invalidate(course.ID)

	return utils.Message(c, fiber.StatusOK, "Course submitted for review")
}

func (cc *CoursesController) parseCourseBody(c *fiber.Ctx) (*models.CourseInput, error) {
	var input models.CourseInput
	if raw := c.FormValue("course"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &input); err != nil {
			return nil, err
		}
		return &input, nil
	}
	if err := c.BodyParser(&input); err != nil {
		return nil, err
	}
	return &input, nil
}

func orderModules(db *gorm.DB) *gorm.DB {
	return db.Order("module_order")
}

func orderLessons(db *gorm.DB) *gorm.DB {
	return db.Order("lesson_order")
}

// normalizeCourse replaces nil child slices with empty ones so the clients
// never see null where a list belongs.
func normalizeCourse(course *models.Course) {
	if course.Modules == nil {
		course.Modules = []models.Module{}
	}
	for i := range course.Modules {
		if course.Modules[i].Lessons == nil {
			course.Modules[i].Lessons = []models.Lesson{}
		}
	}
	if course.Objectives == nil {
		course.Objectives = []string{}
	}
	if course.Features == nil {
		course.Features = []string{}
	}
}
