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

type ModulesController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Content *ContentCache
}

func NewModulesController(db *gorm.DB, cfg *config.Config, content *ContentCache) *ModulesController {
	return &ModulesController{DB: db, Cfg: cfg, Content: content}
}

func (mc *ModulesController) GetModulesByCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var modules []models.Module
	err = mc.DB.Preload("Lessons", orderLessons).
		Where("course_id = ?", courseID).Order("module_order").Find(&modules).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	for i := range modules {
		if modules[i].Lessons == nil {
			modules[i].Lessons = []models.Lesson{}
		}
	}
	if modules == nil {
		modules = []models.Module{}
	}

	return utils.Success(c, fiber.StatusOK, modules)
}

// SaveModules is the bulk authoring endpoint. The payload carries the full
// desired module list for the course, not a delta: modules without an id
// are created, modules with an id are updated in place, and stored modules
// absent from the payload are deleted, lessons included. Fetching the
// modules right after a save therefore returns exactly the submitted set.
func (mc *ModulesController) SaveModules(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var payload models.SaveModulesRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if payload.CourseID == 0 {
		payload.CourseID = uint(courseID)
	}
	if payload.CourseID != uint(courseID) {
		return utils.BadRequest(c, "Payload course ID does not match URL")
	}
	if fields := validation.Check(payload); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var course models.Course
	if err := mc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		return replaceModules(tx, course.ID, payload.Modules)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Module not found in this course")
		}
		return utils.InternalServerError(c, "Could not save modules")
	}

	mc.Content.Invalidate(course.ID)
	return utils.Message(c, fiber.StatusOK, "Modules saved")
}

// replaceModules reconciles the stored module tree of a course with the
// submitted full list inside one transaction.
func replaceModules(tx *gorm.DB, courseID uint, inputs []models.ModuleInput) error {
	var existing []models.Module
	if err := tx.Where("course_id = ?", courseID).Find(&existing).Error; err != nil {
		return err
	}

	keep := make(map[uint]bool, len(inputs))
	for _, in := range inputs {
		if in.ID != 0 {
			keep[in.ID] = true
		}
	}
	for _, mod := range existing {
		if keep[mod.ID] {
			continue
		}
		if err := tx.Where("module_id = ?", mod.ID).Delete(&models.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Module{}, mod.ID).Error; err != nil {
			return err
		}
	}

	for _, in := range inputs {
		if in.ID == 0 {
			mod := models.Module{
				CourseID:    courseID,
				Title:       in.Title,
				Description: in.Description,
				ModuleOrder: in.ModuleOrder,
			}
			for _, l := range in.Lessons {
				mod.Lessons = append(mod.Lessons, lessonFromInput(l))
			}
			if err := tx.Create(&mod).Error; err != nil {
				return err
			}
			continue
		}

		var mod models.Module
		if err := tx.Where("id = ? AND course_id = ?", in.ID, courseID).First(&mod).Error; err != nil {
			return err
		}
		mod.Title = in.Title
		mod.Description = in.Description
		mod.ModuleOrder = in.ModuleOrder
		if err := tx.Save(&mod).Error; err != nil {
			return err
		}

		if err := replaceLessons(tx, mod.ID, in.Lessons); err != nil {
			return err
		}
	}

	return nil
}

func replaceLessons(tx *gorm.DB, moduleID uint, inputs []models.LessonInput) error {
	var existing []models.Lesson
	if err := tx.Where("module_id = ?", moduleID).Find(&existing).Error; err != nil {
		return err
	}

	keep := make(map[uint]bool, len(inputs))
	for _, in := range inputs {
		if in.ID != 0 {
			keep[in.ID] = true
		}
	}
	for _, lesson := range existing {
		if !keep[lesson.ID] {
			if err := tx.Delete(&models.Lesson{}, lesson.ID).Error; err != nil {
				return err
			}
		}
	}

	for _, in := range inputs {
		if in.ID == 0 {
			lesson := lessonFromInput(in)
			lesson.ModuleID = moduleID
			if err := tx.Create(&lesson).Error; err != nil {
				return err
			}
			continue
		}

		var lesson models.Lesson
		if err := tx.Where("id = ? AND module_id = ?", in.ID, moduleID).First(&lesson).Error; err != nil {
			return err
		}
		lesson.Title = in.Title
		lesson.LessonOrder = in.LessonOrder
		lesson.Type = in.Type
		lesson.ContentURL = in.ContentURL
		lesson.DurationMinutes = in.DurationMinutes
		lesson.QuizID = in.QuizID
		if err := tx.Save(&lesson).Error; err != nil {
			return err
		}
	}

	return nil
}

func lessonFromInput(in models.LessonInput) models.Lesson {
	return models.Lesson{
		Title:           in.Title,
		LessonOrder:     in.LessonOrder,
		Type:            in.Type,
		ContentURL:      in.ContentURL,
		DurationMinutes: in.DurationMinutes,
		QuizID:          in.QuizID,
	}
}
