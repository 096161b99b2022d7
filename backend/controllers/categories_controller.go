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

type CategoriesController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCategoriesController(db *gorm.DB, cfg *config.Config) *CategoriesController {
	return &CategoriesController{DB: db, Cfg: cfg}
}

type categoryWithCount struct {
	models.Category
	CourseCount int64 `json:"courseCount"`
}

// GetAllCategories returns every category with its course count, derived
// by counting courses per category.
func (cc *CategoriesController) GetAllCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := cc.DB.Order("id").Find(&categories).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	result := make([]categoryWithCount, 0, len(categories))
	for _, category := range categories {
		var count int64
		cc.DB.Model(&models.Course{}).Where("category_id = ?", category.ID).Count(&count)
		result = append(result, categoryWithCount{Category: category, CourseCount: count})
	}

	return utils.Success(c, fiber.StatusOK, result)
}

func (cc *CategoriesController) CreateCategory(c *fiber.Ctx) error {
	var input models.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := validation.Check(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	category := models.Category{Title: input.Title, Description: input.Description}
	if err := cc.DB.Create(&category).Error; err != nil {
		return utils.InternalServerError(c, "Could not create category")
	}

	return utils.Created(c, category)
}

func (cc *CategoriesController) UpdateCategory(c *fiber.Ctx) error {
	categoryID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid category ID")
	}

	var input models.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := validation.Check(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var category models.Category
	if err := cc.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Category not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	category.Title = input.Title
	category.Description = input.Description
	if err := cc.DB.Save(&category).Error; err != nil {
		return utils.InternalServerError(c, "Could not update category")
	}

	return utils.Success(c, fiber.StatusOK, category)
}

// DeleteCategory refuses to delete a category that still has courses.
func (cc *CategoriesController) DeleteCategory(c *fiber.Ctx) error {
	categoryID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid category ID")
	}

	var count int64
	cc.DB.Model(&models.Course{}).Where("category_id = ?", categoryID).Count(&count)
	if count > 0 {
		return utils.Conflict(c, "Category still has courses")
	}

	if err := cc.DB.Delete(&models.Category{}, categoryID).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete category")
	}

	return utils.Message(c, fiber.StatusOK, "Category deleted")
}
