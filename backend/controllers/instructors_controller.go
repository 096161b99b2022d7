package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/listing"
	"project/backend/middleware"
	"project/backend/models"
	"project/backend/utils"
	"project/backend/validation"
)

type InstructorsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewInstructorsController(db *gorm.DB, cfg *config.Config) *InstructorsController {
	return &InstructorsController{DB: db, Cfg: cfg}
}

// GetAllInstructors lists instructor accounts with optional in-memory
// search over name and email.
func (ic *InstructorsController) GetAllInstructors(c *fiber.Ctx) error {
	var instructors []models.User
	err := ic.DB.Where("role = ?", models.RoleInstructor).Order("id").Find(&instructors).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	instructors = listing.Search(instructors, c.Query("search"), func(u models.User) []string {
		return []string{u.Username, u.Email, u.FirstName, u.LastName}
	})
	if instructors == nil {
		instructors = []models.User{}
	}

	return utils.Success(c, fiber.StatusOK, instructors)
}

func (ic *InstructorsController) GetInstructor(c *fiber.Ctx) error {
	instructorID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid instructor ID")
	}

	var instructor models.User
	err = ic.DB.Where("role = ?", models.RoleInstructor).First(&instructor, instructorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Instructor not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	// courses taught, for the instructor detail screen
	var courses []models.Course
	ic.DB.Where("instructor_id = ?", instructor.ID).Order("id").Find(&courses)
	if courses == nil {
		courses = []models.Course{}
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"instructor": instructor,
		"courses":    courses,
	})
}

type instructorUpdateInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
}

func (ic *InstructorsController) UpdateInstructor(c *fiber.Ctx) error {
	instructorID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid instructor ID")
	}

	var input instructorUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := validation.Check(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var instructor models.User
	err = ic.DB.Where("role = ?", models.RoleInstructor).First(&instructor, instructorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Instructor not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.FirstName != "" {
		instructor.FirstName = input.FirstName
	}
	if input.LastName != "" {
		instructor.LastName = input.LastName
	}
	if input.Email != "" {
		instructor.Email = input.Email
	}

	if err := ic.DB.Save(&instructor).Error; err != nil {
		return utils.InternalServerError(c, "Could not update instructor")
	}

	return utils.Success(c, fiber.StatusOK, instructor)
}

// DeactivateInstructor flips the active flag instead of deleting; course
// rows keep their instructor reference.
func (ic *InstructorsController) DeactivateInstructor(c *fiber.Ctx) error {
	instructorID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid instructor ID")
	}

	err = ic.DB.Model(&models.User{}).
		Where("id = ? AND role = ?", instructorID, models.RoleInstructor).
		Update("active", false).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not deactivate instructor")
	}

	return utils.Message(c, fiber.StatusOK, "Instructor deactivated")
}

// SubmitApplication files an instructor application for the caller; it
// enters the moderation queue as PENDING.
func (ic *InstructorsController) SubmitApplication(c *fiber.Ctx) error {
	var input models.ApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if input.UserID == 0 {
		input.UserID = middleware.UserID(c)
	}
	if fields := validation.Check(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var pending int64
	ic.DB.Model(&models.InstructorApplication{}).
		Where("user_id = ? AND status = ?", input.UserID, models.ApplicationStatusPending).
		Count(&pending)
	if pending > 0 {
		return utils.Conflict(c, "An application is already pending for this user")
	}

	application := models.InstructorApplication{
		UserID:    input.UserID,
		Biography: input.Biography,
		Expertise: input.Expertise,
		Status:    models.ApplicationStatusPending,
	}
	if err := ic.DB.Create(&application).Error; err != nil {
		return utils.InternalServerError(c, "Could not submit application")
	}

	return utils.Created(c, application)
}
