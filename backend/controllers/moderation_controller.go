package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/middleware"
	"project/backend/models"
	"project/backend/utils"
	"project/backend/validation"
)

// ModerationController implements the approval workflows. Both courses and
// instructor applications follow the same state machine: transitions are
// offered only from the pending state, and reject / request-changes demand
// a non-empty reason. A failed transition leaves the entity in the queue.
type ModerationController struct {
	DB      *gorm.DB
	Cfg     *config.Config
	Content *ContentCache
}

func NewModerationController(db *gorm.DB, cfg *config.Config, content *ContentCache) *ModerationController {
	return &ModerationController{DB: db, Cfg: cfg, Content: content}
}

// GetPendingCourses returns the moderation queue: courses in review.
func (mc *ModerationController) GetPendingCourses(c *fiber.Ctx) error {
	var courses []models.Course
	err := mc.DB.Where("status = ?", models.CourseStatusInReview).Order("updated_at").Find(&courses).Error
	if err != nil {
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

func (mc *ModerationController) ApproveCourse(c *fiber.Ctx) error {
	return mc.decideCourse(c, models.CourseStatusPublished, models.DecisionApproved, "", "Course approved")
}

func (mc *ModerationController) RejectCourse(c *fiber.Ctx) error {
	var input models.DecisionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := validation.Check(input); fields != nil {
		return utils.ValidationError(c, fields)
	}
	return mc.decideCourse(c, models.CourseStatusRejected, models.DecisionRejected, input.Reason, "Course rejected")
}

func (mc *ModerationController) RequestChangesCourse(c *fiber.Ctx) error {
	var input models.DecisionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := validation.Check(input); fields != nil {
		return utils.ValidationError(c, fields)
	}
	return mc.decideCourse(c, models.CourseStatusChangesRequested, models.DecisionChangesRequested, input.Reason, "Changes requested")
}

func (mc *ModerationController) decideCourse(c *fiber.Ctx, newStatus, decision, reason, message string) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := mc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if course.Status != models.CourseStatusInReview {
		return utils.Conflict(c, "Course is not awaiting moderation")
	}

	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		course.Status = newStatus
		if err := tx.Save(&course).Error; err != nil {
			return err
		}
		return tx.Create(&models.ModerationDecision{
			TargetType: "course",
			TargetID:   course.ID,
			Decision:   decision,
			Reason:     reason,
			DecidedBy:  middleware.UserID(c),
		}).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not update course status")
	}
	mc.Content.Invalidate(course.ID)

	return utils.Message(c, fiber.StatusOK, message)
}

// GetPendingApplications returns instructor applications awaiting a decision.
func (mc *ModerationController) GetPendingApplications(c *fiber.Ctx) error {
	var applications []models.InstructorApplication
	err := mc.DB.Where("status = ?", models.ApplicationStatusPending).Order("created_at").Find(&applications).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if applications == nil {
		applications = []models.InstructorApplication{}
	}
	return utils.Success(c, fiber.StatusOK, applications)
}

func (mc *ModerationController) ApproveApplication(c *fiber.Ctx) error {
	return mc.decideApplication(c, models.DecisionApproved, "", "Application approved")
}

func (mc *ModerationController) RejectApplication(c *fiber.Ctx) error {
	var input models.DecisionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := validation.Check(input); fields != nil {
		return utils.ValidationError(c, fields)
	}
	return mc.decideApplication(c, models.DecisionRejected, input.Reason, "Application rejected")
}

func (mc *ModerationController) RequestChangesApplication(c *fiber.Ctx) error {
	var input models.DecisionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := validation.Check(input); fields != nil {
		return utils.ValidationError(c, fields)
	}
	return mc.decideApplication(c, models.DecisionChangesRequested, input.Reason, "Changes requested")
}

func (mc *ModerationController) decideApplication(c *fiber.Ctx, decision, reason, message string) error {
	applicationID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid application ID")
	}

	var application models.InstructorApplication
	if err := mc.DB.First(&application, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Application not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if application.Status != models.ApplicationStatusPending {
		return utils.Conflict(c, "Application has already been decided")
	}

	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		application.Status = decision
		application.DecisionReason = reason
		application.DecidedBy = middleware.UserID(c)
		if err := tx.Save(&application).Error; err != nil {
			return err
		}

		// approving an application promotes the applicant to instructor
		if decision == models.DecisionApproved {
			err := tx.Model(&models.User{}).Where("id = ?", application.UserID).
				Update("role", models.RoleInstructor).Error
			if err != nil {
				return err
			}
		}

		return tx.Create(&models.ModerationDecision{
			TargetType: "application",
			TargetID:   application.ID,
			Decision:   decision,
			Reason:     reason,
			DecidedBy:  middleware.UserID(c),
		}).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not update application status")
	}

	return utils.Message(c, fiber.StatusOK, message)
}
