package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/listing"
	"project/backend/models"
	"project/backend/utils"
	"project/backend/validation"
)

type AnnouncementsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAnnouncementsController(db *gorm.DB, cfg *config.Config) *AnnouncementsController {
	return &AnnouncementsController{DB: db, Cfg: cfg}
}

func (ac *AnnouncementsController) GetAllAnnouncements(c *fiber.Ctx) error {
	var announcements []models.Announcement
	if err := ac.DB.Order("id desc").Find(&announcements).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	announcements = listing.Search(announcements, c.Query("search"), func(a models.Announcement) []string {
		return []string{a.Title, a.Message}
	})

	var preds []listing.Predicate[models.Announcement]
	if status := c.Query("status"); status != "" {
		preds = append(preds, func(a models.Announcement) bool { return a.Status == status })
	}
	announcements = listing.Apply(announcements, preds...)

	if announcements == nil {
		announcements = []models.Announcement{}
	}
	return utils.Success(c, fiber.StatusOK, announcements)
}

func (ac *AnnouncementsController) CreateAnnouncement(c *fiber.Ctx) error {
	var input models.AnnouncementInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := validation.Check(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	announcement := models.Announcement{
		Title:          input.Title,
		Message:        input.Message,
		Status:         models.AnnouncementStatusDraft,
		TargetAudience: input.TargetAudience,
	}
	if err := ac.DB.Create(&announcement).Error; err != nil {
		return utils.InternalServerError(c, "Could not create announcement")
	}

	return utils.Created(c, announcement)
}

func (ac *AnnouncementsController) UpdateAnnouncement(c *fiber.Ctx) error {
	announcementID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid announcement ID")
	}

	var input models.AnnouncementInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}
	if fields := validation.Check(input); fields != nil {
		return utils.ValidationError(c, fields)
	}

	var announcement models.Announcement
	if err := ac.DB.First(&announcement, announcementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Announcement not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if announcement.Status == models.AnnouncementStatusSent {
		return utils.Conflict(c, "Announcement has already been sent")
	}

	announcement.Title = input.Title
	announcement.Message = input.Message
	announcement.TargetAudience = input.TargetAudience
	if err := ac.DB.Save(&announcement).Error; err != nil {
		return utils.InternalServerError(c, "Could not update announcement")
	}

	return utils.Success(c, fiber.StatusOK, announcement)
}

func (ac *AnnouncementsController) DeleteAnnouncement(c *fiber.Ctx) error {
	announcementID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid announcement ID")
	}

	if err := ac.DB.Delete(&models.Announcement{}, announcementID).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete announcement")
	}

	return utils.Message(c, fiber.StatusOK, "Announcement deleted")
}

// SendAnnouncement marks a draft announcement as sent and fans it out as a
// notification to every user in the target audience. Sending twice is
// rejected.
func (ac *AnnouncementsController) SendAnnouncement(c *fiber.Ctx) error {
	announcementID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid announcement ID")
	}

	var announcement models.Announcement
	if err := ac.DB.First(&announcement, announcementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Announcement not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}
	if announcement.Status == models.AnnouncementStatusSent {
		return utils.Conflict(c, "Announcement has already been sent")
	}

	var recipients []models.User
	query := ac.DB.Where("active = ?", true)
	switch announcement.TargetAudience {
	case models.AudienceInstructors:
		query = query.Where("role = ?", models.RoleInstructor)
	case models.AudienceLearners:
		query = query.Where("role = ?", models.RoleLearner)
	}
	if err := query.Find(&recipients).Error; err != nil {
		return utils.InternalServerError(c, "Could not query recipients")
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		for _, user := range recipients {
			notification := models.Notification{
				UserID:         user.ID,
				AnnouncementID: announcement.ID,
				Title:          announcement.Title,
				Message:        announcement.Message,
			}
			if err := tx.Create(&notification).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		announcement.Status = models.AnnouncementStatusSent
		announcement.SentAt = &now
		return tx.Save(&announcement).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not send announcement")
	}

	return utils.Message(c, fiber.StatusOK, "Announcement sent")
}
