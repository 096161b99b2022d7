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
)

type NotificationsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewNotificationsController(db *gorm.DB, cfg *config.Config) *NotificationsController {
	return &NotificationsController{DB: db, Cfg: cfg}
}

func (nc *NotificationsController) GetNotifications(c *fiber.Ctx) error {
	var notifications []models.Notification
	err := nc.DB.Where("user_id = ?", middleware.UserID(c)).Order("id desc").Find(&notifications).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	return utils.Success(c, fiber.StatusOK, notifications)
}

// GetUnreadCount backs the notification center's 30-second poll.
func (nc *NotificationsController) GetUnreadCount(c *fiber.Ctx) error {
	var count int64
	err := nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", middleware.UserID(c), false).Count(&count).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return c.JSON(fiber.Map{"unread": count})
}

func (nc *NotificationsController) MarkRead(c *fiber.Ctx) error {
	notificationID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid notification ID")
	}

	var notification models.Notification
	err = nc.DB.Where("user_id = ?", middleware.UserID(c)).First(&notification, notificationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Notification not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	notification.Read = true
	if err := nc.DB.Save(&notification).Error; err != nil {
		return utils.InternalServerError(c, "Could not update notification")
	}

	return utils.Message(c, fiber.StatusOK, "Notification marked as read")
}

func (nc *NotificationsController) MarkAllRead(c *fiber.Ctx) error {
	err := nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", middleware.UserID(c), false).
		Update("read", true).Error
	if err != nil {
		return utils.InternalServerError(c, "Could not update notifications")
	}
	return utils.Message(c, fiber.StatusOK, "All notifications marked as read")
}
