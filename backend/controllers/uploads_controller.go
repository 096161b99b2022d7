package controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/utils"
)

type UploadsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewUploadsController(db *gorm.DB, cfg *config.Config) *UploadsController {
	return &UploadsController{DB: db, Cfg: cfg}
}

// Upload stores a lesson content file and returns the content URL the
// authoring form attaches to VIDEO, DOCUMENT and LAB lessons.
func (uc *UploadsController) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "Missing file")
	}

	url, err := utils.SaveUploadedFile(uc.Cfg, file)
	if err != nil {
		return utils.InternalServerError(c, "Could not store file")
	}

	return c.JSON(fiber.Map{"contentUrl": url})
}
