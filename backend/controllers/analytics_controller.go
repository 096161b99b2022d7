package controllers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"
)

// AnalyticsController serves the pre-aggregated metrics behind the admin
// dashboards. Only sums and percentages are computed; the charts render
// these numbers as-is.
type AnalyticsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAnalyticsController(db *gorm.DB, cfg *config.Config) *AnalyticsController {
	return &AnalyticsController{DB: db, Cfg: cfg}
}

func (ac *AnalyticsController) GetPlatformSummary(c *fiber.Ctx) error {
	summary, err := ac.platformSummary()
	if err != nil {
		return utils.InternalServerError(c, "Could not compute platform analytics")
	}
	return utils.Success(c, fiber.StatusOK, summary)
}

func (ac *AnalyticsController) platformSummary() (*models.PlatformSummary, error) {
	var summary models.PlatformSummary

	if err := ac.DB.Model(&models.Course{}).Count(&summary.TotalCourses).Error; err != nil {
		return nil, err
	}
	ac.DB.Model(&models.Course{}).Where("status = ?", models.CourseStatusPublished).Count(&summary.PublishedCourses)
	ac.DB.Model(&models.Course{}).Where("status = ?", models.CourseStatusInReview).Count(&summary.PendingCourses)
	ac.DB.Model(&models.User{}).Where("role = ?", models.RoleInstructor).Count(&summary.TotalInstructors)
	ac.DB.Model(&models.User{}).Where("role = ?", models.RoleLearner).Count(&summary.TotalLearners)
	ac.DB.Model(&models.Enrollment{}).Count(&summary.TotalEnrollments)

	if summary.TotalCourses > 0 {
		summary.PublishedRate = float64(summary.PublishedCourses) / float64(summary.TotalCourses) * 100
	}

	var enrollments []models.Enrollment
	if err := ac.DB.Find(&enrollments).Error; err != nil {
		return nil, err
	}
	var completion float64
	for _, e := range enrollments {
		completion += e.CompletionRate
		summary.TotalHoursSpent += e.HoursSpent
	}
	if len(enrollments) > 0 {
		summary.AvgCompletion = completion / float64(len(enrollments))
	}

	return &summary, nil
}

// GetCourseAnalytics returns per-learner progress rows for one course.
func (ac *AnalyticsController) GetCourseAnalytics(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var enrollments []models.Enrollment
	if err := ac.DB.Where("course_id = ?", courseID).Find(&enrollments).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	rows := make([]models.CourseLearnerRow, 0, len(enrollments))
	for _, e := range enrollments {
		var user models.User
		if err := ac.DB.First(&user, e.UserID).Error; err != nil {
			continue
		}
		rows = append(rows, models.CourseLearnerRow{
			UserID:           user.ID,
			Username:         user.Username,
			LessonsCompleted: e.LessonsCompleted,
			HoursSpent:       e.HoursSpent,
			CompletionRate:   e.CompletionRate,
			LastAccessed:     e.LastAccessed,
		})
	}

	return utils.Success(c, fiber.StatusOK, rows)
}

// GetCategoryDistribution returns the course count per category.
func (ac *AnalyticsController) GetCategoryDistribution(c *fiber.Ctx) error {
	counts, err := ac.categoryDistribution()
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	return utils.Success(c, fiber.StatusOK, counts)
}

func (ac *AnalyticsController) categoryDistribution() ([]models.CategoryCount, error) {
	var categories []models.Category
	if err := ac.DB.Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}

	counts := make([]models.CategoryCount, 0, len(categories))
	for _, category := range categories {
		var n int64
		ac.DB.Model(&models.Course{}).Where("category_id = ?", category.ID).Count(&n)
		counts = append(counts, models.CategoryCount{
			CategoryID: category.ID,
			Title:      category.Title,
			Courses:    n,
		})
	}
	return counts, nil
}

// ExportReport builds an XLSX workbook with the platform summary and the
// per-category distribution, for download from the analytics dashboard.
func (ac *AnalyticsController) ExportReport(c *fiber.Ctx) error {
	summary, err := ac.platformSummary()
	if err != nil {
		return utils.InternalServerError(c, "Could not compute platform analytics")
	}
	counts, err := ac.categoryDistribution()
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Platform"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return utils.InternalServerError(c, "Could not build report")
	}
	platformRows := [][]interface{}{
		{"Metric", "Value"},
		{"Total courses", summary.TotalCourses},
		{"Published courses", summary.PublishedCourses},
		{"Courses in review", summary.PendingCourses},
		{"Instructors", summary.TotalInstructors},
		{"Learners", summary.TotalLearners},
		{"Enrollments", summary.TotalEnrollments},
		{"Published rate (%)", summary.PublishedRate},
		{"Average completion (%)", summary.AvgCompletion},
		{"Total hours spent", summary.TotalHoursSpent},
	}
	for i, row := range platformRows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return utils.InternalServerError(c, "Could not build report")
		}
	}

	catSheet := "Categories"
	if _, err := f.NewSheet(catSheet); err != nil {
		return utils.InternalServerError(c, "Could not build report")
	}
	header := []interface{}{"Category", "Courses"}
	if err := f.SetSheetRow(catSheet, "A1", &header); err != nil {
		return utils.InternalServerError(c, "Could not build report")
	}
	for i, count := range counts {
		row := []interface{}{count.Title, count.Courses}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(catSheet, cell, &row); err != nil {
			return utils.InternalServerError(c, "Could not build report")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return utils.InternalServerError(c, "Could not build report")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="platform-report.xlsx"`)
	return c.Send(buf.Bytes())
}
