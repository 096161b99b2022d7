package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/controllers"
	"project/backend/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	staffMiddleware := middleware.StaffMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(cfg)

	app.Get("/api/auth/profile", authMiddleware, authController.GetProfile)

	// Course content cache shared by everything that reads or mutates the
	// module/quiz tree of a course.
	contentCache := controllers.NewContentCache()

	// Course routes
	coursesController := controllers.NewCoursesController(db, cfg, contentCache)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.GetAllCourses)
	courses.Get("/:id", coursesController.GetCourse)
	courses.Post("/", staffMiddleware, coursesController.CreateCourse)
	courses.Put("/:id", staffMiddleware, coursesController.UpdateCourse)
	courses.Delete("/:id", adminMiddleware, coursesController.DeleteCourse)
	courses.Post("/:id/submit", staffMiddleware, coursesController.SubmitForReview)

	// Course content aggregation
	contentController := controllers.NewContentController(db, cfg, contentCache)
	courses.Get("/:id/content", contentController.GetCourseContent)

	// Module authoring
	modulesController := controllers.NewModulesController(db, cfg, contentCache)
	courses.Get("/:id/modules", modulesController.GetModulesByCourse)
	courses.Post("/:id/modules/save", staffMiddleware, modulesController.SaveModules)

	// Quiz authoring
	quizzesController := controllers.NewQuizzesController(db, cfg, contentCache)
	courses.Get("/:id/quizzes", quizzesController.GetQuizzesByCourse)
	quizzes := app.Group("/api/quizzes", authMiddleware)
	quizzes.Get("/:id", quizzesController.GetQuiz)
	quizzes.Post("/", staffMiddleware, quizzesController.CreateQuiz)
	quizzes.Put("/:id", staffMiddleware, quizzesController.UpdateQuiz)
	quizzes.Delete("/:id", staffMiddleware, quizzesController.DeleteQuiz)

	// Category routes
	categoriesController := controllers.NewCategoriesController(db, cfg)
	categories := app.Group("/api/categories", authMiddleware)
	categories.Get("/", categoriesController.GetAllCategories)
	categories.Get("/:id/courses", coursesController.GetCoursesByCategory)
	categories.Post("/", adminMiddleware, categoriesController.CreateCategory)
	categories.Put("/:id", adminMiddleware, categoriesController.UpdateCategory)
	categories.Delete("/:id", adminMiddleware, categoriesController.DeleteCategory)

	// Instructor routes
	instructorsController := controllers.NewInstructorsController(db, cfg)
	instructors := app.Group("/api/instructors", authMiddleware)
	instructors.Get("/", instructorsController.GetAllInstructors)
	instructors.Get("/:id", instructorsController.GetInstructor)
	instructors.Put("/:id", adminMiddleware, instructorsController.UpdateInstructor)
	instructors.Post("/:id/deactivate", adminMiddleware, instructorsController.DeactivateInstructor)
	app.Post("/api/instructor-applications", authMiddleware, instructorsController.SubmitApplication)

	// Moderation routes
	moderationController := controllers.NewModerationController(db, cfg, contentCache)
	moderation := app.Group("/api/moderation", authMiddleware, adminMiddleware)
	moderation.Get("/courses", moderationController.GetPendingCourses)
	moderation.Post("/courses/:id/approve", moderationController.ApproveCourse)
	moderation.Post("/courses/:id/reject", moderationController.RejectCourse)
	moderation.Post("/courses/:id/request-changes", moderationController.RequestChangesCourse)
	moderation.Get("/applications", moderationController.GetPendingApplications)
	moderation.Post("/applications/:id/approve", moderationController.ApproveApplication)
	moderation.Post("/applications/:id/reject", moderationController.RejectApplication)
	moderation.Post("/applications/:id/request-changes", moderationController.RequestChangesApplication)

	// Announcement routes
	announcementsController := controllers.NewAnnouncementsController(db, cfg)
	announcements := app.Group("/api/announcements", authMiddleware, adminMiddleware)
	announcements.Get("/", announcementsController.GetAllAnnouncements)
	announcements.Post("/", announcementsController.CreateAnnouncement)
	announcements.Put("/:id", announcementsController.UpdateAnnouncement)
	announcements.Delete("/:id", announcementsController.DeleteAnnouncement)
	announcements.Post("/:id/send", announcementsController.SendAnnouncement)

	// Notification routes
	notificationsController := controllers.NewNotificationsController(db, cfg)
	notifications := app.Group("/api/notifications", authMiddleware)
	notifications.Get("/", notificationsController.GetNotifications)
	notifications.Get("/unread-count", notificationsController.GetUnreadCount)
	notifications.Put("/:id/read", notificationsController.MarkRead)
	notifications.Put("/read-all", notificationsController.MarkAllRead)

	// Analytics routes
	analyticsController := controllers.NewAnalyticsController(db, cfg)
	analytics := app.Group("/api/analytics", authMiddleware, staffMiddleware)
	analytics.Get("/platform", analyticsController.GetPlatformSummary)
	analytics.Get("/courses/:id", analyticsController.GetCourseAnalytics)
	analytics.Get("/categories", analyticsController.GetCategoryDistribution)
	analytics.Get("/export", adminMiddleware, analyticsController.ExportReport)

	// Uploads
	uploadsController := controllers.NewUploadsController(db, cfg)
	app.Post("/api/uploads", authMiddleware, staffMiddleware, uploadsController.Upload)
}
