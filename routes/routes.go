package routes

import (
	"coachpoint_go/controllers"
	"coachpoint_go/middleware"
	"coachpoint_go/services"
	"coachpoint_go/services/websocket"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App, wsHub *websocket.Hub, healthService *services.HealthService) {
	// Initialize controllers
	authController := &controllers.AuthController{}
	userController := &controllers.UserController{}
	coachController := &controllers.CoachController{}
	catalogController := &controllers.CatalogController{}
	batchController := &controllers.BatchController{}
	enrollmentController := &controllers.EnrollmentController{}
	assignmentController := &controllers.AssignmentController{}
	attendanceController := &controllers.AttendanceController{}
	progressController := &controllers.ProgressController{}
	notificationController := &controllers.NotificationController{}
	logController := &controllers.LogController{}
	healthController := controllers.NewHealthController(healthService)
	wsController := controllers.NewWebSocketController(wsHub)

	// Health routes (no authentication)
	app.Get("/health", healthController.GetHealth)
	app.Get("/health/live", healthController.GetLiveness)

	// API group
	api := app.Group("/api")

	// Authentication routes (no middleware)
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)
	auth.Get("/profile", middleware.JWTMiddleware(), authController.GetProfile)

	// WebSocket route, authenticated via token query parameter
	api.Get("/ws", wsController.UpgradeMiddleware(), wsController.WebSocketHandler())

	// Protected routes (require authentication)
	protected := api.Group("/", middleware.JWTMiddleware(), middleware.LogActivityMiddleware())

	// Profile routes (authenticated users)
	protected.Get("/profile", authController.GetProfile)
	protected.Put("/profile/password", authController.ChangePassword)
	protected.Post("/auth/logout", authController.Logout)

	// User management routes
	users := protected.Group("/users")
	users.Get("/", middleware.RequireCoachOrAdmin(), userController.GetUsers)
	users.Get("/:id", middleware.RequireCoachOrAdmin(), userController.GetUser)
	users.Post("/", middleware.RequireAdmin(), authController.Register)
	users.Put("/:id", middleware.RequireAdmin(), userController.UpdateUser)
	users.Delete("/:id", middleware.RequireAdmin(), userController.DeleteUser)
	users.Post("/:id/avatar", userController.UploadAvatar) // users can upload their own avatar

	// Catalog routes
	sports := protected.Group("/sports")
	sports.Get("/", catalogController.GetSports)
	sports.Post("/", middleware.RequireAdmin(), catalogController.CreateSport)
	sports.Put("/:id", middleware.RequireAdmin(), catalogController.UpdateSport)

	locations := protected.Group("/locations")
	locations.Get("/", catalogController.GetLocations)
	locations.Post("/", middleware.RequireAdmin(), catalogController.CreateLocation)
	locations.Put("/:id", middleware.RequireAdmin(), catalogController.UpdateLocation)

	// Batch management routes
	batches := protected.Group("/batches")
	batches.Get("/", batchController.GetBatches)
	batches.Get("/:id", batchController.GetBatch)
	batches.Post("/", middleware.RequireAdmin(), batchController.CreateBatch)
	batches.Put("/:id", middleware.RequireAdmin(), batchController.UpdateBatch)
	batches.Delete("/:id", middleware.RequireAdmin(), batchController.DeleteBatch)

	// Batch attendance views
	batches.Get("/:id/attendance", middleware.RequireCoachOrAdmin(), attendanceController.GetBatchAttendance)
	batches.Get("/:id/attendance/history", middleware.RequireCoachOrAdmin(), attendanceController.GetBatchAttendanceHistory)
	batches.Get("/:id/attendance/export", middleware.RequireCoachOrAdmin(), attendanceController.ExportBatchAttendanceHistory)

	// Enrollment routes
	enrollments := protected.Group("/enrollments")
	enrollments.Get("/", middleware.RequireCoachOrAdmin(), enrollmentController.GetEnrollments)
	enrollments.Post("/", middleware.RequireAdmin(), enrollmentController.CreateEnrollment)
	enrollments.Put("/:id", middleware.RequireAdmin(), enrollmentController.UpdateEnrollment)
	enrollments.Get("/:id/progress", progressController.GetStudentProgress)

	// Coach assignment routes
	assignments := protected.Group("/assignments")
	assignments.Get("/", middleware.RequireCoachOrAdmin(), assignmentController.GetAssignments)
	assignments.Post("/", middleware.RequireAdmin(), assignmentController.AssignCoachToBatch)
	assignments.Delete("/:id", middleware.RequireAdmin(), assignmentController.RemoveCoachAssignment)

	// Coach routes
	coaches := protected.Group("/coaches")
	coaches.Get("/", middleware.RequireCoachOrAdmin(), coachController.GetAllCoaches)
	coaches.Get("/:id/batches", middleware.RequireCoachOrAdmin(), assignmentController.GetCoachBatches)

	// Attendance marking
	attendance := protected.Group("/attendance")
	attendance.Post("/", middleware.RequireCoachOrAdmin(), attendanceController.MarkAttendance)

	// Notification routes
	notifs := protected.Group("/notifications")
	notifs.Get("/", notificationController.GetNotifications)
	notifs.Patch("/:id/read", notificationController.MarkNotificationRead)
	notifs.Patch("/read-all", notificationController.MarkAllNotificationsRead)

	// Activity log routes (admin only)
	logs := protected.Group("/logs", middleware.RequireAdmin())
	logs.Get("/", logController.GetActivityLogs)
	logs.Get("/archives", logController.GetArchivedLogs)
	logs.Get("/archives/:id/download", logController.DownloadArchivedLogs)

	// WebSocket stats (admin only)
	protected.Get("/ws/stats", middleware.RequireAdmin(), wsController.GetWebSocketStats)
}
