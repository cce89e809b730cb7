package controllers

import (
	"coachpoint_go/database"
	"coachpoint_go/middleware"
	"coachpoint_go/models"
	"coachpoint_go/services"
	"coachpoint_go/services/notifications"
	"coachpoint_go/services/websocket"
	"coachpoint_go/utils"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

type AttendanceController struct{}

// MarkAttendanceRequest represents the attendance marking request body
type MarkAttendanceRequest struct {
	EnrollmentID uint   `json:"enrollment_id" validate:"required"`
	SessionDate  string `json:"session_date" validate:"required"`
	Status       string `json:"status" validate:"required"`
	Notes        string `json:"notes"`
}

// parseSessionDate accepts YYYY-MM-DD or RFC3339 timestamps
func parseSessionDate(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
}

// MarkAttendance records one attendance outcome for an enrollment on a
// session date. Re-marking the same date corrects the existing record.
// Coaches may only mark batches they are actively assigned to.
func (atc *AttendanceController) MarkAttendance(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.EnrollmentID == 0 || req.SessionDate == "" || req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "enrollment_id, session_date and status are required",
		})
	}

	sessionDate, err := parseSessionDate(req.SessionDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if !services.IsValidAttendanceStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid attendance status",
		})
	}

	var enrollment models.Enrollment
	if err := database.DB.First(&enrollment, req.EnrollmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Enrollment not found",
		})
	}

	// Coaches can only mark attendance for their own batches
	if claims.Role == "coach" {
		assigned, err := services.NewAssignmentService(database.GetDB()).
			IsCoachAssigned(claims.UserID, enrollment.BatchID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to verify assignment",
			})
		}
		if !assigned {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You are not assigned to this batch",
			})
		}
	}

	markedBy := claims.Username
	if user, err := middleware.GetCurrentUser(c); err == nil {
		markedBy = utils.DisplayName(*user)
	}

	svc := services.NewAttendanceService(database.GetDB())
	recordID, err := svc.Mark(req.EnrollmentID, sessionDate, req.Status, req.Notes, markedBy)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEnrollmentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Enrollment not found",
			})
		case errors.Is(err, services.ErrInvalidAttendanceStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid attendance status",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to mark attendance",
			})
		}
	}

	day := services.NormalizeSessionDate(sessionDate)

	middleware.LogActivity(c, "CREATE", "attendance_records", recordID, fiber.Map{
		"enrollment_id": req.EnrollmentID,
		"session_date":  day.Format("2006-01-02"),
		"status":        req.Status,
	})

	// Let the student know their attendance was recorded
	n := notifications.QueuedWithData(
		"Attendance Recorded",
		fmt.Sprintf("Your attendance for %s was marked as %s", day.Format("2006-01-02"), req.Status),
		"info",
		fiber.Map{"enrollment_id": req.EnrollmentID, "record_id": recordID},
	)
	if err := notifications.NewService().EnqueueOrCreate([]uint{enrollment.UserID}, n); err != nil {
		middleware.LogActivity(c, "CREATE", "notifications", 0, fiber.Map{"error": err.Error()})
	}

	// Push the change to the batch's assigned coaches and to admins
	var watcherIDs []uint
	database.DB.Model(&models.CoachAssignment{}).
		Where("batch_id = ? AND is_active = ?", enrollment.BatchID, true).
		Pluck("coach_id", &watcherIDs)
	var adminIDs []uint
	database.DB.Model(&models.User{}).
		Where("role = ? AND status = ?", "admin", "active").
		Pluck("id", &adminIDs)
	notifications.BroadcastEvent(append(watcherIDs, adminIDs...), websocket.AttendanceEvent{
		Type:         "attendance_marked",
		BatchID:      enrollment.BatchID,
		EnrollmentID: req.EnrollmentID,
		SessionDate:  day,
		Status:       req.Status,
	})

	return c.JSON(fiber.Map{
		"message":      "Attendance marked successfully",
		"record_id":    recordID,
		"session_date": day.Format("2006-01-02"),
		"status":       req.Status,
	})
}

// GetBatchAttendance returns the batch roster joined against attendance
// records for one session date (default today)
func (atc *AttendanceController) GetBatchAttendance(c *fiber.Ctx) error {
	batchID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch ID",
		})
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		date, err = parseSessionDate(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	svc := services.NewAttendanceService(database.GetDB())
	students, err := svc.GetForBatchOnDate(uint(batchID), date)
	if err != nil {
		if errors.Is(err, services.ErrBatchNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Batch not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch attendance",
		})
	}

	return c.JSON(fiber.Map{
		"batch_id":     uint(batchID),
		"session_date": services.NormalizeSessionDate(date).Format("2006-01-02"),
		"students":     students,
		"total":        len(students),
	})
}

// GetBatchAttendanceHistory returns per-session summaries for a batch,
// newest first. Defaults to the trailing 30 days.
func (atc *AttendanceController) GetBatchAttendanceHistory(c *fiber.Ctx) error {
	batchID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid batch ID",
		})
	}

	var startDate, endDate *time.Time
	if raw := c.Query("start_date"); raw != "" {
		t, err := parseSessionDate(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		startDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := parseSessionDate(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		endDate = &t
	}
	limit, _ := strconv.Atoi(c.Query("limit", "30"))

	svc := services.NewAttendanceService(database.GetDB())
	sessions, err := svc.GetHistory(uint(batchID), startDate, endDate, limit)
	if err != nil {
		if errors.Is(err, services.ErrBatchNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Batch not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch attendance history",
		})
	}

	return c.JSON(fiber.Map{
		"batch_id": uint(batchID),
		"sessions": sessions,
		"total":    len(sessions),
	})
}
