package controllers

import (
	"coachpoint_go/database"
	"coachpoint_go/middleware"
	"coachpoint_go/models"
	"coachpoint_go/services"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// ExportBatchAttendanceHistory writes the batch's attendance history to an
// xlsx workbook with a per-session summary sheet and a raw records sheet.
func (atc *AttendanceController) ExportBatchAttendanceHistory(c *fiber.Ctx) error {
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
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		startDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := parseSessionDate(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		endDate = &t
	}
	limit, _ := strconv.Atoi(c.Query("limit", "90"))

	var batch models.Batch
	if err := database.DB.Preload("Sport").Preload("Location").First(&batch, uint(batchID)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}

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

	// Student names keyed by enrollment for the records sheet
	var enrollments []models.Enrollment
	if err := database.DB.Preload("User").Preload("User.Student").
		Where("batch_id = ?", uint(batchID)).
		Find(&enrollments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch enrollments",
		})
	}
	namesByEnrollment := make(map[uint]string, len(enrollments))
	for _, e := range enrollments {
		name := e.User.FullName
		if e.User.Student != nil && (e.User.Student.FirstName != "" || e.User.Student.LastName != "") {
			name = fmt.Sprintf("%s %s", e.User.Student.FirstName, e.User.Student.LastName)
		}
		if name == "" {
			name = e.User.Username
		}
		namesByEnrollment[e.ID] = name
	}

	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "Sessions"
	f.SetSheetName(f.GetSheetName(0), summarySheet)

	summaryHeader := []string{"Session Date", "Present", "Absent", "Late", "Excused", "Total"}
	for i, h := range summaryHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(summarySheet, cell, h)
	}
	for row, s := range sessions {
		values := []interface{}{
			s.SessionDate.Format("2006-01-02"),
			s.Summary.Present,
			s.Summary.Absent,
			s.Summary.Late,
			s.Summary.Excused,
			s.Summary.Total,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(summarySheet, cell, v)
		}
	}

	recordsSheet := "Records"
	if _, err := f.NewSheet(recordsSheet); err == nil {
		recordsHeader := []string{"Session Date", "Student", "Status", "Marked By", "Notes"}
		for i, h := range recordsHeader {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(recordsSheet, cell, h)
		}
		row := 2
		for _, s := range sessions {
			for _, r := range s.Records {
				values := []interface{}{
					s.SessionDate.Format("2006-01-02"),
					namesByEnrollment[r.EnrollmentID],
					r.Status,
					r.MarkedBy,
					r.Notes,
				}
				for col, v := range values {
					cell, _ := excelize.CoordinatesToCellName(col+1, row)
					f.SetCellValue(recordsSheet, cell, v)
				}
				row++
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate export",
		})
	}

	middleware.LogActivity(c, "EXPORT", "attendance_records", uint(batchID), fiber.Map{
		"sessions": len(sessions),
	})

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", batch.Name, time.Now().Format("2006-01-02"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}
