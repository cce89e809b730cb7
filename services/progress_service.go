package services

import (
	"errors"

	"gorm.io/gorm"

	"coachpoint_go/models"
)

// ProgressService is the read-side aggregation over the attendance ledger
// and enrollment state. It never mutates anything.
type ProgressService struct {
	db *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

// ProgressSummary is the session-quota view of an enrollment.
type ProgressSummary struct {
	SessionsTotal        int  `json:"sessions_total"`
	SessionsAttended     int  `json:"sessions_attended"`
	RemainingSessions    int  `json:"remaining_sessions"`
	CompletionPercentage int  `json:"completion_percentage"`
	IsCompleted          bool `json:"is_completed"`
}

// AttendanceBreakdown tallies all marked outcomes for an enrollment.
type AttendanceBreakdown struct {
	TotalMarked    int `json:"total_marked"`
	PresentCount   int `json:"present_count"`
	AbsentCount    int `json:"absent_count"`
	LateCount      int `json:"late_count"`
	ExcusedCount   int `json:"excused_count"`
	AttendanceRate int `json:"attendance_rate"`
}

// StudentProgress is the full progress report for one enrollment.
type StudentProgress struct {
	Enrollment       models.Enrollment         `json:"enrollment"`
	Student          StudentSummary            `json:"student"`
	Batch            models.Batch              `json:"batch"`
	Progress         ProgressSummary           `json:"progress"`
	Attendance       AttendanceBreakdown       `json:"attendance"`
	RecentAttendance []models.AttendanceRecord `json:"recent_attendance"`
}

// GetStudentProgress builds the report for one enrollment.
// RecentAttendance is the insertion-order tail (last 10 records by id), not
// the last 10 session dates; a backfilled old session shows up here.
func (s *ProgressService) GetStudentProgress(enrollmentID uint) (*StudentProgress, error) {
	var enrollment models.Enrollment
	if err := s.db.Preload("User").Preload("User.Student").
		Preload("Batch").Preload("Batch.Sport").Preload("Batch.Location").
		First(&enrollment, enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}

	var records []models.AttendanceRecord
	if err := s.db.Where("enrollment_id = ?", enrollmentID).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}

	breakdown := AttendanceBreakdown{TotalMarked: len(records)}
	for _, r := range records {
		switch r.Status {
		case models.AttendancePresent:
			breakdown.PresentCount++
		case models.AttendanceAbsent:
			breakdown.AbsentCount++
		case models.AttendanceLate:
			breakdown.LateCount++
		case models.AttendanceExcused:
			breakdown.ExcusedCount++
		}
	}
	breakdown.AttendanceRate = Percentage(breakdown.PresentCount, breakdown.TotalMarked)

	recent := records
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	// newest insertion first
	reversed := make([]models.AttendanceRecord, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		reversed = append(reversed, recent[i])
	}

	return &StudentProgress{
		Enrollment: enrollment,
		Student: StudentSummary{
			EnrollmentID:     enrollment.ID,
			UserID:           enrollment.UserID,
			Name:             studentDisplayName(enrollment.User),
			Phone:            enrollment.User.Phone,
			SessionsTotal:    enrollment.SessionsTotal,
			SessionsAttended: enrollment.SessionsAttended,
		},
		Batch: enrollment.Batch,
		Progress: ProgressSummary{
			SessionsTotal:        enrollment.SessionsTotal,
			SessionsAttended:     enrollment.SessionsAttended,
			RemainingSessions:    enrollment.SessionsTotal - enrollment.SessionsAttended,
			CompletionPercentage: Percentage(enrollment.SessionsAttended, enrollment.SessionsTotal),
			IsCompleted:          enrollment.SessionsTotal > 0 && enrollment.SessionsAttended >= enrollment.SessionsTotal,
		},
		Attendance:       breakdown,
		RecentAttendance: reversed,
	}, nil
}
