package services

import (
	"errors"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coachpoint_go/models"
)

// AttendanceService is the single writer of attendance records and of
// Enrollment.SessionsAttended.
type AttendanceService struct {
	db *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{db: db}
}

// NormalizeSessionDate truncates a timestamp to the canonical session-date
// value: midnight UTC of the calendar day. Every ledger read and write goes
// through this, so the daily-lookup key and the history grouping key always
// agree. Callers may pass any time on the day.
func NormalizeSessionDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Percentage returns round(100*part/total). A zero total is defined as 0,
// not an error.
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

// IsValidAttendanceStatus reports whether s is one of the closed set of
// attendance outcomes.
func IsValidAttendanceStatus(s string) bool {
	switch s {
	case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate, models.AttendanceExcused:
		return true
	}
	return false
}

// presenceDelta is the sessions_attended adjustment for a status transition.
// prev is empty on the insert path. Transitions into "present" count +1,
// transitions out of it count -1, everything else is neutral.
func presenceDelta(prev, next string) int {
	wasPresent := prev == models.AttendancePresent
	isPresent := next == models.AttendancePresent
	switch {
	case isPresent && !wasPresent:
		return 1
	case wasPresent && !isPresent:
		return -1
	}
	return 0
}

// Mark records one attendance outcome for (enrollment, session date).
//
// If a record already exists for the key it is corrected in place: status,
// notes and marked_by are overwritten, CreatedAt keeps the original marking
// time, and the existing id is returned. Otherwise a new record is inserted.
//
// SessionsAttended is reconciled on every call with the presence delta of
// the transition, capped to [0, SessionsTotal]; the record itself is written
// even when the counter is already at its bound, so a late correction is
// never lost.
//
// The enrollment row is locked for the duration of the transaction, which
// serializes concurrent marks for the same enrollment; the composite unique
// index on (enrollment_id, session_date) backstops the one-record invariant.
func (s *AttendanceService) Mark(enrollmentID uint, sessionDate time.Time, status, notes, markedBy string) (uint, error) {
	if !IsValidAttendanceStatus(status) {
		return 0, ErrInvalidAttendanceStatus
	}
	day := NormalizeSessionDate(sessionDate)

	var recordID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var enrollment models.Enrollment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&enrollment, enrollmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}

		var record models.AttendanceRecord
		findErr := tx.Where("enrollment_id = ? AND session_date = ?", enrollmentID, day).First(&record).Error

		var delta int
		switch {
		case findErr == nil:
			// Correction path: overwrite in place, CreatedAt untouched.
			delta = presenceDelta(record.Status, status)
			updates := map[string]interface{}{
				"status":    status,
				"notes":     notes,
				"marked_by": markedBy,
			}
			if err := tx.Model(&record).Updates(updates).Error; err != nil {
				return err
			}
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			record = models.AttendanceRecord{
				EnrollmentID: enrollmentID,
				SessionDate:  day,
				Status:       status,
				Notes:        notes,
				MarkedBy:     markedBy,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			delta = presenceDelta("", status)
		default:
			return findErr
		}

		if delta != 0 {
			next := enrollment.SessionsAttended + delta
			if next < 0 {
				next = 0
			}
			if next > enrollment.SessionsTotal {
				next = enrollment.SessionsTotal
			}
			if next != enrollment.SessionsAttended {
				if err := tx.Model(&enrollment).Update("sessions_attended", next).Error; err != nil {
					return err
				}
			}
		}

		recordID = record.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return recordID, nil
}

// StudentAttendance is one roster row in the daily batch view.
type StudentAttendance struct {
	EnrollmentID         uint                     `json:"enrollment_id"`
	UserID               uint                     `json:"user_id"`
	StudentName          string                   `json:"student_name"`
	Record               *models.AttendanceRecord `json:"record"`
	SessionsTotal        int                      `json:"sessions_total"`
	SessionsAttended     int                      `json:"sessions_attended"`
	RemainingSessions    int                      `json:"remaining_sessions"`
	CompletionPercentage int                      `json:"completion_percentage"`
}

// GetForBatchOnDate joins the batch's active enrollments against the
// attendance records for one session date. Record is nil for students not
// yet marked that day.
func (s *AttendanceService) GetForBatchOnDate(batchID uint, sessionDate time.Time) ([]StudentAttendance, error) {
	day := NormalizeSessionDate(sessionDate)

	var batch models.Batch
	if err := s.db.First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}

	var enrollments []models.Enrollment
	if err := s.db.Preload("User").Preload("User.Student").
		Where("batch_id = ? AND enrollment_status = ?", batchID, "active").
		Order("id").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}

	enrollmentIDs := make([]uint, 0, len(enrollments))
	for _, e := range enrollments {
		enrollmentIDs = append(enrollmentIDs, e.ID)
	}

	recordsByEnrollment := make(map[uint]models.AttendanceRecord)
	if len(enrollmentIDs) > 0 {
		var records []models.AttendanceRecord
		if err := s.db.Where("enrollment_id IN ? AND session_date = ?", enrollmentIDs, day).
			Find(&records).Error; err != nil {
			return nil, err
		}
		for _, r := range records {
			recordsByEnrollment[r.EnrollmentID] = r
		}
	}

	result := make([]StudentAttendance, 0, len(enrollments))
	for _, e := range enrollments {
		row := StudentAttendance{
			EnrollmentID:         e.ID,
			UserID:               e.UserID,
			StudentName:          studentDisplayName(e.User),
			SessionsTotal:        e.SessionsTotal,
			SessionsAttended:     e.SessionsAttended,
			RemainingSessions:    e.SessionsTotal - e.SessionsAttended,
			CompletionPercentage: Percentage(e.SessionsAttended, e.SessionsTotal),
		}
		if r, ok := recordsByEnrollment[e.ID]; ok {
			rec := r
			row.Record = &rec
		}
		result = append(result, row)
	}
	return result, nil
}

// AttendanceTally is the per-session outcome summary.
type AttendanceTally struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	Excused int `json:"excused"`
	Total   int `json:"total"`
}

// SessionSummary groups one calendar date's records for a batch.
type SessionSummary struct {
	SessionDate time.Time                 `json:"session_date"`
	Summary     AttendanceTally           `json:"summary"`
	Records     []models.AttendanceRecord `json:"records"`
}

// GetHistory returns per-session summaries for a batch, newest first.
// Bounds default to the trailing 30 days ending now; limit defaults to 30.
func (s *AttendanceService) GetHistory(batchID uint, startDate, endDate *time.Time, limit int) ([]SessionSummary, error) {
	var batch models.Batch
	if err := s.db.First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}

	if limit <= 0 {
		limit = 30
	}
	end := NormalizeSessionDate(time.Now())
	if endDate != nil {
		end = NormalizeSessionDate(*endDate)
	}
	start := end.AddDate(0, 0, -30)
	if startDate != nil {
		start = NormalizeSessionDate(*startDate)
	}

	var records []models.AttendanceRecord
	if err := s.db.
		Joins("JOIN enrollments ON enrollments.id = attendance_records.enrollment_id").
		Where("enrollments.batch_id = ? AND enrollments.enrollment_status = ? AND enrollments.deleted_at IS NULL", batchID, "active").
		Where("attendance_records.session_date BETWEEN ? AND ?", start, end).
		Find(&records).Error; err != nil {
		return nil, err
	}

	return GroupSessions(records, limit), nil
}

// GroupSessions buckets records by their canonical session date, tallies
// outcomes per bucket, sorts buckets newest-first and truncates to limit.
func GroupSessions(records []models.AttendanceRecord, limit int) []SessionSummary {
	byDate := make(map[time.Time]*SessionSummary)
	for _, r := range records {
		day := NormalizeSessionDate(r.SessionDate)
		group, ok := byDate[day]
		if !ok {
			group = &SessionSummary{SessionDate: day}
			byDate[day] = group
		}
		group.Records = append(group.Records, r)
		switch r.Status {
		case models.AttendancePresent:
			group.Summary.Present++
		case models.AttendanceAbsent:
			group.Summary.Absent++
		case models.AttendanceLate:
			group.Summary.Late++
		case models.AttendanceExcused:
			group.Summary.Excused++
		}
		group.Summary.Total++
	}

	sessions := make([]SessionSummary, 0, len(byDate))
	for _, g := range byDate {
		sessions = append(sessions, *g)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].SessionDate.After(sessions[j].SessionDate)
	})
	if len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions
}

// studentDisplayName resolves the best available display name for a user.
func studentDisplayName(u models.User) string {
	if u.Student != nil && (u.Student.FirstName != "" || u.Student.LastName != "") {
		name := u.Student.FirstName
		if u.Student.LastName != "" {
			if name != "" {
				name += " "
			}
			name += u.Student.LastName
		}
		return name
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}
