//go:build integration

package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"coachpoint_go/models"
)

// Run with: TEST_DATABASE_DSN="user:pass@tcp(localhost:3306)/coachpoint_test?charset=utf8mb4&parseTime=True&loc=UTC" go test -tags integration ./services/
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Location{}, &models.Sport{}, &models.User{},
		&models.Student{}, &models.Coach{}, &models.Batch{},
		&models.Enrollment{}, &models.CoachAssignment{}, &models.AttendanceRecord{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	admin      models.User
	coach      models.User
	student    models.User
	batch      models.Batch
	enrollment models.Enrollment
}

func seedFixture(t *testing.T, db *gorm.DB, sessionsTotal int) fixture {
	t.Helper()
	suffix := fmt.Sprintf("%d", time.Now().UnixNano())

	location := models.Location{Name: "Test Ground " + suffix, Code: "tg_" + suffix}
	if err := db.Create(&location).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}
	sport := models.Sport{Name: "Sport " + suffix, Code: "sp_" + suffix}
	if err := db.Create(&sport).Error; err != nil {
		t.Fatalf("seed sport: %v", err)
	}

	f := fixture{
		admin:   models.User{Username: "admin_" + suffix, Password: "x", Email: "admin_" + suffix + "@test.local", Role: "admin", Status: "active"},
		coach:   models.User{Username: "coach_" + suffix, Password: "x", Email: "coach_" + suffix + "@test.local", Role: "coach", Status: "active"},
		student: models.User{Username: "student_" + suffix, Password: "x", Email: "student_" + suffix + "@test.local", Role: "student", Status: "active"},
	}
	for _, u := range []*models.User{&f.admin, &f.coach, &f.student} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	f.batch = models.Batch{
		SportID:     sport.ID,
		LocationID:  location.ID,
		Name:        "Batch " + suffix,
		MaxStudents: 20,
		Status:      "active",
	}
	if err := db.Create(&f.batch).Error; err != nil {
		t.Fatalf("seed batch: %v", err)
	}

	f.enrollment = models.Enrollment{
		UserID:           f.student.ID,
		BatchID:          f.batch.ID,
		EnrollmentStatus: "active",
		SessionsTotal:    sessionsTotal,
	}
	if err := db.Create(&f.enrollment).Error; err != nil {
		t.Fatalf("seed enrollment: %v", err)
	}
	return f
}

func reloadEnrollment(t *testing.T, db *gorm.DB, id uint) models.Enrollment {
	t.Helper()
	var e models.Enrollment
	if err := db.First(&e, id).Error; err != nil {
		t.Fatalf("reload enrollment: %v", err)
	}
	return e
}

func TestAssignDuplicateRejected(t *testing.T) {
	db := openTestDB(t)
	f := seedFixture(t, db, 24)
	svc := NewAssignmentService(db)

	if _, err := svc.Assign(f.coach.ID, f.batch.ID, f.admin.ID, "first"); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if _, err := svc.Assign(f.coach.ID, f.batch.ID, f.admin.ID, "again"); err != ErrDuplicateAssignment {
		t.Fatalf("expected ErrDuplicateAssignment, got %v", err)
	}
}

func TestAssignRejectsNonCoach(t *testing.T) {
	db := openTestDB(t)
	f := seedFixture(t, db, 24)
	svc := NewAssignmentService(db)

	if _, err := svc.Assign(f.student.ID, f.batch.ID, f.admin.ID, ""); err != ErrInvalidCoach {
		t.Fatalf("expected ErrInvalidCoach for student user, got %v", err)
	}
	if _, err := svc.Assign(999999999, f.batch.ID, f.admin.ID, ""); err != ErrInvalidCoach {
		t.Fatalf("expected ErrInvalidCoach for unknown user, got %v", err)
	}
}

func TestRemoveIsIdempotentAndAllowsReassign(t *testing.T) {
	db := openTestDB(t)
	f := seedFixture(t, db, 24)
	svc := NewAssignmentService(db)

	id, err := svc.Assign(f.coach.ID, f.batch.ID, f.admin.ID, "")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := svc.Remove(id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.Remove(id); err != nil {
		t.Fatalf("second remove should be a no-op, got %v", err)
	}

	assigned, err := svc.IsCoachAssigned(f.coach.ID, f.batch.ID)
	if err != nil {
		t.Fatalf("IsCoachAssigned: %v", err)
	}
	if assigned {
		t.Fatalf("expected coach unassigned after remove")
	}

	// The pair can be re-established; a fresh row keeps the history intact.
	id2, err := svc.Assign(f.coach.ID, f.batch.ID, f.admin.ID, "back again")
	if err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if id2 == id {
		t.Fatalf("expected a new assignment row, got the old id %d", id)
	}

	var rows int64
	if err := db.Model(&models.CoachAssignment{}).
		Where("coach_id = ? AND batch_id = ?", f.coach.ID, f.batch.ID).
		Count(&rows).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 2 {
		t.Fatalf("expected 2 audit rows, got %d", rows)
	}
}

func TestMarkUpsertsSingleRecordPerDay(t *testing.T) {
	db := openTestDB(t)
	f := seedFixture(t, db, 24)
	svc := NewAttendanceService(db)

	day := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	id1, err := svc.Mark(f.enrollment.ID, day, "present", "", "coach_a")
	if err != nil {
		t.Fatalf("first mark: %v", err)
	}

	// Same calendar day at a different clock time corrects, not duplicates.
	later := time.Date(2026, 6, 15, 18, 30, 0, 0, time.UTC)
	id2, err := svc.Mark(f.enrollment.ID, later, "late", "came late", "coach_b")
	if err != nil {
		t.Fatalf("correction: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("expected the same record corrected, got ids %d and %d", id1, id2)
	}

	var count int64
	if err := db.Model(&models.AttendanceRecord{}).
		Where("enrollment_id = ?", f.enrollment.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	var record models.AttendanceRecord
	if err := db.First(&record, id1).Error; err != nil {
		t.Fatalf("reload record: %v", err)
	}
	if record.Status != "late" || record.Notes != "came late" || record.MarkedBy != "coach_b" {
		t.Fatalf("correction not applied: %+v", record)
	}
}

func TestMarkAdjustsSessionsAttended(t *testing.T) {
	db := openTestDB(t)
	f := seedFixture(t, db, 24)
	svc := NewAttendanceService(db)

	day := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Mark(f.enrollment.ID, day, "present", "", "coach"); err != nil {
		t.Fatalf("mark present: %v", err)
	}
	if got := reloadEnrollment(t, db, f.enrollment.ID).SessionsAttended; got != 1 {
		t.Fatalf("after present: expected 1, got %d", got)
	}

	if _, err := svc.Mark(f.enrollment.ID, day, "absent", "", "coach"); err != nil {
		t.Fatalf("correct to absent: %v", err)
	}
	if got := reloadEnrollment(t, db, f.enrollment.ID).SessionsAttended; got != 0 {
		t.Fatalf("after correction to absent: expected 0, got %d", got)
	}

	if _, err := svc.Mark(f.enrollment.ID, day, "present", "", "coach"); err != nil {
		t.Fatalf("correct back to present: %v", err)
	}
	if got := reloadEnrollment(t, db, f.enrollment.ID).SessionsAttended; got != 1 {
		t.Fatalf("after correction back: expected 1, got %d", got)
	}

	// Neutral transition leaves the counter alone.
	if _, err := svc.Mark(f.enrollment.ID, day, "late", "", "coach"); err != nil {
		t.Fatalf("correct to late: %v", err)
	}
	if _, err := svc.Mark(f.enrollment.ID, day, "excused", "", "coach"); err != nil {
		t.Fatalf("correct to excused: %v", err)
	}
	if got := reloadEnrollment(t, db, f.enrollment.ID).SessionsAttended; got != 0 {
		t.Fatalf("late then excused should end at 0, got %d", got)
	}
}

func TestMarkCapsCounterAtQuota(t *testing.T) {
	db := openTestDB(t)
	f := seedFixture(t, db, 2)
	svc := NewAttendanceService(db)

	for d := 1; d <= 4; d++ {
		day := time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
		if _, err := svc.Mark(f.enrollment.ID, day, "present", "", "coach"); err != nil {
			t.Fatalf("mark day %d: %v", d, err)
		}
	}

	e := reloadEnrollment(t, db, f.enrollment.ID)
	if e.SessionsAttended != 2 {
		t.Fatalf("expected counter capped at 2, got %d", e.SessionsAttended)
	}

	// Records past the cap are still written; only the counter saturates.
	var count int64
	if err := db.Model(&models.AttendanceRecord{}).
		Where("enrollment_id = ?", f.enrollment.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4 records, got %d", count)
	}
}

func TestMarkUnknownEnrollment(t *testing.T) {
	db := openTestDB(t)
	svc := NewAttendanceService(db)

	if _, err := svc.Mark(999999999, time.Now(), "present", "", "coach"); err != ErrEnrollmentNotFound {
		t.Fatalf("expected ErrEnrollmentNotFound, got %v", err)
	}
}

func TestProgressZeroQuotaEnrollment(t *testing.T) {
	db := openTestDB(t)
	f := seedFixture(t, db, 0)
	svc := NewProgressService(db)

	report, err := svc.GetStudentProgress(f.enrollment.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if report.Progress.CompletionPercentage != 0 {
		t.Fatalf("expected 0%% for zero quota, got %d", report.Progress.CompletionPercentage)
	}
	if report.Progress.IsCompleted {
		t.Fatalf("zero-quota enrollment must not read as completed")
	}
}

func TestProgressBreakdownAndRecentTail(t *testing.T) {
	db := openTestDB(t)
	f := seedFixture(t, db, 24)
	attendance := NewAttendanceService(db)
	progress := NewProgressService(db)

	statuses := []string{"present", "absent", "present", "late", "present", "excused"}
	for d, status := range statuses {
		day := time.Date(2026, 6, d+1, 0, 0, 0, 0, time.UTC)
		if _, err := attendance.Mark(f.enrollment.ID, day, status, "", "coach"); err != nil {
			t.Fatalf("mark day %d: %v", d+1, err)
		}
	}

	report, err := progress.GetStudentProgress(f.enrollment.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}

	b := report.Attendance
	if b.TotalMarked != 6 || b.PresentCount != 3 || b.AbsentCount != 1 || b.LateCount != 1 || b.ExcusedCount != 1 {
		t.Fatalf("unexpected breakdown: %+v", b)
	}
	if b.AttendanceRate != 50 {
		t.Fatalf("expected attendance rate 50, got %d", b.AttendanceRate)
	}
	if report.Progress.SessionsAttended != 3 {
		t.Fatalf("expected 3 sessions attended, got %d", report.Progress.SessionsAttended)
	}
	if len(report.RecentAttendance) != 6 {
		t.Fatalf("expected 6 recent records, got %d", len(report.RecentAttendance))
	}
	// newest insertion first
	last := time.Date(2026, 6, len(statuses), 0, 0, 0, 0, time.UTC)
	if !report.RecentAttendance[0].SessionDate.Equal(last) {
		t.Fatalf("expected newest record first, got %v", report.RecentAttendance[0].SessionDate)
	}
}

func TestBatchDailyViewLeavesUnmarkedNil(t *testing.T) {
	db := openTestDB(t)
	f := seedFixture(t, db, 24)
	svc := NewAttendanceService(db)

	day := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	rows, err := svc.GetForBatchOnDate(f.batch.ID, day)
	if err != nil {
		t.Fatalf("daily view: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 roster row, got %d", len(rows))
	}
	if rows[0].Record != nil {
		t.Fatalf("expected nil record before marking")
	}

	if _, err := svc.Mark(f.enrollment.ID, day, "present", "", "coach"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	rows, err = svc.GetForBatchOnDate(f.batch.ID, day)
	if err != nil {
		t.Fatalf("daily view after mark: %v", err)
	}
	if rows[0].Record == nil || rows[0].Record.Status != "present" {
		t.Fatalf("expected present record after mark, got %+v", rows[0].Record)
	}
	if rows[0].SessionsAttended != 1 {
		t.Fatalf("expected roster counter 1, got %d", rows[0].SessionsAttended)
	}
}
