package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"coachpoint_go/models"
)

// AssignmentService owns the coach-to-batch relation and its uniqueness
// invariant: at most one active assignment per (coach, batch).
type AssignmentService struct {
	db *gorm.DB
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{db: db}
}

// Assign creates an active assignment for the coach on the batch.
// assignedByID comes from the caller's authenticated session; it is never
// inferred from other records. The coach user row is locked across the
// duplicate check and the insert so two concurrent assigns for the same
// pair cannot both pass the check.
func (s *AssignmentService) Assign(coachID, batchID, assignedByID uint, notes string) (uint, error) {
	var assignmentID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var coach models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND role = ? AND status = ?", coachID, "coach", "active").
			First(&coach).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidCoach
			}
			return err
		}

		var batch models.Batch
		if err := tx.First(&batch, batchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBatchNotFound
			}
			return err
		}

		var existing models.CoachAssignment
		err := tx.Where("coach_id = ? AND batch_id = ? AND is_active = ?", coachID, batchID, true).
			First(&existing).Error
		if err == nil {
			return ErrDuplicateAssignment
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		assignment := models.CoachAssignment{
			CoachID:      coachID,
			BatchID:      batchID,
			AssignedByID: assignedByID,
			AssignedAt:   time.Now(),
			IsActive:     true,
			Notes:        notes,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}
		assignmentID = assignment.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return assignmentID, nil
}

// Remove deactivates an assignment. The row is kept for the audit trail.
// Removing an already-inactive assignment is a no-op success, so retries
// are harmless.
func (s *AssignmentService) Remove(assignmentID uint) error {
	var assignment models.CoachAssignment
	if err := s.db.First(&assignment, assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	if !assignment.IsActive {
		return nil
	}
	return s.db.Model(&assignment).Update("is_active", false).Error
}

// StudentSummary is the identity projection of one enrolled student.
type StudentSummary struct {
	EnrollmentID     uint   `json:"enrollment_id"`
	UserID           uint   `json:"user_id"`
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	SessionsTotal    int    `json:"sessions_total"`
	SessionsAttended int    `json:"sessions_attended"`
}

// BatchRoster is one batch a coach may act on, with its active enrollments.
type BatchRoster struct {
	AssignmentID uint                `json:"assignment_id"`
	Batch        models.Batch        `json:"batch"`
	Enrollments  []models.Enrollment `json:"enrollments"`
	Students     []StudentSummary    `json:"students"`
}

// ListActiveForCoach returns every batch the coach holds an active
// assignment for, each with the batch's active enrollments and student
// summaries. Ordered by assignment id for deterministic output.
func (s *AssignmentService) ListActiveForCoach(coachID uint) ([]BatchRoster, error) {
	var assignments []models.CoachAssignment
	if err := s.db.Where("coach_id = ? AND is_active = ?", coachID, true).
		Order("id").
		Find(&assignments).Error; err != nil {
		return nil, err
	}

	rosters := make([]BatchRoster, 0, len(assignments))
	for _, a := range assignments {
		var batch models.Batch
		if err := s.db.Preload("Sport").Preload("Location").First(&batch, a.BatchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		var enrollments []models.Enrollment
		if err := s.db.Preload("User").Preload("User.Student").
			Where("batch_id = ? AND enrollment_status = ?", a.BatchID, "active").
			Order("id").
			Find(&enrollments).Error; err != nil {
			return nil, err
		}

		students := make([]StudentSummary, 0, len(enrollments))
		for _, e := range enrollments {
			students = append(students, StudentSummary{
				EnrollmentID:     e.ID,
				UserID:           e.UserID,
				Name:             studentDisplayName(e.User),
				Phone:            e.User.Phone,
				SessionsTotal:    e.SessionsTotal,
				SessionsAttended: e.SessionsAttended,
			})
		}

		rosters = append(rosters, BatchRoster{
			AssignmentID: a.ID,
			Batch:        batch,
			Enrollments:  enrollments,
			Students:     students,
		})
	}
	return rosters, nil
}

// ListAssignments returns active assignments with embedded coach, batch and
// assigned-by details. A nil batchID means system-wide.
func (s *AssignmentService) ListAssignments(batchID *uint) ([]models.CoachAssignment, error) {
	query := s.db.Preload("Coach").Preload("Coach.Coach").
		Preload("Batch").Preload("Batch.Sport").Preload("Batch.Location").
		Preload("AssignedBy").
		Where("is_active = ?", true).
		Order("id")
	if batchID != nil {
		query = query.Where("batch_id = ?", *batchID)
	}

	var assignments []models.CoachAssignment
	if err := query.Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListCoaches returns all active users with the coach role.
func (s *AssignmentService) ListCoaches() ([]models.User, error) {
	var coaches []models.User
	if err := s.db.Preload("Coach").
		Where("role = ? AND status = ?", "coach", "active").
		Order("id").
		Find(&coaches).Error; err != nil {
		return nil, err
	}
	return coaches, nil
}

// IsCoachAssigned reports whether the coach holds an active assignment for
// the batch. Used for attendance-marking authorization.
func (s *AssignmentService) IsCoachAssigned(coachID, batchID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.CoachAssignment{}).
		Where("coach_id = ? AND batch_id = ? AND is_active = ?", coachID, batchID, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
