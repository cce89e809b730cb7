package services

import "errors"

// Closed error taxonomy for the assignment/attendance core. Controllers map
// these onto HTTP statuses; anything else surfaces as a 500.
var (
	ErrInvalidCoach            = errors.New("coach not found or user is not a coach")
	ErrBatchNotFound           = errors.New("batch not found")
	ErrEnrollmentNotFound      = errors.New("enrollment not found")
	ErrAssignmentNotFound      = errors.New("assignment not found")
	ErrDuplicateAssignment     = errors.New("coach already has an active assignment for this batch")
	ErrInvalidAttendanceStatus = errors.New("invalid attendance status")
)
