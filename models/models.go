package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// Attendance statuses form a closed set; anything else is rejected at the ledger boundary.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceExcused = "excused"
)

// Location model - a training ground or facility
type Location struct {
	BaseModel
	Name    string `json:"name" gorm:"size:255;not null"`
	Code    string `json:"code" gorm:"size:50;not null;uniqueIndex"`
	Address string `json:"address" gorm:"size:500"`
	City    string `json:"city" gorm:"size:100"`
	Phone   string `json:"phone" gorm:"size:20"`
	Active  bool   `json:"active" gorm:"default:true"`

	// Relationships
	Batches []Batch `json:"batches,omitempty" gorm:"foreignKey:LocationID"`
}

// Sport model
type Sport struct {
	BaseModel
	Name        string `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Code        string `json:"code" gorm:"size:50;not null;uniqueIndex"`
	Description string `json:"description" gorm:"type:text"`
	Active      bool   `json:"active" gorm:"default:true"`
}

// User model
type User struct {
	BaseModel
	Username string `json:"username" gorm:"size:100;not null;uniqueIndex"`
	Password string `json:"-" gorm:"size:255;not null"`
	Email    string `json:"email" gorm:"size:255;uniqueIndex"`
	Phone    string `json:"phone" gorm:"size:20"`
	FullName string `json:"full_name" gorm:"size:200"`
	Role     string `json:"role" gorm:"size:50;not null;default:'student';type:enum('admin','coach','student')"` // admin, coach, student
	Status   string `json:"status" gorm:"size:50;not null;default:'active';type:enum('active','inactive','suspended')"`
	Avatar   string `json:"avatar" gorm:"size:500"`

	// Relationships
	Student *Student `json:"student,omitempty" gorm:"foreignKey:UserID"`
	Coach   *Coach   `json:"coach,omitempty" gorm:"foreignKey:UserID"`
}

// Student profile
type Student struct {
	BaseModel
	UserID           uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	FirstName        string     `json:"first_name" gorm:"size:100"`
	LastName         string     `json:"last_name" gorm:"size:100"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	Gender           string     `json:"gender" gorm:"size:20"`
	GuardianName     string     `json:"guardian_name" gorm:"size:200"`
	GuardianPhone    string     `json:"guardian_phone" gorm:"size:20"`
	EmergencyContact string     `json:"emergency_contact" gorm:"size:200"`
	MedicalNotes     string     `json:"medical_notes" gorm:"type:text"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Coach profile
type Coach struct {
	BaseModel
	UserID          uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	FirstName       string `json:"first_name" gorm:"size:100"`
	LastName        string `json:"last_name" gorm:"size:100"`
	Specializations string `json:"specializations" gorm:"type:text"`
	Certifications  string `json:"certifications" gorm:"type:text"`
	HourlyRate      int    `json:"hourly_rate"`
	Active          bool   `json:"active" gorm:"default:true"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Batch model - a recurring training cohort for one sport at one location.
// Schedule holds the weekly timetable as [{"day":"monday","start_time":"17:00"}].
type Batch struct {
	BaseModel
	SportID     uint   `json:"sport_id" gorm:"not null"`
	LocationID  uint   `json:"location_id" gorm:"not null"`
	Name        string `json:"name" gorm:"size:255;not null"`
	Description string `json:"description" gorm:"type:text"`
	Schedule    JSON   `json:"schedule" gorm:"type:json"`
	AgeGroup    string `json:"age_group" gorm:"size:50"`
	MaxStudents int    `json:"max_students" gorm:"not null;default:20"`
	Status      string `json:"status" gorm:"size:50;default:'active';type:enum('active','inactive','full','completed')"`

	// Relationships
	Sport       Sport        `json:"sport,omitempty" gorm:"foreignKey:SportID"`
	Location    Location     `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Enrollments []Enrollment `json:"enrollments,omitempty" gorm:"foreignKey:BatchID"`
}

// Enrollment model - a student's membership in one batch with a session quota.
// SessionsAttended is written exclusively by the attendance ledger.
type Enrollment struct {
	BaseModel
	UserID           uint   `json:"user_id" gorm:"not null;index"`
	BatchID          uint   `json:"batch_id" gorm:"not null;index"`
	EnrollmentStatus string `json:"enrollment_status" gorm:"size:50;not null;default:'active';type:enum('active','paused','completed','cancelled')"`
	SessionsTotal    int    `json:"sessions_total" gorm:"not null;default:0"`
	SessionsAttended int    `json:"sessions_attended" gorm:"not null;default:0"`

	// Relationships
	User              User               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Batch             Batch              `json:"batch,omitempty" gorm:"foreignKey:BatchID"`
	AttendanceRecords []AttendanceRecord `json:"attendance_records,omitempty" gorm:"foreignKey:EnrollmentID"`
}

// CoachAssignment links a coach to a batch, granting attendance-marking rights.
// Rows are never hard-deleted; removal flips IsActive so the audit trail survives.
// Invariant: at most one row per (coach_id, batch_id) has is_active=true.
type CoachAssignment struct {
	BaseModel
	CoachID      uint      `json:"coach_id" gorm:"not null;index:idx_coach_batch"`
	BatchID      uint      `json:"batch_id" gorm:"not null;index:idx_coach_batch"`
	AssignedByID uint      `json:"assigned_by_id" gorm:"not null"`
	AssignedAt   time.Time `json:"assigned_at" gorm:"not null"`
	IsActive     bool      `json:"is_active" gorm:"default:true;index"`
	Notes        string    `json:"notes" gorm:"type:text"`

	// Relationships
	Coach      User  `json:"coach,omitempty" gorm:"foreignKey:CoachID"`
	Batch      Batch `json:"batch,omitempty" gorm:"foreignKey:BatchID"`
	AssignedBy User  `json:"assigned_by,omitempty" gorm:"foreignKey:AssignedByID"`
}

// AttendanceRecord - one outcome per (enrollment, session date).
// SessionDate always carries the canonical midnight-UTC value; the composite
// unique index enforces at-most-one-record at the store.
type AttendanceRecord struct {
	BaseModel
	EnrollmentID uint      `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_enrollment_session"`
	SessionDate  time.Time `json:"session_date" gorm:"not null;uniqueIndex:idx_enrollment_session"`
	Status       string    `json:"status" gorm:"size:50;not null;type:enum('present','absent','late','excused')"`
	Notes        string    `json:"notes" gorm:"type:text"`
	MarkedBy     string    `json:"marked_by" gorm:"size:200"`

	// Relationships
	Enrollment Enrollment `json:"enrollment,omitempty" gorm:"foreignKey:EnrollmentID"`
}

// Log model for activity tracking
type ActivityLog struct {
	BaseModel
	UserID     uint   `json:"user_id"`
	Action     string `json:"action" gorm:"size:100;not null"`
	Resource   string `json:"resource" gorm:"size:100;not null"`
	ResourceID uint   `json:"resource_id"`
	Details    JSON   `json:"details" gorm:"type:json"`
	IPAddress  string `json:"ip_address" gorm:"size:45"`
	UserAgent  string `json:"user_agent" gorm:"size:500"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Notification model
type Notification struct {
	BaseModel
	UserID  uint       `json:"user_id" gorm:"not null"`
	Title   string     `json:"title" gorm:"size:255;not null"`
	Message string     `json:"message" gorm:"type:text;not null"`
	Type    string     `json:"type" gorm:"size:50;not null;type:enum('info','warning','error','success')"` // info, warning, error, success
	Read    bool       `json:"read" gorm:"default:false"`
	ReadAt  *time.Time `json:"read_at"`
	Data    JSON       `json:"data" gorm:"type:json"` // optional structured payload (deep links, entity ids)

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// LogArchive model for tracking archived logs
type LogArchive struct {
	BaseModel
	FileName    string    `json:"file_name" gorm:"size:255;not null"`
	S3Key       string    `json:"s3_key" gorm:"size:500;not null"`
	StartDate   time.Time `json:"start_date" gorm:"not null"`
	EndDate     time.Time `json:"end_date" gorm:"not null"`
	RecordCount int       `json:"record_count" gorm:"not null"`
	FileSize    int64     `json:"file_size" gorm:"not null"`
	Status      string    `json:"status" gorm:"size:50;not null;default:'pending';type:enum('pending','completed','failed')"` // pending, completed, failed
	Error       string    `json:"error" gorm:"type:text"`
}
