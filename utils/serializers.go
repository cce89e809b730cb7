package utils

import (
	"strings"
	"time"

	"coachpoint_go/models"
)

// Compact representations used across APIs
type UserShort struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type SportShort struct {
	ID   uint   `json:"id"`
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`
}

type LocationShort struct {
	ID   uint   `json:"id"`
	Name string `json:"name,omitempty"`
	City string `json:"city,omitempty"`
}

type BatchShort struct {
	ID       uint          `json:"id"`
	Name     string        `json:"name"`
	AgeGroup string        `json:"age_group,omitempty"`
	Status   string        `json:"status,omitempty"`
	Sport    SportShort    `json:"sport"`
	Location LocationShort `json:"location"`
}

type AssignmentDTO struct {
	ID         uint       `json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	AssignedAt time.Time  `json:"assigned_at"`
	IsActive   bool       `json:"is_active"`
	Notes      string     `json:"notes,omitempty"`
	Coach      UserShort  `json:"coach"`
	Batch      BatchShort `json:"batch"`
	AssignedBy UserShort  `json:"assigned_by"`
}

// DisplayName resolves the best available human name for a user record.
// Profile names win over FullName, FullName over username, and the email
// local-part is the last resort.
func DisplayName(u models.User) string {
	first, last := "", ""
	if u.Coach != nil {
		first, last = u.Coach.FirstName, u.Coach.LastName
	}
	if u.Student != nil && first == "" && last == "" {
		first, last = u.Student.FirstName, u.Student.LastName
	}
	if first != "" || last != "" {
		name := first
		if last != "" {
			if name != "" {
				name += " "
			}
			name += last
		}
		return name
	}
	if u.FullName != "" {
		return u.FullName
	}
	if u.Username != "" {
		return u.Username
	}
	if u.Email != "" {
		parts := strings.Split(u.Email, "@")
		return parts[0]
	}
	return ""
}

// ToUserShort maps a models.User to the compact DTO.
func ToUserShort(u models.User) UserShort {
	return UserShort{
		ID:       u.ID,
		Name:     DisplayName(u),
		Username: u.Username,
		Role:     u.Role,
		Phone:    u.Phone,
	}
}

// ToBatchShort maps a models.Batch to the compact DTO.
// Assumes the caller preloaded Sport and Location when possible.
func ToBatchShort(b models.Batch) BatchShort {
	return BatchShort{
		ID:       b.ID,
		Name:     b.Name,
		AgeGroup: b.AgeGroup,
		Status:   b.Status,
		Sport:    SportShort{ID: b.Sport.ID, Name: b.Sport.Name, Code: b.Sport.Code},
		Location: LocationShort{ID: b.Location.ID, Name: b.Location.Name, City: b.Location.City},
	}
}

// ToAssignmentDTO maps a models.CoachAssignment to the embedded-details DTO.
func ToAssignmentDTO(a models.CoachAssignment) AssignmentDTO {
	return AssignmentDTO{
		ID:         a.ID,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
		AssignedAt: a.AssignedAt,
		IsActive:   a.IsActive,
		Notes:      a.Notes,
		Coach:      ToUserShort(a.Coach),
		Batch:      ToBatchShort(a.Batch),
		AssignedBy: ToUserShort(a.AssignedBy),
	}
}

// ToAssignmentDTOs maps a slice of assignments.
func ToAssignmentDTOs(assignments []models.CoachAssignment) []AssignmentDTO {
	dtos := make([]AssignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		dtos = append(dtos, ToAssignmentDTO(a))
	}
	return dtos
}

type NotificationDTO struct {
	ID        uint       `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UserID    uint       `json:"user_id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	Data      models.JSON `json:"data,omitempty"`
	User      UserShort  `json:"user"`
}

// ToNotificationDTO maps a models.Notification to the compact DTO.
// Assumes the caller preloaded User when possible.
func ToNotificationDTO(n models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		CreatedAt: n.CreatedAt,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Read:      n.Read,
		ReadAt:    n.ReadAt,
		Data:      n.Data,
		User:      ToUserShort(n.User),
	}
}

// ToNotificationDTOs maps a slice of notifications.
func ToNotificationDTOs(notifications []models.Notification) []NotificationDTO {
	dtos := make([]NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		dtos = append(dtos, ToNotificationDTO(n))
	}
	return dtos
}
