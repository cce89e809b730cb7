package utils

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword compares a password with its hash
func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GenerateRandomString generates a random string of specified length
func GenerateRandomString(length int) (string, error) {
	bytes := make([]byte, length/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// IsValidRole checks if a role is valid
func IsValidRole(role string) bool {
	validRoles := []string{"admin", "coach", "student"}
	for _, validRole := range validRoles {
		if role == validRole {
			return true
		}
	}
	return false
}

// IsValidStatus checks if a status is valid
func IsValidStatus(status string) bool {
	validStatuses := []string{"active", "inactive", "suspended"}
	for _, validStatus := range validStatuses {
		if status == validStatus {
			return true
		}
	}
	return false
}

// ScheduleEntry is one weekly timetable slot on a batch.
type ScheduleEntry struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
}

var weekdays = map[string]struct{}{
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {},
	"friday": {}, "saturday": {}, "sunday": {},
}

// ValidateSchedule parses a batch timetable and checks each entry has a
// known weekday and an HH:MM start time.
func ValidateSchedule(raw []byte) ([]ScheduleEntry, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var entries []ScheduleEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("invalid schedule format: %v", err)
	}
	for i, e := range entries {
		if _, ok := weekdays[strings.ToLower(e.Day)]; !ok {
			return nil, fmt.Errorf("entry %d: unknown day %q", i, e.Day)
		}
		if _, _, err := ParseHourMinute(e.StartTime); err != nil {
			return nil, fmt.Errorf("entry %d: %v", i, err)
		}
	}
	return entries, nil
}

// ParseHourMinute extracts hour and minute from an HH:MM string.
func ParseHourMinute(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	var hour, minute int
	if _, err := fmt.Sscanf(parts[0], "%d", &hour); err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &minute); err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// SanitizeString removes dangerous characters from string
func SanitizeString(input string) string {
	// Remove null bytes and control characters
	input = strings.ReplaceAll(input, "\x00", "")

	// Trim whitespace
	input = strings.TrimSpace(input)

	return input
}
