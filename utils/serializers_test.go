package utils

import (
	"testing"
	"time"

	"coachpoint_go/models"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user models.User
		want string
	}{
		{
			name: "coach profile wins",
			user: models.User{
				FullName: "Fallback Name",
				Coach:    &models.Coach{FirstName: "Rahul", LastName: "Verma"},
			},
			want: "Rahul Verma",
		},
		{
			name: "student profile when no coach",
			user: models.User{
				Student: &models.Student{FirstName: "Priya", LastName: "Joshi"},
			},
			want: "Priya Joshi",
		},
		{
			name: "full name fallback",
			user: models.User{FullName: "Sana Khan", Username: "sana_k"},
			want: "Sana Khan",
		},
		{
			name: "username fallback",
			user: models.User{Username: "kabir_m"},
			want: "kabir_m",
		},
		{
			name: "email local part as last resort",
			user: models.User{Email: "coach.meera@example.com"},
			want: "coach.meera",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := DisplayName(tc.user); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestToAssignmentDTO(t *testing.T) {
	assignedAt := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	a := models.CoachAssignment{
		BaseModel:  models.BaseModel{ID: 7},
		AssignedAt: assignedAt,
		IsActive:   true,
		Notes:      "morning slot",
		Coach: models.User{
			BaseModel: models.BaseModel{ID: 2},
			Username:  "coach_rahul",
			Role:      "coach",
			Coach:     &models.Coach{FirstName: "Rahul", LastName: "Verma"},
		},
		Batch: models.Batch{
			BaseModel: models.BaseModel{ID: 3},
			Name:      "Cricket U-14",
			AgeGroup:  "U-14",
			Status:    "active",
			Sport:     models.Sport{BaseModel: models.BaseModel{ID: 1}, Name: "Cricket", Code: "cricket"},
			Location:  models.Location{BaseModel: models.BaseModel{ID: 1}, Name: "Riverside Ground", City: "Pune"},
		},
		AssignedBy: models.User{
			BaseModel: models.BaseModel{ID: 1},
			Username:  "admin",
			Role:      "admin",
			FullName:  "Academy Admin",
		},
	}

	dto := ToAssignmentDTO(a)
	if dto.ID != 7 || !dto.AssignedAt.Equal(assignedAt) || !dto.IsActive || dto.Notes != "morning slot" {
		t.Fatalf("unexpected base fields: %+v", dto)
	}
	if dto.Coach.ID != 2 || dto.Coach.Name != "Rahul Verma" || dto.Coach.Role != "coach" {
		t.Fatalf("unexpected coach summary: %+v", dto.Coach)
	}
	if dto.Batch.ID != 3 || dto.Batch.Name != "Cricket U-14" || dto.Batch.Sport.Code != "cricket" || dto.Batch.Location.City != "Pune" {
		t.Fatalf("unexpected batch summary: %+v", dto.Batch)
	}
	if dto.AssignedBy.ID != 1 || dto.AssignedBy.Name != "Academy Admin" {
		t.Fatalf("unexpected assigned-by summary: %+v", dto.AssignedBy)
	}
}

func TestToAssignmentDTOs(t *testing.T) {
	dtos := ToAssignmentDTOs(nil)
	if dtos == nil || len(dtos) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", dtos)
	}

	in := []models.CoachAssignment{
		{BaseModel: models.BaseModel{ID: 1}},
		{BaseModel: models.BaseModel{ID: 2}},
	}
	dtos = ToAssignmentDTOs(in)
	if len(dtos) != 2 || dtos[0].ID != 1 || dtos[1].ID != 2 {
		t.Fatalf("unexpected mapping: %+v", dtos)
	}
}
