package services

import (
	"testing"
	"time"

	"coachpoint_go/models"
)

func TestNormalizeSessionDate(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)

	tests := []struct {
		name  string
		input time.Time
		want  time.Time
	}{
		{
			name:  "utc midday",
			input: time.Date(2026, 3, 10, 12, 30, 45, 0, time.UTC),
			want:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "already midnight",
			input: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			want:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "zoned evening stays on the utc day",
			input: time.Date(2026, 3, 10, 23, 30, 0, 0, ist),
			want:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "zoned early morning falls back a day in utc",
			input: time.Date(2026, 3, 10, 1, 0, 0, 0, ist),
			want:  time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeSessionDate(tc.input)
			if !got.Equal(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if got.Location() != time.UTC {
				t.Fatalf("expected UTC location, got %v", got.Location())
			}
		})
	}
}

func TestNormalizeSessionDateIdempotent(t *testing.T) {
	in := time.Date(2026, 7, 4, 18, 45, 12, 99, time.UTC)
	once := NormalizeSessionDate(in)
	twice := NormalizeSessionDate(once)
	if !once.Equal(twice) {
		t.Fatalf("expected idempotent normalization, got %v then %v", once, twice)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name  string
		part  int
		total int
		want  int
	}{
		{name: "zero total", part: 5, total: 0, want: 0},
		{name: "negative total", part: 5, total: -3, want: 0},
		{name: "zero part", part: 0, total: 24, want: 0},
		{name: "half", part: 12, total: 24, want: 50},
		{name: "rounds up", part: 2, total: 3, want: 67},
		{name: "rounds down", part: 1, total: 3, want: 33},
		{name: "complete", part: 24, total: 24, want: 100},
		{name: "over quota stays arithmetic", part: 25, total: 24, want: 104},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := Percentage(tc.part, tc.total); got != tc.want {
				t.Fatalf("Percentage(%d, %d) = %d, want %d", tc.part, tc.total, got, tc.want)
			}
		})
	}
}

func TestIsValidAttendanceStatus(t *testing.T) {
	for _, s := range []string{"present", "absent", "late", "excused"} {
		if !IsValidAttendanceStatus(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "Present", "PRESENT", "skipped", "sick"} {
		if IsValidAttendanceStatus(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestPresenceDelta(t *testing.T) {
	tests := []struct {
		name string
		prev string
		next string
		want int
	}{
		{name: "insert present", prev: "", next: "present", want: 1},
		{name: "insert absent", prev: "", next: "absent", want: 0},
		{name: "insert late", prev: "", next: "late", want: 0},
		{name: "absent to present", prev: "absent", next: "present", want: 1},
		{name: "present to absent", prev: "present", next: "absent", want: -1},
		{name: "present to late", prev: "present", next: "late", want: -1},
		{name: "present to present", prev: "present", next: "present", want: 0},
		{name: "late to excused", prev: "late", next: "excused", want: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := presenceDelta(tc.prev, tc.next); got != tc.want {
				t.Fatalf("presenceDelta(%q, %q) = %d, want %d", tc.prev, tc.next, got, tc.want)
			}
		})
	}
}

func TestGroupSessions(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC)
	}
	rec := func(d int, status string) models.AttendanceRecord {
		return models.AttendanceRecord{SessionDate: day(d), Status: status}
	}

	records := []models.AttendanceRecord{
		rec(1, "present"),
		rec(1, "absent"),
		rec(1, "present"),
		rec(3, "late"),
		rec(3, "excused"),
		rec(2, "present"),
	}

	sessions := GroupSessions(records, 30)
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}

	// newest first
	wantOrder := []time.Time{day(3), day(2), day(1)}
	for i, want := range wantOrder {
		if !sessions[i].SessionDate.Equal(want) {
			t.Fatalf("session %d: expected date %v, got %v", i, want, sessions[i].SessionDate)
		}
	}

	first := sessions[2] // day 1
	if first.Summary.Present != 2 || first.Summary.Absent != 1 || first.Summary.Total != 3 {
		t.Fatalf("unexpected tally for day 1: %+v", first.Summary)
	}
	mid := sessions[0] // day 3
	if mid.Summary.Late != 1 || mid.Summary.Excused != 1 || mid.Summary.Total != 2 {
		t.Fatalf("unexpected tally for day 3: %+v", mid.Summary)
	}
}

func TestGroupSessionsNormalizesTimestamps(t *testing.T) {
	// Records marked at different times of the same day land in one bucket
	records := []models.AttendanceRecord{
		{SessionDate: time.Date(2026, 5, 1, 9, 15, 0, 0, time.UTC), Status: "present"},
		{SessionDate: time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC), Status: "absent"},
	}

	sessions := GroupSessions(records, 30)
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].Summary.Total != 2 {
		t.Fatalf("expected both records in one bucket, got %d", sessions[0].Summary.Total)
	}
	want := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	if !sessions[0].SessionDate.Equal(want) {
		t.Fatalf("expected canonical date %v, got %v", want, sessions[0].SessionDate)
	}
}

func TestGroupSessionsLimit(t *testing.T) {
	var records []models.AttendanceRecord
	for d := 1; d <= 10; d++ {
		records = append(records, models.AttendanceRecord{
			SessionDate: time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC),
			Status:      "present",
		})
	}

	sessions := GroupSessions(records, 4)
	if len(sessions) != 4 {
		t.Fatalf("expected 4 sessions after truncation, got %d", len(sessions))
	}
	// truncation keeps the newest dates
	want := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	if !sessions[0].SessionDate.Equal(want) {
		t.Fatalf("expected newest session %v first, got %v", want, sessions[0].SessionDate)
	}
}

func TestGroupSessionsEmpty(t *testing.T) {
	sessions := GroupSessions(nil, 30)
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions, got %d", len(sessions))
	}
}

func TestStudentDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user models.User
		want string
	}{
		{
			name: "student profile name wins",
			user: models.User{
				FullName: "Fallback Name",
				Student:  &models.Student{FirstName: "Arjun", LastName: "Shinde"},
			},
			want: "Arjun Shinde",
		},
		{
			name: "first name only",
			user: models.User{Student: &models.Student{FirstName: "Arjun"}},
			want: "Arjun",
		},
		{
			name: "full name fallback",
			user: models.User{FullName: "Priya Joshi", Student: &models.Student{}},
			want: "Priya Joshi",
		},
		{
			name: "username fallback",
			user: models.User{Username: "kabir_m"},
			want: "kabir_m",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := studentDisplayName(tc.user); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
