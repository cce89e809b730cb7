package utils

import "testing"

func TestParseHourMinute(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHour int
		wantMin  int
	}{
		{name: "morning", input: "07:00", wantHour: 7, wantMin: 0},
		{name: "evening", input: "17:30", wantHour: 17, wantMin: 30},
		{name: "midnight", input: "00:00", wantHour: 0, wantMin: 0},
		{name: "last minute", input: "23:59", wantHour: 23, wantMin: 59},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			hour, minute, err := ParseHourMinute(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if hour != tc.wantHour || minute != tc.wantMin {
				t.Fatalf("expected %02d:%02d, got %02d:%02d", tc.wantHour, tc.wantMin, hour, minute)
			}
		})
	}
}

func TestParseHourMinuteInvalid(t *testing.T) {
	inputs := []string{"", "7", "24:00", "12:60", "-1:30", "noon"}
	for _, in := range inputs {
		if _, _, err := ParseHourMinute(in); err == nil {
			t.Fatalf("expected error for %q, got nil", in)
		}
	}
}

func TestValidateSchedule(t *testing.T) {
	raw := []byte(`[{"day":"monday","start_time":"17:00"},{"day":"Wednesday","start_time":"07:30"}]`)
	entries, err := ValidateSchedule(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Day != "monday" || entries[0].StartTime != "17:00" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
}

func TestValidateScheduleEmpty(t *testing.T) {
	for _, raw := range [][]byte{nil, {}, []byte("null"), []byte("[]")} {
		entries, err := ValidateSchedule(raw)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if len(entries) != 0 {
			t.Fatalf("expected no entries for %q, got %d", raw, len(entries))
		}
	}
}

func TestValidateScheduleInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "unknown day", raw: `[{"day":"funday","start_time":"17:00"}]`},
		{name: "bad time", raw: `[{"day":"monday","start_time":"25:00"}]`},
		{name: "missing time", raw: `[{"day":"monday"}]`},
		{name: "malformed json", raw: `[{"day":"monday",`},
		{name: "wrong shape", raw: `{"day":"monday","start_time":"17:00"}`},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ValidateSchedule([]byte(tc.raw)); err == nil {
				t.Fatalf("expected error, got nil")
			}
		})
	}
}

func TestIsValidRole(t *testing.T) {
	for _, r := range []string{"admin", "coach", "student"} {
		if !IsValidRole(r) {
			t.Fatalf("expected role %q to be valid", r)
		}
	}
	for _, r := range []string{"", "Admin", "owner", "manager"} {
		if IsValidRole(r) {
			t.Fatalf("expected role %q to be invalid", r)
		}
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{"active", "inactive", "suspended"} {
		if !IsValidStatus(s) {
			t.Fatalf("expected status %q to be valid", s)
		}
	}
	for _, s := range []string{"", "Active", "deleted"} {
		if IsValidStatus(s) {
			t.Fatalf("expected status %q to be invalid", s)
		}
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "password123" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if err := CheckPassword("password123", hash); err != nil {
		t.Fatalf("expected matching password to verify, got %v", err)
	}
	if err := CheckPassword("wrong", hash); err == nil {
		t.Fatalf("expected wrong password to fail")
	}
}
