package notifications

import (
	"testing"
	"time"

	"coachpoint_go/services/websocket"
)

type recordingHub struct {
	userIDs []uint
	events  []interface{}
}

func (h *recordingHub) BroadcastToUser(userID uint, message interface{}) {
	h.userIDs = append(h.userIDs, userID)
	h.events = append(h.events, message)
}

func TestBroadcastEventFansOutPerUser(t *testing.T) {
	prev := defaultHub
	defer SetDefaultWSHub(prev)

	hub := &recordingHub{}
	SetDefaultWSHub(hub)

	event := websocket.AttendanceEvent{
		Type:         "attendance_marked",
		BatchID:      3,
		EnrollmentID: 9,
		SessionDate:  time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		Status:       "present",
	}
	BroadcastEvent([]uint{2, 5, 1}, event)

	if len(hub.userIDs) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(hub.userIDs))
	}
	for i, want := range []uint{2, 5, 1} {
		if hub.userIDs[i] != want {
			t.Fatalf("delivery %d: expected user %d, got %d", i, want, hub.userIDs[i])
		}
	}
	got, ok := hub.events[0].(websocket.AttendanceEvent)
	if !ok {
		t.Fatalf("expected an attendance event, got %T", hub.events[0])
	}
	if got.BatchID != 3 || got.EnrollmentID != 9 || got.Status != "present" {
		t.Fatalf("unexpected event payload: %+v", got)
	}
}

func TestBroadcastEventWithoutHub(t *testing.T) {
	prev := defaultHub
	defer SetDefaultWSHub(prev)

	SetDefaultWSHub(nil)
	// Must not panic when nothing is wired
	BroadcastEvent([]uint{1, 2}, websocket.AttendanceEvent{Type: "attendance_marked"})
}

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "info", input: "info", want: "info"},
		{name: "warning", input: "warning", want: "warning"},
		{name: "error", input: "error", want: "error"},
		{name: "success", input: "success", want: "success"},
		{name: "unknown falls back to info", input: "urgent", want: "info"},
		{name: "empty falls back to info", input: "", want: "info"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeType(tc.input); got != tc.want {
				t.Fatalf("normalizeType(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
