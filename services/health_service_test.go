package services

import (
	"testing"
	"time"
)

func TestCombineStatus(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		candidate string
		want      string
	}{
		{name: "ok stays ok", current: overallStatusOK, candidate: overallStatusOK, want: overallStatusOK},
		{name: "degraded wins over ok", current: overallStatusOK, candidate: overallStatusDegraded, want: overallStatusDegraded},
		{name: "critical wins over degraded", current: overallStatusDegraded, candidate: overallStatusCritical, want: overallStatusCritical},
		{name: "never downgrades", current: overallStatusCritical, candidate: overallStatusOK, want: overallStatusCritical},
		{name: "unknown current treated as ok", current: "mystery", candidate: overallStatusDegraded, want: overallStatusDegraded},
		{name: "unknown candidate ignored", current: overallStatusDegraded, candidate: "mystery", want: overallStatusDegraded},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := combineStatus(tc.current, tc.candidate); got != tc.want {
				t.Fatalf("combineStatus(%q, %q) = %q, want %q", tc.current, tc.candidate, got, tc.want)
			}
		})
	}
}

func TestHumanizeDuration(t *testing.T) {
	tests := []struct {
		name  string
		input time.Duration
		want  string
	}{
		{name: "zero", input: 0, want: "0s"},
		{name: "negative", input: -5 * time.Second, want: "0s"},
		{name: "seconds only", input: 42 * time.Second, want: "42s"},
		{name: "minutes and seconds", input: 3*time.Minute + 5*time.Second, want: "3m 5s"},
		{name: "exact hour", input: time.Hour, want: "1h"},
		{name: "days hours minutes", input: 49*time.Hour + 30*time.Minute, want: "2d 1h 30m"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := humanizeDuration(tc.input); got != tc.want {
				t.Fatalf("humanizeDuration(%v) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestHTTPStatusForOverall(t *testing.T) {
	svc := NewHealthService("test", "0.0.0")
	if got := svc.HTTPStatusForOverall(overallStatusOK); got != 200 {
		t.Fatalf("expected 200 for ok, got %d", got)
	}
	if got := svc.HTTPStatusForOverall(overallStatusDegraded); got != 200 {
		t.Fatalf("expected 200 for degraded, got %d", got)
	}
	if got := svc.HTTPStatusForOverall(overallStatusCritical); got != 503 {
		t.Fatalf("expected 503 for critical, got %d", got)
	}
}
