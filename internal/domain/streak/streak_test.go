package streak_test

import (
	"testing"
	"time"

	"github.com/studydeck/backend/internal/domain/streak"
)

var now = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		last *time.Time
		want streak.Status
	}{
		{"studied earlier today", ptr(now.Add(-2 * time.Hour)), streak.StatusActive},
		{"studied at midnight today", ptr(time.Date(2025, 6, 15, 0, 0, 1, 0, time.UTC)), streak.StatusActive},
		{"studied yesterday", ptr(now.Add(-24 * time.Hour)), streak.StatusNearlyExpiring},
		{"studied late yesterday", ptr(time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC)), streak.StatusNearlyExpiring},
		{"studied two days ago", ptr(now.Add(-48 * time.Hour)), streak.StatusExpired},
		{"studied a month ago", ptr(now.AddDate(0, -1, 0)), streak.StatusExpired},
		{"never studied", nil, streak.StatusExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := streak.Classify(tt.last, now); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassify_CalendarDaysNotWindows(t *testing.T) {
	// 23:50 yesterday to 00:10 today is 20 minutes but one calendar day.
	last := time.Date(2025, 6, 14, 23, 50, 0, 0, time.UTC)
	at := time.Date(2025, 6, 15, 0, 10, 0, 0, time.UTC)

	if got := streak.Classify(&last, at); got != streak.StatusNearlyExpiring {
		t.Errorf("expected nearly_expiring across midnight, got %s", got)
	}
}

func TestClassify_AcrossDSTTransitions(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("loading location: %v", err)
	}

	tests := []struct {
		name string
		last time.Time
		at   time.Time
		want streak.Status
	}{
		{
			// Spring forward: Mar 9 2025 is a 23-hour local day.
			"studied yesterday across DST start",
			time.Date(2025, 3, 9, 8, 0, 0, 0, loc),
			time.Date(2025, 3, 10, 8, 0, 0, 0, loc),
			streak.StatusNearlyExpiring,
		},
		{
			// Fall back: Nov 2 2025 is a 25-hour local day.
			"studied yesterday across DST end",
			time.Date(2025, 11, 2, 8, 0, 0, 0, loc),
			time.Date(2025, 11, 3, 8, 0, 0, 0, loc),
			streak.StatusNearlyExpiring,
		},
		{
			"same day spanning DST start",
			time.Date(2025, 3, 9, 0, 30, 0, 0, loc),
			time.Date(2025, 3, 9, 23, 30, 0, 0, loc),
			streak.StatusActive,
		},
		{
			"two days ago across DST start",
			time.Date(2025, 3, 8, 8, 0, 0, 0, loc),
			time.Date(2025, 3, 10, 8, 0, 0, 0, loc),
			streak.StatusExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := streak.Classify(&tt.last, tt.at); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAdvance_SameDayDoesNotDoubleCount(t *testing.T) {
	last := now.Add(-1 * time.Hour)
	s := streak.Streak{Length: 4, LastStudyAt: &last}

	got := streak.Advance(s, now)
	if got.Length != 4 {
		t.Errorf("expected length 4, got %d", got.Length)
	}
}

func TestAdvance_NextDayExtends(t *testing.T) {
	last := now.AddDate(0, 0, -1)
	s := streak.Streak{Length: 4, LastStudyAt: &last}

	got := streak.Advance(s, now)
	if got.Length != 5 {
		t.Errorf("expected length 5, got %d", got.Length)
	}
	if got.LastStudyAt == nil || !got.LastStudyAt.Equal(now) {
		t.Errorf("expected LastStudyAt to advance to now")
	}
}

func TestAdvance_ExpiredRestarts(t *testing.T) {
	last := now.AddDate(0, 0, -10)
	s := streak.Streak{Length: 30, LastStudyAt: &last}

	got := streak.Advance(s, now)
	if got.Length != 1 {
		t.Errorf("expected restart at 1, got %d", got.Length)
	}
}

func TestAdvance_FirstEverSession(t *testing.T) {
	got := streak.Advance(streak.Streak{}, now)
	if got.Length != 1 {
		t.Errorf("expected length 1, got %d", got.Length)
	}
}
