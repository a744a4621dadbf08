package reminder

import (
	"fmt"
	"time"

	"github.com/studydeck/backend/internal/domain/streak"
)

// Window is a daily quiet-hours interval during which reminders are
// suppressed. Start and End are minutes since midnight; a window may
// wrap past midnight (e.g. 22:00–07:00).
type Window struct {
	start int
	end   int
}

// ParseWindow builds a Window from "HH:MM" bounds.
func ParseWindow(start, end string) (Window, error) {
	s, err := parseClock(start)
	if err != nil {
		return Window{}, fmt.Errorf("invalid quiet-hours start: %w", err)
	}
	e, err := parseClock(end)
	if err != nil {
		return Window{}, fmt.Errorf("invalid quiet-hours end: %w", err)
	}
	return Window{start: s, end: e}, nil
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Contains reports whether t falls inside the quiet window.
func (w Window) Contains(t time.Time) bool {
	m := t.Hour()*60 + t.Minute()
	if w.start == w.end {
		return false // zero-length window suppresses nothing
	}
	if w.start < w.end {
		return m >= w.start && m < w.end
	}
	// Wraps midnight: inside if after start or before end.
	return m >= w.start || m < w.end
}

// Notification is the payload handed to the platform notifier.
type Notification struct {
	Title        string        `json:"title"`
	Body         string        `json:"body"`
	StreakStatus streak.Status `json:"streak_status"`
	StreakLength int           `json:"streak_length"`
}

// Plan decides whether a reminder should fire right now. No reminder
// goes out inside quiet hours or when the user already studied today.
func Plan(st streak.Streak, now time.Time, quiet Window) (*Notification, bool) {
	if quiet.Contains(now) {
		return nil, false
	}

	status := streak.Classify(st.LastStudyAt, now)
	switch status {
	case streak.StatusActive:
		return nil, false
	case streak.StatusNearlyExpiring:
		return &Notification{
			Title:        "Your streak is on the line",
			Body:         fmt.Sprintf("Study today to keep your %d-day streak alive.", st.Length),
			StreakStatus: status,
			StreakLength: st.Length,
		}, true
	default:
		return &Notification{
			Title:        "Time to study",
			Body:         "A few questions a day builds the habit. Start a new streak now.",
			StreakStatus: status,
			StreakLength: st.Length,
		}, true
	}
}
