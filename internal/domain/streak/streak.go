package streak

import "time"

// Status describes where the consecutive-day study habit stands.
type Status string

const (
	// StatusActive means the user already studied today.
	StatusActive Status = "active"
	// StatusNearlyExpiring means the last study day was yesterday;
	// studying today keeps the streak alive.
	StatusNearlyExpiring Status = "nearly_expiring"
	// StatusExpired means the streak is broken (two or more days idle,
	// or no study recorded at all).
	StatusExpired Status = "expired"
)

// Streak is the persisted habit counter.
type Streak struct {
	Length      int
	LastStudyAt *time.Time
}

// Classify maps the gap between the last study day and now onto a Status.
// The delta counts calendar days in now's location, not 24-hour windows:
// studying at 23:59 and checking at 00:01 is one day, not zero. now is an
// explicit parameter so callers control the clock.
func Classify(lastStudyAt *time.Time, now time.Time) Status {
	if lastStudyAt == nil {
		return StatusExpired
	}

	switch daysBetween(*lastStudyAt, now) {
	case 0:
		return StatusActive
	case 1:
		return StatusNearlyExpiring
	default:
		return StatusExpired
	}
}

// Advance returns the streak after a completed study session at now.
// An active streak is unchanged (same-day sessions don't double-count),
// a nearly-expiring one grows by a day, an expired one restarts at 1.
func Advance(s Streak, now time.Time) Streak {
	switch Classify(s.LastStudyAt, now) {
	case StatusActive:
		return s
	case StatusNearlyExpiring:
		return Streak{Length: s.Length + 1, LastStudyAt: &now}
	default:
		return Streak{Length: 1, LastStudyAt: &now}
	}
}

// daysBetween counts calendar days in later's location. The dates are
// re-anchored at UTC midnights before differencing so a DST transition
// (a 23- or 25-hour local day) cannot skew the division.
func daysBetween(earlier, later time.Time) int {
	e := earlier.In(later.Location())
	eDay := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC)
	lDay := time.Date(later.Year(), later.Month(), later.Day(), 0, 0, 0, 0, time.UTC)
	return int(lDay.Sub(eDay) / (24 * time.Hour))
}
