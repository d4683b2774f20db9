package progress

import "renshu/internal/datekey"

// advanceStreak credits date against the streak counter and reports whether
// settings changed. Callers invoke it only after a mutation leaves every
// visible built-in for date complete.
//
// A date is credited at most once, tracked via LastCompletedDate. Completing
// a day exactly one calendar day away from the last credited one extends the
// streak; any other gap restarts it at 1, including the very first completion.
// Uncompleting a credited day never decrements: the credit is sticky.
func advanceStreak(s *Settings, date datekey.Key) bool {
	if s.LastCompletedDate == date {
		return false
	}
	gap := datekey.DaysBetween(s.LastCompletedDate, date)
	if gap < 0 {
		gap = -gap
	}
	if s.LastCompletedDate != "" && gap == 1 {
		s.StreakCount++
	} else {
		s.StreakCount = 1
	}
	s.LastCompletedDate = date
	return true
}
