package progress

import (
	"context"

	"renshu/internal/datekey"
)

// DateProgress returns completed/total counts for any date, including dates
// with no stored record and dates in the future. Record-less dates count the
// visible built-ins plus whichever recurring templates apply to that weekday.
// Strictly read-only; calendar rendering never creates records.
func (s *Store) DateProgress(ctx context.Context, date datekey.Key) (completed, total int, err error) {
	eff, _, err := s.EffectiveForDate(ctx, date)
	if err != nil {
		return 0, 0, err
	}
	completed, total = eff.Counts()
	return completed, total, nil
}

// HasTasksForDate reports whether a date shows any activity on the calendar:
// a stored record with a completed built-in or any custom item, or — absent a
// record — a recurring template applicable to that weekday.
func (s *Store) HasTasksForDate(ctx context.Context, date datekey.Key) (bool, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return false, err
	}
	raw, err := s.rawDay(ctx, date)
	if err != nil {
		return false, err
	}
	if raw != nil {
		if len(raw.CustomItems) > 0 {
			return true, nil
		}
		for _, it := range raw.Items {
			if it.Done() {
				return true, nil
			}
		}
		return false, nil
	}
	wd := date.Weekday()
	for _, tpl := range settings.RecurringTasks {
		if tpl.ActiveOn(wd) {
			return true, nil
		}
	}
	return false, nil
}

type DayProgressSummary struct {
	Date      datekey.Key
	Completed int
	Total     int
	HasTasks  bool
}

// WeekProgress returns DateProgress for the seven days starting at start.
// Used by the week strip in the CLI and the board.
func (s *Store) WeekProgress(ctx context.Context, start datekey.Key) ([]DayProgressSummary, error) {
	out := make([]DayProgressSummary, 0, 7)
	for i := 0; i < 7; i++ {
		date := start.AddDays(i)
		completed, total, err := s.DateProgress(ctx, date)
		if err != nil {
			return nil, err
		}
		has, err := s.HasTasksForDate(ctx, date)
		if err != nil {
			return nil, err
		}
		out = append(out, DayProgressSummary{Date: date, Completed: completed, Total: total, HasTasks: has})
	}
	return out, nil
}
