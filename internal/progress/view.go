package progress

// EffectiveDay is the per-date task list as shown to the user: the injector's
// projection with hidden built-ins filtered out.
type EffectiveDay struct {
	Day    DailyProgress
	Hidden int // built-ins excluded from Day.Items
}

// Effective filters hidden built-ins from a projected day. The raw record is
// untouched; hiding removes an item from counts and display only, never from
// stored completions.
func Effective(day DailyProgress, settings Settings) EffectiveDay {
	out := EffectiveDay{Day: day}
	visible := day.Items[:0:0]
	for _, it := range day.Items {
		if settings.IsHidden(it.ID) {
			out.Hidden++
			continue
		}
		visible = append(visible, it)
	}
	out.Day.Items = visible
	return out
}

// Counts sums completed and total entries across visible built-ins and custom
// items.
func (e EffectiveDay) Counts() (completed, total int) {
	for _, it := range e.Day.Items {
		total++
		if it.Done() {
			completed++
		}
	}
	for _, t := range e.Day.CustomItems {
		total++
		if t.Done() {
			completed++
		}
	}
	return completed, total
}

// AllDone reports whether every visible entry (built-in and custom) is
// complete. An empty view counts as not done.
func (e EffectiveDay) AllDone() bool {
	completed, total := e.Counts()
	return total > 0 && completed == total
}

// CoreAllDone reports whether every visible built-in item is complete. Custom
// tasks never gate the streak.
func CoreAllDone(day DailyProgress, settings Settings) bool {
	n := 0
	for _, it := range day.Items {
		if settings.IsHidden(it.ID) {
			continue
		}
		n++
		if !it.Done() {
			return false
		}
	}
	return n > 0
}
