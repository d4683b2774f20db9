package datekey

import (
	"testing"
	"time"
)

func TestParseRejectsBadInput(t *testing.T) {
	for _, bad := range []string{"", "2024-13-01", "01-02-2024", "2024-1-2", "not a date"} {
		if _, err := Parse(bad); err == nil {
			t.Fatalf("Parse(%q): expected error", bad)
		}
	}
	k, err := Parse("2024-03-01")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if k != Key("2024-03-01") {
		t.Fatalf("Parse=%q, want 2024-03-01", k)
	}
}

func TestWeekday(t *testing.T) {
	// 2024-01-10 was a Wednesday.
	if got := Key("2024-01-10").Weekday(); got != time.Wednesday {
		t.Fatalf("Weekday=%v, want Wednesday", got)
	}
	if got := Key("2024-01-14").Weekday(); got != time.Sunday {
		t.Fatalf("Weekday=%v, want Sunday", got)
	}
}

func TestAddDaysAndDaysBetween(t *testing.T) {
	k := Key("2024-02-28")
	if got := k.AddDays(1); got != Key("2024-02-29") {
		t.Fatalf("AddDays(1)=%q, want 2024-02-29 (leap year)", got)
	}
	if got := k.AddDays(2); got != Key("2024-03-01") {
		t.Fatalf("AddDays(2)=%q, want 2024-03-01", got)
	}
	if got := DaysBetween("2024-01-10", "2024-01-11"); got != 1 {
		t.Fatalf("DaysBetween=%d, want 1", got)
	}
	if got := DaysBetween("2024-01-11", "2024-01-10"); got != -1 {
		t.Fatalf("DaysBetween=%d, want -1", got)
	}
	if got := DaysBetween("2023-12-31", "2024-01-02"); got != 2 {
		t.Fatalf("DaysBetween across year=%d, want 2", got)
	}
}

func TestDaysBetweenAcrossDSTTransitions(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	old := time.Local
	time.Local = loc
	defer func() { time.Local = old }()

	// Spring forward: 2026-03-08 is only 23 hours long in New York.
	if got := DaysBetween("2026-03-08", "2026-03-09"); got != 1 {
		t.Fatalf("DaysBetween across spring-forward = %d, want 1", got)
	}
	if got := DaysBetween("2026-03-09", "2026-03-08"); got != -1 {
		t.Fatalf("DaysBetween back across spring-forward = %d, want -1", got)
	}
	// Fall back: 2026-11-01 is 25 hours long.
	if got := DaysBetween("2026-11-01", "2026-11-02"); got != 1 {
		t.Fatalf("DaysBetween across fall-back = %d, want 1", got)
	}
	if got := DaysBetween("2026-11-02", "2026-11-01"); got != -1 {
		t.Fatalf("DaysBetween back across fall-back = %d, want -1", got)
	}
	// The transitions cancel out over a longer span too.
	if got := DaysBetween("2026-03-01", "2026-11-30"); got != 274 {
		t.Fatalf("DaysBetween across both transitions = %d, want 274", got)
	}
}

func TestSameDay(t *testing.T) {
	noon := time.Date(2024, 3, 1, 12, 30, 0, 0, time.Local)
	if !SameDay("2024-03-01", noon) {
		t.Fatalf("expected same day")
	}
	if SameDay("2024-03-02", noon) {
		t.Fatalf("did not expect same day")
	}
}

func TestParseWeekdays(t *testing.T) {
	got, err := ParseWeekdays("mon, Wed,FRIDAY")
	if err != nil {
		t.Fatalf("ParseWeekdays: %v", err)
	}
	want := []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	if got, err := ParseWeekdays(""); err != nil || got != nil {
		t.Fatalf("empty input: got %v, %v", got, err)
	}
	if _, err := ParseWeekdays("mon,funday"); err == nil {
		t.Fatalf("expected error for bad weekday")
	}
}
