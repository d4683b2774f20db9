package progress

import "testing"

func TestStreakFirstCompletion(t *testing.T) {
	s := Settings{}
	if !advanceStreak(&s, "2024-01-10") {
		t.Fatalf("expected settings change")
	}
	if s.StreakCount != 1 || s.LastCompletedDate != "2024-01-10" {
		t.Fatalf("got streak=%d last=%q, want 1/2024-01-10", s.StreakCount, s.LastCompletedDate)
	}
}

func TestStreakContinuity(t *testing.T) {
	s := Settings{StreakCount: 4, LastCompletedDate: "2024-01-10"}
	advanceStreak(&s, "2024-01-11")
	if s.StreakCount != 5 {
		t.Fatalf("adjacent day: streak=%d, want 5", s.StreakCount)
	}

	s = Settings{StreakCount: 4, LastCompletedDate: "2024-01-10"}
	advanceStreak(&s, "2024-01-13")
	if s.StreakCount != 1 {
		t.Fatalf("gap: streak=%d, want reset to 1", s.StreakCount)
	}
}

func TestStreakNoDoubleCredit(t *testing.T) {
	s := Settings{StreakCount: 3, LastCompletedDate: "2024-01-11"}
	if advanceStreak(&s, "2024-01-11") {
		t.Fatalf("already-credited date must not change settings")
	}
	if s.StreakCount != 3 {
		t.Fatalf("streak=%d, want 3", s.StreakCount)
	}
}

func TestStreakMonthBoundary(t *testing.T) {
	s := Settings{StreakCount: 9, LastCompletedDate: "2024-02-29"}
	advanceStreak(&s, "2024-03-01")
	if s.StreakCount != 10 {
		t.Fatalf("leap month boundary: streak=%d, want 10", s.StreakCount)
	}
}
