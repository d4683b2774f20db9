package progress

import (
	"strings"
	"time"

	"renshu/internal/datekey"
)

type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
)

func (t TimeOfDay) IsValid() bool {
	switch t {
	case TimeMorning, TimeAfternoon, TimeEvening:
		return true
	default:
		return false
	}
}

// DefaultTimeOfDay is used when user input is missing/invalid.
const DefaultTimeOfDay TimeOfDay = TimeEvening

func ParseTimeOfDay(input string) TimeOfDay {
	t := TimeOfDay(strings.TrimSpace(strings.ToLower(input)))
	if !t.IsValid() {
		return DefaultTimeOfDay
	}
	return t
}

// BuiltinID identifies one of the fixed core checklist entries.
type BuiltinID string

const (
	BuiltinDeckStudy    BuiltinID = "deck_study"
	BuiltinGrammarQuiz  BuiltinID = "grammar_quiz"
	BuiltinWriting      BuiltinID = "writing_session"
	BuiltinConversation BuiltinID = "conversation"
)

// ChecklistItem is one of the built-in core tasks, materialized into a day.
// CompletedAt presence is the sole completion signal.
type ChecklistItem struct {
	ID          BuiltinID  `json:"id"`
	Label       string     `json:"label"`
	TimeOfDay   TimeOfDay  `json:"timeOfDay"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (c ChecklistItem) Done() bool { return c.CompletedAt != nil }

// SubCheckItem is an informational sub-entry of a custom task. Checking all
// sub-items does not complete the parent task.
type SubCheckItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked,omitempty"`
}

// CustomTask is a user-authored checklist entry. When Recurring is set the
// task also lives in the registry as a template; day records hold per-date
// instances sharing the template id.
type CustomTask struct {
	ID           string         `json:"id"`
	Label        string         `json:"label"`
	Sublabel     string         `json:"sublabel,omitempty"`
	TimeOfDay    TimeOfDay      `json:"timeOfDay"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty"`
	Recurring    bool           `json:"recurring,omitempty"`
	ActiveDays   []time.Weekday `json:"activeDays,omitempty"`
	SubChecklist []SubCheckItem `json:"subChecklist,omitempty"`
}

func (t CustomTask) Done() bool { return t.CompletedAt != nil }

// ActiveOn reports whether a template applies to the given weekday.
// Empty ActiveDays means every day.
func (t CustomTask) ActiveOn(wd time.Weekday) bool {
	if len(t.ActiveDays) == 0 {
		return true
	}
	for _, d := range t.ActiveDays {
		if d == wd {
			return true
		}
	}
	return false
}

// DailyProgress is the stored snapshot for one calendar day. Records are
// created lazily on first mutation; a date with no record is synthesized on
// read and never written back by view-only paths.
type DailyProgress struct {
	Date        datekey.Key     `json:"date"`
	Items       []ChecklistItem `json:"items"`
	CustomItems []CustomTask    `json:"customItems,omitempty"`
}

// Settings is the per-user global progress state: streak bookkeeping, hidden
// built-ins, and the recurring-task registry.
type Settings struct {
	StreakCount        int          `json:"streakCount"`
	LastCompletedDate  datekey.Key  `json:"lastCompletedDate,omitempty"`
	HiddenDefaultItems []BuiltinID  `json:"hiddenDefaultItems,omitempty"`
	RecurringTasks     []CustomTask `json:"recurringTasks,omitempty"`
}

func (s Settings) IsHidden(id BuiltinID) bool {
	for _, h := range s.HiddenDefaultItems {
		if h == id {
			return true
		}
	}
	return false
}

// RecurringTemplate returns the registry template with the given id, if any.
func (s Settings) RecurringTemplate(id string) *CustomTask {
	for i := range s.RecurringTasks {
		if s.RecurringTasks[i].ID == id {
			return &s.RecurringTasks[i]
		}
	}
	return nil
}
