package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"renshu/internal/datekey"
	"renshu/internal/storage"
)

// Store owns the per-user progress documents: the day-keyed records and the
// settings document (streak state, hidden built-ins, recurring registry).
// The user id is passed in explicitly; there is no ambient current-user
// singleton.
//
// Every mutation follows the same shape: read the raw day (falling back to a
// projected synthesized one when absent), apply a pure transform, write the
// whole document back. There are no partial patches, so concurrent writers
// degrade to last-write-wins rather than interleaved field updates.
type Store struct {
	docs     *storage.DocStore
	userID   string
	log      *zap.Logger
	loaded   atomic.Bool
	mu       sync.Mutex
	selected datekey.Key
}

func NewStore(docs *storage.DocStore, userID string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{docs: docs, userID: userID, log: log}
	s.selected = datekey.Today()
	return s
}

func (s *Store) UserID() string { return s.userID }

func (s *Store) SelectedDate() datekey.Key {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

func (s *Store) SetSelectedDate(d datekey.Key) {
	s.mu.Lock()
	s.selected = d
	s.mu.Unlock()
}

// Loaded reports whether the store has finished its initial load. It is set
// even when a subscription fails, so the UI never hangs on a dead listener.
func (s *Store) Loaded() bool { return s.loaded.Load() }

// Settings loads the settings document. A missing or malformed document
// degrades to zero-value settings rather than an error.
func (s *Store) Settings(ctx context.Context) (Settings, error) {
	var out Settings
	doc, err := s.docs.ReadOnce(ctx, storage.SettingsPath(s.userID))
	if err != nil {
		return out, fmt.Errorf("load settings: %w", err)
	}
	if doc == nil {
		return out, nil
	}
	if err := json.Unmarshal(doc.Value, &out); err != nil {
		s.log.Warn("malformed settings document, using defaults",
			zap.String("user", s.userID), zap.Error(err))
		return Settings{}, nil
	}
	return out, nil
}

func (s *Store) writeSettings(ctx context.Context, settings Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.docs.Write(ctx, storage.SettingsPath(s.userID), data); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// rawDay returns the stored record for date, or nil when none exists yet.
// Malformed records degrade to nil so the day stays renderable.
func (s *Store) rawDay(ctx context.Context, date datekey.Key) (*DailyProgress, error) {
	doc, err := s.docs.ReadOnce(ctx, storage.DayPath(s.userID, date.String()))
	if err != nil {
		return nil, fmt.Errorf("load day %s: %w", date, err)
	}
	if doc == nil {
		return nil, nil
	}
	var day DailyProgress
	if err := json.Unmarshal(doc.Value, &day); err != nil {
		s.log.Warn("malformed day document, treating as empty",
			zap.String("date", date.String()), zap.Error(err))
		return nil, nil
	}
	return &day, nil
}

func (s *Store) writeDay(ctx context.Context, day DailyProgress) error {
	data, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("encode day %s: %w", day.Date, err)
	}
	if err := s.docs.Write(ctx, storage.DayPath(s.userID, day.Date.String()), data); err != nil {
		return fmt.Errorf("write day %s: %w", day.Date, err)
	}
	return nil
}

// EffectiveForDate returns the hidden-filtered projection for date. View
// only; nothing is written back, even for dates with no stored record.
func (s *Store) EffectiveForDate(ctx context.Context, date datekey.Key) (EffectiveDay, Settings, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return EffectiveDay{}, settings, err
	}
	raw, err := s.rawDay(ctx, date)
	if err != nil {
		return EffectiveDay{}, settings, err
	}
	day := Project(raw, settings.RecurringTasks, date)
	return Effective(day, settings), settings, nil
}

// Effective returns the effective view for the selected date.
func (s *Store) Effective(ctx context.Context) (EffectiveDay, Settings, error) {
	return s.EffectiveForDate(ctx, s.SelectedDate())
}

// mutateDay runs one full read-transform-write cycle against the selected
// date and returns the written day. The transform receives the projected raw
// record (recurring instances materialized) and reports whether it changed
// anything; unchanged days are not written.
func (s *Store) mutateDay(ctx context.Context, date datekey.Key, fn func(day *DailyProgress, settings *Settings) (bool, error)) (DailyProgress, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return DailyProgress{}, err
	}
	raw, err := s.rawDay(ctx, date)
	if err != nil {
		return DailyProgress{}, err
	}
	day := Project(raw, settings.RecurringTasks, date)

	settingsBefore, err := json.Marshal(settings)
	if err != nil {
		return DailyProgress{}, fmt.Errorf("encode settings: %w", err)
	}

	changed, err := fn(&day, &settings)
	if err != nil {
		return DailyProgress{}, err
	}
	if !changed {
		return day, nil
	}
	if err := s.writeDay(ctx, day); err != nil {
		return day, err
	}

	// Credit the streak when the edit left every visible built-in complete.
	settingsDirty := s.creditIfCoreDone(&settings, day)

	if !settingsDirty {
		after, err := json.Marshal(settings)
		if err != nil {
			return day, fmt.Errorf("encode settings: %w", err)
		}
		settingsDirty = string(after) != string(settingsBefore)
	}
	if settingsDirty {
		if err := s.writeSettings(ctx, settings); err != nil {
			return day, err
		}
	}
	return day, nil
}

func (s *Store) creditIfCoreDone(settings *Settings, day DailyProgress) bool {
	if !CoreAllDone(day, *settings) {
		return false
	}
	if !advanceStreak(settings, day.Date) {
		return false
	}
	s.log.Info("streak advanced",
		zap.String("date", day.Date.String()),
		zap.Int("streak", settings.StreakCount))
	return true
}

// CompleteItem sets the completion timestamp on a built-in item of the
// selected date's raw record.
func (s *Store) CompleteItem(ctx context.Context, id BuiltinID) (DailyProgress, error) {
	return s.setItemCompletion(ctx, id, true)
}

// UncompleteItem clears a built-in item's completion timestamp. The streak
// is never decremented for an already-credited date.
func (s *Store) UncompleteItem(ctx context.Context, id BuiltinID) (DailyProgress, error) {
	return s.setItemCompletion(ctx, id, false)
}

func (s *Store) setItemCompletion(ctx context.Context, id BuiltinID, done bool) (DailyProgress, error) {
	if !IsBuiltin(id) {
		return DailyProgress{}, fmt.Errorf("unknown built-in item %q", id)
	}
	return s.mutateDay(ctx, s.SelectedDate(), func(day *DailyProgress, _ *Settings) (bool, error) {
		for i := range day.Items {
			if day.Items[i].ID != id {
				continue
			}
			if done == day.Items[i].Done() {
				return false, nil
			}
			if done {
				now := time.Now().UTC()
				day.Items[i].CompletedAt = &now
			} else {
				day.Items[i].CompletedAt = nil
			}
			return true, nil
		}
		return false, fmt.Errorf("item %q not present on %s", id, day.Date)
	})
}

// AddTaskInput describes a new custom task.
type AddTaskInput struct {
	Label        string
	Sublabel     string
	TimeOfDay    TimeOfDay
	Recurring    bool
	ActiveDays   []time.Weekday
	SubChecklist []string
}

// AddCustomTask appends a new task to the selected date's record and, when
// recurring, registers it as a template for future days.
func (s *Store) AddCustomTask(ctx context.Context, in AddTaskInput) (CustomTask, error) {
	if in.Label == "" {
		return CustomTask{}, fmt.Errorf("task label is required")
	}
	if !in.TimeOfDay.IsValid() {
		in.TimeOfDay = DefaultTimeOfDay
	}

	task := CustomTask{
		ID:         uuid.NewString(),
		Label:      in.Label,
		Sublabel:   in.Sublabel,
		TimeOfDay:  in.TimeOfDay,
		Recurring:  in.Recurring,
		ActiveDays: in.ActiveDays,
	}
	for _, text := range in.SubChecklist {
		task.SubChecklist = append(task.SubChecklist, SubCheckItem{ID: uuid.NewString(), Text: text})
	}

	_, err := s.mutateDay(ctx, s.SelectedDate(), func(day *DailyProgress, settings *Settings) (bool, error) {
		day.CustomItems = append(day.CustomItems, task)
		if task.Recurring {
			settings.RecurringTasks = append(settings.RecurringTasks, task)
		}
		return true, nil
	})
	if err != nil {
		return CustomTask{}, err
	}
	return task, nil
}

// RemoveCustomTask removes the task from the selected date only. A recurring
// template, if any, is left untouched and will re-inject on later days.
func (s *Store) RemoveCustomTask(ctx context.Context, id string) error {
	_, err := s.mutateDay(ctx, s.SelectedDate(), func(day *DailyProgress, _ *Settings) (bool, error) {
		kept := day.CustomItems[:0:0]
		for _, t := range day.CustomItems {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		if len(kept) == len(day.CustomItems) {
			return false, fmt.Errorf("task %q not present on %s", id, day.Date)
		}
		day.CustomItems = kept
		return true, nil
	})
	return err
}

// RemoveRecurringTask removes the registry template and the selected date's
// materialized instance.
func (s *Store) RemoveRecurringTask(ctx context.Context, id string) error {
	_, err := s.mutateDay(ctx, s.SelectedDate(), func(day *DailyProgress, settings *Settings) (bool, error) {
		keptTpl := settings.RecurringTasks[:0:0]
		for _, t := range settings.RecurringTasks {
			if t.ID != id {
				keptTpl = append(keptTpl, t)
			}
		}
		if len(keptTpl) == len(settings.RecurringTasks) {
			return false, fmt.Errorf("recurring task %q not found", id)
		}
		settings.RecurringTasks = keptTpl

		kept := day.CustomItems[:0:0]
		for _, t := range day.CustomItems {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		day.CustomItems = kept
		return true, nil
	})
	return err
}

// ToggleCustomTask flips a custom task's completion on the selected date.
// Toggling an injected instance is what first persists it.
func (s *Store) ToggleCustomTask(ctx context.Context, id string) (DailyProgress, error) {
	return s.mutateDay(ctx, s.SelectedDate(), func(day *DailyProgress, _ *Settings) (bool, error) {
		for i := range day.CustomItems {
			if day.CustomItems[i].ID != id {
				continue
			}
			if day.CustomItems[i].Done() {
				day.CustomItems[i].CompletedAt = nil
			} else {
				now := time.Now().UTC()
				day.CustomItems[i].CompletedAt = &now
			}
			return true, nil
		}
		return false, fmt.Errorf("task %q not present on %s", id, day.Date)
	})
}

// ToggleSubCheckItem flips one sub-item. Sub-items are informational; the
// parent task's own completion timestamp is not touched.
func (s *Store) ToggleSubCheckItem(ctx context.Context, taskID, subID string) error {
	_, err := s.mutateDay(ctx, s.SelectedDate(), func(day *DailyProgress, _ *Settings) (bool, error) {
		for i := range day.CustomItems {
			if day.CustomItems[i].ID != taskID {
				continue
			}
			for j := range day.CustomItems[i].SubChecklist {
				if day.CustomItems[i].SubChecklist[j].ID != subID {
					continue
				}
				day.CustomItems[i].SubChecklist[j].Checked = !day.CustomItems[i].SubChecklist[j].Checked
				return true, nil
			}
			return false, fmt.Errorf("sub-item %q not present on task %q", subID, taskID)
		}
		return false, fmt.Errorf("task %q not present on %s", taskID, day.Date)
	})
	return err
}

// TaskPatch is a partial update of a custom task; nil fields are left alone.
type TaskPatch struct {
	Label        *string
	Sublabel     *string
	TimeOfDay    *TimeOfDay
	Recurring    *bool
	ActiveDays   *[]time.Weekday
	SubChecklist *[]SubCheckItem
}

func (p TaskPatch) apply(t *CustomTask) {
	if p.Label != nil {
		t.Label = *p.Label
	}
	if p.Sublabel != nil {
		t.Sublabel = *p.Sublabel
	}
	if p.TimeOfDay != nil && p.TimeOfDay.IsValid() {
		t.TimeOfDay = *p.TimeOfDay
	}
	if p.Recurring != nil {
		t.Recurring = *p.Recurring
	}
	if p.ActiveDays != nil {
		t.ActiveDays = *p.ActiveDays
	}
	if p.SubChecklist != nil {
		t.SubChecklist = *p.SubChecklist
	}
}

// EditCustomTask patches the selected date's instance. When the task is (or
// becomes) recurring the registry template is patched too, so future
// injections pick the edit up; already-materialized days keep their snapshot.
func (s *Store) EditCustomTask(ctx context.Context, id string, patch TaskPatch) error {
	_, err := s.mutateDay(ctx, s.SelectedDate(), func(day *DailyProgress, settings *Settings) (bool, error) {
		for i := range day.CustomItems {
			if day.CustomItems[i].ID != id {
				continue
			}
			patch.apply(&day.CustomItems[i])
			if day.CustomItems[i].Recurring {
				if tpl := settings.RecurringTemplate(id); tpl != nil {
					patch.apply(tpl)
				} else {
					settings.RecurringTasks = append(settings.RecurringTasks, freshInstance(day.CustomItems[i]))
				}
			}
			return true, nil
		}
		return false, fmt.Errorf("task %q not present on %s", id, day.Date)
	})
	return err
}

// ToggleDefaultItemVisibility hides or shows a built-in item. Hiding only
// affects counts and display; stored completions are retained.
func (s *Store) ToggleDefaultItemVisibility(ctx context.Context, id BuiltinID) error {
	if !IsBuiltin(id) {
		return fmt.Errorf("unknown built-in item %q", id)
	}
	settings, err := s.Settings(ctx)
	if err != nil {
		return err
	}
	if settings.IsHidden(id) {
		kept := settings.HiddenDefaultItems[:0:0]
		for _, h := range settings.HiddenDefaultItems {
			if h != id {
				kept = append(kept, h)
			}
		}
		settings.HiddenDefaultItems = kept
	} else {
		settings.HiddenDefaultItems = append(settings.HiddenDefaultItems, id)
	}
	return s.writeSettings(ctx, settings)
}

// Watch subscribes to the settings document and the day collection and
// signals on every remote change; the TUI reloads off it. Subscription
// failures are logged and leave a channel that never fires; the store still
// reports loaded so callers do not hang.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, func()) {
	out := make(chan struct{}, 1)

	settingsCh, cancelSettings, err := s.docs.Subscribe(ctx, storage.SettingsPath(s.userID))
	if err != nil {
		s.log.Error("settings subscription failed", zap.Error(err))
		s.loaded.Store(true)
		return out, func() {}
	}
	daysCh, cancelDays, err := s.docs.Subscribe(ctx, storage.DaysPrefix(s.userID))
	if err != nil {
		s.log.Error("day subscription failed", zap.Error(err))
		cancelSettings()
		s.loaded.Store(true)
		return out, func() {}
	}

	go func() {
		for settingsCh != nil || daysCh != nil {
			select {
			case _, ok := <-settingsCh:
				if !ok {
					settingsCh = nil
					continue
				}
			case _, ok := <-daysCh:
				if !ok {
					daysCh = nil
					continue
				}
			case <-ctx.Done():
				return
			}
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}()

	s.loaded.Store(true)
	cancel := func() {
		cancelSettings()
		cancelDays()
	}
	return out, cancel
}
