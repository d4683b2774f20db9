package progress

import (
	"context"
	"time"

	"go.uber.org/zap"

	"renshu/internal/datekey"
)

// SignalSource samples the sibling features' last-activity timestamps. Each
// method reports whether that feature was used on the given date. Reads are
// one-shot; the bridge never subscribes to these documents.
type SignalSource interface {
	AnyDeckStudiedOn(ctx context.Context, userID string, date datekey.Key) (bool, error)
	GrammarCompletedOn(ctx context.Context, userID string, date datekey.Key) (bool, error)
	WritingCompletedOn(ctx context.Context, userID string, date datekey.Key) (bool, error)
}

// Bridge reconciles automatically-detected activity with the built-in
// checklist. It runs once per "today" activation, only for today's record.
type Bridge struct {
	store   *Store
	signals SignalSource
	log     *zap.Logger
}

func NewBridge(store *Store, signals SignalSource, log *zap.Logger) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bridge{store: store, signals: signals, log: log}
}

// Reconcile marks today's built-ins complete for every feature that reports
// activity today. The day is written back only when at least one item
// actually changed, so re-running the bridge is cheap and loop-free. A
// failed signal read skips that signal; reconciliation is best-effort and
// never fails the whole pass over one collaborator.
func (b *Bridge) Reconcile(ctx context.Context, today datekey.Key) (int, error) {
	type probe struct {
		item BuiltinID
		read func(context.Context, string, datekey.Key) (bool, error)
	}
	probes := []probe{
		{BuiltinDeckStudy, b.signals.AnyDeckStudiedOn},
		{BuiltinGrammarQuiz, b.signals.GrammarCompletedOn},
		{BuiltinWriting, b.signals.WritingCompletedOn},
	}

	active := make(map[BuiltinID]bool, len(probes))
	for _, p := range probes {
		on, err := p.read(ctx, b.store.UserID(), today)
		if err != nil {
			b.log.Debug("activity signal read failed, skipping",
				zap.String("item", string(p.item)), zap.Error(err))
			continue
		}
		if on {
			active[p.item] = true
		}
	}
	if len(active) == 0 {
		return 0, nil
	}

	marked := 0
	_, err := b.store.mutateDay(ctx, today, func(day *DailyProgress, _ *Settings) (bool, error) {
		now := time.Now().UTC()
		for i := range day.Items {
			if active[day.Items[i].ID] && !day.Items[i].Done() {
				day.Items[i].CompletedAt = &now
				marked++
			}
		}
		return marked > 0, nil
	})
	if err != nil {
		return 0, err
	}
	if marked > 0 {
		b.log.Info("auto-completed items from feature activity",
			zap.String("date", today.String()), zap.Int("count", marked))
	}
	return marked, nil
}
