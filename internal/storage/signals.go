package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"renshu/internal/datekey"
)

// DeckActivity is written by the deck-study feature whenever a deck is
// reviewed.
type DeckActivity struct {
	LastStudiedAt time.Time `json:"lastStudiedAt"`
}

// SessionResult is the last-result document of the grammar and writing
// features.
type SessionResult struct {
	CompletedAt time.Time `json:"completedAt"`
}

// SignalRepo reads the sibling features' last-activity documents. The
// progress engine only samples these one-shot; it never subscribes to them.
type SignalRepo struct {
	docs *DocStore
}

func NewSignalRepo(docs *DocStore) *SignalRepo {
	return &SignalRepo{docs: docs}
}

// AnyDeckStudiedOn reports whether any deck's last-studied timestamp falls on
// date.
func (r *SignalRepo) AnyDeckStudiedOn(ctx context.Context, userID string, date datekey.Key) (bool, error) {
	docs, err := r.docs.ListPrefix(ctx, DecksPrefix(userID))
	if err != nil {
		return false, err
	}
	for _, d := range docs {
		var act DeckActivity
		if err := json.Unmarshal(d.Value, &act); err != nil {
			continue
		}
		if datekey.SameDay(date, act.LastStudiedAt) {
			return true, nil
		}
	}
	return false, nil
}

// GrammarCompletedOn reports whether the last grammar session finished on
// date.
func (r *SignalRepo) GrammarCompletedOn(ctx context.Context, userID string, date datekey.Key) (bool, error) {
	return r.sessionCompletedOn(ctx, GrammarSignalPath(userID), date)
}

// WritingCompletedOn reports whether the last writing session finished on
// date.
func (r *SignalRepo) WritingCompletedOn(ctx context.Context, userID string, date datekey.Key) (bool, error) {
	return r.sessionCompletedOn(ctx, WritingSignalPath(userID), date)
}

func (r *SignalRepo) sessionCompletedOn(ctx context.Context, path string, date datekey.Key) (bool, error) {
	doc, err := r.docs.ReadOnce(ctx, path)
	if err != nil {
		return false, err
	}
	if doc == nil {
		return false, nil
	}
	var res SessionResult
	if err := json.Unmarshal(doc.Value, &res); err != nil {
		return false, fmt.Errorf("decode session result %q: %w", path, err)
	}
	return datekey.SameDay(date, res.CompletedAt), nil
}

// TouchDeck records a deck review. Owned by the study feature; exposed here
// so the whole signal surface lives in one place.
func (r *SignalRepo) TouchDeck(ctx context.Context, userID, deckID string, at time.Time) error {
	return r.writeJSON(ctx, DeckSignalPath(userID, deckID), DeckActivity{LastStudiedAt: at})
}

// SetGrammarResult records the last grammar session completion.
func (r *SignalRepo) SetGrammarResult(ctx context.Context, userID string, at time.Time) error {
	return r.writeJSON(ctx, GrammarSignalPath(userID), SessionResult{CompletedAt: at})
}

// SetWritingResult records the last writing session completion.
func (r *SignalRepo) SetWritingResult(ctx context.Context, userID string, at time.Time) error {
	return r.writeJSON(ctx, WritingSignalPath(userID), SessionResult{CompletedAt: at})
}

func (r *SignalRepo) writeJSON(ctx context.Context, path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode signal %q: %w", path, err)
	}
	return r.docs.Write(ctx, path, data)
}
