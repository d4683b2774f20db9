package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"renshu/internal/datekey"
)

func TestDeckSignalsMatchDatePortionOnly(t *testing.T) {
	docs := newTestDocStore(t)
	repo := NewSignalRepo(docs)
	ctx := context.Background()

	date := datekey.Key("2024-03-01")
	lateNight := time.Date(2024, 3, 1, 23, 55, 0, 0, time.Local)

	on, err := repo.AnyDeckStudiedOn(ctx, "u", date)
	require.NoError(t, err)
	require.False(t, on, "no decks yet")

	require.NoError(t, repo.TouchDeck(ctx, "u", "n5-vocab", lateNight))
	on, err = repo.AnyDeckStudiedOn(ctx, "u", date)
	require.NoError(t, err)
	require.True(t, on)

	// Next day the same timestamp no longer counts.
	on, err = repo.AnyDeckStudiedOn(ctx, "u", date.AddDays(1))
	require.NoError(t, err)
	require.False(t, on)

	// Any one deck of several is enough.
	require.NoError(t, repo.TouchDeck(ctx, "u", "n4-kanji", lateNight.AddDate(0, 0, -3)))
	on, err = repo.AnyDeckStudiedOn(ctx, "u", date)
	require.NoError(t, err)
	require.True(t, on)
}

func TestSessionSignals(t *testing.T) {
	docs := newTestDocStore(t)
	repo := NewSignalRepo(docs)
	ctx := context.Background()

	date := datekey.Key("2024-03-01")
	noon := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)

	on, err := repo.GrammarCompletedOn(ctx, "u", date)
	require.NoError(t, err)
	require.False(t, on)

	require.NoError(t, repo.SetGrammarResult(ctx, "u", noon))
	require.NoError(t, repo.SetWritingResult(ctx, "u", noon.AddDate(0, 0, -1)))

	on, err = repo.GrammarCompletedOn(ctx, "u", date)
	require.NoError(t, err)
	require.True(t, on)

	// The writing result is from yesterday; only its date portion matters.
	on, err = repo.WritingCompletedOn(ctx, "u", date)
	require.NoError(t, err)
	require.False(t, on)
	on, err = repo.WritingCompletedOn(ctx, "u", date.AddDays(-1))
	require.NoError(t, err)
	require.True(t, on)
}
