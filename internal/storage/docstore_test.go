package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDocStore(t *testing.T) *DocStore {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewDocStore(db, zap.NewNop())
}

func TestReadOnceMissingReturnsNil(t *testing.T) {
	docs := newTestDocStore(t)
	doc, err := docs.ReadOnce(context.Background(), "users/u/settings")
	require.NoError(t, err)
	require.Nil(t, doc)
}

func TestWriteIsFullReplace(t *testing.T) {
	docs := newTestDocStore(t)
	ctx := context.Background()

	require.NoError(t, docs.Write(ctx, "users/u/settings", []byte(`{"streakCount":1,"lastCompletedDate":"2024-01-10"}`)))
	require.NoError(t, docs.Write(ctx, "users/u/settings", []byte(`{"streakCount":2}`)))

	doc, err := docs.ReadOnce(ctx, "users/u/settings")
	require.NoError(t, err)
	require.NotNil(t, doc)
	// The second write replaced the document wholesale; the dropped field is gone.
	require.JSONEq(t, `{"streakCount":2}`, string(doc.Value))
}

func TestListPrefix(t *testing.T) {
	docs := newTestDocStore(t)
	ctx := context.Background()

	require.NoError(t, docs.Write(ctx, DayPath("u", "2024-01-10"), []byte(`{}`)))
	require.NoError(t, docs.Write(ctx, DayPath("u", "2024-01-12"), []byte(`{}`)))
	require.NoError(t, docs.Write(ctx, DayPath("u", "2024-01-11"), []byte(`{}`)))
	require.NoError(t, docs.Write(ctx, SettingsPath("u"), []byte(`{}`)))
	require.NoError(t, docs.Write(ctx, DayPath("other", "2024-01-10"), []byte(`{}`)))

	got, err := docs.ListPrefix(ctx, DaysPrefix("u"))
	require.NoError(t, err)
	require.Len(t, got, 3)
	// Day keys sort chronologically as paths.
	require.Equal(t, DayPath("u", "2024-01-10"), got[0].Path)
	require.Equal(t, DayPath("u", "2024-01-11"), got[1].Path)
	require.Equal(t, DayPath("u", "2024-01-12"), got[2].Path)
}

func TestSubscribeDeliversSnapshotThenUpdates(t *testing.T) {
	docs := newTestDocStore(t)
	ctx := context.Background()

	require.NoError(t, docs.Write(ctx, DayPath("u", "2024-01-10"), []byte(`{"a":1}`)))

	ch, cancel, err := docs.Subscribe(ctx, DaysPrefix("u"))
	require.NoError(t, err)
	defer cancel()

	// Initial snapshot.
	first := <-ch
	require.Equal(t, DayPath("u", "2024-01-10"), first.Path)

	// Full value on change, not a diff.
	require.NoError(t, docs.Write(ctx, DayPath("u", "2024-01-10"), []byte(`{"a":2}`)))
	second := recv(t, ch)
	require.JSONEq(t, `{"a":2}`, string(second.Value))

	// Writes outside the prefix are not delivered.
	require.NoError(t, docs.Write(ctx, SettingsPath("u"), []byte(`{}`)))
	require.NoError(t, docs.Write(ctx, DayPath("u", "2024-01-11"), []byte(`{"b":1}`)))
	third := recv(t, ch)
	require.Equal(t, DayPath("u", "2024-01-11"), third.Path)
}

func TestSubscribeCancelClosesChannel(t *testing.T) {
	docs := newTestDocStore(t)
	ctx := context.Background()

	ch, cancel, err := docs.Subscribe(ctx, DaysPrefix("u"))
	require.NoError(t, err)
	cancel()
	cancel() // safe to call twice

	_, open := <-ch
	require.False(t, open)

	// Writes after teardown do not panic or deliver.
	require.NoError(t, docs.Write(ctx, DayPath("u", "2024-01-10"), []byte(`{}`)))
}

func recv(t *testing.T, ch <-chan Document) Document {
	t.Helper()
	select {
	case d := <-ch:
		return d
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for document")
		return Document{}
	}
}
