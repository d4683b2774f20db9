package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Document is one stored JSON value. Writes are whole-document replaces;
// there are no partial patches at this layer.
type Document struct {
	Path      string
	Value     []byte
	UpdatedAt time.Time
}

// DocStore is a path-keyed JSON document store over sqlite with push-style
// change notification for in-process subscribers. It mirrors the remote
// store's contract: ReadOnce, Write (full replace) and Subscribe, which
// re-delivers the full current value on every change, not a diff.
type DocStore struct {
	db  *sql.DB
	log *zap.Logger

	mu      sync.Mutex
	nextSub int64
	subs    map[int64]*subscriber
}

type subscriber struct {
	prefix string
	ch     chan Document
}

func NewDocStore(db *sql.DB, log *zap.Logger) *DocStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &DocStore{
		db:   db,
		log:  log,
		subs: map[int64]*subscriber{},
	}
}

// ReadOnce returns the document at path, or nil when absent.
func (s *DocStore) ReadOnce(ctx context.Context, path string) (*Document, error) {
	row := s.db.QueryRowContext(ctx, `SELECT path, value, updated_at FROM documents WHERE path = ?`, path)

	var d Document
	var value string
	if err := row.Scan(&d.Path, &value, &d.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("document read %q: %w", path, err)
	}
	d.Value = []byte(value)
	return &d, nil
}

// Write replaces the document at path and notifies subscribers whose prefix
// covers it.
func (s *DocStore) Write(ctx context.Context, path string, value []byte) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (path, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, path, string(value), now)
	if err != nil {
		return fmt.Errorf("document write %q: %w", path, err)
	}
	s.notify(Document{Path: path, Value: value, UpdatedAt: now})
	return nil
}

// ListPrefix returns all documents whose path starts with prefix, ordered by
// path.
func (s *DocStore) ListPrefix(ctx context.Context, prefix string) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, value, updated_at FROM documents
		WHERE path >= ? AND path < ?
		ORDER BY path ASC
	`, prefix, prefix+"\xff")
	if err != nil {
		return nil, fmt.Errorf("document list %q: %w", prefix, err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var d Document
		var value string
		if err := rows.Scan(&d.Path, &value, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("document scan: %w", err)
		}
		d.Value = []byte(value)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("document list rows: %w", err)
	}
	return out, nil
}

// Subscribe delivers the current documents under prefix, then the full new
// value of any document written under it. The returned cancel func tears the
// subscription down; it is safe to call more than once.
func (s *DocStore) Subscribe(ctx context.Context, prefix string) (<-chan Document, func(), error) {
	initial, err := s.ListPrefix(ctx, prefix)
	if err != nil {
		return nil, nil, err
	}

	sub := &subscriber{prefix: prefix, ch: make(chan Document, 32+len(initial))}
	for _, d := range initial {
		sub.ch <- d
	}

	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs[id] = sub
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel, nil
}

func (s *DocStore) notify(d Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.subs {
		if !strings.HasPrefix(d.Path, sub.prefix) {
			continue
		}
		select {
		case sub.ch <- d:
		default:
			// Slow consumer; delivery is best-effort and the consumer
			// re-reads on its next event anyway.
			s.log.Warn("dropping document notification", zap.String("path", d.Path))
		}
	}
}
