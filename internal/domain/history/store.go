// Package history persists one row per generation attempt in SQLite and
// serves it back for the HTTP API.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get for unknown ids.
var ErrNotFound = errors.New("history: generation not found")

const (
	DefaultListLimit = 25
	MaxListLimit     = 100
)

// Generation is one upstream call, successful or not.
type Generation struct {
	ID         string    `json:"id"`
	Batch      string    `json:"batch"`
	Provider   string    `json:"provider"`
	Model      string    `json:"model"`
	Prompt     string    `json:"prompt"`
	Response   string    `json:"response,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"durationMs"`
	ClientID   string    `json:"clientId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListFilter narrows List. An empty Batch matches every batch.
type ListFilter struct {
	Limit  int
	Offset int
	Batch  string
}

// Store reads and writes generation_log.
type Store struct {
	db *sql.DB
}

// NewStore wraps an already migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Insert stores g. A missing ID is filled with a UUID v7 and a zero
// CreatedAt with the current time; the stored row is returned.
func (s *Store) Insert(ctx context.Context, g Generation) (*Generation, error) {
	if g.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("history insert: new id: %w", err)
		}
		g.ID = id.String()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	g.CreatedAt = g.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO generation_log
			(id, batch, provider, model, prompt, response, error, duration_ms, client_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Batch, g.Provider, g.Model, g.Prompt,
		nullString(g.Response), nullString(g.Error), g.DurationMS,
		nullString(g.ClientID), g.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("history insert: %w", err)
	}
	return &g, nil
}

// Get returns the generation with id or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Generation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, batch, provider, model, prompt, response, error, duration_ms, client_id, created_at
		FROM generation_log WHERE id = ?`, id)

	g, err := scanGeneration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("history get %s: %w", id, err)
	}
	return g, nil
}

// List returns generations newest first, plus the total matching f.Batch.
func (s *Store) List(ctx context.Context, f ListFilter) ([]*Generation, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := max(f.Offset, 0)

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM generation_log WHERE (? = '' OR batch = ?)`,
		f.Batch, f.Batch,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("history count: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, batch, provider, model, prompt, response, error, duration_ms, client_id, created_at
		FROM generation_log
		WHERE (? = '' OR batch = ?)
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		f.Batch, f.Batch, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("history list: %w", err)
	}
	defer rows.Close()

	out := make([]*Generation, 0, limit)
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("history list: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("history list: %w", err)
	}
	return out, total, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGeneration(sc scanner) (*Generation, error) {
	var (
		g                           Generation
		response, errText, clientID sql.NullString
		createdAt                   string
	)
	if err := sc.Scan(
		&g.ID, &g.Batch, &g.Provider, &g.Model, &g.Prompt,
		&response, &errText, &g.DurationMS, &clientID, &createdAt,
	); err != nil {
		return nil, err
	}
	g.Response = response.String
	g.Error = errText.String
	g.ClientID = clientID.String

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	g.CreatedAt = ts
	return &g, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
