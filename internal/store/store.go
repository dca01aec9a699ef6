package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed event store.
type Store struct {
	db *sql.DB
}

const createEventsTable = `
CREATE TABLE IF NOT EXISTS llm_request_events (
	id            TEXT PRIMARY KEY,
	at            TEXT NOT NULL,
	provider      TEXT NOT NULL,
	model         TEXT NOT NULL,
	purpose       TEXT NOT NULL,
	latency_ms    INTEGER NOT NULL,
	input_tokens  INTEGER NOT NULL,
	output_tokens INTEGER NOT NULL,
	success       INTEGER NOT NULL,
	error_message TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_llm_request_events_at ON llm_request_events (at);
`

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates the schema if missing.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(createEventsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db}
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, ev LLMRequestEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_request_events
			(id, at, provider, model, purpose, latency_ms, input_tokens, output_tokens, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID,
		ev.At.Format(time.RFC3339Nano),
		ev.Provider,
		ev.Model,
		ev.Purpose,
		ev.Latency.Milliseconds(),
		ev.InputTokens,
		ev.OutputTokens,
		boolToInt(ev.Success),
		ev.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("insert llm request event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, at, provider, model, purpose, latency_ms, input_tokens, output_tokens, success, error_message
		FROM llm_request_events
		ORDER BY at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query llm request events: %w", err)
	}
	defer rows.Close()

	var events []LLMRequestEvent
	for rows.Next() {
		var ev LLMRequestEvent
		var at string
		var latencyMs int64
		var success int
		if err := rows.Scan(&ev.ID, &at, &ev.Provider, &ev.Model, &ev.Purpose,
			&latencyMs, &ev.InputTokens, &ev.OutputTokens, &success, &ev.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan llm request event: %w", err)
		}
		ev.At, _ = time.Parse(time.RFC3339Nano, at)
		ev.Latency = time.Duration(latencyMs) * time.Millisecond
		ev.Success = success != 0
		events = append(events, ev)
	}
	return events, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. GENMENTOR_DB environment variable
// 2. $XDG_DATA_HOME/genmentor/genmentor.db
// 3. ~/.local/share/genmentor/genmentor.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("GENMENTOR_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "genmentor", "genmentor.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it does not exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
