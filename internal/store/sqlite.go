package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/baraza/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// --- Server sessions ---

func (s *SQLiteStore) CreateSession(ctx context.Context, sess *model.ServerSession) error {
	s.logger.Debug("sql", "op", "insert", "table", "sessions", "id", sess.ID)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, email, role, token, client_id, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Session.UserID, sess.Session.Email, string(sess.Session.Role),
		sess.Session.Token, sess.Session.ClientID,
		sess.CreatedAt.Unix(), sess.ExpiresAt.Unix(),
	)
	return err
}

func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*model.ServerSession, error) {
	s.logger.Debug("sql", "op", "select", "table", "sessions", "id", id)

	var sess model.ServerSession
	var role string
	var createdAt, expiresAt int64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, email, role, token, client_id, created_at, expires_at
		 FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.Session.UserID, &sess.Session.Email, &role,
		&sess.Session.Token, &sess.Session.ClientID, &createdAt, &expiresAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sess.Session.Role = model.Role(role)
	sess.CreatedAt = time.Unix(createdAt, 0)
	sess.ExpiresAt = time.Unix(expiresAt, 0)

	return &sess, nil
}

func (s *SQLiteStore) DeleteSession(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "sessions", "id", id)

	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	s.logger.Debug("sql", "op", "delete_expired", "table", "sessions")

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// --- Login audit ---

func (s *SQLiteStore) RecordLoginEvent(ctx context.Context, ev *model.LoginEvent) error {
	s.logger.Debug("sql", "op", "insert", "table", "login_events", "email", ev.Email)

	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO login_events (email, success, role, request_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		ev.Email, boolToInt(ev.Success), string(ev.Role), ev.RequestID, ev.CreatedAt.Unix(),
	)
	if err != nil {
		return err
	}
	ev.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) ListLoginEvents(ctx context.Context, opts model.ListOptions) ([]*model.LoginEvent, int, error) {
	s.logger.Debug("sql", "op", "select", "table", "login_events")
	opts.Clamp()

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM login_events`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, success, role, request_id, created_at
		 FROM login_events ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		opts.Limit, opts.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var events []*model.LoginEvent
	for rows.Next() {
		var ev model.LoginEvent
		var success int
		var role string
		var createdAt int64
		if err := rows.Scan(&ev.ID, &ev.Email, &success, &role, &ev.RequestID, &createdAt); err != nil {
			return nil, 0, err
		}
		ev.Success = success != 0
		ev.Role = model.Role(role)
		ev.CreatedAt = time.Unix(createdAt, 0)
		events = append(events, &ev)
	}
	return events, total, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
