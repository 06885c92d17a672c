package store

import (
	"context"

	"github.com/me/baraza/pkg/model"
)

// Store defines the persistence layer for Baraza server state: cookie
// sessions and the login audit trail. Business data lives on the remote
// platform and is never persisted here.
type Store interface {
	// Server sessions
	CreateSession(ctx context.Context, sess *model.ServerSession) error
	GetSession(ctx context.Context, id string) (*model.ServerSession, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)

	// Login audit
	RecordLoginEvent(ctx context.Context, ev *model.LoginEvent) error
	ListLoginEvents(ctx context.Context, opts model.ListOptions) ([]*model.LoginEvent, int, error)

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
