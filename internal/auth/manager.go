package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/me/baraza/pkg/model"
)

// State is the manager's observable session state. Consumers must be able
// to tell "still hydrating" apart from "hydrated, no session".
type State int

const (
	// StateHydrating is the initial state before Hydrate has resolved.
	StateHydrating State = iota
	// StateAnonymous means hydration resolved with no usable session.
	StateAnonymous
	// StateActive means a fully populated session is committed.
	StateActive
)

func (s State) String() string {
	switch s {
	case StateHydrating:
		return "hydrating"
	case StateAnonymous:
		return "anonymous"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// AuthClient is the remote authentication contract the manager drives.
// Implemented by api.Client.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*model.AuthResult, error)
	SetToken(token string)
	ClearToken()
}

// Snapshot is an immutable view of the manager's state handed to
// subscribers and readers.
type Snapshot struct {
	State   State
	Session *model.Session // nil unless State is StateActive
}

// Manager owns the process-wide session: it hydrates from the credential
// store at startup, executes login/logout against the platform API, and
// resolves the scope identity for client-scoped calls. All mutation is
// serialized behind a mutex so no reader ever observes a partial session.
type Manager struct {
	mu      sync.Mutex
	state   State
	sess    *model.Session
	store   CredentialStore
	client  AuthClient
	logger  *slog.Logger
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewManager creates a Manager in the hydrating state.
func NewManager(store CredentialStore, client AuthClient, logger *slog.Logger) *Manager {
	return &Manager{
		state:  StateHydrating,
		store:  store,
		client: client,
		logger: logger.With("component", "auth"),
		subs:   make(map[int]func(Snapshot)),
	}
}

// Hydrate restores the session from the credential store. It is
// local-only and never fails outward: a missing, unparsable, or invalid
// record resolves to the anonymous state and clears the store so no
// partially trusted record survives. Idempotent.
func (m *Manager) Hydrate() {
	m.mu.Lock()

	sess, err := m.restoreSession()
	if err != nil {
		// Corrupt or incomplete record: self-heal silently by treating
		// the session as absent and wiping the store.
		m.logger.Warn("discarding unusable session record", "error", err)
		sess = nil
	}

	if sess == nil {
		if clearErr := m.store.Clear(); clearErr != nil {
			m.logger.Warn("clear credential store", "error", clearErr)
		}
		m.sess = nil
		m.state = StateAnonymous
		m.client.ClearToken()
		m.notifyLocked()
		return
	}

	m.sess = sess
	m.state = StateActive
	m.client.SetToken(sess.Token)
	m.logger.Debug("session hydrated", "user_id", sess.UserID, "role", sess.Role)
	m.notifyLocked()
}

// restoreSession reads and validates the persisted record. It returns
// (nil, nil) for an absent record and an error for anything that cannot
// be trusted as a complete session.
func (m *Manager) restoreSession() (*model.Session, error) {
	creds, err := m.store.Read()
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, nil
	}

	var sess model.Session
	if err := json.Unmarshal(creds.User, &sess); err != nil {
		return nil, fmt.Errorf("parse user record: %w", err)
	}
	sess.Token = creds.Token
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Login authenticates against the platform API and commits a new session.
// On any failure nothing is committed: the prior session, store record,
// and bearer token are left untouched. Returns the mapped role so the
// caller can redirect to the matching landing path.
func (m *Manager) Login(ctx context.Context, email, password string) (model.Role, error) {
	result, err := m.client.Login(ctx, email, password)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) && apiErr.Code == model.ErrUnauthorized {
			m.logger.Warn("login rejected", "email", email)
			return "", err
		}
		m.logger.Warn("login request failed", "email", email, "error", err)
		return "", fmt.Errorf("login failed, check your connection: %w", err)
	}

	role, err := model.ParseExternalRole(result.Role)
	if err != nil {
		// Internal signal only: shown to the user as a generic failure.
		m.logger.Error("login returned unknown role", "email", email, "error", err)
		return "", fmt.Errorf("login failed: %w", err)
	}

	sess := model.Session{
		UserID:   result.ID,
		Email:    result.Email,
		Role:     role,
		Token:    result.Token,
		ClientID: result.ClientID,
	}
	if err := sess.Validate(); err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}

	user, err := json.Marshal(&sess)
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}

	m.mu.Lock()
	if err := m.store.Write(sess.Token, user); err != nil {
		m.mu.Unlock()
		return "", fmt.Errorf("persist session: %w", err)
	}
	m.sess = &sess
	m.state = StateActive
	m.client.SetToken(sess.Token)
	m.logger.Info("logged in", "user_id", sess.UserID, "role", sess.Role)
	m.notifyLocked()

	return role, nil
}

// Logout clears the in-memory session, the credential store, and the
// bearer token. Calling it with no active session is a no-op.
func (m *Manager) Logout() {
	m.mu.Lock()
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("clear credential store", "error", err)
	}
	if m.sess != nil {
		m.logger.Info("logged out", "user_id", m.sess.UserID)
	}
	m.sess = nil
	if m.state != StateHydrating {
		m.state = StateAnonymous
	}
	m.client.ClearToken()
	m.notifyLocked()
}

// ScopeID returns the identity for client-scoped platform calls:
// the session's client entity id when issued, otherwise the login
// account id. ok is false when no session is active.
func (m *Manager) ScopeID() (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return 0, false
	}
	return m.sess.ScopeID(), true
}

// Snapshot returns the current state and a copy of the session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Current returns a copy of the active session, or nil.
func (m *Manager) Current() *model.Session {
	return m.Snapshot().Session
}

// Subscribe registers fn to run after every state change. The returned
// id unsubscribes via Unsubscribe. fn is called outside the manager's
// lock; it must not assume the snapshot is still current.
func (m *Manager) Subscribe(fn func(Snapshot)) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return id
}

// Unsubscribe removes a subscription. Unknown ids are ignored.
func (m *Manager) Unsubscribe(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.subs, id)
}

func (m *Manager) snapshotLocked() Snapshot {
	snap := Snapshot{State: m.state}
	if m.sess != nil {
		sess := *m.sess
		snap.Session = &sess
	}
	return snap
}

// notifyLocked distributes the current snapshot and releases the lock.
// Callers must hold m.mu and must not use it afterwards.
func (m *Manager) notifyLocked() {
	snap := m.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
