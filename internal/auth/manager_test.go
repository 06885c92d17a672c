package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/me/baraza/pkg/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAuthClient implements AuthClient for manager tests.
type fakeAuthClient struct {
	result *model.AuthResult
	err    error
	token  string
	calls  int
}

func (f *fakeAuthClient) Login(_ context.Context, email, password string) (*model.AuthResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeAuthClient) SetToken(token string) { f.token = token }
func (f *fakeAuthClient) ClearToken()           { f.token = "" }

func storedSession(t *testing.T, store CredentialStore, sess model.Session) {
	t.Helper()
	user, err := json.Marshal(&sess)
	if err != nil {
		t.Fatalf("marshal session: %v", err)
	}
	if err := store.Write(sess.Token, user); err != nil {
		t.Fatalf("write store: %v", err)
	}
}

func newTestManager() (*Manager, *MemStore, *fakeAuthClient) {
	store := &MemStore{}
	client := &fakeAuthClient{}
	return NewManager(store, client, testLogger()), store, client
}

func TestManager_StartsHydrating(t *testing.T) {
	m, _, _ := newTestManager()
	if snap := m.Snapshot(); snap.State != StateHydrating {
		t.Errorf("initial state = %v, want hydrating", snap.State)
	}
}

func TestManager_Hydrate_EmptyStore(t *testing.T) {
	m, _, client := newTestManager()
	m.Hydrate()

	snap := m.Snapshot()
	if snap.State != StateAnonymous {
		t.Errorf("state = %v, want anonymous", snap.State)
	}
	if snap.Session != nil {
		t.Error("expected nil session")
	}
	if client.token != "" {
		t.Errorf("client token = %q, want empty", client.token)
	}
}

func TestManager_Hydrate_ValidRecord(t *testing.T) {
	m, store, client := newTestManager()
	storedSession(t, store, model.Session{
		UserID: 7, Email: "alice@x.com", Role: model.RoleClient, Token: "abc123", ClientID: 42,
	})

	m.Hydrate()

	snap := m.Snapshot()
	if snap.State != StateActive {
		t.Fatalf("state = %v, want active", snap.State)
	}
	if snap.Session.UserID != 7 || snap.Session.Role != model.RoleClient || snap.Session.ClientID != 42 {
		t.Errorf("session = %+v", snap.Session)
	}
	if snap.Session.Token != "abc123" {
		t.Errorf("session token = %q, want abc123", snap.Session.Token)
	}
	if client.token != "abc123" {
		t.Errorf("client token = %q, want abc123", client.token)
	}
}

func TestManager_Hydrate_Idempotent(t *testing.T) {
	m, store, _ := newTestManager()
	storedSession(t, store, model.Session{
		UserID: 3, Email: "bob@x.com", Role: model.RoleAdmin, Token: "tok",
	})

	m.Hydrate()
	first := m.Snapshot()
	m.Hydrate()
	second := m.Snapshot()

	if first.State != second.State {
		t.Errorf("states differ: %v vs %v", first.State, second.State)
	}
	if *first.Session != *second.Session {
		t.Errorf("sessions differ: %+v vs %+v", first.Session, second.Session)
	}
}

func TestManager_Hydrate_CorruptRecord(t *testing.T) {
	// Every partially present or malformed record must resolve to an
	// absent session and a cleared store.
	tests := []struct {
		name  string
		token string
		user  string
	}{
		{"truncated json", "tok", `{"user_id":7,"email"`},
		{"empty object", "tok", `{}`},
		{"missing email", "tok", `{"user_id":7,"role":"client"}`},
		{"missing user id", "tok", `{"email":"a@x.com","role":"client"}`},
		{"unknown role", "tok", `{"user_id":7,"email":"a@x.com","role":"auditor"}`},
		{"wrong type", "tok", `[1,2,3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store, client := newTestManager()
			if err := store.Write(tt.token, []byte(tt.user)); err != nil {
				t.Fatalf("write store: %v", err)
			}

			m.Hydrate()

			snap := m.Snapshot()
			if snap.State != StateAnonymous {
				t.Errorf("state = %v, want anonymous", snap.State)
			}
			if snap.Session != nil {
				t.Errorf("session = %+v, want nil", snap.Session)
			}
			if creds, _ := store.Read(); creds != nil {
				t.Error("store should be cleared after corrupt record")
			}
			if client.token != "" {
				t.Errorf("client token = %q, want empty", client.token)
			}
		})
	}
}

func TestManager_Hydrate_MissingToken(t *testing.T) {
	// A user record without a stored token rebuilds into a tokenless
	// session, which must be rejected and wiped.
	m, store, _ := newTestManager()
	user, _ := json.Marshal(&model.Session{UserID: 7, Email: "a@x.com", Role: model.RoleClient})
	if err := store.Write("", user); err != nil {
		t.Fatalf("write store: %v", err)
	}

	m.Hydrate()

	if snap := m.Snapshot(); snap.State != StateAnonymous {
		t.Errorf("state = %v, want anonymous", snap.State)
	}
	if creds, _ := store.Read(); creds != nil {
		t.Error("store should be cleared")
	}
}

func TestManager_Login_Success(t *testing.T) {
	m, store, client := newTestManager()
	m.Hydrate()
	client.result = &model.AuthResult{
		ID: 7, Email: "alice@x.com", Role: "Client", Token: "abc123", ClientID: 42,
	}

	role, err := m.Login(context.Background(), "alice@x.com", "ok")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if role != model.RoleClient {
		t.Errorf("role = %q, want client", role)
	}
	if role.LandingPath() != "/client" {
		t.Errorf("landing path = %q, want /client", role.LandingPath())
	}

	snap := m.Snapshot()
	if snap.State != StateActive {
		t.Fatalf("state = %v, want active", snap.State)
	}
	if snap.Session.UserID != 7 || snap.Session.ClientID != 42 || snap.Session.Token != "abc123" {
		t.Errorf("session = %+v", snap.Session)
	}
	if client.token != "abc123" {
		t.Errorf("client token = %q, want abc123", client.token)
	}

	// Committed session must survive a fresh hydrate.
	m2 := NewManager(store, &fakeAuthClient{}, testLogger())
	m2.Hydrate()
	if snap := m2.Snapshot(); snap.State != StateActive || snap.Session.UserID != 7 {
		t.Errorf("rehydrated snapshot = %+v", snap)
	}

	if id, ok := m.ScopeID(); !ok || id != 42 {
		t.Errorf("ScopeID() = %d, %v, want 42, true", id, ok)
	}
}

func TestManager_Login_UnrecognizedRole(t *testing.T) {
	m, store, client := newTestManager()
	m.Hydrate()
	client.result = &model.AuthResult{
		ID: 9, Email: "aud@x.com", Role: "Auditor", Token: "tok",
	}

	_, err := m.Login(context.Background(), "aud@x.com", "ok")
	if err == nil {
		t.Fatal("expected login failure for unrecognized role")
	}
	var ure *model.UnrecognizedRoleError
	if !errors.As(err, &ure) {
		t.Fatalf("expected UnrecognizedRoleError in chain, got %v", err)
	}

	if snap := m.Snapshot(); snap.State != StateAnonymous || snap.Session != nil {
		t.Errorf("state changed after failed login: %+v", snap)
	}
	if creds, _ := store.Read(); creds != nil {
		t.Error("store should stay empty after failed login")
	}
}

func TestManager_Login_FailureLeavesPriorSession(t *testing.T) {
	m, store, client := newTestManager()
	prior := model.Session{UserID: 3, Email: "old@x.com", Role: model.RoleSales, Token: "old-tok"}
	storedSession(t, store, prior)
	m.Hydrate()

	client.err = fmt.Errorf("connection refused")
	_, err := m.Login(context.Background(), "new@x.com", "pw")
	if err == nil {
		t.Fatal("expected login failure")
	}
	if !strings.Contains(err.Error(), "check your connection") {
		t.Errorf("network failure message = %q", err)
	}

	snap := m.Snapshot()
	if snap.State != StateActive || snap.Session.UserID != 3 || snap.Session.Token != "old-tok" {
		t.Errorf("prior session disturbed: %+v", snap)
	}
	creds, _ := store.Read()
	if creds == nil || creds.Token != "old-tok" {
		t.Error("prior store record disturbed")
	}
}

func TestManager_Login_CredentialRejected(t *testing.T) {
	m, _, client := newTestManager()
	m.Hydrate()
	client.err = model.NewUnauthorizedError("invalid email or password")

	_, err := m.Login(context.Background(), "alice@x.com", "bad")
	if err == nil {
		t.Fatal("expected login failure")
	}
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrUnauthorized {
		t.Fatalf("expected UNAUTHORIZED APIError, got %v", err)
	}
	// Rejection message is surfaced verbatim to the caller.
	if apiErr.Message != "invalid email or password" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestManager_Logout_ClearsEverything(t *testing.T) {
	m, store, client := newTestManager()
	storedSession(t, store, model.Session{
		UserID: 7, Email: "alice@x.com", Role: model.RoleClient, Token: "abc123",
	})
	m.Hydrate()

	m.Logout()

	if snap := m.Snapshot(); snap.State != StateAnonymous || snap.Session != nil {
		t.Errorf("snapshot after logout = %+v", snap)
	}
	if creds, _ := store.Read(); creds != nil {
		t.Error("store should be cleared after logout")
	}
	if client.token != "" {
		t.Errorf("client token = %q, want empty", client.token)
	}

	// Hydrating again must also resolve anonymous.
	m.Hydrate()
	if snap := m.Snapshot(); snap.State != StateAnonymous {
		t.Errorf("state after rehydrate = %v, want anonymous", snap.State)
	}

	if _, ok := m.ScopeID(); ok {
		t.Error("ScopeID should report no session after logout")
	}
}

func TestManager_Logout_Idempotent(t *testing.T) {
	m, _, _ := newTestManager()
	m.Hydrate()

	m.Logout()
	m.Logout() // no session: must be a no-op, not a panic or error

	if snap := m.Snapshot(); snap.State != StateAnonymous {
		t.Errorf("state = %v, want anonymous", snap.State)
	}
}

func TestManager_ScopeID_Fallback(t *testing.T) {
	for _, role := range []model.Role{model.RoleAdmin, model.RoleSales, model.RolePM, model.RoleClient} {
		t.Run(string(role), func(t *testing.T) {
			m, store, _ := newTestManager()
			storedSession(t, store, model.Session{
				UserID: 3, Email: "u@x.com", Role: role, Token: "tok",
			})
			m.Hydrate()

			if id, ok := m.ScopeID(); !ok || id != 3 {
				t.Errorf("ScopeID() = %d, %v, want 3, true", id, ok)
			}
		})
	}
}

func TestManager_Subscribe(t *testing.T) {
	m, _, client := newTestManager()
	var seen []State
	id := m.Subscribe(func(snap Snapshot) {
		seen = append(seen, snap.State)
	})

	m.Hydrate() // anonymous
	client.result = &model.AuthResult{ID: 1, Email: "a@x.com", Role: "Admin", Token: "t"}
	if _, err := m.Login(context.Background(), "a@x.com", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	m.Logout()

	want := []State{StateAnonymous, StateActive, StateAnonymous}
	if len(seen) != len(want) {
		t.Fatalf("got %d notifications, want %d: %v", len(seen), len(want), seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("notification %d = %v, want %v", i, seen[i], want[i])
		}
	}

	m.Unsubscribe(id)
	m.Hydrate()
	if len(seen) != len(want) {
		t.Error("unsubscribed observer still notified")
	}
}
