package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/me/baraza/pkg/model"
)

// startFakePlatform serves the platform endpoints the CLI talks to.
func startFakePlatform(t *testing.T) string {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req model.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		w.Header().Set("Content-Type", "application/json")
		if req.Email == "carol@client.co" {
			json.NewEncoder(w).Encode(model.AuthResult{ID: 7, Email: req.Email, Role: "Client", Token: "tok-carol", ClientID: 42})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": "UNAUTHORIZED", "message": "invalid email or password"},
		})
	})
	mux.HandleFunc("/clients", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		json.NewEncoder(w).Encode([]model.Client{{ID: 42, Name: "Acme Ltd", Email: "ops@acme.co", Status: "active"}})
	})
	mux.HandleFunc("/projects", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if r.URL.Query().Get("client_id") != "42" {
			t.Errorf("projects called with client_id=%s, want 42", r.URL.Query().Get("client_id"))
		}
		json.NewEncoder(w).Encode([]model.Project{{ID: 1, ClientID: 42, Name: "ERP rollout", Status: "active"}})
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts.URL
}

// runCLI executes the root command and returns captured stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	var errBuf bytes.Buffer
	root.SetOut(&errBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err := root.Execute()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), err
}

// isolateHome pins the credential store under a temp dir.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoginCommand(t *testing.T) {
	home := isolateHome(t)
	url := startFakePlatform(t)

	output, err := runCLI(t, "--platform", url, "login", "--email", "carol@client.co", "--password", "pw")
	if err != nil {
		t.Fatalf("login error: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "Signed in as carol@client.co (client)") {
		t.Errorf("unexpected login output: %s", output)
	}
	if !strings.Contains(output, "/client") {
		t.Errorf("expected landing path in output, got: %s", output)
	}

	if _, err := os.Stat(filepath.Join(home, ".baraza", "session.json")); err != nil {
		t.Errorf("credentials file not written: %v", err)
	}
}

func TestLoginCommand_BadCredentials(t *testing.T) {
	isolateHome(t)
	url := startFakePlatform(t)

	_, err := runCLI(t, "--platform", url, "login", "--email", "nobody@x.co", "--password", "wrong")
	if err == nil {
		t.Fatal("expected login to fail")
	}
	if !strings.Contains(err.Error(), "invalid email or password") {
		t.Errorf("error = %v, want the platform's message", err)
	}
}

func TestWhoamiCommand(t *testing.T) {
	isolateHome(t)
	url := startFakePlatform(t)

	if _, err := runCLI(t, "--platform", url, "login", "--email", "carol@client.co", "--password", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	output, err := runCLI(t, "--platform", url, "whoami")
	if err != nil {
		t.Fatalf("whoami error: %v", err)
	}
	for _, want := range []string{"carol@client.co", "client", "Client ID: 42"} {
		if !strings.Contains(output, want) {
			t.Errorf("whoami output missing %q: %s", want, output)
		}
	}
}

func TestWhoamiCommand_NotSignedIn(t *testing.T) {
	isolateHome(t)
	url := startFakePlatform(t)

	_, err := runCLI(t, "--platform", url, "whoami")
	if err == nil || !strings.Contains(err.Error(), "not signed in") {
		t.Errorf("error = %v, want not-signed-in", err)
	}
}

func TestLogoutCommand(t *testing.T) {
	home := isolateHome(t)
	url := startFakePlatform(t)

	if _, err := runCLI(t, "--platform", url, "login", "--email", "carol@client.co", "--password", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	output, err := runCLI(t, "--platform", url, "logout")
	if err != nil {
		t.Fatalf("logout error: %v", err)
	}
	if !strings.Contains(output, "Signed out.") {
		t.Errorf("unexpected logout output: %s", output)
	}
	if _, err := os.Stat(filepath.Join(home, ".baraza", "session.json")); !os.IsNotExist(err) {
		t.Errorf("credentials file still present after logout")
	}

	// Logging out again stays quiet and succeeds.
	if _, err := runCLI(t, "--platform", url, "logout"); err != nil {
		t.Errorf("second logout error: %v", err)
	}
}

func TestClientsListCommand(t *testing.T) {
	isolateHome(t)
	url := startFakePlatform(t)

	if _, err := runCLI(t, "--platform", url, "login", "--email", "carol@client.co", "--password", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	output, err := runCLI(t, "--platform", url, "clients", "list")
	if err != nil {
		t.Fatalf("clients list error: %v", err)
	}
	if !strings.Contains(output, "Acme Ltd") {
		t.Errorf("expected client name in output, got: %s", output)
	}
}

func TestProjectsListCommand_UsesClientScope(t *testing.T) {
	isolateHome(t)
	url := startFakePlatform(t)

	if _, err := runCLI(t, "--platform", url, "login", "--email", "carol@client.co", "--password", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	output, err := runCLI(t, "--platform", url, "projects", "list")
	if err != nil {
		t.Fatalf("projects list error: %v", err)
	}
	if !strings.Contains(output, "ERP rollout") {
		t.Errorf("expected project name in output, got: %s", output)
	}
}
