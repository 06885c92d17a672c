package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/baraza/internal/api"
	"github.com/me/baraza/internal/auth"
	"github.com/me/baraza/internal/logging"
)

var (
	flagPlatform  string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger   *slog.Logger
	platform *api.Client
	manager  *auth.Manager
)

// defaultPlatform returns the platform API URL, checking BARAZA_PLATFORM env var first.
func defaultPlatform() string {
	if s := os.Getenv("BARAZA_PLATFORM"); s != "" {
		return s
	}
	return api.DefaultBaseURL
}

// NewRootCmd creates the root cobra command for the baraza CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "baraza",
		Short: "Baraza — console for the consulting platform",
		Long:  "Baraza signs in to the consulting platform and works with clients, projects, documents, payments, tokenization, and the marketplace from the terminal.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLogger(logging.ParseLevel(flagLogLevel), flagLogFormat)
			platform = api.NewClient(api.Config{BaseURL: flagPlatform}, logger)

			store, err := auth.NewFileStore("")
			if err != nil {
				return fmt.Errorf("open credential store: %w", err)
			}
			manager = auth.NewManager(store, platform, logger)
			manager.Hydrate()
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagPlatform, "platform", defaultPlatform(), "Platform API URL (or BARAZA_PLATFORM env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newClientsCmd(),
		newProjectsCmd(),
		newDocumentsCmd(),
		newPaymentsCmd(),
		newTokensCmd(),
		newListingsCmd(),
	)

	return root
}

// requireSession returns the active session or an error telling the
// user to sign in.
func requireSession() (*authSession, error) {
	snap := manager.Snapshot()
	if snap.State != auth.StateActive || snap.Session == nil {
		return nil, fmt.Errorf("not signed in, run 'baraza login' first")
	}
	return &authSession{snap: snap}, nil
}

// authSession wraps an active snapshot for command helpers.
type authSession struct {
	snap auth.Snapshot
}

// scope returns the client entity the session operates on.
func (s *authSession) scope() int64 {
	return s.snap.Session.ScopeID()
}
