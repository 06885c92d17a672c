package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the platform",
		Long:  "Authenticate with the platform API and store the session for later commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(os.Stdin)
			if email == "" {
				fmt.Print("Email: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read email: %w", err)
				}
				email = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Print("Password: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimSpace(line)
			}
			if email == "" || password == "" {
				return fmt.Errorf("email and password are required")
			}

			role, err := manager.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Printf("Signed in as %s (%s). Dashboard: %s\n", email, role, role.LandingPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (prompted if omitted)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted if omitted)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager.Logout()
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession()
			if err != nil {
				return err
			}
			s := sess.snap.Session
			fmt.Printf("Email:     %s\n", s.Email)
			fmt.Printf("Role:      %s\n", s.Role)
			fmt.Printf("User ID:   %d\n", s.UserID)
			if s.ClientID != 0 {
				fmt.Printf("Client ID: %d\n", s.ClientID)
			}
			fmt.Printf("Dashboard: %s\n", s.Role.LandingPath())
			return nil
		},
	}
}
