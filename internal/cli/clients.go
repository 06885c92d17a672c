package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/baraza/pkg/model"
)

func newClientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Work with business clients",
	}
	cmd.AddCommand(newClientsListCmd(), newClientsOnboardCmd())
	return cmd
}

func newClientsListCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(); err != nil {
				return err
			}

			clients, err := platform.ListClients(cmd.Context(), model.ListOptions{Limit: limit, Offset: offset})
			if err != nil {
				return err
			}
			if len(clients) == 0 {
				fmt.Println("No clients found.")
				return nil
			}

			fmt.Printf("%-6s  %-25s  %-30s  %s\n", "ID", "NAME", "EMAIL", "STATUS")
			for _, c := range clients {
				fmt.Printf("%-6d  %-25s  %-30s  %s\n", c.ID, c.Name, c.Email, c.Status)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Max clients to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")
	return cmd
}

func newClientsOnboardCmd() *cobra.Command {
	var req model.OnboardClientRequest

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Onboard a new client",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(); err != nil {
				return err
			}
			if apiErr := req.Validate(); apiErr != nil {
				return apiErr
			}

			client, err := platform.OnboardClient(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Client %q onboarded with ID %d.\n", client.Name, client.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Client name (required)")
	cmd.Flags().StringVar(&req.Email, "email", "", "Client contact email (required)")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Client phone")
	cmd.Flags().StringVar(&req.Company, "company", "", "Company name")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	return cmd
}
