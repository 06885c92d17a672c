package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/baraza/pkg/model"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Work with consulting projects",
	}
	cmd.AddCommand(newProjectsListCmd(), newProjectsCreateCmd())
	return cmd
}

func newProjectsListCmd() *cobra.Command {
	var clientID int64
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession()
			if err != nil {
				return err
			}

			scope := sess.scope()
			if clientID > 0 {
				scope = clientID
			}

			projects, err := platform.ListProjects(cmd.Context(), scope, model.ListOptions{Limit: limit, Offset: offset})
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println("No projects found.")
				return nil
			}

			fmt.Printf("%-6s  %-30s  %-12s  %-14s  %s\n", "ID", "NAME", "STATUS", "BUDGET", "CREATED")
			for _, p := range projects {
				budget := "-"
				if p.Budget > 0 {
					budget = fmt.Sprintf("%s %s", humanize.CommafWithDigits(p.Budget, 2), p.Currency)
				}
				fmt.Printf("%-6d  %-30s  %-12s  %-14s  %s\n",
					p.ID, p.Name, p.Status, budget, humanize.Time(p.CreatedAt))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&clientID, "client", 0, "Client entity ID (defaults to your own scope)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Max projects to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")
	return cmd
}

func newProjectsCreateCmd() *cobra.Command {
	var req model.CreateProjectRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project for a client",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession()
			if err != nil {
				return err
			}
			if req.ClientID == 0 {
				req.ClientID = sess.scope()
			}
			if apiErr := req.Validate(); apiErr != nil {
				return apiErr
			}

			project, err := platform.CreateProject(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Project %q created with ID %d.\n", project.Name, project.ID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&req.ClientID, "client", 0, "Client entity ID (defaults to your own scope)")
	cmd.Flags().StringVar(&req.Name, "name", "", "Project name (required)")
	cmd.Flags().StringVar(&req.Summary, "summary", "", "Project summary")
	cmd.Flags().Float64Var(&req.Budget, "budget", 0, "Project budget")
	cmd.Flags().StringVar(&req.Currency, "currency", "KES", "Budget currency")
	cmd.MarkFlagRequired("name")
	return cmd
}
