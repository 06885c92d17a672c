package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newDocumentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "Work with client documents",
	}
	cmd.AddCommand(newDocumentsListCmd())
	return cmd
}

func newDocumentsListCmd() *cobra.Command {
	var clientID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession()
			if err != nil {
				return err
			}

			scope := sess.scope()
			if clientID > 0 {
				scope = clientID
			}

			docs, err := platform.ListDocuments(cmd.Context(), scope)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				fmt.Println("No documents found.")
				return nil
			}

			fmt.Printf("%-6s  %-35s  %-24s  %-10s  %s\n", "ID", "NAME", "TYPE", "SIZE", "UPLOADED")
			for _, d := range docs {
				fmt.Printf("%-6d  %-35s  %-24s  %-10s  %s\n",
					d.ID, d.Name, d.ContentType,
					humanize.Bytes(uint64(d.SizeBytes)), humanize.Time(d.UploadedAt))
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&clientID, "client", 0, "Client entity ID (defaults to your own scope)")
	return cmd
}
