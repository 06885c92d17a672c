package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/baraza/pkg/model"
)

func newListingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listings",
		Short: "Work with the token marketplace",
	}
	cmd.AddCommand(newListingsListCmd(), newListingsCreateCmd())
	return cmd
}

func newListingsListCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List marketplace listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(); err != nil {
				return err
			}

			listings, err := platform.ListListings(cmd.Context(), model.ListOptions{Limit: limit, Offset: offset})
			if err != nil {
				return err
			}
			if len(listings) == 0 {
				fmt.Println("No listings found.")
				return nil
			}

			fmt.Printf("%-6s  %-30s  %-12s  %-12s  %s\n", "ID", "TITLE", "PRICE", "AVAILABLE", "STATUS")
			for _, l := range listings {
				fmt.Printf("%-6d  %-30s  %-12s  %-12s  %s\n",
					l.ID, l.Title,
					humanize.CommafWithDigits(l.TokenPrice, 4),
					humanize.Comma(l.TokensAvailable), l.Status)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Max listings to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "Pagination offset")
	return cmd
}

func newListingsCreateCmd() *cobra.Command {
	var req model.CreateListingRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "List tokens of an asset on the marketplace",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession()
			if err != nil {
				return err
			}
			if apiErr := req.Validate(); apiErr != nil {
				return apiErr
			}

			listing, err := platform.CreateListing(cmd.Context(), sess.scope(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Listing %d created for asset %d.\n", listing.ID, listing.AssetID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&req.AssetID, "asset", 0, "Tokenized asset ID (required)")
	cmd.Flags().StringVar(&req.Title, "title", "", "Listing title (required)")
	cmd.Flags().Float64Var(&req.TokenPrice, "price", 0, "Price per token (required)")
	cmd.Flags().Int64Var(&req.TokensAvailable, "available", 0, "Tokens offered (required)")
	cmd.MarkFlagRequired("asset")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("price")
	cmd.MarkFlagRequired("available")
	return cmd
}
