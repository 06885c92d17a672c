package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/baraza/pkg/model"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Work with asset tokenization",
	}
	cmd.AddCommand(newTokensResultsCmd(), newTokensRequestCmd())
	return cmd
}

func newTokensResultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "Show valuation results for tokenized assets",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession()
			if err != nil {
				return err
			}

			results, err := platform.TokenizationResults(cmd.Context(), sess.scope())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Println("No tokenization results yet.")
				return nil
			}

			for _, res := range results {
				fmt.Printf("%s (asset %d) - %s\n", res.AssetName, res.AssetID, res.Status)
				fmt.Printf("  NPV:          %s\n", humanize.CommafWithDigits(res.NPV, 2))
				fmt.Printf("  Earned value: %s (planned %s, cost %s)\n",
					humanize.CommafWithDigits(res.EarnedValue, 2),
					humanize.CommafWithDigits(res.PlannedValue, 2),
					humanize.CommafWithDigits(res.ActualCost, 2))
				fmt.Printf("  Value range:  %s / %s / %s (%s runs)\n",
					humanize.CommafWithDigits(res.ValueLow, 2),
					humanize.CommafWithDigits(res.ValueMid, 2),
					humanize.CommafWithDigits(res.ValueHigh, 2),
					humanize.Comma(int64(res.SimulationRuns)))
				fmt.Printf("  Tokens:       %s at %s each\n",
					humanize.Comma(res.TokenSupply),
					humanize.CommafWithDigits(res.TokenPrice, 4))
			}
			return nil
		},
	}
}

func newTokensRequestCmd() *cobra.Command {
	var req model.TokenizationRequest

	cmd := &cobra.Command{
		Use:   "request",
		Short: "Submit an asset for tokenization",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession()
			if err != nil {
				return err
			}
			if apiErr := req.Validate(); apiErr != nil {
				return apiErr
			}

			result, err := platform.RequestTokenization(cmd.Context(), sess.scope(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Tokenization of %q submitted, status %s.\n", result.AssetName, result.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.AssetName, "asset", "", "Asset name (required)")
	cmd.Flags().StringVar(&req.AssetType, "type", "", "Asset type")
	cmd.Flags().StringVar(&req.Description, "description", "", "Asset description")
	cmd.Flags().Float64Var(&req.CashFlow, "cash-flow", 0, "Expected annual cash flow")
	cmd.Flags().Int64Var(&req.TokenSupply, "supply", 0, "Token supply to mint (required)")
	cmd.MarkFlagRequired("asset")
	cmd.MarkFlagRequired("supply")
	return cmd
}
