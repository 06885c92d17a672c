package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/baraza/pkg/model"
)

func newPaymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Work with payments",
	}
	cmd.AddCommand(newPaymentsListCmd(), newPaymentsInitiateCmd())
	return cmd
}

func newPaymentsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payments",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession()
			if err != nil {
				return err
			}

			payments, err := platform.ListPayments(cmd.Context(), sess.scope())
			if err != nil {
				return err
			}
			if len(payments) == 0 {
				fmt.Println("No payments found.")
				return nil
			}

			fmt.Printf("%-6s  %-8s  %-14s  %-10s  %s\n", "ID", "METHOD", "AMOUNT", "STATUS", "CREATED")
			for _, p := range payments {
				amount := fmt.Sprintf("%s %s", humanize.CommafWithDigits(p.Amount, 2), p.Currency)
				fmt.Printf("%-6d  %-8s  %-14s  %-10s  %s\n",
					p.ID, p.Method, amount, p.Status, humanize.Time(p.CreatedAt))
			}
			return nil
		},
	}
	return cmd
}

func newPaymentsInitiateCmd() *cobra.Command {
	var req model.InitiatePaymentRequest
	var method string

	cmd := &cobra.Command{
		Use:   "initiate",
		Short: "Initiate a Stripe or M-Pesa payment",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := requireSession()
			if err != nil {
				return err
			}

			req.Method = model.PaymentMethod(method)
			if apiErr := req.Validate(); apiErr != nil {
				return apiErr
			}

			payment, err := platform.InitiatePayment(cmd.Context(), sess.scope(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Payment %d initiated via %s, status %s.\n", payment.ID, payment.Method, payment.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&method, "method", "stripe", "Payment method (stripe, mpesa)")
	cmd.Flags().Float64Var(&req.Amount, "amount", 0, "Amount to charge (required)")
	cmd.Flags().StringVar(&req.Currency, "currency", "KES", "Currency code")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number (required for mpesa)")
	cmd.Flags().Int64Var(&req.ProjectID, "project", 0, "Project the payment is for")
	cmd.MarkFlagRequired("amount")
	return cmd
}
