package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wastepay/pspctl/internal/api"
	"github.com/wastepay/pspctl/internal/format"
	"github.com/wastepay/pspctl/internal/listview"
)

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "Browse collected payments",
}

var paymentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payments",
	Example: `  pspctl payments list --range today
  pspctl payments list --method cash --status confirmed`,
	RunE: runPaymentsList,
}

func init() {
	rootCmd.AddCommand(paymentsCmd)
	paymentsCmd.AddCommand(paymentsListCmd)

	addListFlags(paymentsListCmd)
	addRangeFlags(paymentsListCmd)
	paymentsListCmd.Flags().String("status", "", "filter by status (pending, confirmed, failed)")
	paymentsListCmd.Flags().String("method", "", "filter by method (cash, transfer, card, ussd)")
}

func runPaymentsList(cmd *cobra.Command, args []string) error {
	status, _ := cmd.Flags().GetString("status")
	method, _ := cmd.Flags().GetString("method")
	filters := map[string]string{"status": status, "method": method}
	if err := rangeFilters(cmd, filters); err != nil {
		return err
	}

	return runList(cmd, listSpec[api.Payment]{
		resource: "payments",
		fetch:    client.ListPayments,
		empty:    "No payments match the current filters",
		sortBy:   "paidAt",
		order:    listview.Desc,
		filters:  filters,
		primary:  func(p api.Payment) string { return p.ID },
		fallback: func(p api.Payment) string { return p.Reference },
		columns: []listview.Column[api.Payment]{
			{Header: "REFERENCE", Value: func(p api.Payment) string { return p.Reference }},
			{Header: "CUSTOMER", Value: func(p api.Payment) string { return p.CustomerName }},
			{Header: "AMOUNT", Value: func(p api.Payment) string { return format.NairaFull(p.Amount) }},
			{Header: "METHOD", Value: func(p api.Payment) string { return p.Method }},
			{Header: "PAID AT", Value: func(p api.Payment) string { return p.PaidAt.Format("2006-01-02 15:04") }},
			{Header: "STATUS", Value: func(p api.Payment) string {
				return fmt.Sprintf("%s %s", printer.StatusBadge(p.Status), p.Status)
			}},
		},
	})
}
