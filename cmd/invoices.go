package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wastepay/pspctl/internal/api"
	"github.com/wastepay/pspctl/internal/format"
	"github.com/wastepay/pspctl/internal/listview"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "Manage customer invoices",
}

var invoicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	Example: `  pspctl invoices list --status overdue
  pspctl invoices list --range this-month --sort amount --order desc`,
	RunE: runInvoicesList,
}

func init() {
	rootCmd.AddCommand(invoicesCmd)
	invoicesCmd.AddCommand(invoicesListCmd)

	addListFlags(invoicesListCmd)
	addRangeFlags(invoicesListCmd)
	invoicesListCmd.Flags().String("status", "", "filter by status (pending, partial, paid, overdue)")
}

func runInvoicesList(cmd *cobra.Command, args []string) error {
	status, _ := cmd.Flags().GetString("status")
	filters := map[string]string{"status": status}
	if err := rangeFilters(cmd, filters); err != nil {
		return err
	}

	return runList(cmd, listSpec[api.Invoice]{
		resource: "invoices",
		fetch:    client.ListInvoices,
		empty:    "No invoices match the current filters",
		sortBy:   "issuedAt",
		order:    listview.Desc,
		filters:  filters,
		primary:  func(i api.Invoice) string { return i.ID },
		fallback: func(i api.Invoice) string { return i.InvoiceNumber },
		columns: []listview.Column[api.Invoice]{
			{Header: "INVOICE", Value: func(i api.Invoice) string { return i.InvoiceNumber }},
			{Header: "CUSTOMER", Value: func(i api.Invoice) string { return i.CustomerName }},
			{Header: "AMOUNT", Value: func(i api.Invoice) string { return format.NairaFull(i.Amount) }},
			{Header: "PAID", Value: func(i api.Invoice) string { return format.NairaFull(i.AmountPaid) }},
			{Header: "DUE", Value: func(i api.Invoice) string { return i.DueDate.Format("2006-01-02") }},
			{Header: "STATUS", Value: func(i api.Invoice) string {
				return fmt.Sprintf("%s %s", printer.StatusBadge(i.Status), i.Status)
			}},
		},
	})
}
