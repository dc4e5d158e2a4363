package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wastepay/pspctl/internal/api"
	"github.com/wastepay/pspctl/internal/format"
	"github.com/wastepay/pspctl/internal/listview"
)

var customersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Manage waste-collection customers",
}

var customersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	RunE:  runCustomersList,
}

func init() {
	rootCmd.AddCommand(customersCmd)
	customersCmd.AddCommand(customersListCmd)

	addListFlags(customersListCmd)
	customersListCmd.Flags().String("status", "", "filter by status (active, inactive)")
	customersListCmd.Flags().String("ward", "", "filter by ward id")
	customersListCmd.Flags().String("property-type", "", "filter by property type id")
}

func runCustomersList(cmd *cobra.Command, args []string) error {
	status, _ := cmd.Flags().GetString("status")
	ward, _ := cmd.Flags().GetString("ward")
	propertyType, _ := cmd.Flags().GetString("property-type")

	return runList(cmd, listSpec[api.Customer]{
		resource: "customers",
		fetch:    client.ListCustomers,
		empty:    "No customers match the current filters",
		sortBy:   "createdAt",
		order:    listview.Desc,
		filters: map[string]string{
			"status":       status,
			"wardId":       ward,
			"propertyType": propertyType,
		},
		primary:  func(c api.Customer) string { return c.ID },
		fallback: func(c api.Customer) string { return c.AccountNumber },
		columns: []listview.Column[api.Customer]{
			{Header: "ACCOUNT", Value: func(c api.Customer) string { return c.AccountNumber }},
			{Header: "NAME", Value: func(c api.Customer) string { return c.FirstName + " " + c.LastName }},
			{Header: "PHONE", Value: func(c api.Customer) string { return displayPhone(c.Phone) }},
			{Header: "WARD", Value: func(c api.Customer) string { return c.Ward }},
			{Header: "PROPERTY", Value: func(c api.Customer) string { return c.PropertyType }},
			{Header: "BALANCE", Value: func(c api.Customer) string { return format.NairaCompact(c.Balance) }},
			{Header: "STATUS", Value: func(c api.Customer) string {
				return fmt.Sprintf("%s %s", printer.StatusBadge(c.Status), c.Status)
			}},
		},
	})
}

// displayPhone shows the canonical +234 form, falling back to the raw value
// when it cannot be normalized.
func displayPhone(raw string) string {
	normalized, err := format.NormalizePhone(raw)
	if err != nil {
		return raw
	}
	return normalized
}
