package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wastepay/pspctl/internal/api"
	"github.com/wastepay/pspctl/internal/listview"
)

var pickupsCmd = &cobra.Command{
	Use:   "pickups",
	Short: "Browse scheduled and completed pickups",
}

var pickupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pickups",
	Example: `  pspctl pickups list --status missed --range last-week
  pspctl pickups list --ward wrd_12 --watch`,
	RunE: runPickupsList,
}

func init() {
	rootCmd.AddCommand(pickupsCmd)
	pickupsCmd.AddCommand(pickupsListCmd)

	addListFlags(pickupsListCmd)
	addRangeFlags(pickupsListCmd)
	pickupsListCmd.Flags().String("status", "", "filter by status (scheduled, in-progress, completed, missed)")
	pickupsListCmd.Flags().String("ward", "", "filter by ward id")
}

func runPickupsList(cmd *cobra.Command, args []string) error {
	status, _ := cmd.Flags().GetString("status")
	ward, _ := cmd.Flags().GetString("ward")
	filters := map[string]string{"status": status, "wardId": ward}
	if err := rangeFilters(cmd, filters); err != nil {
		return err
	}

	return runList(cmd, listSpec[api.Pickup]{
		resource: "pickups",
		fetch:    client.ListPickups,
		empty:    "No pickups match the current filters",
		sortBy:   "scheduledFor",
		order:    listview.Desc,
		filters:  filters,
		primary:  func(p api.Pickup) string { return p.ID },
		fallback: func(p api.Pickup) string { return p.CustomerID + "/" + p.ScheduledFor.Format("2006-01-02") },
		columns: []listview.Column[api.Pickup]{
			{Header: "CUSTOMER", Value: func(p api.Pickup) string { return p.CustomerName }},
			{Header: "WARD", Value: func(p api.Pickup) string { return p.Ward }},
			{Header: "STREET", Value: func(p api.Pickup) string { return p.Street }},
			{Header: "AGENT", Value: func(p api.Pickup) string { return p.AgentName }},
			{Header: "SCHEDULED", Value: func(p api.Pickup) string { return p.ScheduledFor.Format("2006-01-02") }},
			{Header: "COMPLETED", Value: func(p api.Pickup) string {
				if p.CompletedAt == nil {
					return "-"
				}
				return p.CompletedAt.Format("2006-01-02 15:04")
			}},
			{Header: "STATUS", Value: func(p api.Pickup) string {
				return fmt.Sprintf("%s %s", printer.StatusBadge(p.Status), p.Status)
			}},
		},
	})
}
