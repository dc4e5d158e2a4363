package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wastepay/pspctl/internal/api"
	"github.com/wastepay/pspctl/internal/listview"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Manage field agents",
}

var agentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List field agents",
	RunE:  runAgentsList,
}

func init() {
	rootCmd.AddCommand(agentsCmd)
	agentsCmd.AddCommand(agentsListCmd)

	addListFlags(agentsListCmd)
	agentsListCmd.Flags().String("status", "", "filter by status (active, inactive)")
	agentsListCmd.Flags().String("ward", "", "filter by ward id")
}

func runAgentsList(cmd *cobra.Command, args []string) error {
	status, _ := cmd.Flags().GetString("status")
	ward, _ := cmd.Flags().GetString("ward")

	return runList(cmd, listSpec[api.Agent]{
		resource: "agents",
		fetch:    client.ListAgents,
		empty:    "No agents match the current filters",
		sortBy:   "lastName",
		order:    listview.Asc,
		filters: map[string]string{
			"status": status,
			"wardId": ward,
		},
		primary:  func(a api.Agent) string { return a.ID },
		fallback: func(a api.Agent) string { return a.Phone },
		columns: []listview.Column[api.Agent]{
			{Header: "NAME", Value: func(a api.Agent) string { return a.FirstName + " " + a.LastName }},
			{Header: "PHONE", Value: func(a api.Agent) string { return displayPhone(a.Phone) }},
			{Header: "WARD", Value: func(a api.Agent) string { return a.Ward }},
			{Header: "CUSTOMERS", Value: func(a api.Agent) string { return strconv.Itoa(a.CustomerCount) }},
			{Header: "STATUS", Value: func(a api.Agent) string {
				return fmt.Sprintf("%s %s", printer.StatusBadge(a.Status), a.Status)
			}},
		},
	})
}
