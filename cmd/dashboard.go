package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wastepay/pspctl/internal/format"
	"github.com/wastepay/pspctl/internal/output"
)

// staleSummaryAge is the cache age past which the dashboard nags for a refresh.
const staleSummaryAge = time.Hour

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the PSP dashboard summary",
	Long: `Show the dashboard summary. The summary is cached locally at login and
served from that cache; pass --refresh to re-fetch it from the API.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().Bool("refresh", false, "re-fetch the summary before showing it")
	dashboardCmd.Flags().Bool("json", false, "output the raw summary as JSON")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if err := requireAuth(); err != nil {
		return err
	}

	refresh, _ := cmd.Flags().GetBool("refresh")
	if refresh || store.DashboardSummary() == nil {
		if err := store.RefreshDashboardSummary(cmd.Context()); err != nil {
			return fmt.Errorf("refreshing dashboard summary: %w", err)
		}
	}

	cache := store.DashboardSummary()
	if cache == nil {
		return &output.CLIError{
			Summary:    "no dashboard summary available",
			Suggestion: "run 'pspctl dashboard --refresh'",
			ExitCode:   output.ExitAPIError,
		}
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cache)
	}

	printer.Header("Dashboard")

	var fields map[string]any
	if err := json.Unmarshal(cache.PSPInfo, &fields); err != nil {
		return fmt.Errorf("cached summary is not a JSON object: %w", err)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := output.NewTable([]string{"METRIC", "VALUE"})
	for _, k := range keys {
		table.AddRow([]string{k, summaryValue(k, fields[k])})
	}
	table.SetEmptyMessage("Summary is empty")
	table.Render()

	age := time.Since(cache.LastFetched).Round(time.Second)
	printer.Info("Fetched %s ago", age)
	if age > staleSummaryAge {
		printer.Warning("Summary is stale; run 'pspctl dashboard --refresh'")
	}

	printer.PrintHints("dashboard")
	return nil
}

// summaryValue renders one summary field. Monetary fields get the full naira
// form; other numbers print without a trailing ".000000".
func summaryValue(key string, v any) string {
	switch val := v.(type) {
	case float64:
		if isMonetaryKey(key) {
			return format.NairaFull(val)
		}
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%.2f", val)
	case string, bool:
		return fmt.Sprintf("%v", val)
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(raw)
	}
}

func isMonetaryKey(key string) bool {
	k := strings.ToLower(key)
	for _, hint := range []string{"amount", "revenue", "balance", "paid", "outstanding", "collected"} {
		if strings.Contains(k, hint) {
			return true
		}
	}
	return false
}
