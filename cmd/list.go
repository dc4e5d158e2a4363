package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wastepay/pspctl/internal/api"
	"github.com/wastepay/pspctl/internal/format"
	"github.com/wastepay/pspctl/internal/listview"
	"github.com/wastepay/pspctl/internal/output"
)

// listSpec wires one resource into the shared list contract: every list
// command gets the same pagination, search, sort, and watch behavior and
// differs only in fetch, columns, and filters.
type listSpec[T any] struct {
	resource string
	fetch    func(context.Context, api.ListQuery) (api.Page[T], error)
	columns  []listview.Column[T]
	primary  listview.KeyFunc[T]
	fallback listview.KeyFunc[T]
	empty    string
	sortBy   string
	order    listview.SortOrder
	filters  map[string]string
}

// addListFlags registers the flags shared by every list command.
func addListFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 1, "page number (1-based)")
	cmd.Flags().Int("page-size", 0, "rows per page (10, 20, 50, or 100)")
	cmd.Flags().String("search", "", "search term")
	cmd.Flags().String("sort", "", "sort column")
	cmd.Flags().String("order", "", "sort order (asc or desc)")
	cmd.Flags().Bool("json", false, "output as JSON")
	cmd.Flags().Bool("watch", false, "re-fetch on an interval until interrupted")
	cmd.Flags().Bool("interactive", false, "read search terms from stdin, one per line")
}

// addRangeFlags registers date-range filter flags for resources with a
// time dimension.
func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("range", "", "named date range ("+strings.Join(format.RangeNames, ", ")+")")
	cmd.Flags().String("from", "", "range start, YYYY-MM-DD (with --to)")
	cmd.Flags().String("to", "", "range end, YYYY-MM-DD (with --from)")
}

// rangeFilters resolves the date-range flags into dateFrom/dateTo filter
// values. Named ranges and explicit bounds are mutually exclusive.
func rangeFilters(cmd *cobra.Command, filters map[string]string) error {
	name, _ := cmd.Flags().GetString("range")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	if name == "" && from == "" && to == "" {
		return nil
	}

	var r format.DateRange
	var err error
	switch {
	case name != "" && (from != "" || to != ""):
		return output.ValidationError("--range cannot be combined with --from/--to")
	case name != "":
		r, err = format.ResolveRange(name, time.Now())
	case from == "" || to == "":
		return output.ValidationError("--from and --to must be given together")
	default:
		r, err = format.ParseCustomRange(from, to, time.Local)
	}
	if err != nil {
		return output.ValidationError(err.Error())
	}

	filters["dateFrom"] = r.From.Format("2006-01-02")
	filters["dateTo"] = r.To.Format("2006-01-02")
	return nil
}

// runList executes the shared list contract for one resource.
func runList[T any](cmd *cobra.Command, spec listSpec[T]) error {
	if err := requireAuth(); err != nil {
		return err
	}

	pageSize := cfg.Defaults.PageSize
	if n, _ := cmd.Flags().GetInt("page-size"); n > 0 {
		pageSize = n
	}

	sortBy := spec.sortBy
	if s, _ := cmd.Flags().GetString("sort"); s != "" {
		sortBy = s
	}
	order := spec.order
	switch o, _ := cmd.Flags().GetString("order"); o {
	case "":
	case "asc":
		order = listview.Asc
	case "desc":
		order = listview.Desc
	default:
		return output.ValidationError("--order must be asc or desc")
	}

	fetch := func(ctx context.Context, q listview.Query) ([]T, *listview.Page, error) {
		page, err := spec.fetch(ctx, api.ListQuery{
			Page:      q.Page,
			PageSize:  q.PageSize,
			Search:    q.Search,
			SortBy:    q.SortBy,
			SortOrder: string(q.SortOrder),
			Filters:   q.Filters,
		})
		if err != nil {
			return nil, nil, err
		}
		if page.Pagination == nil {
			return page.Items, nil, nil
		}
		return page.Items, &listview.Page{
			Current:      page.Pagination.CurrentPage,
			TotalPages:   page.Pagination.TotalPages,
			TotalItems:   page.Pagination.TotalItems,
			ItemsPerPage: page.Pagination.ItemsPerPage,
		}, nil
	}

	view := listview.NewView(fetch,
		listview.WithPageSize[T](cfg.Defaults.PageSize),
		listview.WithSort[T](sortBy, order),
		listview.WithDefaultFilters[T](spec.filters),
		listview.WithKeys(spec.primary, spec.fallback),
	)
	if pageSize != cfg.Defaults.PageSize {
		if err := view.SetPageSize(pageSize); err != nil {
			return output.ValidationError(err.Error())
		}
	}
	if page, _ := cmd.Flags().GetInt("page"); page > 1 {
		view.SetPage(page)
	}
	if term, _ := cmd.Flags().GetString("search"); term != "" {
		view.SetSearch(term)
	}

	if err := view.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("fetching %s: %w", spec.resource, err)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if err := renderList(view, spec, jsonOutput); err != nil {
		return err
	}

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return watchList(cmd, view, spec, jsonOutput)
	}
	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		return interactiveList(cmd, view, spec, jsonOutput)
	}
	return nil
}

// renderList prints the current view contents.
func renderList[T any](view *listview.View[T], spec listSpec[T], jsonOutput bool) error {
	if jsonOutput {
		page := view.Page()
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"items": view.Items(),
			"pagination": map[string]int{
				"currentPage":  page.Current,
				"totalPages":   page.TotalPages,
				"totalItems":   page.TotalItems,
				"itemsPerPage": page.ItemsPerPage,
			},
		})
	}

	headers := make([]string, len(spec.columns))
	for i, col := range spec.columns {
		headers[i] = col.Header
	}

	table := output.NewQuietTable(headers, printer.IsQuiet())
	table.SetEmptyMessage(spec.empty)
	table.AddRows(view.Rows(spec.columns))
	table.Render()

	if len(view.Items()) > 0 {
		page := view.Page()
		printer.Print("%s", output.PageFooter(page.Current, page.TotalPages, page.TotalItems))
	}
	return nil
}

// watchList re-fetches the view on the configured interval until the user
// interrupts. A slow response that arrives after the next tick's request is
// discarded by the view, so output never goes backwards.
func watchList[T any](cmd *cobra.Command, view *listview.View[T], spec listSpec[T], jsonOutput bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.Defaults.WatchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := view.Refresh(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				printer.Warning("refresh failed: %v", err)
				continue
			}
			printer.Print("")
			if err := renderList(view, spec, jsonOutput); err != nil {
				return err
			}
		}
	}
}

// interactiveList reads search terms from stdin, one per line, and re-fetches
// with each. Lines are debounced so a burst of edits (or a fast paste) issues
// one request carrying the final term. An empty line clears the search; EOF
// ends the session.
func interactiveList[T any](cmd *cobra.Command, view *listview.View[T], spec listSpec[T], jsonOutput bool) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	debouncer := listview.NewDebouncer[string](cfg.Defaults.SearchDebounce)
	defer debouncer.Stop()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	printer.Info("Type a search term and press enter (empty line clears, Ctrl-D quits)")

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			debouncer.Emit(line)
		case term := <-debouncer.C():
			view.SetSearch(term)
			if err := view.Refresh(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				printer.Warning("search failed: %v", err)
				continue
			}
			if err := renderList(view, spec, jsonOutput); err != nil {
				return err
			}
		}
	}
}
