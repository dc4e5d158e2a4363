package output

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Table provides table rendering for paginated list views.
type Table struct {
	table    *tablewriter.Table
	out      io.Writer
	header   []string
	rows     [][]string
	empty    string
	quiet    bool
}

// NewTable creates a new table with default styling
func NewTable(headers []string) *Table {
	return NewTableWithWriter(os.Stdout, headers)
}

// NewQuietTable creates a table that suppresses output when quiet is true
func NewQuietTable(headers []string, quiet bool) *Table {
	t := NewTableWithWriter(os.Stdout, headers)
	t.quiet = quiet
	return t
}

// NewTableWithWriter creates a new table with a custom writer
func NewTableWithWriter(w io.Writer, headers []string) *Table {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)

	return &Table{table: table, out: w, header: headers}
}

// SetEmptyMessage sets the domain-specific message rendered instead of an
// empty table when there are no rows.
func (t *Table) SetEmptyMessage(msg string) {
	t.empty = msg
}

// AddRow adds a row to the table
func (t *Table) AddRow(row []string) {
	t.rows = append(t.rows, row)
}

// AddRows adds multiple rows to the table
func (t *Table) AddRows(rows [][]string) {
	t.rows = append(t.rows, rows...)
}

// Render outputs the table, or the empty-state message when no rows were added.
func (t *Table) Render() {
	if t.quiet {
		return
	}
	if len(t.rows) == 0 && t.empty != "" {
		fmt.Fprintln(t.out, t.empty)
		return
	}
	t.table.Header(t.header)
	t.table.Bulk(t.rows)
	t.table.Render()
}

// PageFooter formats the pagination line shown under a list table. The
// previous/next markers reflect boundary state: both are dimmed out on a
// single-page result.
func PageFooter(current, totalPages, totalItems int) string {
	prev := "  "
	if current > 1 {
		prev = "←"
	}
	next := "  "
	if current < totalPages {
		next = "→"
	}
	return fmt.Sprintf("%s Page %d of %d %s  (%d items)", prev, current, totalPages, next, totalItems)
}
