package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable_EmptyMessage(t *testing.T) {
	buf := new(bytes.Buffer)
	table := NewTableWithWriter(buf, []string{"NAME", "STATUS"})
	table.SetEmptyMessage("No customers match the current filters")

	table.Render()

	if got := strings.TrimSpace(buf.String()); got != "No customers match the current filters" {
		t.Errorf("empty render = %q, want the empty-state message", got)
	}
}

func TestTable_RendersRowsNotEmptyMessage(t *testing.T) {
	buf := new(bytes.Buffer)
	table := NewTableWithWriter(buf, []string{"NAME", "STATUS"})
	table.SetEmptyMessage("No customers match the current filters")
	table.AddRow([]string{"Adewale Okafor", "active"})

	table.Render()

	out := buf.String()
	if strings.Contains(out, "No customers") {
		t.Error("empty-state message rendered despite rows being present")
	}
	if !strings.Contains(out, "Adewale Okafor") {
		t.Errorf("row content missing from output: %q", out)
	}
}

func TestPageFooter(t *testing.T) {
	tests := []struct {
		name                   string
		current, pages, items  int
		wantPrev, wantNext     bool
	}{
		{"middle", 2, 14, 312, true, true},
		{"first", 1, 14, 312, false, true},
		{"last", 14, 14, 312, true, false},
		{"single", 1, 1, 4, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PageFooter(tt.current, tt.pages, tt.items)
			if gotPrev := strings.Contains(got, "←"); gotPrev != tt.wantPrev {
				t.Errorf("prev marker present = %v, want %v (%q)", gotPrev, tt.wantPrev, got)
			}
			if gotNext := strings.Contains(got, "→"); gotNext != tt.wantNext {
				t.Errorf("next marker present = %v, want %v (%q)", gotNext, tt.wantNext, got)
			}
		})
	}
}
