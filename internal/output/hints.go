package output

import (
	"fmt"
	"strings"
)

// CommandHints maps command names to related commands users might want to run next
var CommandHints = map[string][]string{
	"login":     {"whoami", "dashboard"},
	"logout":    {"login"},
	"passwd":    {"whoami"},
	"whoami":    {"dashboard", "token"},
	"dashboard": {"customers list", "payments list"},
	"customers": {"invoices list", "pickups list"},
	"invoices":  {"payments list", "customers list"},
	"payments":  {"invoices list", "dashboard"},
	"agents":    {"pickups list"},
	"pickups":   {"agents list", "customers list"},
	"settings":  {"customers list"},
}

// PrintHints prints "See also" hints for a command. No-op in quiet mode or if command has no hints.
func (p *Printer) PrintHints(command string) {
	if p.quiet {
		return
	}
	hints, ok := CommandHints[command]
	if !ok || len(hints) == 0 {
		return
	}

	cmds := make([]string, len(hints))
	for i, h := range hints {
		cmds[i] = "pspctl " + h
	}
	fmt.Fprintf(p.out, "\nSee also: %s\n", strings.Join(cmds, ", "))
}
