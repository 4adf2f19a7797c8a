package export

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Text writes the quote as aligned plain text.
func Text(w io.Writer, doc Document) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	p := func(format string, args ...any) {
		fmt.Fprintf(tw, format, args...)
	}

	title := "Quote"
	if doc.Name != "" {
		title += ": " + doc.Name
	}
	p("%s\n%s\n", title, strings.Repeat("=", len(title)))
	for _, r := range doc.Building {
		p("%s:\t%s\t\n", r.Label, r.Value)
	}

	for _, s := range doc.Sections {
		p("\n%s\n", strings.ToUpper(s.Label))
		for _, l := range s.Lines {
			p("  %s\t%s x\t%s =\t%s\t\n", l.Name, Quantity(l.Quantity), Money(l.UnitPrice), Money(l.Total))
		}
		p("  Subtotal\t\t\t%s\t\n", Money(s.Subtotal))
	}

	p("\n")
	for _, r := range doc.Rollup {
		p("%s:\t%s\t\n", r.Label, r.Value)
	}
	p("FINAL PRICE:\t%s\t\n", Money(doc.FinalPrice))

	p("\nAssumptions (not included in the total)\n")
	for _, r := range doc.Assumptions {
		p("  %s:\t%s\t\n", r.Label, r.Value)
	}
	return tw.Flush()
}
