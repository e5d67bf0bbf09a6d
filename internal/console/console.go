package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lehigh-university-libraries/acextract/internal/operation"
)

var (
	okStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B"))
	failedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))
)

// Printer writes one line per extracted image and keeps a tally
type Printer struct {
	out     io.Writer
	ok      int
	skipped int
	failed  int
}

// NewPrinter creates a printer writing to out
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Report implements operation.Reporter
func (p *Printer) Report(r operation.Result) {
	switch {
	case r.Err != nil:
		p.failed++
		lipgloss.Fprintf(p.out, "Extracting: %s ... %s %v\n", r.Name, failedStyle.Render("FAILED"), r.Err)
	case r.Skipped:
		p.skipped++
		lipgloss.Fprintf(p.out, "Extracting: %s ... %s\n", r.Name, skippedStyle.Render("SKIPPED"))
	default:
		p.ok++
		lipgloss.Fprintf(p.out, "Extracting: %s ... %s\n", r.Name, okStyle.Render("OK"))
	}
}

// Failed returns the number of failed images
func (p *Printer) Failed() int {
	return p.failed
}

// Summary prints the final tally
func (p *Printer) Summary() {
	fmt.Fprintf(p.out, "\nExtraction complete!\n")
	fmt.Fprintf(p.out, "  Extracted: %d\n", p.ok)
	if p.skipped > 0 {
		fmt.Fprintf(p.out, "  Skipped (vector data): %d\n", p.skipped)
	}
	fmt.Fprintf(p.out, "  Failed: %d\n", p.failed)
}
