package reporter

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/gotbl/internal/ui/pretty"
	"github.com/yaklabco/gotbl/pkg/runner"
)

// SummaryReporter formats results as aggregate statistics only, with a
// per-check breakdown. Individual findings are not listed.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		return 0, nil
	}

	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	if byCheck := countByCheck(result); len(byCheck) > 0 {
		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.SummaryTitle.Render("By check"))
		for _, entry := range byCheck {
			fmt.Fprintf(r.bw, "  %-22s %s\n",
				entry.id,
				r.styles.SummaryValue.Render(fmt.Sprintf("%d", entry.count)),
			)
		}
	}

	return result.Stats.FindingsTotal, nil
}

type checkCount struct {
	id    string
	count int
}

// countByCheck tallies findings per check ID, most frequent first.
func countByCheck(result *runner.Result) []checkCount {
	counts := make(map[string]int)
	for _, file := range result.Files {
		if file.Check == nil {
			continue
		}
		for _, finding := range file.Check.Findings {
			counts[finding.CheckID]++
		}
	}

	entries := make([]checkCount, 0, len(counts))
	for id, count := range counts {
		entries = append(entries, checkCount{id: id, count: count})
	}
	slices.SortFunc(entries, func(a, b checkCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	return entries
}
