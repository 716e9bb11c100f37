package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gotbl/internal/ui/pretty"
	"github.com/yaklabco/gotbl/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	if r.opts.GroupByFile {
		total = r.reportGrouped(result)
	} else {
		total = r.reportFlat(result)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportGrouped writes findings grouped by file, a header per file.
func (r *TextReporter) reportGrouped(result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		path := displayPath(r.opts.WorkingDir, file.Path)

		if file.Error != nil {
			r.reportFileError(path, file.Error)
			continue
		}

		if file.Check == nil || len(file.Check.Findings) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Check.Findings)))

		for _, finding := range file.Check.Findings {
			fmt.Fprint(r.bw, r.styles.FormatFinding(path, finding, r.opts.ShowContext))
			total++
		}

		// Blank line between files
		fmt.Fprintln(r.bw)
	}

	return total
}

// reportFlat writes findings without grouping.
func (r *TextReporter) reportFlat(result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		path := displayPath(r.opts.WorkingDir, file.Path)

		if file.Error != nil {
			r.reportFileError(path, file.Error)
			continue
		}

		if file.Check == nil {
			continue
		}

		for _, finding := range file.Check.Findings {
			fmt.Fprint(r.bw, r.styles.FormatFinding(path, finding, r.opts.ShowContext))
			total++
		}
	}

	return total
}

func (r *TextReporter) reportFileError(path string, fileErr error) {
	fmt.Fprintf(r.bw, "%s: %s\n",
		r.styles.FilePath.Render(path),
		r.styles.Error.Render(fmt.Sprintf("error: %v", fileErr)),
	)
}
