package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/yaklabco/gotbl/pkg/check"
	"github.com/yaklabco/gotbl/pkg/fsutil"
	"github.com/yaklabco/gotbl/pkg/markdown"
)

// Runner orchestrates multi-file checking using a check.Engine.
type Runner struct {
	// Engine handles per-file compilation and check execution.
	Engine *check.Engine
}

// New creates a new Runner. A nil engine means the default registry with
// the built-in checks.
func New(engine *check.Engine) *Runner {
	if engine == nil {
		engine = check.NewEngine(nil)
	}
	return &Runner{Engine: engine}
}

// Run discovers files under opts.Paths and checks them concurrently.
// It returns a deterministic collection of FileOutcome values and
// aggregate stats.
//
// The runner:
//   - Discovers files matching the options criteria
//   - Checks files concurrently using a worker pool
//   - Aggregates results into a single Result with statistics
//   - Respects context cancellation
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		result.Stats.Duration = time.Since(start)
		return result, nil
	}

	// Run-scoped disables go on a derived engine so the shared one
	// stays untouched.
	engine := r.Engine
	if len(opts.Disabled) > 0 {
		engine = &check.Engine{Registry: r.Engine.Registry, Disabled: opts.Disabled}
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	// Don't use more workers than files.
	if workers > len(files) {
		workers = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, engine, workCh, outCh)
		}()
	}

	// Feed work in a separate goroutine.
	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	// Close outCh when all workers are done.
	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers complete out of order; collect into a map and rebuild in
	// discovery order.
	outcomes := make(map[string]FileOutcome, len(files))

	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	result.Stats.Duration = time.Since(start)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

// worker checks files from workCh and sends outcomes to outCh.
func worker(
	ctx context.Context,
	engine *check.Engine,
	workCh <-chan string,
	outCh chan<- FileOutcome,
) {
	// Each worker carries its own extractor.
	extractor := markdown.NewExtractor()

	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Path: path}

		source, err := readSource(ctx, extractor, path)
		if err != nil {
			outcome.Error = err
		} else {
			res, checkErr := engine.CheckSource(ctx, path, source)
			if checkErr != nil {
				outcome.Error = checkErr
			} else {
				outcome.Check = res
			}
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// readSource reads a file's table source. Markdown files contribute
// their fenced tbl blocks, joined so diagnostic lines match the
// document; anything else is taken verbatim.
func readSource(ctx context.Context, extractor *markdown.Extractor, path string) (string, error) {
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return "", err
	}
	if isMarkdownPath(path) {
		return markdown.JoinPreservingLines(extractor.Extract(content)), nil
	}
	return string(content), nil
}

// isMarkdownPath reports whether the path looks like a Markdown document.
func isMarkdownPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
