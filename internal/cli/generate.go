package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotbl/internal/logging"
	"github.com/yaklabco/gotbl/internal/ui/pretty"
	"github.com/yaklabco/gotbl/pkg/collection"
	"github.com/yaklabco/gotbl/pkg/config"
	"github.com/yaklabco/gotbl/pkg/diag"
	"github.com/yaklabco/gotbl/pkg/fsutil"
	"github.com/yaklabco/gotbl/pkg/lexer"
	"github.com/yaklabco/gotbl/pkg/markdown"
	"github.com/yaklabco/gotbl/pkg/parser"
)

// outputFilePermissions is the file mode for generated output files.
const outputFilePermissions = 0o644

type generateFlags struct {
	count  int
	seed   uint64
	sep    string
	output string
}

func newGenerateCommand() *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate <file> [table]",
		Short: "Generate random text from a table file",
		Long:  generateLongDescription,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.count, "count", "n", 1, "number of results to generate")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "seed the random source for reproducible output")
	cmd.Flags().StringVar(&flags.sep, "sep", ", ", "separator between results")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write results to a file instead of stdout")

	return cmd
}

const generateLongDescription = `Generate random text from a weighted table file.

The file is compiled into a collection and the named table is sampled.
When no table is named, the first exported table is used, falling back
to the first declared table. Markdown files contribute the contents of
their tbl fenced code blocks.

Examples:
  gotbl generate loot.tbl                  # First exported table
  gotbl generate loot.tbl weapon           # Named table
  gotbl generate loot.tbl -n 5             # Five results
  gotbl generate loot.tbl --seed 42        # Reproducible output
  gotbl generate loot.tbl -n 3 --sep $'\n' # One result per line
  gotbl generate README.md -o out.txt      # From Markdown, to a file`

func runGenerate(cmd *cobra.Command, args []string, flags *generateFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	cliCfg := &config.Config{}
	if cmd.Flags().Changed("count") {
		cliCfg.Count = flags.count
	}
	if cmd.Flags().Changed("seed") {
		seed := flags.seed
		cliCfg.Seed = &seed
	}

	cfg, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	path := args[0]
	source, err := loadTableSource(ctx, path)
	if err != nil {
		return err
	}

	coll, err := buildCollection(source, cfg.Seed)
	if err != nil {
		return reportSourceError(cmd, cfg, err)
	}

	tableID, err := pickTable(coll, args)
	if err != nil {
		return reportSourceError(cmd, cfg, err)
	}

	logger.Debug("generating",
		logging.FieldFile, path,
		logging.FieldTable, tableID,
		logging.FieldCount, cfg.Count,
	)

	results := make([]string, 0, cfg.Count)
	for range cfg.Count {
		result, err := coll.Generate(tableID, 1)
		if err != nil {
			return reportSourceError(cmd, cfg, err)
		}
		results = append(results, result)
	}
	text := strings.Join(results, flags.sep)

	if flags.output != "" {
		absPath, err := filepath.Abs(flags.output)
		if err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
		if err := fsutil.WriteAtomic(ctx, absPath, []byte(text+"\n"), outputFilePermissions); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("wrote generated text",
			logging.FieldOutput, flags.output,
			logging.FieldTable, tableID,
			logging.FieldCount, cfg.Count,
		)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

// buildCollection compiles source, seeding the sampler when a seed is
// configured.
func buildCollection(source string, seed *uint64) (*collection.Collection, error) {
	if seed != nil {
		return collection.NewSeeded(source, *seed)
	}
	return collection.New(source)
}

// pickTable resolves which table to generate from: the named argument,
// else the first exported table, else the first declared one.
func pickTable(coll *collection.Collection, args []string) (string, error) {
	if len(args) > 1 {
		tableID := args[1]
		if !coll.HasTable(tableID) {
			return "", fmt.Errorf("table '%s' not found; available tables: %s",
				tableID, strings.Join(coll.TableIDs(), ", "))
		}
		return tableID, nil
	}

	if exported := coll.ExportedTableIDs(); len(exported) > 0 {
		return exported[0], nil
	}
	if ids := coll.TableIDs(); len(ids) > 0 {
		return ids[0], nil
	}
	return "", errors.New("no tables defined")
}

// loadTableSource reads a table source file. Markdown files contribute
// the contents of their tbl fenced code blocks, padded so diagnostics
// keep document line numbers.
func loadTableSource(ctx context.Context, path string) (string, error) {
	content, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".md" && ext != ".markdown" {
		return string(content), nil
	}

	blocks := markdown.NewExtractor().Extract(content)
	if len(blocks) == 0 {
		return "", fmt.Errorf("no tbl code blocks in %s", path)
	}
	return markdown.JoinPreservingLines(blocks), nil
}

// reportSourceError renders err to the command's stderr. Lex and parse
// failures carry a diagnostic and render with source context and
// carets; anything else prints as a plain error line. The returned
// error is always ErrIssuesFound, so the caller exits nonzero without
// the message being logged a second time.
func reportSourceError(cmd *cobra.Command, cfg *config.Config, err error) error {
	out := cmd.ErrOrStderr()

	if d := diagnosticFrom(err); d != nil {
		formatter := diag.NewFormatter().
			WithColors(pretty.IsColorEnabled(string(cfg.Color), out)).
			WithSuggestions(cfg.SuggestionsEnabled())
		fmt.Fprintln(out, formatter.Format(d))
		return ErrIssuesFound
	}

	fmt.Fprintf(out, "error: %v\n", err)
	return ErrIssuesFound
}

func diagnosticFrom(err error) *diag.Diagnostic {
	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		return parseErr.Diagnostic
	}
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return lexErr.Diagnostic
	}
	return nil
}
