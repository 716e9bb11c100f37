package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gotbl/internal/logging"
	"github.com/yaklabco/gotbl/pkg/check"
	"github.com/yaklabco/gotbl/pkg/config"
	"github.com/yaklabco/gotbl/pkg/reporter"
	"github.com/yaklabco/gotbl/pkg/runner"
)

type checkFlags struct {
	format         string
	workers        int
	disable        []string
	skip           []string
	followSymlinks bool
	noContext      bool
	compact        bool
	strict         bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check table files for problems",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, summary, table")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "number of parallel workers (0 = one per CPU)")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "check IDs to disable")
	cmd.Flags().StringSliceVar(&flags.skip, "skip", nil, "directory names to skip during discovery")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks during discovery")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON output")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for the exit code")

	return cmd
}

const checkLongDescription = `Check table files for problems.

Parses and compiles every discovered source, then runs the built-in
checks: duplicate tables, unreachable tables, undefined references,
external dependencies, and reference cycles. Compilation problems are
reported by the always-on construct check.

By default, checks all .tbl and .md files under the current directory.

Examples:
  gotbl check                        # Check current directory
  gotbl check tables/ README.md      # Specific paths
  gotbl check --format json          # Machine-readable output for CI
  gotbl check --disable reference-cycle
  gotbl check --skip drafts          # Skip drafts/ directories
  gotbl check --strict               # Warnings fail the run`

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	cliCfg := &config.Config{}
	if cmd.Flags().Changed("format") {
		cliCfg.Output = flags.format
	}
	if cmd.Flags().Changed("workers") {
		cliCfg.Workers = flags.workers
	}
	if flags.disable != nil {
		cliCfg.Checks.Disable = flags.disable
	}

	cfg, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(cfg.Output)
	if err != nil {
		return usageError(err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     runner.DefaultExtensions(),
		SkipDirs:       flags.skip,
		FollowSymlinks: flags.followSymlinks,
		Workers:        cfg.Workers,
		Disabled:       cfg.Checks.Disable,
	}

	logger.Debug("starting check run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldWorkers, runOpts.Workers,
		"disabled", runOpts.Disabled,
	)

	checkRunner := runner.New(check.NewEngine(nil))
	result, err := checkRunner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("check run failed: %w", err)
	}

	logCheckErrors(logger, result)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       string(cfg.Color),
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: true,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result, flags.strict) != ExitSuccess {
		return ErrIssuesFound
	}
	return nil
}

// logCheckErrors surfaces internal check failures. They do not fail the
// run; the findings of the remaining checks still stand.
func logCheckErrors(logger *log.Logger, result *runner.Result) {
	for _, file := range result.Files {
		if file.Check == nil || len(file.Check.CheckErrors) == 0 {
			continue
		}

		ids := make([]string, 0, len(file.Check.CheckErrors))
		for id := range file.Check.CheckErrors {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			logger.Warn("check failed",
				logging.FieldFile, file.Path,
				"check", id,
				logging.FieldError, file.Check.CheckErrors[id],
			)
		}
	}
}
