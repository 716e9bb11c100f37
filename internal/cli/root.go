// Package cli provides the Cobra command structure for gotbl.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotbl/internal/configloader"
	"github.com/yaklabco/gotbl/internal/logging"
	"github.com/yaklabco/gotbl/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gotbl command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gotbl",
		Short: "Weighted random text generation from plain-text tables",
		Long: `gotbl generates random text from weighted tables written in the TBL
language. A table is a list of weighted rules; rules can embed references
to other tables, dice rolls, and text modifiers, and generation expands
them recursively.

Tables live in .tbl files, or in tbl fenced code blocks inside Markdown
documents.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError(fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath()))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Flag parse failures are usage errors, not run failures.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newTablesCommand())
	rootCmd.AddCommand(newTokensCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))
	rootCmd.AddCommand(newEnvironmentHelpTopic())

	// Apply styled help formatting.
	applyHelpStyling(rootCmd, color, os.Stdout)

	return rootCmd
}

// commandContext returns the command's context, falling back to the
// background context for direct invocations in tests.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the configuration for a command run: defaults,
// config files, GOTBL_* environment variables, then CLI flags on top.
// The persistent --config, --color, and --debug flags are folded into
// cliCfg here so every command treats them the same way.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, usageError(fmt.Errorf("get config flag: %w", err))
	}

	if colorFlag := cmd.Flags().Lookup("color"); colorFlag != nil && colorFlag.Changed {
		cliCfg.Color = config.ColorMode(colorFlag.Value.String())
	}
	if debugFlag := cmd.Flags().Lookup("debug"); debugFlag != nil && debugFlag.Changed {
		cliCfg.Debug = debugFlag.Value.String() == "true"
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, usageError(fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, result.LoadedFrom)
	}
	if result.Config.Debug {
		logging.SetLevel("debug")
	}

	return result.Config, nil
}
