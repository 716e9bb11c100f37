package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotbl/pkg/config"
	"github.com/yaklabco/gotbl/pkg/diag"
	"github.com/yaklabco/gotbl/pkg/lexer"
)

type tokensFlags struct {
	asJSON bool
}

func newTokensCommand() *cobra.Command {
	flags := &tokensFlags{}

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the token stream of a table file",
		Long: `Dump the token stream of a table file, one token per line with its
source position. A debugging aid for table authors and for work on the
grammar itself.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "emit tokens as JSON")

	return cmd
}

func runTokens(cmd *cobra.Command, args []string, flags *tokensFlags) error {
	ctx := commandContext(cmd)

	cfg, err := loadConfig(ctx, cmd, &config.Config{})
	if err != nil {
		return err
	}

	source, err := loadTableSource(ctx, args[0])
	if err != nil {
		return err
	}

	tokens, err := lexer.Tokenize(source)
	if err != nil {
		return reportSourceError(cmd, cfg, err)
	}

	out := cmd.OutOrStdout()

	if flags.asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(tokens); err != nil {
			return fmt.Errorf("encode tokens: %w", err)
		}
		return nil
	}

	collector := diag.NewCollector(source)
	for _, token := range tokens {
		loc := collector.LocationAt(token.Span.Start)
		fmt.Fprintf(out, "%3d:%-3d %-13s %q\n", loc.Line, loc.Column, token.Type, token.Text)
	}
	return nil
}
