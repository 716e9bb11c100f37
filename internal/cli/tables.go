package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotbl/pkg/analysis"
	"github.com/yaklabco/gotbl/pkg/config"
	"github.com/yaklabco/gotbl/pkg/parser"
)

type tablesFlags struct {
	exported bool
	stats    bool
	asJSON   bool
}

func newTablesCommand() *cobra.Command {
	flags := &tablesFlags{}

	cmd := &cobra.Command{
		Use:   "tables <file>",
		Short: "List the tables a file declares",
		Long: `List the tables a file declares, in declaration order.

Examples:
  gotbl tables loot.tbl             # All table ids
  gotbl tables loot.tbl --exported  # Only exported tables
  gotbl tables loot.tbl --stats     # Rule counts and weights
  gotbl tables loot.tbl --json      # Full analysis report as JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.exported, "exported", false, "list only exported tables")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "show rule counts and total weights")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "emit the full analysis report as JSON")

	return cmd
}

func runTables(cmd *cobra.Command, args []string, flags *tablesFlags) error {
	ctx := commandContext(cmd)

	cfg, err := loadConfig(ctx, cmd, &config.Config{})
	if err != nil {
		return err
	}

	source, err := loadTableSource(ctx, args[0])
	if err != nil {
		return err
	}

	program, err := parser.Parse(source)
	if err != nil {
		return reportSourceError(cmd, cfg, err)
	}

	report := analysis.Analyze(source, program, analysis.Options{
		IncludeGraph: flags.asJSON,
		SortBy:       analysis.SortByDeclaration,
	})

	out := cmd.OutOrStdout()

	if flags.asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return nil
	}

	tables := report.Tables
	if flags.exported {
		filtered := make([]analysis.TableStats, 0, len(tables))
		for _, table := range tables {
			if table.Export {
				filtered = append(filtered, table)
			}
		}
		tables = filtered
	}

	if flags.stats {
		printTableStats(out, tables)
		return nil
	}

	for _, table := range tables {
		fmt.Fprintln(out, table.ID)
	}
	return nil
}

// printTableStats renders one aligned row per table.
func printTableStats(w io.Writer, tables []analysis.TableStats) {
	idWidth := len("TABLE")
	for _, table := range tables {
		if len(table.ID) > idWidth {
			idWidth = len(table.ID)
		}
	}

	fmt.Fprintf(w, "%-*s  %5s  %8s  %4s  %4s  %s\n",
		idWidth, "TABLE", "RULES", "WEIGHT", "REFS", "DICE", "EXPORT")
	for _, table := range tables {
		export := ""
		if table.Export {
			export = "yes"
		}
		weight := strconv.FormatFloat(table.TotalWeight, 'g', -1, 64)
		fmt.Fprintf(w, "%-*s  %5d  %8s  %4d  %4d  %s\n",
			idWidth, table.ID, table.Rules, weight,
			len(table.References)+len(table.ExternalRefs), table.DiceRolls, export)
	}
}
