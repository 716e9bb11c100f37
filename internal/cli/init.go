package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotbl/internal/logging"
	"github.com/yaklabco/gotbl/pkg/config"
	"github.com/yaklabco/gotbl/pkg/fsutil"
)

// configFilePermissions is the file mode for scaffolded files.
const configFilePermissions = 0o644

// defaultConfigFileName is where init writes the starter configuration.
const defaultConfigFileName = ".gotbl.yaml"

// exampleFileName is where init --example writes the starter tables.
const exampleFileName = "example.tbl"

// exampleTables is a small working table file demonstrating weights,
// references, modifiers, and dice rolls.
const exampleTables = `// Example random tables. Try:
//   gotbl generate example.tbl
//   gotbl generate example.tbl -n 3 --seed 42

#treasure[export]
3.0: {1d6} gold coins
2.0: {#gemstone|indefinite} worth {2d20} gold
1.0: {#weapon|definite}

#gemstone
1.0: ruby
1.0: sapphire
1.0: moonstone

#weapon
2.0: rusty sword
1.0: gleaming axe
`

type initFlags struct {
	force   bool
	example bool
	output  string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter configuration file",
		Long: `Create a starter .gotbl.yaml in the current directory with every
option documented and commented out.

Examples:
  gotbl init                   # Create .gotbl.yaml
  gotbl init --example         # Also create example.tbl
  gotbl init --output dev.yaml # Write to a custom path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing files")
	cmd.Flags().BoolVar(&flags.example, "example", false, "also write a commented example table file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "configuration file path (default .gotbl.yaml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	configPath := flags.output
	if configPath == "" {
		configPath = defaultConfigFileName
	}

	if err := scaffold(ctx, configPath, config.GenerateTemplate(), flags.force); err != nil {
		return err
	}
	logger.Info("created configuration file", logging.FieldFile, configPath)

	if flags.example {
		if err := scaffold(ctx, exampleFileName, []byte(exampleTables), flags.force); err != nil {
			return err
		}
		logger.Info("created example tables", logging.FieldFile, exampleFileName)
		logger.Info("generate from them with 'gotbl generate example.tbl'")
	}

	return nil
}

// scaffold writes content to path atomically, refusing to overwrite an
// existing file unless force is set.
func scaffold(ctx context.Context, path string, content []byte, force bool) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if fsutil.Exists(absPath) && !force {
		return fmt.Errorf("file %q already exists; use --force to overwrite", path)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
