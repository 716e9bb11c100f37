package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotbl/internal/configloader"
)

// newEnvironmentHelpTopic documents the GOTBL_* environment variables.
// The command has no run function, so Cobra lists it as a help topic.
func newEnvironmentHelpTopic() *cobra.Command {
	vars := configloader.ListEnvVars()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Configuration can be set through the environment. Variables\n")
	b.WriteString("override config files and are overridden by flags.\n\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-22s %s\n", name, vars[name])
	}

	return &cobra.Command{
		Use:   "environment",
		Short: "Environment variables recognized by gotbl",
		Long:  strings.TrimRight(b.String(), "\n"),
	}
}
