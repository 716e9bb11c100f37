package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gotbl/internal/ui/pretty"
)

const usageTemplateText = `{{ heading "Usage:" }}{{if .Runnable}}
  {{ command .UseLine }}{{end}}{{if .HasAvailableSubCommands}}
  {{ command (printf "%s [command]" .CommandPath) }}{{end}}
{{- if .Aliases}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}
{{- if .HasHelpSubCommands}}

{{ heading "Additional help topics:" }}{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{ subcommand (rpad .CommandPath .CommandPathPadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if .HasAvailableSubCommands}}

Use "{{ command (printf "%s [command] --help" .CommandPath) }}" for more information about a command.
{{- end}}
`

const helpTemplateText = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}{{if or .Runnable .HasSubCommands}}` + usageTemplateText + `{{end}}`

// helpStyler renders help and usage text through lipgloss-styled
// templates. The templates are parsed once at construction; cobra's
// help lookup walks up the command tree, so installing the styler on
// the root covers every subcommand.
type helpStyler struct {
	heading lipgloss.Style
	command lipgloss.Style
	subcmd  lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style

	usage *template.Template
	help  *template.Template
}

func newHelpStyler(colorEnabled bool) *helpStyler {
	plain := lipgloss.NewStyle()
	s := &helpStyler{heading: plain, command: plain, subcmd: plain, flag: plain, dim: plain}
	if colorEnabled {
		s.heading = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
		s.command = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
		s.subcmd = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		s.flag = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
		s.dim = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	}

	funcs := template.FuncMap{
		"heading":    s.heading.Render,
		"command":    s.command.Render,
		"subcommand": s.subcmd.Render,
		"dim":        s.dim.Render,
		"flags":      s.flagUsages,
		"rpad":       rpad,
		"join":       strings.Join,
		"trim":       strings.TrimSpace,
	}
	s.usage = template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplateText))
	s.help = template.Must(template.New("help").Funcs(funcs).Parse(helpTemplateText))
	return s
}

// applyHelpStyling installs styled help and usage rendering on cmd and,
// through cobra's inheritance rules, on every subcommand under it.
func applyHelpStyling(cmd *cobra.Command, colorMode string, writer io.Writer) {
	s := newHelpStyler(pretty.IsColorEnabled(colorMode, writer))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return s.usage.Execute(c.OutOrStdout(), c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := s.help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// flagUsages renders a flag set with aligned columns. It walks the set
// directly rather than restyling cobra's pre-rendered usage text, so
// ANSI escapes never skew the alignment math.
func (s *helpStyler) flagUsages(fs *pflag.FlagSet) string {
	type row struct {
		left string
		desc string
	}
	var rows []row
	width := 0

	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		left := "  "
		if f.Shorthand != "" {
			left += s.flag.Render("-"+f.Shorthand) + ", "
		} else {
			left += "    "
		}
		left += s.flag.Render("--" + f.Name)
		varname, usage := pflag.UnquoteUsage(f)
		if varname != "" {
			left += " " + s.dim.Render(varname)
		}

		desc := usage
		if showDefault(f) {
			if f.Value.Type() == "string" {
				desc += fmt.Sprintf(" (default %q)", f.DefValue)
			} else {
				desc += fmt.Sprintf(" (default %s)", f.DefValue)
			}
		}

		if w := lipgloss.Width(left); w > width {
			width = w
		}
		rows = append(rows, row{left: left, desc: desc})
	})

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.left)
		b.WriteString(strings.Repeat(" ", width-lipgloss.Width(r.left)+2))
		b.WriteString(r.desc)
	}
	return b.String()
}

// showDefault reports whether a flag's default is worth printing. Zero
// values for the flag types used here add nothing.
func showDefault(f *pflag.Flag) bool {
	switch f.DefValue {
	case "", "false", "0", "[]", "<nil>":
		return false
	}
	return true
}

// rpad pads a string on the right to the given width.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}
