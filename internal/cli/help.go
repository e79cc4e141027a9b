package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/mdscan/internal/configloader"
	"github.com/yaklabco/mdscan/internal/ui/pretty"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	FlagType    lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style
	EnvVar      lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{
			Command: plain, Heading: plain, Subcommand: plain, Flag: plain, FlagType: plain,
			Description: plain, Example: plain, EnvVar: plain, Dim: plain,
		}
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	return &HelpStyles{
		Command:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		FlagType:    dim,
		Description: lipgloss.NewStyle(),
		Example:     dim,
		EnvVar:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Dim:         dim,
	}
}

// HelpFormatter renders styled help and usage for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
	usage  *template.Template
	help   *template.Template
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ description .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if not .HasParent}}

{{ heading "Environment:" }}{{range environment}}
  {{ envvar (rpad .Name 24) }} {{ description .Description }}{{end}}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}{{template "usage" .}}`

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	h := &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}

	funcs := template.FuncMap{
		"heading":                 h.styles.Heading.Render,
		"command":                 h.styles.Command.Render,
		"subcommand":              h.styles.Subcommand.Render,
		"description":             h.styles.Description.Render,
		"example":                 h.styles.Example.Render,
		"envvar":                  h.styles.EnvVar.Render,
		"flags":                   h.renderFlags,
		"environment":             environment,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}

	h.usage = template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	h.help = template.Must(template.Must(h.usage.Clone()).New("help").Parse(helpTemplate))
	return h
}

// ApplyToCommand installs the styled help and usage on cmd and its subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		if err := h.usage.Execute(command.OutOrStderr(), command); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.help.ExecuteTemplate(command.OutOrStdout(), "help", command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// renderFlags lays out visible flags in two aligned columns.
func (h *HelpFormatter) renderFlags(flags *pflag.FlagSet) string {
	type row struct {
		names, plain, usage string
	}

	var rows []row
	width := 0
	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}

		varname, usage := pflag.UnquoteUsage(flag)

		plain := "    --" + flag.Name
		styled := "    " + h.styles.Flag.Render("--"+flag.Name)
		if flag.Shorthand != "" {
			plain = "-" + flag.Shorthand + ", --" + flag.Name
			styled = h.styles.Flag.Render("-"+flag.Shorthand) + ", " + h.styles.Flag.Render("--"+flag.Name)
		}
		if varname != "" {
			plain += " " + varname
			styled += " " + h.styles.FlagType.Render(varname)
		}

		if def := flag.DefValue; def != "" && def != "false" && def != "0" && def != "[]" {
			usage += h.styles.Dim.Render(fmt.Sprintf(" (default %s)", def))
		}

		rows = append(rows, row{names: styled, plain: plain, usage: usage})
		width = max(width, len(plain))
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		pad := strings.Repeat(" ", width-len(r.plain))
		lines = append(lines, "  "+r.names+pad+"   "+h.styles.Description.Render(r.usage))
	}
	return strings.Join(lines, "\n")
}

type envVarHelp struct {
	Name        string
	Description string
}

// environment lists the MDSCAN_* variables sorted by name.
func environment() []envVarHelp {
	vars := configloader.ListEnvVars()
	rows := make([]envVarHelp, 0, len(vars))
	for name, desc := range vars {
		rows = append(rows, envVarHelp{Name: name, Description: desc})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
