package cli

import (
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdslice/internal/ui/pretty"
	"github.com/yaklabco/mdslice/pkg/slice"
)

// Command group IDs for the root help.
const (
	groupConvert = "convert"
	groupInspect = "inspect"
)

// commandGroups returns the groups subcommands are listed under.
func commandGroups() []*cobra.Group {
	return []*cobra.Group{
		{ID: groupConvert, Title: "Conversion Commands:"},
		{ID: groupInspect, Title: "Inspection Commands:"},
	}
}

// flagLinePattern splits a pflag usage line into indent, names, type,
// padding and description.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var flagLinePattern = regexp.MustCompile(`^(\s*)((?:-\w, )?--[\w-]+)( [\w.]+)?(\s{2,})(.*)$`)

// helpTheme holds the styles used by the help templates.
type helpTheme struct {
	heading lipgloss.Style
	command lipgloss.Style
	name    lipgloss.Style
	flag    lipgloss.Style
	marker  lipgloss.Style
	dim     lipgloss.Style
}

func newHelpTheme(colorEnabled bool) helpTheme {
	styles := pretty.NewStyles(colorEnabled)
	if !colorEnabled {
		return helpTheme{
			heading: styles.Bold,
			command: styles.Bold,
			name:    styles.Message,
			flag:    styles.Message,
			marker:  styles.Message,
			dim:     styles.Dim,
		}
	}
	return helpTheme{
		heading: styles.Warning,
		command: styles.SliceType,
		name:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		marker:  styles.Variation,
		dim:     styles.Dim,
	}
}

// HelpFormatter renders styled help for the mdslice command tree.
type HelpFormatter struct {
	theme helpTheme
	help  *template.Template
	usage *template.Template
}

// NewHelpFormatter creates a help formatter. Color follows colorMode and
// whether writer is a terminal.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	h := &HelpFormatter{theme: newHelpTheme(pretty.IsColorEnabled(colorMode, writer))}

	funcs := template.FuncMap{
		"heading":      h.theme.heading.Render,
		"command":      h.theme.command.Render,
		"name":         func(s string, pad int) string { return h.theme.name.Render(padRight(s, pad)) },
		"dim":          h.theme.dim.Render,
		"flags":        h.flagUsages,
		"markers":      h.markerSection,
		"trimTrailing": trimTrailing,
	}
	h.usage = template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	h.help = template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate + usageTemplate))
	return h
}

// ApplyToCommand installs the help and usage functions on cmd. Subcommands
// inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return h.usage.Execute(c.OutOrStdout(), c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

const helpTemplate = `{{ command .CommandPath }}{{ if .Version }} {{ dim .Version }}{{ end }}
{{ with (or .Long .Short) }}
{{ trimTrailing . }}
{{ end }}
`

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}{{ end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]{{ end }}
{{- if .HasExample }}

{{ heading "Examples:" }}
{{ dim .Example }}{{ end }}
{{- if .HasAvailableSubCommands }}{{ $cmds := .Commands }}
{{- range $group := .Groups }}

{{ heading $group.Title }}
{{- range $cmds }}{{ if and (eq .GroupID $group.ID) .IsAvailableCommand }}
  {{ name .Name .NamePadding }} {{ .Short }}{{ end }}{{ end }}{{ end }}
{{- if not .AllChildCommandsHaveGroup }}

{{ heading "Other Commands:" }}
{{- range $cmds }}{{ if and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")) }}
  {{ name .Name .NamePadding }} {{ .Short }}{{ end }}{{ end }}{{ end }}{{ end }}
{{- if not .HasParent }}

{{ heading "Slice Markers:" }}
{{ markers }}{{ end }}
{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}{{ end }}
{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}{{ end }}
{{- if .HasAvailableSubCommands }}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.{{ end }}
`

// flagUsager is satisfied by *pflag.FlagSet.
type flagUsager interface {
	FlagUsages() string
}

// flagUsages styles pflag's usage block line by line. Column alignment is
// kept because only the visible text is wrapped in styles.
func (h *HelpFormatter) flagUsages(set flagUsager) string {
	usages := strings.TrimRight(set.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		m := flagLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		typ := m[3]
		if typ != "" {
			typ = h.theme.dim.Render(typ)
		}
		lines[i] = m[1] + h.theme.flag.Render(m[2]) + typ + m[4] + m[5]
	}
	return strings.Join(lines, "\n")
}

// markerSection lists the fence markers a document may use.
func (h *HelpFormatter) markerSection() string {
	types := slice.MarkerTypes()

	width := 0
	for _, t := range types {
		width = max(width, len(":::"+t.Marker()))
	}

	lines := make([]string, len(types))
	for i, t := range types {
		marker := padRight(":::"+t.Marker(), width)
		lines[i] = "  " + h.theme.marker.Render(marker) + "  " + t.Description()
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimTrailing(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
