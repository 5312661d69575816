package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yaklabco/mdslice/pkg/slice"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every slice type and setting.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateJSON()
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n# Slice types available to generated content.\n")
	buf.WriteString("# typography, image and divider are always available.\n")
	buf.WriteString("slices:\n")
	writeSlices(&buf, false)

	buf.WriteString(`
# File patterns to ignore (glob patterns)
# ignore:
#   - "drafts/**"

# Advisory checks on plain markdown
# advise:
#   enabled: true
#   rules:
#     MS004: false

# Output settings
# output:
#   format: text
#   dir: ""
#   indent: 2
#   offsets: utf16
`)

	return buf.Bytes()
}

// generateFullTemplate creates a template documenting every setting.
func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# mdslice configuration - Full Template
# See: https://github.com/yaklabco/mdslice
#
# Uncomment and modify settings as needed.

# Slice types available to generated content.
# typography, image and divider are always available.
slices:
`)
	writeSlices(&buf, true)

	buf.WriteString(`
# File patterns to ignore (glob patterns)
ignore:
  - "node_modules/**"
  - ".git/**"

# Advisory checks report markdown the converter flattens or drops.
advise:
  enabled: true
  # Disable individual checks by ID or name:
  # rules:
  #   MS001: false
  #   raw-html: false

# Output settings
output:
  # Output format: text, json, yaml, or summary
  format: text
  # Directory converted documents are published to (empty = stdout)
  dir: ""
  # JSON indentation (0 = compact)
  indent: 2
  # Span offset unit: utf16 (JavaScript string indices) or codepoint
  offsets: utf16
`)

	return buf.Bytes()
}

// writeSlices writes the default enablement, optionally with descriptions.
func writeSlices(buf *bytes.Buffer, describe bool) {
	defaults := DefaultEnablement()
	for _, t := range slice.Types() {
		if describe {
			fmt.Fprintf(buf, "  # %s\n", wrapComment(t.Description(), commentWrapWidth))
		}
		fmt.Fprintf(buf, "  %s: %t\n", t, defaults.Enabled(t))
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateJSON renders the default configuration as JSON.
func templateJSON() ([]byte, error) {
	defaults := NewConfig()

	slices := make(map[string]bool, len(defaults.Slices))
	for t, enabled := range defaults.Slices {
		slices[string(t)] = enabled
	}

	cfg := map[string]any{
		"slices": slices,
		"ignore": []string{},
		"advise": map[string]any{
			"enabled": defaults.Advise.IsEnabled(),
		},
		"output": map[string]any{
			"format":  string(defaults.Output.Format),
			"dir":     defaults.Output.Dir,
			"indent":  defaults.Output.IndentWidth(),
			"offsets": string(defaults.Output.OffsetUnit()),
		},
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# mdslice configuration
# See: https://github.com/yaklabco/mdslice`
}
