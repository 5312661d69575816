package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdslice/internal/logging"
	"github.com/yaklabco/mdslice/pkg/advise"
)

// ruleInfo represents an advisory rule in JSON output.
type ruleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Enabled     bool   `json:"enabled"`
}

func newRulesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List advisory checks for plain markdown",
		Long: `List the advisory rules run on plain markdown during conversion. Each
rule reports a construct the rich-text conversion flattens or drops, such
as code blocks, tables or raw HTML. Rules never change the converted
document. Disable a rule by ID or name under "advise.rules" in the config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := loadEnv(cmd, nil)
			if err != nil {
				return err
			}

			rules := advise.DefaultRegistry.Rules()
			infos := make([]ruleInfo, 0, len(rules))
			for _, rule := range rules {
				enabled := env.cfg.Advise.IsEnabled() && env.cfg.Advise.RuleEnabled(rule.ID(), rule.Name())
				infos = append(infos, ruleInfo{
					ID:          rule.ID(),
					Name:        rule.Name(),
					Description: rule.Description(),
					Severity:    string(rule.Severity()),
					Enabled:     enabled,
				})
			}

			if format == formatJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(infos); err != nil {
					return fmt.Errorf("encoding rules: %w", err)
				}
				return nil
			}

			logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")
			for _, info := range infos {
				logger.Info(info.ID+"/"+info.Name,
					logging.FieldSeverity, info.Severity,
					logging.FieldEnabled, info.Enabled,
					logging.FieldDescription, info.Description,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}
