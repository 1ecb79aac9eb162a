package cmd

import (
	"fmt"
	"strings"

	"github.com/sbpo/datapoints/internal/output"
	"github.com/sbpo/datapoints/pkg/monitor/keymap"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:     "keys",
	Short:   "List monitor key bindings",
	Long:    `List the monitor key bindings, including overrides from the config file.`,
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		km, err := loadKeymap()
		if err != nil {
			return reportError(err, jsonOut)
		}
		bindings := km.ExportBindings()
		if jsonOut {
			return output.JSON(bindings)
		}

		fmt.Print(formatBindings(bindings))
		return nil
	},
}

// loadKeymap builds the registry with the configured overrides
func loadKeymap() (*keymap.Registry, error) {
	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	if err := keymap.ApplyConfig(km, appCfg.Keymap); err != nil {
		return nil, fmt.Errorf("keymap: %w", err)
	}
	return km, nil
}

// formatBindings renders bindings as a table grouped by context
func formatBindings(bindings []keymap.ExportedBinding) string {
	var sb strings.Builder
	context := ""
	for _, b := range bindings {
		if b.Context != context {
			context = b.Context
			sb.WriteString(output.SectionHeader(context))
		}
		mark := " "
		if b.Override {
			mark = "*"
		}
		fmt.Fprintf(&sb, "%s %-12s %-24s %s\n", mark, b.Key, b.Command, b.Description)
	}
	return sb.String()
}

func init() {
	rootCmd.AddCommand(keysCmd)

	keysCmd.Flags().Bool("json", false, "Output as JSON")
}
