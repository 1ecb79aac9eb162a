package cmd

import (
	"fmt"

	"github.com/sbpo/datapoints/pkg/monitor/keymap"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the config file, .env, DP_* environment
variables and flags have been applied.

Examples:
  dp config                    # Effective config as YAML
  dp config --example-keymap   # Sample keymap section`,
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		example, _ := cmd.Flags().GetBool("example-keymap")
		if example {
			data, err := yaml.Marshal(map[string]any{"keymap": keymap.ExampleConfig()})
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		}

		data, err := appCfg.Marshal()
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("example-keymap", false, "Print an example keymap section")
}
