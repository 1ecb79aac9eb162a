package cmd

import (
	"fmt"

	"github.com/sbpo/datapoints/internal/api"
	"github.com/sbpo/datapoints/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var showCmd = &cobra.Command{
	Use:     "show <id>",
	Aliases: []string{"get", "view"},
	Short:   "Display one data point",
	Long: `Display one data point. The description is rendered as markdown.

Examples:
  dp show 3f1c2a9e-...        # Show a record
  dp show 3f1c2a9e-... --json`,
	GroupID: "core",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		noDelay, _ := cmd.Flags().GetBool("no-delay")

		var opts []api.Option
		if noDelay {
			opts = append(opts, api.WithLatency(0))
		}
		client, closeStore, err := openClient(opts...)
		if err != nil {
			return reportError(err, jsonOut)
		}
		defer closeStore()

		r, err := client.Get(commandContext(cmd), args[0])
		if err != nil {
			return reportError(fmt.Errorf("error finding data: %w", err), jsonOut)
		}

		if jsonOut {
			return output.JSON(r)
		}

		desc, err := output.RenderMarkdown(r.Description)
		if err != nil {
			logger.Debug("markdown render failed", zap.Error(err))
			desc = output.IndentString(r.Description, 2)
		}
		fmt.Print(output.FormatRecordLong(r, desc))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("json", false, "Output as JSON")
	showCmd.Flags().Bool("no-delay", false, "Skip the simulated latency")
}
