package cmd

import (
	"fmt"

	"github.com/sbpo/datapoints/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Show version",
	GroupID: "system",
	Run: func(cmd *cobra.Command, args []string) {
		short, _ := cmd.Flags().GetBool("short")
		if short {
			fmt.Print(versionStr)
			return
		}
		fmt.Printf("dp version %s\n", versionStr)
		if version.IsDevelopmentVersion(versionStr) {
			fmt.Println("(development build)")
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("short", false, "Print only the version")
}
