package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sbpo/datapoints/pkg/monitor"
	"github.com/sbpo/datapoints/pkg/monitor/keymap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Interactive data points list",
	Long: `Launch the interactive list. Records are shown four to a page.

Key bindings:
  j/k            Move the cursor
  h/l  [/]       Previous/next page
  n              New record
  e/Enter        Edit the selected record
  x              Remove the selected record
  u, 1-9         Restore a removed record
  r              Reload
  ?              Toggle help
  q              Quit

Bindings can be changed in the keymap section of the config file
(see "dp keys").`,
	GroupID: "core",
	RunE:    runMonitor,
}

func runMonitor(cmd *cobra.Command, args []string) error {
	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	if err := keymap.ApplyConfig(km, appCfg.Keymap); err != nil {
		return fmt.Errorf("keymap: %w", err)
	}

	client, closeStore, err := openClient()
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	model := monitor.New(client, monitor.Options{
		Context: ctx,
		PerPage: appCfg.PerPage,
		UndoTTL: appCfg.UndoTTL,
		Keymap:  km,
		Logger:  logger,
	})

	logger.Info("monitor started", zap.String("version", versionStr))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running monitor: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}
