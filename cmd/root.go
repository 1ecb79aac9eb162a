package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sbpo/datapoints/internal/api"
	"github.com/sbpo/datapoints/internal/config"
	"github.com/sbpo/datapoints/internal/logging"
	"github.com/sbpo/datapoints/internal/output"
	"github.com/sbpo/datapoints/internal/store"
	"github.com/sbpo/datapoints/internal/suggest"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var (
	versionStr string

	// Effective configuration and logger, set up before every command
	appCfg *config.Config
	logger = zap.NewNop()

	// Global flags
	cfgPath  string
	latency  time.Duration
	backend  string
	logLevel string
	logFile  string
)

// SetVersion sets the version string
func SetVersion(v string) {
	versionStr = v
}

var rootCmd = &cobra.Command{
	Use:   "dp",
	Short: "Browse and edit a list of data points",
	Long: `dp - A small data points manager backed by a simulated remote API.

Every API call waits a fixed latency so loading states are visible. Deleted
records can be restored for a few seconds after removal.

Run without a subcommand to open the interactive monitor.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			output.Error("%v", err)
		}
		os.Exit(1)
	}
}

// nameWithAliases returns "name, alias1, alias2" if aliases exist, else just "name"
func nameWithAliases(cmd *cobra.Command) string {
	if len(cmd.Aliases) > 0 {
		return cmd.Name() + ", " + strings.Join(cmd.Aliases, ", ")
	}
	return cmd.Name()
}

func init() {
	// Assigned here since both refer back to rootCmd
	rootCmd.PersistentPreRunE = setup
	rootCmd.RunE = runMonitor

	cobra.AddTemplateFunc("nameWithAliases", nameWithAliases)
	cobra.AddTemplateFunc("add", func(a, b int) int { return a + b })

	rootCmd.SetUsageTemplate(`Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{range $group := .Groups}}

{{.Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad (nameWithAliases .) (add .NamePadding 8)}} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`)

	rootCmd.AddGroup(
		&cobra.Group{ID: "core", Title: "Core Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)
	rootCmd.SetFlagErrorFunc(flagError)
	rootCmd.SetHelpCommandGroupID("system")
	rootCmd.SetCompletionCommandGroupID("system")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "Config file (default ./"+config.DefaultPath+")")
	pf.DurationVar(&latency, "latency", config.DefaultLatency, "Simulated API latency")
	pf.StringVar(&backend, "backend", config.DefaultBackend, "Store backend ("+strings.Join(store.Backends(), ", ")+")")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "Write logs to this file")
}

// flagError adds a suggestion to unknown flag errors
func flagError(cmd *cobra.Command, err error) error {
	name, ok := strings.CutPrefix(err.Error(), "unknown flag: ")
	if !ok {
		return err
	}
	var valid []string
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		valid = append(valid, "--"+f.Name)
	})
	return fmt.Errorf("%w%s", err, suggest.Hint(name, valid))
}

// setup loads the configuration, applies flag overrides and builds the logger
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.Options{
		Path:     cfgPath,
		Required: cmd.Flags().Changed("config"),
	})
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// The monitor owns the terminal; everything else may log to stderr
	stderr := cfg.Log.Level == "debug" && !isMonitor(cmd)
	log, err := logging.New(cfg.Log, stderr)
	if err != nil {
		return err
	}

	appCfg = cfg
	logger = log
	logger.Debug("config loaded",
		zap.String("command", cmd.CommandPath()),
		zap.Duration("latency", cfg.Latency),
		zap.String("backend", cfg.Backend),
	)
	return nil
}

// applyFlags copies explicitly set global flags over cfg
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("latency") {
		cfg.Latency = latency
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
}

func isMonitor(cmd *cobra.Command) bool {
	return cmd == rootCmd || cmd == monitorCmd
}

// openClient opens the configured store and wraps it in the simulated API.
// The returned func closes the store.
func openClient(opts ...api.Option) (*api.Client, func(), error) {
	s, err := store.Open(appCfg.Backend, appCfg.Seed)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", zap.String("backend", appCfg.Backend), zap.Int("seed", len(appCfg.Seed)))

	opts = append([]api.Option{
		api.WithLatency(appCfg.Latency),
		api.WithLogger(logger),
	}, opts...)
	closeFn := func() {
		if err := s.Close(); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}
	return api.New(s, opts...), closeFn, nil
}

// commandContext returns the command's context, or Background when unset
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
