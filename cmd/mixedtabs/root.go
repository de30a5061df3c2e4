package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/mixedtabs/internal/app"
	"github.com/dshills/mixedtabs/internal/config"
	"github.com/dshills/mixedtabs/internal/engine"
	"github.com/dshills/mixedtabs/internal/logging"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	tabWidth   int
	logLevel   string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "mixedtabs",
		Short: "Find and fix files that mix tab and space indentation",
		Long: `mixedtabs reports files whose lines are indented with tabs in some places
and spaces in others, and rewrites leading whitespace to all tabs (tabify) or
all spaces (untabify) without moving any text to a different column.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("mixedtabs {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "Path to a TOML or YAML configuration file")
	pf.IntVarP(&g.tabWidth, "tab-width", "t", 0, "Tab width in columns (overrides editor.tabSize)")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newCheckCmd(g),
		newConvertCmd(g, engine.ConvertTabify),
		newConvertCmd(g, engine.ConvertUntabify),
		newWatchCmd(g),
	)
	return root
}

// appOptions adjusts configuration and application options for one command.
type appOptions struct {
	autoFix  *string
	readOnly bool
}

// newApp resolves configuration for cmd and builds the application.
// Logs go to the command's error stream.
func newApp(cmd *cobra.Command, g *globalFlags, ao appOptions) (*app.Application, error) {
	var o config.Overrides
	if cmd.Flags().Changed("tab-width") {
		o.TabSize = &g.tabWidth
	}
	if cmd.Flags().Changed("log-level") {
		o.LogLevel = &g.logLevel
	}
	o.AutoFix = ao.autoFix

	loaderOpts := []config.LoaderOption{config.WithOverrides(o)}
	if g.configPath != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(g.configPath))
	}

	cfg, err := config.NewLoader(loaderOpts...).Load()
	if err != nil {
		return nil, err
	}

	lc := logging.DefaultConfig()
	lc.Output = cmd.ErrOrStderr()
	lc.Level = cfg.LogLevel()

	return app.New(app.Options{
		Config:   cfg,
		Logger:   logging.New(lc),
		ReadOnly: ao.readOnly,
	})
}
