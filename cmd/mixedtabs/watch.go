package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newWatchCmd(g *globalFlags) *cobra.Command {
	var autoFix string

	cmd := &cobra.Command{
		Use:   "watch FILE...",
		Short: "Re-check files every time they are written",
		Long: `watch opens each file, checks it once, and checks it again whenever it
changes on disk until interrupted. Mixed files are reported on the log.

With --auto-fix, mixed files are converted and saved instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var ao appOptions
			if cmd.Flags().Changed("auto-fix") {
				ao.autoFix = &autoFix
			}
			application, err := newApp(cmd, g, ao)
			if err != nil {
				return err
			}
			defer application.Shutdown(cmd.Context())

			for _, path := range args {
				doc, err := application.OpenFile(ctx, path)
				if err != nil {
					return err
				}
				if err := application.FocusDocument(ctx, doc); err != nil {
					return err
				}
				if doc.Engine.Dirty() {
					if err := application.SaveDocument(ctx, doc); err != nil {
						return err
					}
				}
			}

			return application.Watch(ctx)
		},
	}

	cmd.Flags().StringVar(&autoFix, "auto-fix", "", `Fix mixed files with "tabify" or "untabify"`)
	return cmd
}
