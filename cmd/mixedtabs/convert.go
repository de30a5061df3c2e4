package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/mixedtabs/internal/engine"
)

func newConvertCmd(g *globalFlags, c engine.Conversion) *cobra.Command {
	var (
		dryRun    bool
		cursorArg string
	)
	name := strings.ToLower(c.String())

	short := "Rewrite leading whitespace as tabs plus alignment spaces"
	if c == engine.ConvertUntabify {
		short = "Rewrite leading whitespace as spaces"
	}

	cmd := &cobra.Command{
		Use:   name + " FILE...",
		Short: short,
		Long: short + `.

With --cursor LINE:COL the command also prints where that position ends up
after the rewrite, so an editor can put its caret back on the same text.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var at *cursor
			if cursorArg != "" {
				if len(args) != 1 {
					return fmt.Errorf("--cursor needs exactly one file, got %d", len(args))
				}
				c, err := parseCursor(cursorArg)
				if err != nil {
					return err
				}
				at = &c
			}

			ctx := cmd.Context()
			application, err := newApp(cmd, g, appOptions{readOnly: dryRun})
			if err != nil {
				return err
			}
			defer application.Shutdown(ctx)

			out := cmd.OutOrStdout()
			for _, path := range args {
				doc, err := application.OpenFile(ctx, path)
				if err != nil {
					return err
				}

				if dryRun {
					reps, err := application.Preview(doc, c)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					fmt.Fprintf(out, "%s: would change %d lines\n", path, len(reps))
					continue
				}

				if at != nil {
					offset, err := at.offset(doc.Engine.Snapshot())
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					doc.Engine.SetCaret(offset)
				}

				n, err := application.Convert(ctx, doc, c)
				if err != nil {
					return err
				}
				if n > 0 {
					if err := application.SaveDocument(ctx, doc); err != nil {
						return err
					}
				}
				fmt.Fprintf(out, "%s: changed %d lines\n", path, n)
				if at != nil {
					fmt.Fprintf(out, "%s: cursor %s\n", path, cursorAt(doc.Engine.Snapshot(), doc.Engine.Caret()))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Report changes without writing files")
	cmd.Flags().StringVar(&cursorArg, "cursor", "", "Report where LINE:COL moves to (single file only)")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "cursor")
	return cmd
}
