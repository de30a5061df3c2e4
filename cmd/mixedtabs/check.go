package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/dshills/mixedtabs/internal/indent"
)

// errMixed makes the process exit with exitMixed without printing an error.
var errMixed = errors.New("mixed indentation found")

func newCheckCmd(g *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Report files that mix tab and space indentation",
		Long: `check reports, for each file, whether it contains both tab-indented lines
and space-indented lines. A space-indented line only counts when its leading
spaces reach the tab width or are followed by a tab.

The exit status is 1 when any file is mixed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp(cmd, g, appOptions{readOnly: true})
			if err != nil {
				return err
			}
			defer application.Shutdown(cmd.Context())

			results := make([]fileResult, 0, len(args))
			for _, path := range args {
				doc, err := application.OpenFile(cmd.Context(), path)
				if err != nil {
					return err
				}
				report, err := application.Analyze(doc)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				results = append(results, fileResult{
					path:       path,
					report:     report,
					lineEnding: doc.Engine.Snapshot().LineEnding().String(),
				})
			}

			tabWidth := application.Config().Editor.TabSize
			if asJSON {
				out, err := jsonReport(tabWidth, results)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
			} else {
				textReport(cmd.OutOrStdout(), results)
			}

			for _, r := range results {
				if r.report.Mixed {
					return errMixed
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print a JSON report")
	return cmd
}

type fileResult struct {
	path       string
	report     indent.Report
	lineEnding string
}

func textReport(w io.Writer, results []fileResult) {
	for _, r := range results {
		if !r.report.Mixed {
			fmt.Fprintf(w, "%s: ok\n", r.path)
			continue
		}
		fmt.Fprintf(w, "%s: mixed (%d tab-indented lines from line %d, %d space-indented lines from line %d)\n",
			r.path, r.report.TabLines, r.report.FirstTab+1, r.report.SpaceLines, r.report.FirstSpace+1)
	}
}

// jsonReport renders results as
//
//	{"tabWidth":4,"mixed":true,"files":[{"path":"a.go","mixed":true,...}]}
//
// Line numbers are 1-based; absent lines are null. lineEnding is the most
// common terminator in the file: lf, crlf or cr.
func jsonReport(tabWidth int, results []fileResult) (string, error) {
	out, err := sjson.Set("", "tabWidth", tabWidth)
	if err != nil {
		return "", err
	}
	out, err = sjson.SetRaw(out, "files", "[]")
	if err != nil {
		return "", err
	}

	anyMixed := false
	for _, r := range results {
		entry, err := fileJSON(r)
		if err != nil {
			return "", err
		}
		if out, err = sjson.SetRaw(out, "files.-1", entry); err != nil {
			return "", err
		}
		anyMixed = anyMixed || r.report.Mixed
	}

	return sjson.Set(out, "mixed", anyMixed)
}

func fileJSON(r fileResult) (string, error) {
	fields := []struct {
		key   string
		value any
	}{
		{"path", r.path},
		{"mixed", r.report.Mixed},
		{"tabLines", r.report.TabLines},
		{"spaceLines", r.report.SpaceLines},
		{"firstTabLine", lineNumber(r.report.FirstTab)},
		{"firstSpaceLine", lineNumber(r.report.FirstSpace)},
		{"lineEnding", r.lineEnding},
	}

	entry := ""
	for _, f := range fields {
		var err error
		if entry, err = sjson.Set(entry, f.key, f.value); err != nil {
			return "", err
		}
	}
	return entry, nil
}

// lineNumber converts a 0-based index to a 1-based line number, or nil
// when there is no such line.
func lineNumber(index int) any {
	if index < 0 {
		return nil
	}
	return index + 1
}
