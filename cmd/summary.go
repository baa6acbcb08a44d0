package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"projinspect/pkg/bundle"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
)

// printSummary reports the written parts, the per-extension counts and
// the outcome of explicit include names.
func printSummary(out io.Writer, result bundle.Result, verbose bool) error {
	stackLine := result.Stack
	switch {
	case result.Stack == "":
		stackLine = "custom (--include)"
	case result.Detected:
		stackLine += " (detected)"
	}
	fmt.Fprint(out, pterm.DefaultSection.Sprintf("Project %s", result.Project))
	fmt.Fprintln(out, pterm.Info.Sprintf("Stack: %s", stackLine))

	parts := pterm.TableData{{"Part", "File", "Files", "Size", "Note"}}
	for _, p := range result.Parts {
		note := ""
		if p.Oversize {
			note = "single file over " + humanize.IBytes(uint64(result.Limit))
		}
		parts = append(parts, []string{
			strconv.Itoa(p.Index),
			p.File,
			strconv.Itoa(p.Files),
			humanize.IBytes(uint64(p.TotalBytes)),
			note,
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(parts).Srender()
	if err != nil {
		return fmt.Errorf("render parts table: %w", err)
	}
	fmt.Fprintln(out, table)

	exts := make([]string, 0, len(result.Report.Extensions))
	for ext := range result.Report.Extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	extTable := pterm.TableData{{"Extension", "Files"}}
	for _, ext := range exts {
		label := "." + ext
		if ext == "" {
			label = "(none)"
		}
		extTable = append(extTable, []string{label, strconv.Itoa(result.Report.Extensions[ext])})
	}
	table, err = pterm.DefaultTable.WithHasHeader().WithData(extTable).Srender()
	if err != nil {
		return fmt.Errorf("render extension table: %w", err)
	}
	fmt.Fprint(out, pterm.DefaultSection.WithLevel(2).Sprint("Processed by extension"))
	fmt.Fprintln(out, table)

	report := result.Report
	if len(report.IncludeMatched)+len(report.IncludeUnmatched) > 0 {
		fmt.Fprint(out, pterm.DefaultSection.WithLevel(2).Sprint("Included names"))
		for _, name := range report.IncludeMatched {
			fmt.Fprintln(out, pterm.Success.Sprintf("Matched: %s", name))
		}
		for _, name := range report.IncludeUnmatched {
			fmt.Fprintln(out, pterm.Warning.Sprintf("No match: %s", name))
		}
		if len(report.IncludeMatched) == 0 {
			fmt.Fprintln(out, pterm.Warning.Sprint("No --include file or folder matched anything in the project."))
		}
	}

	if n := len(report.Skipped); n > 0 {
		fmt.Fprintln(out, pterm.Warning.Sprintf("Skipped %d file(s)", n))
		if verbose {
			for _, s := range report.Skipped {
				fmt.Fprintf(out, "  %s (%s)\n", s.Path, s.Reason)
			}
		}
	}

	total := 0
	for _, p := range result.Parts {
		total += p.Files
	}
	fmt.Fprintln(out, pterm.Success.Sprintf("Done. %d file(s) written to %d part(s).", total, len(result.Parts)))
	return nil
}
