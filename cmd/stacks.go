package cmd

import (
	"fmt"
	"io"
	"strings"

	"projinspect/pkg/stack"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	nameStyle  = lipgloss.NewStyle().Bold(true).Width(11)
)

func newStacksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stacks [name]",
		Short: "List stack presets or show the details of one",
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return stack.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				printStackList(out)
				return nil
			}
			p, err := stack.Lookup(args[0])
			if err != nil {
				return err
			}
			printStackDetails(out, p)
			return nil
		},
	}
}

func printStackList(out io.Writer) {
	fmt.Fprintln(out, titleStyle.Render("Stack presets"))
	for _, name := range stack.Names() {
		p, _ := stack.Lookup(name)
		fmt.Fprintf(out, "  %s %s\n", nameStyle.Render(name), dotted(p.Extensions))
	}
}

func printStackDetails(out io.Writer, p stack.Profile) {
	fmt.Fprintln(out, titleStyle.Render("Stack details for: "+p.Name))
	fmt.Fprintf(out, "  %s %s\n", keyStyle.Render("Extensions:"), dotted(p.Extensions))
	fmt.Fprintf(out, "  %s %s\n", keyStyle.Render("Source folders:"), strings.Join(p.IncludeFolders, ", "))
	fmt.Fprintf(out, "  %s %s\n", keyStyle.Render("Exclude:"), strings.Join(p.Exclude, ", "))
}

func dotted(exts []string) string {
	return "." + strings.Join(exts, ", .")
}
