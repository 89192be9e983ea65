package cli

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

//go:embed usage.md
var usageMarkdown string

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Show usage documentation (for humans and agents)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), usageMarkdown)
				return err
			}

			// Avoid WithAutoStyle: it can block waiting on terminal queries
			// in some setups. Fall back to raw markdown on render trouble.
			r, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle(docsStyle()),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				_, werr := fmt.Fprint(cmd.OutOrStdout(), usageMarkdown)
				return werr
			}
			out, err := r.Render(usageMarkdown)
			if err != nil {
				_, werr := fmt.Fprint(cmd.OutOrStdout(), usageMarkdown)
				return werr
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no styling)")

	return cmd
}

func docsStyle() string {
	// Explicit override for debugging / accessibility.
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TEMPO_MD_STYLE"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
