package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"tempo-cli/internal/format"
	"tempo-cli/internal/store"
	"tempo-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tempo",
		Short:        "Tempo (local-first) daily reminders CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tempo

  # Scriptable commands
  tempo reminders list
  tempo reminders add --label "Stand-up" --time 9:30

  # Direct reminder lookup (shortcut for: tempo reminders show <reminder-id>)
  tempo rem-vth3a2bq
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TEMPO_DIR", ""), "Path to store dir (default: nearest .tempo, else ./.tempo)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newRemindersCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	dir, db, err := loadDB(app)
	if err != nil {
		return err
	}
	return tui.Run(dir, db)
}

func loadDB(app *App) (string, *store.DB, error) {
	dir, err := resolveDir(app)
	if err != nil {
		return "", nil, err
	}
	db, err := store.Store{Dir: dir}.Load(context.Background())
	if err != nil {
		return "", nil, err
	}
	return dir, db, nil
}

func resolveDir(app *App) (string, error) {
	if strings.TrimSpace(app.Dir) != "" {
		return app.Dir, nil
	}
	return store.DefaultDir()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
