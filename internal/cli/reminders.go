package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tempo-cli/internal/model"
	"tempo-cli/internal/store"
	"tempo-cli/internal/timefield"

	"github.com/spf13/cobra"
)

// reminderView is the JSON shape commands emit: the raw clock value plus its
// canonical display text, so scripts never re-implement the formatting.
type reminderView struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Time    int    `json:"time"`
	Display string `json:"display"`
	Enabled bool   `json:"enabled"`
}

func viewOf(r model.Reminder) reminderView {
	return reminderView{
		ID:      r.ID,
		Label:   r.Label,
		Time:    r.Time,
		Display: timefield.Format(r.Time),
		Enabled: r.Enabled,
	}
}

func newRemindersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reminders",
		Aliases: []string{"rem"},
		Short:   "Manage daily reminders",
	}

	cmd.AddCommand(newRemindersListCmd(app))
	cmd.AddCommand(newRemindersShowCmd(app))
	cmd.AddCommand(newRemindersAddCmd(app))
	cmd.AddCommand(newRemindersSetTimeCmd(app))
	cmd.AddCommand(newRemindersRemoveCmd(app))
	cmd.AddCommand(newRemindersEnableCmd(app, true))
	cmd.AddCommand(newRemindersEnableCmd(app, false))
	cmd.AddCommand(newRemindersBoundsCmd(app))

	return cmd
}

func newRemindersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reminders (sorted by time)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			store.SortReminders(db.Reminders)
			views := make([]reminderView, 0, len(db.Reminders))
			for _, r := range db.Reminders {
				views = append(views, viewOf(r))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"reminders": views}})
		},
	}
}

func newRemindersShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <reminder-id>",
		Short: "Show one reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			r, ok := db.FindReminder(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("reminder", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"reminder": viewOf(*r)}})
		},
	}
}

func newRemindersAddCmd(app *App) *cobra.Command {
	var label string
	var timeArg string

	cmd := &cobra.Command{
		Use:   "add --label <label> --time <HH:MM>",
		Short: "Add a reminder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(label) == "" {
				return writeErr(cmd, fmt.Errorf("missing --label"))
			}
			v, err := parseClock(timeArg)
			if err != nil {
				return writeErr(cmd, err)
			}

			dir, db, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			min, max := db.Settings.Bounds()
			id, err := store.NewReminderID()
			if err != nil {
				return writeErr(cmd, err)
			}
			now := time.Now().UTC()
			r := model.Reminder{
				ID:        id,
				Label:     strings.TrimSpace(label),
				Time:      timefield.ForceValid(v, min, max, min),
				Enabled:   true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			db.Reminders = append(db.Reminders, r)
			if err := (store.Store{Dir: dir}).Save(context.Background(), db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"reminder": viewOf(r)}})
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Reminder label (required)")
	cmd.Flags().StringVar(&timeArg, "time", "", "Clock time, 24h (e.g. 9:30 or 09:30)")

	return cmd
}

func newRemindersSetTimeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-time <reminder-id> <HH:MM>",
		Short: "Change a reminder's time (clamped into the configured bounds)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseClock(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}

			dir, db, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			r, ok := db.FindReminder(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("reminder", args[0]))
			}

			min, max := db.Settings.Bounds()
			r.Time = timefield.ForceValid(v, min, max, r.Time)
			r.UpdatedAt = time.Now().UTC()
			if err := (store.Store{Dir: dir}).Save(context.Background(), db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"reminder": viewOf(*r)}})
		},
	}
}

func newRemindersRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <reminder-id>",
		Short: "Remove a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, db, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !db.RemoveReminder(args[0]) {
				return writeErr(cmd, errNotFound("reminder", args[0]))
			}
			if err := (store.Store{Dir: dir}).Save(context.Background(), db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"removed": args[0]}})
		},
	}
}

func newRemindersEnableCmd(app *App, enable bool) *cobra.Command {
	use, short := "enable <reminder-id>", "Enable a reminder"
	if !enable {
		use, short = "disable <reminder-id>", "Disable a reminder"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, db, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			r, ok := db.FindReminder(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("reminder", args[0]))
			}
			r.Enabled = enable
			r.UpdatedAt = time.Now().UTC()
			if err := (store.Store{Dir: dir}).Save(context.Background(), db); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"reminder": viewOf(*r)}})
		},
	}
}

func newRemindersBoundsCmd(app *App) *cobra.Command {
	var minArg, maxArg string

	cmd := &cobra.Command{
		Use:   "bounds [--min HH:MM] [--max HH:MM]",
		Short: "Show or set the clamp bounds applied to reminder times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, db, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if minArg != "" || maxArg != "" {
				min, max := db.Settings.Bounds()
				if minArg != "" {
					if min, err = parseClock(minArg); err != nil {
						return writeErr(cmd, err)
					}
				}
				if maxArg != "" {
					if max, err = parseClock(maxArg); err != nil {
						return writeErr(cmd, err)
					}
				}
				if min > max {
					return writeErr(cmd, fmt.Errorf("minimum %s is after maximum %s", timefield.Format(min), timefield.Format(max)))
				}
				db.Settings.MinTime = &min
				db.Settings.MaxTime = &max
				if err := (store.Store{Dir: dir}).Save(context.Background(), db); err != nil {
					return writeErr(cmd, err)
				}
			}

			min, max := db.Settings.Bounds()
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"min": timefield.Format(min),
				"max": timefield.Format(max),
			}})
		},
	}

	cmd.Flags().StringVar(&minArg, "min", "", "Lower clamp bound (HH:MM)")
	cmd.Flags().StringVar(&maxArg, "max", "", "Upper clamp bound (HH:MM)")

	return cmd
}

// parseClock accepts the same shapes the interactive field tolerates but
// insists the result is a well-formed clock value: "9:30", "09:30", "930".
func parseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time (expected HH:MM, 24h)")
	}
	v, ok := timefield.ValueFromText(s)
	if !ok || !timefield.IsValidValue(v) {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM, 24h)", s)
	}
	return v, nil
}
