package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pullup/internal/cli/formatter"
	"github.com/alexanderramin/pullup/internal/domain"
	"github.com/alexanderramin/pullup/internal/repository"
	"github.com/spf13/cobra"
)

func newWorkoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workout",
		Aliases: []string{"w"},
		Short:   "Run, log and review workouts",
	}

	cmd.AddCommand(
		newWorkoutStartCmd(app),
		newWorkoutLogCmd(app),
		newWorkoutListCmd(app),
		newWorkoutShowCmd(app),
		newWorkoutEditCmd(app),
		newWorkoutRemoveCmd(app),
		newWorkoutExportCmd(app),
		newWorkoutImportCmd(app),
	)

	return cmd
}

func newWorkoutStartCmd(app *App) *cobra.Command {
	var protocol protocolFlag

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a guided session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return errors.New("guided sessions need an interactive terminal")
			}
			m := newAppModel(app)
			if protocol.value != "" {
				v, err := newSessionView(m.state, protocol.value)
				if err != nil {
					return err
				}
				m.viewStack = append(m.viewStack, v)
			}
			return runTUI(m)
		},
	}

	registerProtocolFlag(cmd, &protocol, "Protocol to run (max-day, sub-max-volume, ladder-volume)")
	return cmd
}

func newWorkoutLogCmd(app *App) *cobra.Command {
	var (
		protocol protocolFlag
		reps     []int
		dateStr  string
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a workout done without the timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if protocol.value == "" {
				return errors.New("--protocol is required")
			}
			if len(reps) == 0 {
				return errors.New("--reps needs at least one set")
			}
			date := app.now()
			if dateStr != "" {
				parsed, err := time.Parse("2006-01-02", dateStr)
				if err != nil {
					return fmt.Errorf("invalid --date %q (want YYYY-MM-DD): %w", dateStr, err)
				}
				date = parsed
			}

			w, err := app.Workouts.LogManual(cmd.Context(), protocol.value, date, reps)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s: %s (total %d) %s\n",
				w.Protocol.DisplayName(), formatter.FormatReps(w.Reps), w.Score(), formatter.TruncID(w.ID))
			return nil
		},
	}

	registerProtocolFlag(cmd, &protocol, "Workout protocol")
	cmd.Flags().IntSliceVar(&reps, "reps", nil, "Comma-separated reps per set, e.g. 7,5,4")
	cmd.Flags().StringVar(&dateStr, "date", "", "Workout date (YYYY-MM-DD, default today)")
	return cmd
}

func newWorkoutListCmd(app *App) *cobra.Command {
	var (
		protocol protocolFlag
		days     int
		limit    int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent workouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := repository.WorkoutFilter{Protocol: protocol.value, Limit: limit}
			if days > 0 {
				f.Since = app.now().AddDate(0, 0, -days)
			}
			workouts, err := app.Workouts.List(cmd.Context(), f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(workouts) == 0 {
				fmt.Fprintln(out, "No workouts found.")
				return nil
			}
			fmt.Fprint(out, formatter.RenderBox("Workouts", formatter.RenderWorkoutTable(workouts, app.now())))
			fmt.Fprintln(out)
			return nil
		},
	}

	registerProtocolFlag(cmd, &protocol, "Only show this protocol")
	cmd.Flags().IntVar(&days, "days", 30, "Number of recent days to show (0 for all)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of workouts")
	return cmd
}

func newWorkoutShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a workout with its score and the previous one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveWorkoutID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			sum, err := app.Workouts.Summary(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox("Workout", formatter.RenderWorkoutSummary(sum.Workout, sum.Previous, app.now())))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}

func newWorkoutEditCmd(app *App) *cobra.Command {
	var set, reps int

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Correct the reps recorded for one set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveWorkoutID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			w, err := app.Workouts.EditSet(cmd.Context(), id, set, reps)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %d is now %d reps: %s (total %d)\n",
				set, reps, formatter.FormatReps(w.Reps), w.Score())
			return nil
		},
	}

	cmd.Flags().IntVar(&set, "set", 0, "Set number (1-based)")
	cmd.Flags().IntVar(&reps, "reps", 0, "Corrected rep count")
	_ = cmd.MarkFlagRequired("set")
	_ = cmd.MarkFlagRequired("reps")
	return cmd
}

func newWorkoutRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a workout",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveWorkoutID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Workouts.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed workout %s\n", id)
			return nil
		},
	}
}

func newProtocolsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "protocols",
		Short: "List the guided protocols and their timing",
		RunE: func(cmd *cobra.Command, args []string) error {
			configs := make([]domain.SessionConfig, 0, len(domain.Protocols))
			for _, p := range domain.Protocols {
				cfg, err := app.Config.SessionConfig(p)
				if err != nil {
					return err
				}
				configs = append(configs, cfg)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderProtocols(configs))
			return nil
		},
	}
}

// resolveWorkoutID accepts a full ID or a unique prefix such as the
// eight characters shown in listings.
func resolveWorkoutID(ctx context.Context, app *App, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", errors.New("workout ID is required")
	}
	if _, err := app.Workouts.GetByID(ctx, arg); err == nil {
		return arg, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}

	all, err := app.Workouts.List(ctx, repository.WorkoutFilter{})
	if err != nil {
		return "", err
	}
	var matches []string
	for _, w := range all {
		if strings.HasPrefix(w.ID, arg) {
			matches = append(matches, w.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("workout %q: %w", arg, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("workout prefix %q matches %d workouts", arg, len(matches))
	}
}
