package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ironlog/workout-app/internal/client"
	"ironlog/workout-app/internal/session"

	"github.com/spf13/cobra"
)

func newStartCommand(ctx *commandContext) *cobra.Command {
	var again bool

	cmd := &cobra.Command{
		Use:   "start [workout-id | template-id]",
		Short: "Run a live workout session",
		Long: `Start a workout from a predefined template (full-body-1, upper-body-1,
lower-body-1), one of your saved workouts by ID, or --again to repeat your
most recent workout. Sets are recorded interactively and submitted as a
workout log when you finish.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := ctx.apiClient()
			if err != nil {
				return err
			}

			src, err := resolveSource(cmd, api, args, again)
			if err != nil {
				return err
			}

			return runSession(cmd, api, src)
		},
	}

	cmd.Flags().BoolVar(&again, "again", false, "Repeat your most recent workout")

	return cmd
}

// resolveSource maps the command line to a workout source: a predefined
// template ID, a saved workout ID, or the newest log when --again is set.
func resolveSource(cmd *cobra.Command, api *client.Client, args []string, again bool) (session.Source, error) {
	if again {
		logs, err := api.RecentLogs(cmd.Context())
		if err != nil {
			return nil, err
		}
		if len(logs) == 0 {
			return nil, errors.New("no workout history to repeat")
		}
		newest := logs[0]
		exercises := make([]session.SourceExercise, len(newest.Exercises))
		for i, ex := range newest.Exercises {
			exercises[i] = session.SourceExercise{Name: ex.Name}
		}
		return session.Summary{
			WorkoutID:   newest.WorkoutID,
			WorkoutName: newest.WorkoutName,
			Exercises:   exercises,
		}, nil
	}

	if len(args) == 0 {
		return nil, errors.New("name a template or workout ID, or pass --again")
	}

	if tpl, ok := session.LookupPredefined(args[0]); ok {
		return tpl, nil
	}

	workout, err := api.Workout(cmd.Context(), args[0])
	if err != nil {
		if client.IsNotFound(err) {
			return nil, fmt.Errorf("no template or workout named %q", args[0])
		}
		return nil, err
	}
	exercises := make([]session.SourceExercise, len(workout.Exercises))
	for i, ex := range workout.Exercises {
		exercises[i] = session.SourceExercise{Ref: &session.ExerciseRef{Name: ex.Name}}
	}
	return session.UserWorkout{
		ID:        workout.ID.Hex(),
		Name:      workout.Name,
		Exercises: exercises,
	}, nil
}

// runSession drives the interactive loop until the workout is submitted or
// cancelled.
func runSession(cmd *cobra.Command, api *client.Client, src session.Source) error {
	s := session.New(api)
	if err := s.Start(src); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	snap, _ := s.Snapshot()
	fmt.Fprintf(out, "Started %q with %d exercises. Type 'help' for commands.\n", snap.WorkoutName, len(snap.Exercises))
	printSession(out, s)

	interactive := isTerminal(out)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		if interactive {
			fmt.Fprintf(out, "[%s] > ", formatElapsed(s.Elapsed()))
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			// Input ended without an explicit done or quit.
			fmt.Fprintln(out, "Input closed; workout discarded.")
			return s.Cancel()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		finished, err := dispatch(cmd, s, scanner, fields)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if finished {
			return nil
		}
	}
}

// dispatch runs one session command. It returns true when the session has
// ended; user-facing errors keep the loop running.
func dispatch(cmd *cobra.Command, s *session.Session, scanner *bufio.Scanner, fields []string) (bool, error) {
	out := cmd.OutOrStdout()

	switch fields[0] {
	case "help":
		printHelp(out)
	case "show":
		printSession(out, s)
	case "time":
		fmt.Fprintln(out, formatElapsed(s.Elapsed()))
	case "add":
		index, err := parseIndex(fields, 1)
		if err != nil {
			return false, err
		}
		if err := s.AddSet(index); err != nil {
			return false, err
		}
		printSession(out, s)
	case "del":
		exIndex, err := parseIndex(fields, 1)
		if err != nil {
			return false, err
		}
		setIndex, err := parseIndex(fields, 2)
		if err != nil {
			return false, err
		}
		if err := s.RemoveSet(exIndex, setIndex); err != nil {
			return false, err
		}
		printSession(out, s)
	case "set":
		if len(fields) < 5 {
			return false, errors.New("usage: set <exercise> <set> reps|weight <value>")
		}
		exIndex, err := parseIndex(fields, 1)
		if err != nil {
			return false, err
		}
		setIndex, err := parseIndex(fields, 2)
		if err != nil {
			return false, err
		}
		if err := s.UpdateSet(exIndex, setIndex, session.SetField(fields[3]), fields[4]); err != nil {
			return false, err
		}
		printSession(out, s)
	case "note":
		if len(fields) < 3 {
			return false, errors.New("usage: note <exercise> <text>")
		}
		index, err := parseIndex(fields, 1)
		if err != nil {
			return false, err
		}
		if err := s.UpdateNotes(index, strings.Join(fields[2:], " ")); err != nil {
			return false, err
		}
	case "done":
		log, err := s.Finish(cmd.Context())
		if err != nil {
			// The session stays active; fix the problem and try again.
			return false, err
		}
		fmt.Fprintf(out, "Workout saved: %s, %d min.\n", log.WorkoutName, log.Duration)
		return true, nil
	case "quit":
		fmt.Fprint(out, "Discard this workout? Nothing will be saved. [y/N] ")
		if scanner.Scan() && strings.EqualFold(strings.TrimSpace(scanner.Text()), "y") {
			if err := s.Cancel(); err != nil {
				return false, err
			}
			fmt.Fprintln(out, "Workout discarded.")
			return true, nil
		}
		fmt.Fprintln(out, "Carrying on.")
	default:
		return false, fmt.Errorf("unknown command %q; type 'help'", fields[0])
	}
	return false, nil
}

func parseIndex(fields []string, pos int) (int, error) {
	if pos >= len(fields) {
		return 0, errors.New("missing index argument")
	}
	n, err := strconv.Atoi(fields[pos])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%q is not a valid index", fields[pos])
	}
	return n - 1, nil
}

func printSession(w io.Writer, s *session.Session) {
	snap, err := s.Snapshot()
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}

	var rows [][]string
	for i, ex := range snap.Exercises {
		sets := make([]string, len(ex.Sets))
		for j, set := range ex.Sets {
			sets[j] = fmt.Sprintf("%sx%s", formatNumber(set.Reps), formatNumber(set.Weight))
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			ex.Name,
			strings.Join(sets, "  "),
			ex.Notes,
		})
	}
	fmt.Fprintln(w, renderTable([]string{"#", "Exercise", "Sets (reps x weight)", "Notes"}, rows, 0))
}

func formatNumber(v float64) string {
	if v != v {
		return "?"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatElapsed(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `Commands:
  show                                 print the current session
  add <exercise>                       add a set to an exercise
  del <exercise> <set>                 remove a set (the last set stays)
  set <exercise> <set> reps <value>    record reps for a set
  set <exercise> <set> weight <value>  record weight for a set
  note <exercise> <text>               attach a note to an exercise
  time                                 show the elapsed time
  done                                 finish and save the workout
  quit                                 discard the workout (asks first)
`)
}
