package main

import (
	"fmt"
	"strconv"
	"strings"

	"ironlog/workout-app/internal/session"

	"github.com/spf13/cobra"
)

func newWorkoutsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workouts",
		Short: "Manage your saved workouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listWorkouts(cmd, ctx)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "templates",
		Short: "List the predefined workout templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows [][]string
			for _, tpl := range session.PredefinedWorkouts {
				rows = append(rows, []string{
					tpl.ID,
					tpl.Name,
					strconv.Itoa(tpl.ExerciseCount),
					tpl.Duration,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Exercises", "Duration"}, rows, 2))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "favorite <workout-id>",
		Short: "Toggle the favorite flag on a workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := ctx.apiClient()
			if err != nil {
				return err
			}
			updated, err := api.ToggleFavorite(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "unfavorited"
			if updated.IsFavorite {
				state = "favorited"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", updated.Name, state)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <workout-id>",
		Short: "Delete a workout and its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := ctx.apiClient()
			if err != nil {
				return err
			}
			if err := api.DeleteWorkout(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Workout and its logs deleted.")
			return nil
		},
	})

	return cmd
}

func listWorkouts(cmd *cobra.Command, ctx *commandContext) error {
	api, err := ctx.apiClient()
	if err != nil {
		return err
	}

	workouts, err := api.Workouts(cmd.Context())
	if err != nil {
		return err
	}
	if len(workouts) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved workouts yet. Try 'ironlog workouts templates'.")
		return nil
	}

	var rows [][]string
	for _, w := range workouts {
		names := make([]string, len(w.Exercises))
		for i, ex := range w.Exercises {
			names[i] = ex.Name
		}
		favorite := ""
		if w.IsFavorite {
			favorite = "*"
		}
		last := "never"
		if w.LastPerformed != nil {
			last = w.LastPerformed.Format("2006-01-02")
		}
		rows = append(rows, []string{
			w.ID.Hex(),
			favorite,
			w.Name,
			strings.Join(names, ", "),
			w.Category,
			last,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"ID", "Fav", "Name", "Exercises", "Category", "Last performed"}, rows))
	return nil
}
