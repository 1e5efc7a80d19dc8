package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newExercisesCommand(ctx *commandContext) *cobra.Command {
	var muscle string
	var category string

	cmd := &cobra.Command{
		Use:   "exercises",
		Short: "Browse the exercise catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := ctx.apiClient()
			if err != nil {
				return err
			}

			exercises, err := api.Exercises(cmd.Context())
			if err != nil {
				return err
			}

			var rows [][]string
			for _, ex := range exercises {
				if muscle != "" && !containsFold(ex.PrimaryMuscles, muscle) {
					continue
				}
				if category != "" && !strings.EqualFold(ex.Category, category) {
					continue
				}
				rows = append(rows, []string{
					ex.ID.Hex(),
					ex.Name,
					strings.Join(ex.PrimaryMuscles, ", "),
					ex.Equipment,
					ex.Level,
				})
			}

			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No exercises match.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "Name", "Muscles", "Equipment", "Level"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&muscle, "muscle", "", "Filter by primary muscle")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")

	return cmd
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
