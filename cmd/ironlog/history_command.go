package main

import (
	"fmt"
	"strconv"

	"ironlog/workout-app/internal/client"
	"ironlog/workout-app/internal/domain"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var date string
	var from string
	var to string
	var page int64
	var limit int64

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show your workout history",
		Long: `Without flags, shows your most recent workouts. Use --date for one day,
or --from/--to with --page/--limit to browse a range.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := ctx.apiClient()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if date != "" {
				logs, err := api.LogsByDate(cmd.Context(), date)
				if err != nil {
					return err
				}
				if len(logs) == 0 {
					fmt.Fprintf(out, "No workouts on %s.\n", date)
					return nil
				}
				fmt.Fprintln(out, renderLogTable(logs))
				return nil
			}

			if from != "" || to != "" || page > 0 {
				result, err := api.QueryLogs(cmd.Context(), client.LogQuery{
					StartDate: from,
					EndDate:   to,
					Page:      page,
					Limit:     limit,
				})
				if err != nil {
					return err
				}
				if len(result.WorkoutLogs) == 0 {
					fmt.Fprintln(out, "No workouts in that range.")
					return nil
				}
				fmt.Fprintln(out, renderLogTable(result.WorkoutLogs))
				fmt.Fprintf(out, "Page %d of %d (%d total)\n", result.CurrentPage, result.TotalPages, result.Total)
				return nil
			}

			logs, err := api.RecentLogs(cmd.Context())
			if err != nil {
				return err
			}
			if len(logs) == 0 {
				fmt.Fprintln(out, "No workouts logged yet.")
				return nil
			}
			fmt.Fprintln(out, renderLogTable(logs))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Show one day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&page, "page", 0, "Page number")
	cmd.Flags().Int64Var(&limit, "limit", 0, "Logs per page")

	return cmd
}

func renderLogTable(logs []domain.WorkoutLog) string {
	var rows [][]string
	for _, log := range logs {
		sets := 0
		for _, ex := range log.Exercises {
			sets += len(ex.Sets)
		}
		rows = append(rows, []string{
			log.StartTime.Format("2006-01-02 15:04"),
			log.WorkoutName,
			strconv.Itoa(len(log.Exercises)),
			strconv.Itoa(sets),
			fmt.Sprintf("%d min", log.Duration),
		})
	}
	return renderTable([]string{"Date", "Workout", "Exercises", "Sets", "Duration"}, rows, 2, 3, 4)
}
