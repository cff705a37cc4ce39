package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/manuscript/pkg/service"
)

func NewHistoryCmd(svc **service.Service) *cobra.Command {
	var (
		session time.Duration
		asYAML  bool
		weeks   bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Record and review writing progress",
	}

	recordCmd := &cobra.Command{
		Use:   "record <words>",
		Short: "Add words written today",
		Long: `Add a number of words to today's writing history entry. Words written
with 'manuscript doc write' are recorded automatically.

Example:
  manuscript history record 500 --session 45m`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			words, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid word count %q: %w", args[0], err)
			}
			ok := s.RecordWords(words)
			if session > 0 && s.RecordSession(session) {
				ok = true
			}
			return apply(s, ok, "record", args[0])
		},
	}
	recordCmd.Flags().DurationVar(&session, "session", 0, "Time spent writing")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show writing statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			stats := s.HistoryStats()
			out := cmd.OutOrStdout()

			if asYAML {
				data, err := yaml.Marshal(stats)
				if err != nil {
					return fmt.Errorf("marshal stats: %w", err)
				}
				_, err = out.Write(data)
				return err
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Draft words\t%d\n", s.DraftWordCount())
			fmt.Fprintf(w, "Words recorded\t%d\n", stats.TotalWords)
			fmt.Fprintf(w, "Days written\t%d\n", stats.DaysWritten)
			fmt.Fprintf(w, "Average per day\t%.0f\n", stats.AveragePerDay)
			if stats.BestDay != nil {
				fmt.Fprintf(w, "Best day\t%s (%d)\n", stats.BestDay.Key, stats.BestDay.Words)
			}
			fmt.Fprintf(w, "Current streak\t%d\n", stats.CurrentStreak)
			fmt.Fprintf(w, "Longest streak\t%d\n", stats.LongestStreak)
			fmt.Fprintf(w, "Last 7 days\t%d\n", stats.Last7Days)
			fmt.Fprintf(w, "Last 30 days\t%d\n", stats.Last30Days)

			buckets := stats.ByMonth
			if weeks {
				buckets = stats.ByWeek
			}
			if len(buckets) > 0 {
				fmt.Fprintln(w)
				for _, b := range buckets {
					fmt.Fprintf(w, "%s\t%d\n", b.Key, b.Words)
				}
			}
			return w.Flush()
		},
	}
	statsCmd.Flags().BoolVar(&asYAML, "yaml", false, "Output the statistics as YAML")
	statsCmd.Flags().BoolVar(&weeks, "weeks", false, "Group by ISO week instead of month")

	cmd.AddCommand(recordCmd, statsCmd)
	return cmd
}
