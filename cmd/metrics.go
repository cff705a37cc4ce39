package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grovetools/manuscript/pkg/service"
)

func NewMetricsCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print the counters and gauges of this session",
		Long: `Print the mutation, save and snapshot counters and the tree gauges
collected since the project was opened. Inside 'manuscript shell' they
cover the whole session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			snap, err := s.Metrics.Snapshot()
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(snap))
			for k := range snap {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, k := range keys {
				fmt.Fprintf(w, "%s\t%g\n", k, snap[k])
			}
			return w.Flush()
		},
	}
}
