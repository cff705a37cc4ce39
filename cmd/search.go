package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/manuscript/pkg/search"
	"github.com/grovetools/manuscript/pkg/service"
)

func NewSearchCmd(svc **service.Service) *cobra.Command {
	var (
		hierarchy    string
		includeTrash bool
		limit        int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search documents",
		Long: `Search document titles, synopses, notes and text.

Examples:
  manuscript search "harbor"             # Draft and research
  manuscript search "storm" -H draft     # Only the draft
  manuscript search "cut scene" --trash  # Include the trash`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			query := strings.Join(args, " ")

			results, err := s.Search(query, &search.Options{
				Hierarchy:    hierarchy,
				IncludeTrash: includeTrash,
				Limit:        limit,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No results found")
				return nil
			}

			fmt.Fprintf(out, "Found %d results:\n\n", len(results))
			for i, r := range results {
				var prettyStr strings.Builder
				prettyStr.WriteString(fmt.Sprintf("%d. %s (%s, %d words)\n", i+1, r.Title, r.Hierarchy, r.WordCount))
				prettyStr.WriteString(fmt.Sprintf("   %s", shortID(r.ID)))
				if r.Snippet != "" {
					prettyStr.WriteString(fmt.Sprintf("\n   %s", r.Snippet))
				}
				prettyStr.WriteString("\n")
				fmt.Fprint(out, prettyStr.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&hierarchy, "hierarchy", "H", "", "Only search one hierarchy (draft, research, trash)")
	cmd.Flags().BoolVar(&includeTrash, "trash", false, "Include trashed documents")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum results")

	return cmd
}
