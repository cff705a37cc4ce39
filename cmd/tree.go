package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grovetools/manuscript/pkg/service"
	"github.com/grovetools/manuscript/pkg/textstat"
	"github.com/grovetools/manuscript/pkg/tree"
)

func NewTreeCmd(svc **service.Service) *cobra.Command {
	var (
		hierarchy string
		collapsed bool
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the project hierarchies",
		Long: `Print the draft, research and trash hierarchies as an indented tree.

Examples:
  manuscript tree                  # All hierarchies
  manuscript tree -H draft         # Only the draft
  manuscript tree --collapsed      # Hide the contents of collapsed folders`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			hs := tree.Hierarchies
			if hierarchy != "" {
				h, ok := tree.ParseHierarchy(hierarchy)
				if !ok {
					return fmt.Errorf("unknown hierarchy %q", hierarchy)
				}
				hs = []tree.Hierarchy{h}
			}

			f := s.Forest()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tWORDS\tTITLE")
			for _, h := range hs {
				hidden := -1
				for _, it := range f.Items(h) {
					if hidden >= 0 && it.Depth > hidden {
						continue
					}
					hidden = -1
					words := ""
					if it.Type == tree.TypeDocument {
						d, _, _ := f.Document(it.ID)
						words = fmt.Sprint(textstat.Words(d.Content))
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s%s\n", shortID(it.ID), it.Type, words, strings.Repeat("  ", it.Depth), it.Title)
					if collapsed && it.Type != tree.TypeDocument && it.Type != tree.TypeMedia && !s.IsExpanded(it.ID) && it.Depth > 0 {
						hidden = it.Depth
					}
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&hierarchy, "hierarchy", "H", "", "Only show one hierarchy (draft, research, trash)")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "Hide the children of collapsed folders")

	return cmd
}
