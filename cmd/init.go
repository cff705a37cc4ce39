package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/manuscript/cmd/config"
	"github.com/grovetools/manuscript/pkg/service"
)

func NewInitCmd(svc **service.Service) *cobra.Command {
	var (
		title  string
		author string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new project",
		Long: `Create an empty project with its draft, research and trash folders.

The project is stored under the configured data_dir using the configured
store (yaml or bolt). Use --project to pick a name other than the default.

Examples:
  manuscript init --title "The Long Voyage" --author "A. Writer"
  manuscript init -P voyage --title "The Long Voyage"`,
		Annotations: map[string]string{skipService: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.CreateService(config.NewLogger(), title, author)
			if err != nil {
				return err
			}
			*svc = s

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created project %q (%s)\n", s.Project().Title, config.ProjectName())
			f := s.Forest()
			fmt.Fprintf(out, "  draft     %s\n", shortID(f.Draft.ID))
			fmt.Fprintf(out, "  research  %s\n", shortID(f.Research.ID))
			fmt.Fprintf(out, "  trash     %s\n", shortID(f.Trash.ID))
			fmt.Fprintln(out, "\nReady to use! Try 'manuscript folder add draft \"Part One\"'.")
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "Untitled", "Project title")
	cmd.Flags().StringVar(&author, "author", "", "Author name (defaults to the configured author)")

	return cmd
}
