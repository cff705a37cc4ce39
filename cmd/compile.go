package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/manuscript/pkg/service"
)

func NewCompileCmd(svc **service.Service) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Render the draft as one Markdown manuscript",
		Long: `Render every draft document marked for compile, in tree order, as a
single Markdown file.

Examples:
  manuscript compile > manuscript.md
  manuscript compile -o manuscript.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			text := s.Compile()
			if output == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Compiled %d documents to %s\n", len(s.CompileEntries()), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}

func NewExportCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write each compiled document to its own Markdown file",
		Long: `Write each draft document marked for compile to a numbered Markdown
file with YAML frontmatter. Re-exporting into the same directory updates
the files in place and keeps any frontmatter keys you added.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			n, err := s.Export(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d documents to %s\n", n, args[0])
			return nil
		},
	}
}
