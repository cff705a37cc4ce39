package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/manuscript/pkg/service"
)

func NewValidateCmd(svc **service.Service) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the project for structural problems",
		Long: `The validate command checks the project for common problems and offers
to fix them.

Issues it can detect:
- Duplicate ids
- Sibling orders that are not 0..n-1
- Missing or misplaced trash metadata
- Character and location appearances out of step with documents

With --fix, orders are renumbered, appearance lists rebuilt and expanded
ids of deleted folders dropped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			out := cmd.OutOrStdout()

			pruned := 0
			if fix {
				if pruned = s.PruneExpanded(); pruned > 0 {
					fmt.Fprintf(out, "Dropped %d expanded ids of deleted folders\n", pruned)
				}
			}

			err := s.Validate()
			if err == nil {
				fmt.Fprintln(out, "No issues found.")
				if pruned > 0 {
					return persist(s)
				}
				return nil
			}
			printIssues(cmd, err)

			if !fix {
				fmt.Fprintln(out, "\nRun 'manuscript validate --fix' to repair what can be repaired")
				return fmt.Errorf("project has issues")
			}
			if s.Repair() || pruned > 0 {
				if err := persist(s); err != nil {
					return err
				}
			}
			if err := s.Validate(); err != nil {
				fmt.Fprintln(out, "\nRemaining issues:")
				printIssues(cmd, err)
				return fmt.Errorf("project still has issues")
			}
			fmt.Fprintln(out, "\nAll issues fixed.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Automatically fix issues")

	return cmd
}

func printIssues(cmd *cobra.Command, err error) {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			printIssues(cmd, e)
		}
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  - %v\n", err)
}
