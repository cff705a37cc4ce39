package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grovetools/manuscript/pkg/service"
)

func NewSnapshotCmd(svc **service.Service) *cobra.Command {
	var (
		title string
		kind  string
	)

	cmd := &cobra.Command{
		Use:     "snapshot",
		Aliases: []string{"snap"},
		Short:   "Take, list and restore document snapshots",
	}

	takeCmd := &cobra.Command{
		Use:   "take <doc>",
		Short: "Capture a document's current text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			k, err := parseSnapshotKind(kind)
			if err != nil {
				return err
			}
			snap, ok := s.TakeSnapshot(id, title, k)
			if err := apply(s, ok, "snapshot", args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), snap.ID)
			return nil
		},
	}
	takeCmd.Flags().StringVar(&title, "title", "", "Snapshot title")
	takeCmd.Flags().StringVar(&kind, "kind", "manual", "Snapshot kind (manual, auto, milestone)")

	listCmd := &cobra.Command{
		Use:   "list <doc>",
		Short: "List a document's snapshots, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTAKEN\tKIND\tWORDS\tTITLE")
			for _, snap := range s.Snapshots(id) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", shortID(snap.ID), snap.Timestamp.Format("2006-01-02 15:04"), snap.Kind, snap.WordCount, snap.Title)
			}
			return w.Flush()
		},
	}

	restoreCmd := &cobra.Command{
		Use:   "restore <snapshot>",
		Short: "Write a snapshot's text back onto its document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveSnapshotID(s, args[0])
			if err != nil {
				return err
			}
			return apply(s, s.RestoreSnapshot(id), "restore snapshot", args[0])
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <snapshot>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveSnapshotID(s, args[0])
			if err != nil {
				return err
			}
			return apply(s, s.RemoveSnapshot(id), "remove snapshot", args[0])
		},
	}

	cmd.AddCommand(takeCmd, listCmd, restoreCmd, rmCmd)
	return cmd
}
