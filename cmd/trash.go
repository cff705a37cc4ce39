package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grovetools/manuscript/pkg/service"
	"github.com/grovetools/manuscript/pkg/tree"
)

func NewTrashCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash",
		Short: "Inspect, restore and empty the trash",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List trashed items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			items := s.TrashItems()
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Trash is empty")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tTITLE\tTRASHED\tFROM")
			for _, it := range items {
				trashed, from := trashInfo(s.Forest(), it)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", shortID(it.ID), it.Type, it.Title, trashed, from)
			}
			return w.Flush()
		},
	}

	restoreCmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Put a trashed item back where it came from",
		Long: `Restore a trashed item to its original folder and position. If that
folder no longer exists the item goes to the draft root.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			return apply(s, s.Restore(id), "restore", args[0])
		},
	}

	emptyCmd := &cobra.Command{
		Use:   "empty",
		Short: "Permanently delete everything in the trash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			removed := s.EmptyTrash()
			n := len(removed.FolderIDs) + len(removed.DocumentIDs) + len(removed.MediaIDs)
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Trash is empty")
				return nil
			}
			if err := persist(s); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d folders, %d documents, %d media items\n",
				len(removed.FolderIDs), len(removed.DocumentIDs), len(removed.MediaIDs))
			return nil
		},
	}

	cmd.AddCommand(listCmd, restoreCmd, emptyCmd)
	return cmd
}

// trashInfo describes when an item was trashed and which folder it left.
func trashInfo(f tree.Forest, it tree.Item) (string, string) {
	var at, parent string
	switch it.Type {
	case tree.TypeFolder:
		if folder, _, ok := f.Folder(it.ID); ok && folder.Trash != nil {
			at, parent = folder.Trash.TrashedDate.Format("2006-01-02 15:04"), folder.Trash.OriginalParentFolderID
		}
	case tree.TypeDocument:
		if d, _, ok := f.Document(it.ID); ok && d.Trash != nil {
			at, parent = d.Trash.TrashedDate.Format("2006-01-02 15:04"), d.Trash.OriginalParentFolderID
		}
	case tree.TypeMedia:
		if m, _, ok := f.MediaItem(it.ID); ok && m.Trash != nil {
			at, parent = m.Trash.TrashedDate.Format("2006-01-02 15:04"), m.Trash.OriginalParentFolderID
		}
	}
	if folder, _, ok := f.Folder(parent); ok {
		return at, folder.Title
	}
	if parent != "" {
		return at, shortID(parent) + " (gone)"
	}
	return at, ""
}
