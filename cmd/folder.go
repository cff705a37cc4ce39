package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/grovetools/manuscript/pkg/service"
)

func NewFolderCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage folders",
		Long: `Create, rename, move, reorder and delete folders.

Ids may be given as a unique prefix. The hierarchy roots can be named
"draft", "research" and "trash".`,
	}

	cmd.AddCommand(
		newFolderAddCmd(svc),
		newFolderRenameCmd(svc),
		newFolderIconCmd(svc),
		newFolderDeleteCmd(svc),
		newFolderMoveCmd(svc),
		newFolderReorderCmd(svc),
		newFolderTrashCmd(svc),
		newFolderExpandCmd(svc, true),
		newFolderExpandCmd(svc, false),
	)

	return cmd
}

func newFolderAddCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "add <parent> <title>",
		Short: "Add a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			parent, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			id := s.AddFolder(parent, args[1])
			if err := apply(s, id != "", "add folder under", args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func newFolderRenameCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			return apply(s, s.RenameFolder(id, args[1]), "rename folder", args[0])
		},
	}
}

func newFolderIconCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "icon <id> <icon>",
		Short: "Set a folder's icon",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			return apply(s, s.SetFolderIcon(id, args[1]), "set icon of", args[0])
		},
	}
}

func newFolderDeleteCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Permanently delete a folder and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			return apply(s, s.DeleteFolder(id), "delete folder", args[0])
		},
	}
}

func newFolderMoveCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <new-parent>",
		Short: "Move a folder under another folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			ids, err := resolveIDs(s, args)
			if err != nil {
				return err
			}
			return apply(s, s.MoveFolder(ids[0], ids[1]), "move folder", args[0])
		},
	}
}

func newFolderReorderCmd(svc **service.Service) *cobra.Command {
	var to int

	cmd := &cobra.Command{
		Use:   "reorder <parent> <index>...",
		Short: "Move subfolders to a new position",
		Long: `Move the subfolders at the given indices so they land before position --to.
Indices count from 0 in the current order; --to may equal the number of
subfolders to move them to the end.

Example:
  manuscript folder reorder draft 2 3 --to 0`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			parent, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			from, err := parseIndices(args[1:])
			if err != nil {
				return err
			}
			return apply(s, s.ReorderFolders(parent, from, to), "reorder folders in", args[0])
		},
	}

	cmd.Flags().IntVar(&to, "to", 0, "Destination position")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newFolderTrashCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "trash <id>",
		Short: "Move a folder to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			return apply(s, s.TrashFolder(id), "trash folder", args[0])
		},
	}
}

func newFolderExpandCmd(svc **service.Service, expand bool) *cobra.Command {
	use, short := "expand <id>", "Expand a folder in the sidebar"
	if !expand {
		use, short = "collapse <id>", "Collapse a folder in the sidebar"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			if !s.SetExpanded(id, expand) {
				return fmt.Errorf("%s: no folder %s", cmd.Name(), args[0])
			}
			return persist(s)
		},
	}
}

func parseIndices(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q: %w", a, err)
		}
		out[i] = n
	}
	return out, nil
}
