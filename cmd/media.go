package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/manuscript/pkg/service"
)

func NewMediaCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Manage imported images and PDFs",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <folder> <file>...",
			Short: "Import images or PDFs",
			Long: `Import image (png, jpg, gif, heic, webp) or PDF files into a folder.
Other files are imported as documents.

Example:
  manuscript media add research maps/harbor.png`,
			Args: cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return importFiles(cmd, *svc, args[0], args[1:])
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Permanently delete a media item",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s := *svc
				id, err := resolveID(s, args[0])
				if err != nil {
					return err
				}
				return apply(s, s.DeleteMediaItem(id), "delete media", args[0])
			},
		},
		&cobra.Command{
			Use:   "move <id> <folder>",
			Short: "Move a media item to another folder",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				s := *svc
				ids, err := resolveIDs(s, args)
				if err != nil {
					return err
				}
				return apply(s, s.MoveMediaItem(ids[0], ids[1]), "move media", args[0])
			},
		},
		&cobra.Command{
			Use:   "trash <id>",
			Short: "Move a media item to the trash",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s := *svc
				id, err := resolveID(s, args[0])
				if err != nil {
					return err
				}
				return apply(s, s.TrashMediaItem(id), "trash media", args[0])
			},
		},
	)

	return cmd
}
