package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/service"
	"github.com/grovetools/manuscript/pkg/textstat"
	"github.com/grovetools/manuscript/pkg/tree"
)

func NewDocCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doc",
		Aliases: []string{"document"},
		Short:   "Manage documents",
		Long: `Create, edit, move and delete documents.

Ids may be given as a unique prefix. The hierarchy roots can be named
"draft", "research" and "trash".`,
	}

	cmd.AddCommand(
		newDocAddCmd(svc),
		newDocShowCmd(svc),
		newDocRenameCmd(svc),
		newDocWriteCmd(svc),
		newDocMetaCmd(svc),
		newDocMoveCmd(svc),
		newDocReorderCmd(svc),
		newDocDeleteCmd(svc),
		newDocTrashCmd(svc),
		newDocLinkCmd(svc, true),
		newDocLinkCmd(svc, false),
		newDocImportCmd(svc),
	)

	return cmd
}

func newDocAddCmd(svc **service.Service) *cobra.Command {
	var (
		synopsis  string
		content   string
		keywords  []string
		noCompile bool
	)

	cmd := &cobra.Command{
		Use:   "add <parent> <title>",
		Short: "Add a document",
		Long: `Add a document to a folder.

Examples:
  manuscript doc add draft "Opening"
  manuscript doc add 3f2a "Arrival" --synopsis "The ship docks" -k harbor`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			parent, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			id := s.AddDocument(parent, models.Document{
				Title:            args[1],
				Synopsis:         synopsis,
				Content:          content,
				Keywords:         keywords,
				IncludeInCompile: !noCompile,
			})
			if err := apply(s, id != "", "add document under", args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&synopsis, "synopsis", "", "Short synopsis")
	cmd.Flags().StringVar(&content, "content", "", "Initial text")
	cmd.Flags().StringSliceVarP(&keywords, "keyword", "k", nil, "Keyword (repeatable)")
	cmd.Flags().BoolVar(&noCompile, "no-compile", false, "Leave the document out of the compiled manuscript")

	return cmd
}

func newDocShowCmd(svc **service.Service) *cobra.Command {
	var metaOnly bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			d, h, ok := s.Forest().Document(id)
			if !ok {
				return fmt.Errorf("no document %s", args[0])
			}

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\t%s\n", d.ID)
			fmt.Fprintf(w, "Title\t%s\n", d.Title)
			fmt.Fprintf(w, "Hierarchy\t%s\n", h)
			if d.Synopsis != "" {
				fmt.Fprintf(w, "Synopsis\t%s\n", d.Synopsis)
			}
			if d.StatusID != "" {
				fmt.Fprintf(w, "Status\t%s\n", d.StatusID)
			}
			if d.LabelID != "" {
				fmt.Fprintf(w, "Label\t%s\n", d.LabelID)
			}
			if len(d.Keywords) > 0 {
				fmt.Fprintf(w, "Keywords\t%s\n", strings.Join(d.Keywords, ", "))
			}
			if names := characterNames(s, d); len(names) > 0 {
				fmt.Fprintf(w, "Characters\t%s\n", strings.Join(names, ", "))
			}
			if names := locationNames(s, d); len(names) > 0 {
				fmt.Fprintf(w, "Locations\t%s\n", strings.Join(names, ", "))
			}
			fmt.Fprintf(w, "Words\t%d\n", textstat.Words(d.Content))
			fmt.Fprintf(w, "Characters (text)\t%d\n", textstat.Characters(d.Content))
			fmt.Fprintf(w, "Compile\t%t\n", d.IncludeInCompile)
			fmt.Fprintf(w, "Snapshots\t%d\n", len(s.Snapshots(d.ID)))
			fmt.Fprintf(w, "Modified\t%s\n", d.ModifiedAt.Format("2006-01-02 15:04"))
			if err := w.Flush(); err != nil {
				return err
			}
			if metaOnly {
				return nil
			}
			if d.Notes != "" {
				fmt.Fprintf(out, "\nNotes:\n%s\n", d.Notes)
			}
			fmt.Fprintf(out, "\n%s\n", d.Content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&metaOnly, "meta", false, "Only print metadata")

	return cmd
}

func characterNames(s *service.Service, d *models.Document) []string {
	var names []string
	for _, id := range d.CharacterIDs {
		if c, ok := s.Project().Character(id); ok {
			names = append(names, c.Name)
		}
	}
	return names
}

func locationNames(s *service.Service, d *models.Document) []string {
	var names []string
	for _, id := range d.LocationIDs {
		if l, ok := s.Project().Location(id); ok {
			names = append(names, l.Name)
		}
	}
	return names
}

func newDocRenameCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Rename a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			return apply(s, s.RenameDocument(id, args[1]), "rename document", args[0])
		},
	}
}

func newDocWriteCmd(svc **service.Service) *cobra.Command {
	var (
		file     string
		snapshot bool
	)

	cmd := &cobra.Command{
		Use:   "write <id>",
		Short: "Replace a document's text",
		Long: `Replace a document's text with the contents of --file, or stdin.
Words added are recorded in today's writing history.

Examples:
  manuscript doc write 3f2a --file chapter1.md
  echo "It was a dark night." | manuscript doc write 3f2a --snapshot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}

			var data []byte
			if file != "" {
				data, err = os.ReadFile(file)
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read content: %w", err)
			}

			if snapshot {
				s.AutoSnapshot(id)
			}
			delta, ok := s.UpdateContent(id, string(data))
			if err := apply(s, ok, "write document", args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%+d words\n", delta)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the text from a file instead of stdin")
	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "Snapshot the previous text first if it changed")

	return cmd
}

func newDocMetaCmd(svc **service.Service) *cobra.Command {
	var (
		synopsis string
		notes    string
		status   string
		label    string
		color    string
		icon     string
		keywords []string
		compile  bool
	)

	cmd := &cobra.Command{
		Use:   "meta <id>",
		Short: "Edit a document's metadata",
		Long: `Set document metadata. Only the flags given are changed.

Example:
  manuscript doc meta 3f2a --status draft --keywords harbor,night --compile=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			ok := s.UpdateDocument(id, func(d *models.Document) {
				if flags.Changed("synopsis") {
					d.Synopsis = synopsis
				}
				if flags.Changed("notes") {
					d.Notes = notes
				}
				if flags.Changed("status") {
					d.StatusID = status
				}
				if flags.Changed("label") {
					d.LabelID = label
				}
				if flags.Changed("color") {
					d.Color = color
				}
				if flags.Changed("icon") {
					d.Icon = icon
				}
				if flags.Changed("keywords") {
					d.Keywords = keywords
				}
				if flags.Changed("compile") {
					d.IncludeInCompile = compile
				}
			})
			return apply(s, ok, "update document", args[0])
		},
	}

	cmd.Flags().StringVar(&synopsis, "synopsis", "", "Synopsis")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	cmd.Flags().StringVar(&status, "status", "", "Status")
	cmd.Flags().StringVar(&label, "label", "", "Label")
	cmd.Flags().StringVar(&color, "color", "", "Color")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon")
	cmd.Flags().StringSliceVar(&keywords, "keywords", nil, "Replace the keywords")
	cmd.Flags().BoolVar(&compile, "compile", true, "Include in the compiled manuscript")

	return cmd
}

func newDocMoveCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <folder>",
		Short: "Move a document to another folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			ids, err := resolveIDs(s, args)
			if err != nil {
				return err
			}
			return apply(s, s.MoveDocument(ids[0], ids[1]), "move document", args[0])
		},
	}
}

func newDocReorderCmd(svc **service.Service) *cobra.Command {
	var to int

	cmd := &cobra.Command{
		Use:   "reorder <folder> <index>...",
		Short: "Move documents to a new position",
		Long: `Move the documents at the given indices so they land before position --to.

Example:
  manuscript doc reorder 3f2a 0 --to 3`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			folder, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			from, err := parseIndices(args[1:])
			if err != nil {
				return err
			}
			return apply(s, s.ReorderDocuments(folder, from, to), "reorder documents in", args[0])
		},
	}

	cmd.Flags().IntVar(&to, "to", 0, "Destination position")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newDocDeleteCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Permanently delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			return apply(s, s.DeleteDocument(id), "delete document", args[0])
		},
	}
}

func newDocTrashCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "trash <id>",
		Short: "Move a document to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			return apply(s, s.TrashDocument(id), "trash document", args[0])
		},
	}
}

func newDocLinkCmd(svc **service.Service, link bool) *cobra.Command {
	use, short := "link <doc> <character|location>", "Link a character or location to a document"
	if !link {
		use, short = "unlink <doc> <character|location>", "Remove a character or location from a document"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			ids, err := resolveIDs(s, args)
			if err != nil {
				return err
			}
			target, ok := s.ResolveTarget(ids[1])
			if !ok {
				return fmt.Errorf("no character or location %s", args[1])
			}
			var changed bool
			switch target.(type) {
			case service.CharacterTarget:
				if link {
					changed = s.LinkCharacter(ids[0], ids[1])
				} else {
					changed = s.UnlinkCharacter(ids[0], ids[1])
				}
			case service.LocationTarget:
				if link {
					changed = s.LinkLocation(ids[0], ids[1])
				} else {
					changed = s.UnlinkLocation(ids[0], ids[1])
				}
			default:
				return fmt.Errorf("%s is not a character or location", args[1])
			}
			return apply(s, changed, cmd.Name(), args[0])
		},
	}
}

func newDocImportCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "import <folder> <file>...",
		Short: "Import text files as documents",
		Long: `Import Markdown or text files into a folder. Frontmatter written by
'manuscript export' is read back for the title, synopsis and keywords.

Example:
  manuscript doc import draft chapters/*.md`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return importFiles(cmd, *svc, args[0], args[1:])
		},
	}
}

// importFiles imports each path under parentArg and saves once at the end.
func importFiles(cmd *cobra.Command, s *service.Service, parentArg string, paths []string) error {
	parent, err := resolveID(s, parentArg)
	if err != nil {
		return err
	}
	if _, h, ok := s.Forest().Folder(parent); !ok || h == tree.Trash {
		return fmt.Errorf("no folder %s outside the trash", parentArg)
	}
	for _, path := range paths {
		id, err := s.Import(parent, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", id, path)
	}
	return persist(s)
}
