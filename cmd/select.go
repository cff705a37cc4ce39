package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grovetools/manuscript/pkg/selection"
	"github.com/grovetools/manuscript/pkg/service"
)

func NewSelectCmd(svc **service.Service) *cobra.Command {
	kinds := make([]string, 0, len(selection.Kinds))
	for _, k := range selection.Kinds {
		kinds = append(kinds, string(k))
	}

	return &cobra.Command{
		Use:   "select [kind [id|keyword]]",
		Short: "Show or change the sidebar selection",
		Long: fmt.Sprintf(`Show the current selection, or select something.

Kinds: %s

Examples:
  manuscript select                        # Show the current selection
  manuscript select document 3f2a
  manuscript select keywordCollection harbor
  manuscript select none`, strings.Join(kinds, ", ")),
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if len(args) == 0 {
				return printSelection(cmd, s)
			}

			kind, ok := selection.ParseKind(args[0])
			if args[0] == "none" {
				kind, ok = selection.KindNone, true
			}
			if !ok {
				return fmt.Errorf("unknown selection kind %q", args[0])
			}
			sel := selection.Selection{Kind: kind}
			switch {
			case kind.NeedsID():
				if len(args) < 2 {
					return fmt.Errorf("%s needs an id", kind)
				}
				id, err := resolveID(s, args[1])
				if err != nil {
					return err
				}
				sel.ID = id
			case kind == selection.KindKeywordCollection:
				if len(args) < 2 {
					return fmt.Errorf("%s needs a keyword", kind)
				}
				sel = selection.KeywordCollection(args[1])
			}
			if !s.Select(sel) {
				return fmt.Errorf("select %s: not found", strings.Join(args, " "))
			}
			if err := persist(s); err != nil {
				return err
			}
			return printSelection(cmd, s)
		},
	}
}

func printSelection(cmd *cobra.Command, s *service.Service) error {
	sel := s.Selection()
	out := cmd.OutOrStdout()
	switch {
	case sel.IsNone():
		fmt.Fprintln(out, "Nothing selected")
		return nil
	case sel.Kind == selection.KindKeywordCollection:
		fmt.Fprintf(out, "%s %q\n", sel.Kind, sel.Keyword)
		docs := s.DocumentsWithKeyword(sel.Keyword)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, d := range docs {
			fmt.Fprintf(w, "  %s\t%s\n", shortID(d.ID), d.Title)
		}
		return w.Flush()
	case sel.Kind.NeedsID():
		title := sel.ID
		if target, ok := s.ResolveTarget(sel.ID); ok {
			title = targetTitle(target)
		}
		fmt.Fprintf(out, "%s %s %s\n", sel.Kind, shortID(sel.ID), title)
		return nil
	}
	fmt.Fprintln(out, sel.Kind)
	return nil
}

func targetTitle(t service.Target) string {
	switch t := t.(type) {
	case service.FolderTarget:
		return t.Folder.Title
	case service.DocumentTarget:
		return t.Document.Title
	case service.MediaTarget:
		return t.Media.Title
	case service.CharacterTarget:
		return t.Character.Name
	case service.LocationTarget:
		return t.Location.Name
	}
	return ""
}

func NewKeywordsCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "keywords [keyword]",
		Short: "List keywords, or the documents carrying one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, kw := range s.Keywords() {
					fmt.Fprintf(out, "%s\t%d\n", kw, len(s.DocumentsWithKeyword(kw)))
				}
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			for _, d := range s.DocumentsWithKeyword(args[0]) {
				fmt.Fprintf(w, "%s\t%s\n", shortID(d.ID), d.Title)
			}
			return w.Flush()
		},
	}
}
