package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grovetools/manuscript/pkg/models"
	"github.com/grovetools/manuscript/pkg/service"
)

func NewCharacterCmd(svc **service.Service) *cobra.Command {
	var (
		role        string
		description string
		notes       string
		age         int
	)

	cmd := &cobra.Command{
		Use:     "character",
		Aliases: []string{"char"},
		Short:   "Manage characters",
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			c := models.Character{Name: args[0], Role: role, Description: description, Notes: notes}
			if cmd.Flags().Changed("age") {
				c.Age = &age
			}
			id := s.AddCharacter(c)
			if err := persist(s); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	addCmd.Flags().StringVar(&role, "role", "", "Role in the story")
	addCmd.Flags().StringVar(&description, "description", "", "Description")
	addCmd.Flags().StringVar(&notes, "notes", "", "Notes")
	addCmd.Flags().IntVar(&age, "age", 0, "Age")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List characters and their appearances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tROLE\tAPPEARANCES")
			for _, c := range s.Project().Characters {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", shortID(c.ID), c.Name, c.Role, len(c.Appearances))
			}
			return w.Flush()
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a character and unlink it from every document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			return apply(s, s.DeleteCharacter(id), "delete character", args[0])
		},
	}

	cmd.AddCommand(addCmd, listCmd, deleteCmd)
	return cmd
}

func NewLocationCmd(svc **service.Service) *cobra.Command {
	var (
		description string
		notes       string
		lat, lon    float64
	)

	cmd := &cobra.Command{
		Use:     "location",
		Aliases: []string{"loc"},
		Short:   "Manage locations",
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			l := models.Location{Name: args[0], Description: description, Notes: notes}
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
				l.Latitude, l.Longitude = &lat, &lon
			}
			id := s.AddLocation(l)
			if err := persist(s); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	addCmd.Flags().StringVar(&description, "description", "", "Description")
	addCmd.Flags().StringVar(&notes, "notes", "", "Notes")
	addCmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	addCmd.Flags().Float64Var(&lon, "lon", 0, "Longitude")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List locations and their appearances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCOORDINATES\tAPPEARANCES")
			for _, l := range s.Project().Locations {
				coords := ""
				if l.Latitude != nil && l.Longitude != nil {
					coords = fmt.Sprintf("%.4f,%.4f", *l.Latitude, *l.Longitude)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", shortID(l.ID), l.Name, coords, len(l.Appearances))
			}
			return w.Flush()
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a location and unlink it from every document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			return apply(s, s.DeleteLocation(id), "delete location", args[0])
		},
	}

	cmd.AddCommand(addCmd, listCmd, deleteCmd)
	return cmd
}

// NewRenameCmd renames any node or entity by id.
func NewRenameCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Rename a folder, document, media item, character or location",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			id, err := resolveID(s, args[0])
			if err != nil {
				return err
			}
			target, ok := s.ResolveTarget(id)
			if !ok {
				return fmt.Errorf("rename %s: %w", args[0], errNoChange)
			}
			return apply(s, s.Rename(target, args[1]), "rename", args[0])
		},
	}
}
