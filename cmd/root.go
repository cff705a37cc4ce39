package cmd

import (
	"errors"
	"fmt"

	"github.com/mattsolo1/grove-core/cli"
	"github.com/spf13/cobra"

	"github.com/grovetools/manuscript/cmd/config"
	"github.com/grovetools/manuscript/pkg/service"
)

// skipService marks commands that run without an open project.
const skipService = "skip-service"

// errNoChange is returned when a command's operation left the project as it
// was, usually because an id did not resolve.
var errNoChange = errors.New("nothing changed")

// persist writes the project after a mutating command. The shell replaces
// it with an autosaver.
var persist = func(s *service.Service) error {
	return s.Save()
}

// project holds the service opened for one command invocation.
type project struct {
	svc *service.Service
}

func (p *project) close() error {
	if p.svc == nil {
		return nil
	}
	err := p.svc.Close()
	p.svc = nil
	return err
}

// Execute runs the manuscript command line. The project is closed even
// when the command fails.
func Execute() error {
	rootCmd, p := newRootCmd()
	err := rootCmd.Execute()
	return errors.Join(err, p.close())
}

// NewRootCmd builds the manuscript command tree. The project is opened once
// before any subcommand runs and closed afterwards.
func NewRootCmd() *cobra.Command {
	rootCmd, _ := newRootCmd()
	return rootCmd
}

func newRootCmd() (*cobra.Command, *project) {
	p := &project{}

	rootCmd := cli.NewStandardCommand(
		"manuscript",
		"A project tree engine for long-form writing",
	)
	rootCmd.SilenceUsage = true
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		config.InitConfig()
		if c.Annotations[skipService] != "" {
			return nil
		}
		s, err := config.InitService(config.NewLogger())
		if err != nil {
			return err
		}
		p.svc = s
		return nil
	}
	rootCmd.PersistentPostRunE = func(c *cobra.Command, args []string) error {
		return p.close()
	}

	rootCmd.AddCommand(NewInitCmd(&p.svc))
	rootCmd.AddCommand(NewShellCmd(&p.svc))
	rootCmd.AddCommand(NewVersionCmd())
	addProjectCommands(rootCmd, &p.svc)
	return rootCmd, p
}

// addProjectCommands registers every command that works on an open
// project. The shell reuses it for each line it reads.
func addProjectCommands(root *cobra.Command, svc **service.Service) {
	root.AddCommand(NewTreeCmd(svc))
	root.AddCommand(NewFolderCmd(svc))
	root.AddCommand(NewDocCmd(svc))
	root.AddCommand(NewMediaCmd(svc))
	root.AddCommand(NewCharacterCmd(svc))
	root.AddCommand(NewLocationCmd(svc))
	root.AddCommand(NewRenameCmd(svc))
	root.AddCommand(NewTrashCmd(svc))
	root.AddCommand(NewSnapshotCmd(svc))
	root.AddCommand(NewHistoryCmd(svc))
	root.AddCommand(NewSelectCmd(svc))
	root.AddCommand(NewKeywordsCmd(svc))
	root.AddCommand(NewCompileCmd(svc))
	root.AddCommand(NewExportCmd(svc))
	root.AddCommand(NewSearchCmd(svc))
	root.AddCommand(NewMetricsCmd(svc))
	root.AddCommand(NewValidateCmd(svc))
}

// apply persists the project when ok, and reports errNoChange otherwise.
func apply(s *service.Service, ok bool, op, id string) error {
	if !ok {
		return fmt.Errorf("%s %s: %w", op, id, errNoChange)
	}
	return persist(s)
}
