package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/grovetools/manuscript/cmd/config"
	"github.com/grovetools/manuscript/pkg/service"
)

func NewShellCmd(svc **service.Service) *cobra.Command {
	var script string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Work on the project interactively",
		Long: `Start an interactive session on the project. Every command is available
without the 'manuscript' prefix. Changes are saved after a short quiet
period (autosave_delay) and on exit.

Examples:
  manuscript shell
  manuscript shell --script outline.txt   # Run commands from a file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			saver := s.Autosaver(config.AutosaveDelay())
			prev := persist
			persist = func(s *service.Service) error {
				s.ScheduleSave(saver)
				return nil
			}
			defer func() { persist = prev }()

			var err error
			if script != "" {
				err = runScript(svc, script, cmd.OutOrStdout(), cmd.ErrOrStderr())
			} else {
				err = runInteractive(svc)
			}
			if stopErr := saver.Stop(); stopErr != nil {
				return fmt.Errorf("autosave: %w", stopErr)
			}
			if saveErr := s.Save(); saveErr != nil {
				return saveErr
			}
			return err
		},
	}

	cmd.Flags().StringVar(&script, "script", "", "Run the commands in a file instead of reading from the terminal")

	return cmd
}

func runInteractive(svc **service.Service) error {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".config", "manuscript", "shell_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shellPrompt(*svc),
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("initialize readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				fmt.Fprintln(rl.Stdout(), "Use 'exit' or 'quit' to exit the shell.")
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		args := splitArgs(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}
		runLine(svc, args, rl.Stdout(), rl.Stderr())
		rl.SetPrompt(shellPrompt(*svc))
	}
}

// runScript runs one command per line. Blank lines and lines starting with
// # are skipped; a failing command is reported and the script continues.
func runScript(svc **service.Service, path string, out, errOut io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args := splitArgs(line)
		if args[0] == "exit" || args[0] == "quit" {
			break
		}
		runLine(svc, args, out, errOut)
	}
	return scanner.Err()
}

// runLine executes one command against a fresh command tree so flag values
// never leak between lines.
func runLine(svc **service.Service, args []string, out, errOut io.Writer) {
	root := &cobra.Command{
		Use:           "manuscript",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addProjectCommands(root, svc)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(errOut, "Error:", err)
	}
}

func shellPrompt(s *service.Service) string {
	return fmt.Sprintf("%s> ", s.Project().Title)
}

// splitArgs splits a line on spaces, keeping double-quoted runs together.
func splitArgs(input string) []string {
	var args []string
	var current strings.Builder
	inQuotes, quoted := false, false

	flush := func() {
		if current.Len() > 0 || quoted {
			args = append(args, current.String())
			current.Reset()
		}
		quoted = false
	}
	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			quoted = true
		case (r == ' ' || r == '\t') && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return args
}
