package command

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mattn/go-shellwords"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
)

// NewShellCommand returns the interactive shell, which runs every line as a txnkv-ctl command.
func NewShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "run commands interactively",
		Args:  cobra.NoArgs,
		RunE:  shellCommandFunc,
	}
}

func shellCommandFunc(cmd *cobra.Command, _ []string) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            "\033[31m»\033[0m ",
		HistoryFile:       "/tmp/txnkv-ctl.history",
		InterruptPrompt:   "^C",
		EOFPrompt:         "^D",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer l.Close()

	global := globalArgs(cmd)
	for {
		line, err := l.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			continue
		}
		line = strings.TrimSpace(line)
		if line == "exit" || line == "quit" {
			return nil
		}
		if err := RunLine(cmd.OutOrStdout(), global, line); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Error:", err)
		}
	}
}

// globalArgs renders the shared flags of cmd so every shell line talks to the same store.
func globalArgs(cmd *cobra.Command) []string {
	f := getFlags(cmd)
	return []string{"--addr", f.Addr, "--status-addr", f.StatusAddr, "--format", f.Format}
}

// RunLine parses line with shell quoting rules and runs it on a fresh command tree.
func RunLine(out io.Writer, global []string, line string) error {
	args, err := shellwords.Parse(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	if args[0] == "shell" {
		return errors.New("already in the shell")
	}
	root := NewRootCommand()
	root.SetOutput(out)
	root.SilenceErrors = true
	root.SetArgs(append(append([]string{}, args...), global...))
	return root.Execute()
}
