// Package main provides chatargs, an interactive shell that dispatches chat-style
// command lines ("!remind --in 10m stretch your legs") and prints what each
// command parsed, or why it failed.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// unexported constants.
const (
	envLogLevel = "CHATARGS_LOG_LEVEL"
)

func main() {
	os.Exit(runMain(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options are the shell's own command-line settings.
type options struct {
	logLevel string
	prefix   string
	manifest string
	plain    bool
	user     string
	channel  string
}

// newLogger builds the shell logger. The flag wins over the environment.
func newLogger(errOut io.Writer, level string) (*log.Logger, error) {
	if level == "" {
		level = strings.ToLower(os.Getenv(envLogLevel))
	}

	if level == "" {
		level = "info"
	}

	parsed, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	logger := log.New(errOut)
	logger.SetTimeFormat("")
	logger.SetLevel(parsed)

	return logger, nil
}

func newRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "chatargs",
		Short: "Dispatch chat-style commands typed on stdin",
		Long: `chatargs reads one chat line per input line, resolves the command it names,
parses the rest of the line against that command's declared parameters and
prints the parsed values, or a description of what went wrong.

Type "!help" for the list of commands, "!help <command>" for its usage.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(errOut, opts.logLevel)
			if err != nil {
				return err
			}

			sh, err := newShell(opts, logger, out)
			if err != nil {
				return err
			}

			return sh.run(cmd.Context(), in)
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.logLevel, "log-level", "",
		"Log level: debug, info, warn, error (default info, or $"+envLogLevel+")")
	flags.StringVar(&opts.prefix, "prefix", "!", "Prefix that marks a line as a command")
	flags.StringVar(&opts.manifest, "manifest", "", "YAML command manifest (built-in commands when empty)")
	flags.BoolVar(&opts.plain, "plain", false, "Disable colored output")
	flags.StringVar(&opts.user, "user", "you", "User name reported to commands as the speaker")
	flags.StringVar(&opts.channel, "channel", "general", "Channel name reported to commands")

	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	return root
}

func runMain(args []string, in io.Reader, out, errOut io.Writer) int {
	root := newRootCommand(in, out, errOut)
	root.SetArgs(args)

	err := root.Execute()
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	return 0
}
