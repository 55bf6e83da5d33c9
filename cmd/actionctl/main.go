// actionctl lets shell-based workflow steps use the command protocol
// without hand-writing escape sequences:
//
//	actionctl set-output result 42
//	actionctl group "build" -- make all
//	actionctl add-mask --prompt
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"actionkit/internal/manifest"
	"actionkit/internal/runcmd"
	"actionkit/internal/sysinfo"
	"actionkit/pkg/markdown"
	"actionkit/pkg/runner"
)

var sess = runner.New()

// childExit holds the exit status of a wrapped command so main can forward
// it unchanged.
var childExit int

var rootCmd = &cobra.Command{
	Use:   "actionctl",
	Short: "Emit workflow commands from shell steps",
	Long: `actionctl maps shell invocations onto the workflow-command protocol:
each subcommand emits one structured line on stdout (or appends to the
runner's environment files when they are available), letting non-Go steps
set outputs, export variables, mask secrets, and fold log regions.`,
}

var setOutputCmd = &cobra.Command{
	Use:   "set-output NAME VALUE",
	Short: "Set a step output",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sess.SetOutput(args[0], args[1])
	},
}

var setEnvCmd = &cobra.Command{
	Use:   "set-env NAME VALUE",
	Short: "Export an environment variable for this and later steps",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sess.ExportVariable(args[0], args[1])
	},
}

var addPathCmd = &cobra.Command{
	Use:   "add-path DIR",
	Short: "Prepend a directory to PATH for this and later steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sess.AddPath(args[0])
	},
}

var saveStateCmd = &cobra.Command{
	Use:   "save-state NAME VALUE",
	Short: "Persist a value for this action's post hook",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sess.SaveState(args[0], args[1])
	},
}

var maskFromPrompt bool

var addMaskCmd = &cobra.Command{
	Use:          "add-mask [VALUE]",
	Short:        "Register a secret value for log redaction",
	Long:         "Register a secret so the runner redacts it from all later log output.\nWith no argument the value is read from stdin; --prompt reads it from the\nterminal without echo, keeping it out of shell history and process lists.",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := maskValue(args)
		if err != nil {
			return err
		}
		if value == "" {
			return errors.New("refusing to mask an empty value")
		}
		sess.SetSecret(value)
		return nil
	},
}

func maskValue(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if maskFromPrompt && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, "Enter secret value: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading secret from terminal: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading secret from stdin: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

var debugCmd = &cobra.Command{
	Use:   "debug MESSAGE",
	Short: "Emit a debug message (hidden unless debug logging is on)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess.Debugf("%s", args[0])
		return nil
	},
}

// newIssueCmd builds one of the notice/warning/error subcommands. Each gets
// its own annotation flag set.
func newIssueCmd(severity string, emit func(runner.Annotation, string)) *cobra.Command {
	var ann runner.Annotation
	c := &cobra.Command{
		Use:   severity + " MESSAGE",
		Short: "Emit a " + severity + "-severity issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emit(ann, args[0])
			return nil
		},
	}
	c.Flags().StringVar(&ann.Title, "title", "", "annotation title")
	c.Flags().StringVar(&ann.File, "file", "", "source file the issue refers to")
	c.Flags().IntVar(&ann.Line, "line", 0, "start line in --file")
	c.Flags().IntVar(&ann.EndLine, "end-line", 0, "end line in --file")
	c.Flags().IntVar(&ann.Col, "col", 0, "start column in --file")
	c.Flags().IntVar(&ann.EndColumn, "end-column", 0, "end column in --file")
	return c
}

var groupTTY bool
var groupDir string

var groupCmd = &cobra.Command{
	Use:   "group NAME -- CMD [ARGS...]",
	Short: "Run a command with its output folded into a named log group",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		exit, err := runcmd.Run(cmd.Context(), sess, runcmd.Spec{
			Label: args[0],
			Argv:  args[1:],
			Dir:   groupDir,
			TTY:   groupTTY,
		})
		if err != nil {
			return err
		}
		if exit != 0 {
			childExit = exit
			sess.SetFailed("%s exited with status %d", args[1], exit)
		}
		return nil
	},
}

var inputsCmd = &cobra.Command{
	Use:   "inputs",
	Short: "Inspect declared action inputs",
}

var inputsCheckCmd = &cobra.Command{
	Use:   "check [ACTION_FILE]",
	Short: "Verify required inputs are bound before running the action",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "action.yml"
		if len(args) == 1 {
			path = args[0]
		}
		m, err := manifest.Load(path)
		if err != nil {
			return err
		}
		for name, msg := range m.Deprecated(os.Getenv) {
			sess.Warningf("input %q is deprecated: %s", name, msg)
		}
		if missing := m.MissingRequired(os.Getenv); len(missing) > 0 {
			sess.SetFailed("missing required inputs: %s", strings.Join(missing, ", "))
			return nil
		}
		sess.Infof("all required inputs of %q are bound", m.Name)
		return nil
	},
}

var diagCmd = &cobra.Command{
	Use:   "diag",
	Short: "Emit host diagnostics as debug messages",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, line := range sysinfo.Collect().DebugLines() {
			sess.Debugf("%s", line)
		}
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Work with job summaries",
}

var summaryPreviewCmd = &cobra.Command{
	Use:   "preview FILE",
	Short: "Render a summary markdown file to sanitized HTML on stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading summary file: %w", err)
		}
		fmt.Fprintln(os.Stdout, markdown.RenderSummary(string(data)))
		return nil
	},
}

func init() {
	addMaskCmd.Flags().BoolVar(&maskFromPrompt, "prompt", false, "read the secret from the terminal without echo")
	groupCmd.Flags().BoolVar(&groupTTY, "tty", false, "run the command under a pseudo-terminal")
	groupCmd.Flags().StringVar(&groupDir, "dir", "", "working directory for the command")

	noticeCmd := newIssueCmd("notice", func(a runner.Annotation, msg string) {
		sess.NoticefAnnotated(a, "%s", msg)
	})
	warningCmd := newIssueCmd("warning", func(a runner.Annotation, msg string) {
		sess.WarningfAnnotated(a, "%s", msg)
	})
	errorCmd := newIssueCmd("error", func(a runner.Annotation, msg string) {
		sess.ErrorfAnnotated(a, "%s", msg)
	})

	inputsCmd.AddCommand(inputsCheckCmd)
	summaryCmd.AddCommand(summaryPreviewCmd)

	rootCmd.AddCommand(
		setOutputCmd,
		setEnvCmd,
		addPathCmd,
		saveStateCmd,
		addMaskCmd,
		debugCmd,
		noticeCmd,
		warningCmd,
		errorCmd,
		groupCmd,
		inputsCmd,
		diagCmd,
		summaryCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("actionctl failed", "error", err)
		os.Exit(1)
	}
	if childExit != 0 {
		os.Exit(childExit)
	}
	os.Exit(sess.ExitCode())
}
