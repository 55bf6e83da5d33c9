// Package runcmd executes a child process with its output framed inside a
// log group, so the runner presents the whole command as one foldable
// region.
package runcmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/creack/pty"

	"actionkit/pkg/runner"
)

// Spec describes the child process to run.
type Spec struct {
	Argv  []string // command and arguments, Argv[0] resolved via PATH
	Dir   string   // working directory, empty for inherited
	Label string   // group label, defaults to Argv[0]
	TTY   bool     // run under a pseudo-terminal
}

// Run executes the child and streams its output line by line through the
// session, inside a group carrying the label. The group closes on every
// exit path, including context cancellation killing the child.
//
// A child that starts and exits nonzero is not an error here: the exit code
// is returned for the caller to judge. Run only fails when the child cannot
// be started or its output cannot be read.
func Run(ctx context.Context, sess *runner.Session, spec Spec) (int, error) {
	if len(spec.Argv) == 0 {
		return -1, errors.New("runcmd: empty command")
	}
	label := spec.Label
	if label == "" {
		label = spec.Argv[0]
	}

	exitCode := 0
	err := sess.Group(label, func() error {
		cmd := exec.CommandContext(ctx, spec.Argv[0], spec.Argv[1:]...)
		cmd.Dir = spec.Dir

		var runErr error
		if spec.TTY {
			runErr = runWithPTY(sess, cmd)
		} else {
			runErr = runWithPipes(sess, cmd)
		}

		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
			return nil
		}
		return runErr
	})
	return exitCode, err
}

// runWithPTY starts the child under a pseudo-terminal so it behaves as if
// attached to an interactive session (progress output, prompts).
func runWithPTY(sess *runner.Session, cmd *exec.Cmd) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("starting %s with pty: %w", cmd.Path, err)
	}
	defer ptmx.Close()

	// The pty read loop ends with an error once the child exits and the
	// slave side closes; that error is expected and not reported.
	streamLines(sess, ptmx)

	return cmd.Wait()
}

// runWithPipes wires stdout and stderr through pipes and streams both.
func runWithPipes(sess *runner.Session, cmd *exec.Cmd) error {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("creating stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", cmd.Path, err)
	}

	var wg sync.WaitGroup
	for _, r := range []io.Reader{stdout, stderr} {
		wg.Add(1)
		go func(r io.Reader) {
			defer wg.Done()
			streamLines(sess, r)
		}(r)
	}
	wg.Wait()

	return cmd.Wait()
}

// streamLines copies r to the session one line at a time. Each line goes
// out as plain log text, so commands emitted by the child pass through to
// the runner untouched.
func streamLines(sess *runner.Session, r io.Reader) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		sess.Infof("%s", sc.Text())
	}
}
