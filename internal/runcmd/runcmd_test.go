//go:build !windows

package runcmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"actionkit/pkg/runner"
)

func newTestSession() (*runner.Session, *bytes.Buffer) {
	var buf bytes.Buffer
	env := map[string]string{}
	s := runner.New(
		runner.WithWriter(&buf),
		runner.WithGetenv(func(key string) string { return env[key] }),
		runner.WithSetenv(func(key, value string) error {
			env[key] = value
			return nil
		}),
	)
	return s, &buf
}

func TestRun_FramesOutputInGroup(t *testing.T) {
	sess, buf := newTestSession()

	exit, err := Run(context.Background(), sess, Spec{
		Label: "greet",
		Argv:  []string{"sh", "-c", "echo hello; echo world >&2"},
	})
	require.NoError(t, err)
	require.Equal(t, 0, exit)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Equal(t, "::group::greet", lines[0])
	require.Equal(t, "::endgroup::", lines[len(lines)-1])
	require.Contains(t, lines, "hello")
	require.Contains(t, lines, "world")
}

func TestRun_NonzeroExitIsNotAnError(t *testing.T) {
	sess, buf := newTestSession()

	exit, err := Run(context.Background(), sess, Spec{
		Argv: []string{"sh", "-c", "exit 3"},
	})
	require.NoError(t, err)
	require.Equal(t, 3, exit)

	// Group still balanced around the failing command.
	require.Contains(t, buf.String(), "::group::sh\n")
	require.Contains(t, buf.String(), "::endgroup::\n")
	require.Equal(t, 0, sess.GroupDepth())
}

func TestRun_MissingBinaryClosesGroup(t *testing.T) {
	sess, buf := newTestSession()

	_, err := Run(context.Background(), sess, Spec{
		Argv: []string{"definitely-not-a-real-binary-4711"},
	})
	require.Error(t, err)
	require.Contains(t, buf.String(), "::group::definitely-not-a-real-binary-4711\n")
	require.Contains(t, buf.String(), "::endgroup::\n")
	require.Equal(t, 0, sess.GroupDepth())
}

func TestRun_EmptyCommand(t *testing.T) {
	sess, _ := newTestSession()

	_, err := Run(context.Background(), sess, Spec{})
	require.Error(t, err)
}

func TestRun_CancellationStillClosesGroup(t *testing.T) {
	sess, buf := newTestSession()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, _ = Run(ctx, sess, Spec{
		Label: "sleeper",
		Argv:  []string{"sleep", "30"},
	})

	require.Contains(t, buf.String(), "::group::sleeper\n")
	require.Contains(t, buf.String(), "::endgroup::\n")
	require.Equal(t, 0, sess.GroupDepth())
}

func TestRun_ChildCommandLinesPassThrough(t *testing.T) {
	sess, buf := newTestSession()

	_, err := Run(context.Background(), sess, Spec{
		Label: "inner",
		Argv:  []string{"sh", "-c", "echo '::set-output name=x::1'"},
	})
	require.NoError(t, err)

	// The child's own command line reaches the runner untouched.
	require.Contains(t, buf.String(), "::set-output name=x::1\n")
}
