// Package runner is the worker-side façade over the workflow-command
// protocol. A Session owns the process-wide pieces of state the protocol
// needs (output writer, environment accessors, open-group depth, failure
// flag) and exposes one method per runner instruction.
package runner

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"actionkit/internal/sysinfo"
	"actionkit/pkg/command"
)

// Environment variables the runner provides to the worker process.
const (
	envFileEnv     = "GITHUB_ENV"
	envFileOutput  = "GITHUB_OUTPUT"
	envFileState   = "GITHUB_STATE"
	envFilePath    = "GITHUB_PATH"
	envFileSummary = "GITHUB_STEP_SUMMARY"

	runnerDebugVar = "RUNNER_DEBUG"
	statePrefix    = "STATE_"
)

// Session is the explicit process-wide context for talking to the runner.
// Create one per process with New; process exit reclaims it.
//
// Methods that write commands hold an internal mutex for the duration of one
// line, so concurrent callers never interleave bytes within a line. Ordering
// across goroutines is still the caller's responsibility.
type Session struct {
	mu      sync.Mutex
	out     io.Writer
	getenv  func(string) string
	setenv  func(key, value string) error
	depth   int
	failed  bool
	summary *Summary
}

// Option configures a Session at creation time.
type Option func(*Session)

// WithWriter redirects command output away from os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(s *Session) { s.out = w }
}

// WithGetenv replaces the environment reader (test seam).
func WithGetenv(fn func(string) string) Option {
	return func(s *Session) { s.getenv = fn }
}

// WithSetenv replaces the environment writer (test seam).
func WithSetenv(fn func(key, value string) error) Option {
	return func(s *Session) { s.setenv = fn }
}

// New creates a Session bound to the real process environment and stdout.
func New(opts ...Option) *Session {
	s := &Session{
		out:    os.Stdout,
		getenv: os.Getenv,
		setenv: os.Setenv,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// issue writes one command line. Writes to the output stream are assumed to
// succeed; there is nothing useful a worker could do with a failed stdout
// write anyway.
func (s *Session) issue(c command.Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeLine(c.String())
}

// writeLine must be called with s.mu held.
func (s *Session) writeLine(line string) {
	fmt.Fprintln(s.out, line)
}

// ExportVariable sets the variable in the current process immediately and
// instructs the runner to persist the same binding for later steps. Both
// effects are required: the in-process mutation alone is invisible to later
// steps, the persisted one alone is invisible to this process.
func (s *Session) ExportVariable(name, value string) error {
	if err := s.setenv(name, value); err != nil {
		return fmt.Errorf("setting %s in process environment: %w", name, err)
	}
	if path := s.getenv(envFileEnv); path != "" {
		return appendKeyValue(path, name, value)
	}
	s.issue(command.New("set-env", value, command.Property{Key: "name", Value: name}))
	return nil
}

// SetSecret registers value for redaction: the runner masks every future
// occurrence of it in the log. Each line of a multiline secret is registered
// separately as well, since the runner matches masks line by line.
func (s *Session) SetSecret(value string) {
	s.issue(command.New("add-mask", value))
	if !strings.ContainsAny(value, "\r\n") {
		return
	}
	for _, line := range strings.Split(strings.ReplaceAll(value, "\r\n", "\n"), "\n") {
		if line != "" && line != value {
			s.issue(command.New("add-mask", line))
		}
	}
}

// ExportSecret exports the variable and then registers its value for
// masking. The mask is in place before any later log line can leak the
// value, provided the caller logs it only after this returns.
func (s *Session) ExportSecret(name, value string) error {
	if err := s.ExportVariable(name, value); err != nil {
		return err
	}
	s.SetSecret(value)
	return nil
}

// AddPath prepends dir to the in-process PATH so same-process lookups see it
// first, and instructs the runner to persist the prepend for later steps.
func (s *Session) AddPath(dir string) error {
	path := dir
	if old := s.getenv("PATH"); old != "" {
		path = dir + string(os.PathListSeparator) + old
	}
	if err := s.setenv("PATH", path); err != nil {
		return fmt.Errorf("prepending %s to PATH: %w", dir, err)
	}
	if file := s.getenv(envFilePath); file != "" {
		return appendLine(file, dir)
	}
	s.issue(command.New("add-path", dir))
	return nil
}

// SetOutput sets a step output the workflow can reference from later steps.
// No environment mutation.
func (s *Session) SetOutput(name, value string) error {
	if path := s.getenv(envFileOutput); path != "" {
		return appendKeyValue(path, name, value)
	}
	s.issue(command.New("set-output", value, command.Property{Key: "name", Value: name}))
	return nil
}

// SaveState persists a value for the post hook of the same action.
func (s *Session) SaveState(name, value string) error {
	if path := s.getenv(envFileState); path != "" {
		return appendKeyValue(path, name, value)
	}
	s.issue(command.New("save-state", value, command.Property{Key: "name", Value: name}))
	return nil
}

// GetState reads back a value a previous invocation stored with SaveState.
func (s *Session) GetState(name string) string {
	return s.getenv(statePrefix + name)
}

// IsDebug reports whether the runner has step debug logging enabled.
func (s *Session) IsDebug() bool {
	return s.getenv(runnerDebugVar) == "1"
}

// Debugf emits a debug message. The runner hides it unless debug logging is
// enabled.
func (s *Session) Debugf(format string, args ...any) {
	s.issue(command.New("debug", fmt.Sprintf(format, args...)))
}

// Noticef emits a notice-severity issue.
func (s *Session) Noticef(format string, args ...any) {
	s.issue(command.New("notice", fmt.Sprintf(format, args...)))
}

// Warningf emits a warning-severity issue.
func (s *Session) Warningf(format string, args ...any) {
	s.issue(command.New("warning", fmt.Sprintf(format, args...)))
}

// Errorf emits an error-severity issue.
func (s *Session) Errorf(format string, args ...any) {
	s.issue(command.New("error", fmt.Sprintf(format, args...)))
}

// Annotation locates an issue in a source file and titles it in the runner
// UI. Zero-valued fields are omitted from the command.
type Annotation struct {
	Title     string
	File      string
	Line      int
	EndLine   int
	Col       int
	EndColumn int
}

func (a Annotation) properties() command.Properties {
	var props command.Properties
	add := func(key, value string) {
		if value != "" {
			props = append(props, command.Property{Key: key, Value: value})
		}
	}
	addInt := func(key string, n int) {
		if n > 0 {
			props = append(props, command.Property{Key: key, Value: strconv.Itoa(n)})
		}
	}
	add("title", a.Title)
	add("file", a.File)
	addInt("line", a.Line)
	addInt("endLine", a.EndLine)
	addInt("col", a.Col)
	addInt("endColumn", a.EndColumn)
	return props
}

// NoticefAnnotated emits a notice-severity issue with annotation properties.
func (s *Session) NoticefAnnotated(a Annotation, format string, args ...any) {
	s.issue(command.New("notice", fmt.Sprintf(format, args...), a.properties()...))
}

// WarningfAnnotated emits a warning-severity issue with annotation
// properties.
func (s *Session) WarningfAnnotated(a Annotation, format string, args ...any) {
	s.issue(command.New("warning", fmt.Sprintf(format, args...), a.properties()...))
}

// ErrorfAnnotated emits an error-severity issue with annotation properties.
func (s *Session) ErrorfAnnotated(a Annotation, format string, args ...any) {
	s.issue(command.New("error", fmt.Sprintf(format, args...), a.properties()...))
}

// Infof writes plain, unescaped log text followed by a newline. This is
// ordinary output, not a command; the caller must not pass text that begins
// with the :: sentinel.
func (s *Session) Infof(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, fmt.Sprintf(format, args...))
}

// StartGroup opens a named, foldable region of log output. Groups nest.
func (s *Session) StartGroup(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeLine(command.New("group", name).String())
	s.depth++
}

// EndGroup closes the innermost open group. Calling it with no open group is
// a caller error this layer does not detect.
func (s *Session) EndGroup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeLine(command.New("endgroup", "").String())
	s.depth--
}

// GroupDepth returns the current open-group depth. Advisory: it should be
// zero again by normal process exit.
func (s *Session) GroupDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.depth
}

// Group runs fn inside a named group. The group is closed on every exit
// path, including an error return or a panic, and fn's outcome propagates
// unchanged.
func (s *Session) Group(name string, fn func() error) error {
	s.StartGroup(name)
	defer s.EndGroup()
	return fn()
}

// SetCommandEcho toggles the runner's echoing of processed commands into the
// log.
func (s *Session) SetCommandEcho(enabled bool) {
	msg := "off"
	if enabled {
		msg = "on"
	}
	s.issue(command.New("echo", msg))
}

// StopCommands suspends command processing until the returned resume
// function runs: in between, lines that look like commands are treated as
// plain text. endToken must not collide with any real command name.
func (s *Session) StopCommands(endToken string) (resume func()) {
	s.issue(command.New("stop-commands", endToken))
	return func() {
		s.issue(command.New(endToken, ""))
	}
}

// SetFailed records a failed outcome for the process and emits the message
// as an error issue. It does not stop anything: whether to return early is
// the caller's decision, and the recorded outcome is consumed at process
// exit via ExitCode.
func (s *Session) SetFailed(format string, args ...any) {
	s.mu.Lock()
	s.failed = true
	s.mu.Unlock()
	s.Errorf(format, args...)
}

// Failed reports whether SetFailed has been called.
func (s *Session) Failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// ExitCode returns the deferred process exit status: 0, or 1 once any
// failure has been signaled.
func (s *Session) ExitCode() int {
	if s.Failed() {
		return 1
	}
	return 0
}

// DebugRuntimeStats emits a host diagnostics snapshot as debug messages.
func (s *Session) DebugRuntimeStats() {
	for _, line := range sysinfo.Collect().DebugLines() {
		s.Debugf("%s", line)
	}
}
