package runner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingInput is wrapped by GetInput when a required input has no
// binding.
var ErrMissingInput = errors.New("required input missing")

// InputOption configures a single input read.
type InputOption func(*inputConfig)

type inputConfig struct {
	required bool
	trim     bool
}

// Required makes an absent input an error instead of an empty string.
func Required() InputOption {
	return func(c *inputConfig) { c.required = true }
}

// KeepWhitespace disables the default trimming of surrounding whitespace.
func KeepWhitespace() InputOption {
	return func(c *inputConfig) { c.trim = false }
}

// InputEnvName maps an input name to the environment variable the runner
// binds it to: upper-cased, spaces replaced with underscores, prefixed with
// INPUT_. Example: "my name" -> "INPUT_MY_NAME".
func InputEnvName(name string) string {
	return "INPUT_" + strings.ToUpper(strings.ReplaceAll(name, " ", "_"))
}

// GetInput reads a named input value from the environment. The result is
// trimmed of surrounding whitespace unless KeepWhitespace is given. An
// absent input yields "" unless Required is given, in which case the read
// fails fast instead of letting a malformed command escape downstream.
func (s *Session) GetInput(name string, opts ...InputOption) (string, error) {
	cfg := inputConfig{trim: true}
	for _, o := range opts {
		o(&cfg)
	}

	value := s.getenv(InputEnvName(name))
	if value == "" && cfg.required {
		return "", fmt.Errorf("%w: %s", ErrMissingInput, name)
	}
	if cfg.trim {
		value = strings.TrimSpace(value)
	}
	return value, nil
}

// GetBooleanInput reads an input that must be one of true/True/TRUE or
// false/False/FALSE.
func (s *Session) GetBooleanInput(name string, opts ...InputOption) (bool, error) {
	value, err := s.GetInput(name, opts...)
	if err != nil {
		return false, err
	}
	switch value {
	case "true", "True", "TRUE":
		return true, nil
	case "false", "False", "FALSE":
		return false, nil
	}
	return false, fmt.Errorf("input %q is not a boolean: %q", name, value)
}

// GetMultilineInput reads an input and splits it into its non-empty lines.
func (s *Session) GetMultilineInput(name string, opts ...InputOption) ([]string, error) {
	cfg := inputConfig{trim: true}
	for _, o := range opts {
		o(&cfg)
	}

	value, err := s.GetInput(name, append(opts, KeepWhitespace())...)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(value, "\r\n", "\n"), "\n") {
		if cfg.trim {
			line = strings.TrimSpace(line)
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
