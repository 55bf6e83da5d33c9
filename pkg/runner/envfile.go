package runner

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Environment files replace the legacy stdout commands for set-env,
// set-output, save-state and add-path on current runners: the runner points
// GITHUB_ENV and friends at files the worker appends records to. Key/value
// records use a heredoc block so values may contain anything, including
// newlines:
//
//	name<<ghadelimiter_<uuid>
//	value
//	ghadelimiter_<uuid>

func appendKeyValue(path, name, value string) error {
	delimiter := "ghadelimiter_" + uuid.NewString()
	if strings.Contains(name, delimiter) {
		return fmt.Errorf("name contains delimiter %q", delimiter)
	}
	if strings.Contains(value, delimiter) {
		return fmt.Errorf("value for %s contains delimiter %q", name, delimiter)
	}
	record := fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	return appendFile(path, record)
}

func appendLine(path, line string) error {
	return appendFile(path, line+"\n")
}

// appendFile writes the whole record in one write so concurrent steps
// appending to the same file cannot interleave within a record.
func appendFile(path, data string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("opening environment file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(data); err != nil {
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return nil
}
