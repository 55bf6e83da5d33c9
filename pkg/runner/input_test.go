package runner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInputEnvName(t *testing.T) {
	require.Equal(t, "INPUT_MY_NAME", InputEnvName("my name"))
	require.Equal(t, "INPUT_TOKEN", InputEnvName("token"))
	require.Equal(t, "INPUT_DRY-RUN", InputEnvName("dry-run"))
}

func TestGetInput_TrimsByDefault(t *testing.T) {
	s, _, env := newTestSession()
	env["INPUT_MY_NAME"] = "  hi  "

	got, err := s.GetInput("my name")
	require.NoError(t, err)
	require.Equal(t, "hi", got)
}

func TestGetInput_KeepWhitespace(t *testing.T) {
	s, _, env := newTestSession()
	env["INPUT_RAW"] = "  padded  "

	got, err := s.GetInput("raw", KeepWhitespace())
	require.NoError(t, err)
	require.Equal(t, "  padded  ", got)
}

func TestGetInput_RequiredMissing(t *testing.T) {
	s, _, _ := newTestSession()

	_, err := s.GetInput("my name", Required())
	require.ErrorIs(t, err, ErrMissingInput)
	require.Contains(t, err.Error(), "my name")
}

func TestGetInput_OptionalMissingIsEmpty(t *testing.T) {
	s, _, _ := newTestSession()

	got, err := s.GetInput("absent")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGetBooleanInput(t *testing.T) {
	s, _, env := newTestSession()

	for raw, want := range map[string]bool{
		"true": true, "True": true, "TRUE": true,
		"false": false, "False": false, "FALSE": false,
	} {
		env["INPUT_FLAG"] = raw
		got, err := s.GetBooleanInput("flag")
		require.NoError(t, err, "raw %q", raw)
		require.Equal(t, want, got, "raw %q", raw)
	}

	env["INPUT_FLAG"] = "yes"
	_, err := s.GetBooleanInput("flag")
	require.Error(t, err)
}

func TestGetMultilineInput(t *testing.T) {
	s, _, env := newTestSession()
	env["INPUT_FILES"] = "  a.txt  \n\r\nb.txt\nc.txt\n"

	got, err := s.GetMultilineInput("files")
	require.NoError(t, err)
	require.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, got)
}

func TestGetMultilineInput_RequiredMissing(t *testing.T) {
	s, _, _ := newTestSession()

	_, err := s.GetMultilineInput("files", Required())
	require.ErrorIs(t, err, ErrMissingInput)
}
