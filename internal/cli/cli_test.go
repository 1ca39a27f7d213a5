package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/doubler/internal/config"
	"github.com/shinji-kodama/doubler/internal/model"
)

const promptText = config.DefaultPrompt

// execute runs a fresh root command with the given stdin and arguments and
// returns what it wrote plus the exit code Execute would use.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, code model.ExitCode) {
	t.Helper()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	code = model.ExitSuccess
	if err := cmd.Execute(); err != nil {
		code = reportError(&errOut, err)
	}
	return out.String(), errOut.String(), code
}

// TestRoot_PrintsDouble covers the success path of the non-retrying driver.
func TestRoot_PrintsDouble(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"12\n", "Double your number is 24\n"},
		{"7\n", "Double your number is 14\n"},
		{"-4\n", "Double your number is -8\n"},
		{"0\n", "Double your number is 0\n"},
		{"21", "Double your number is 42\n"},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			stdout, stderr, code := execute(t, tt.input)
			assert.Equal(t, model.ExitSuccess, code)
			assert.Equal(t, promptText+tt.want, stdout)
			assert.Empty(t, stderr)
		})
	}
}

// TestRoot_UnhandledParseFailure checks that a parse failure propagates to
// the top level and terminates the run without printing a result.
func TestRoot_UnhandledParseFailure(t *testing.T) {
	for _, input := range []string{"abc\n", "\n", "1.5\n", "12abc\n"} {
		t.Run(strings.TrimSpace(input), func(t *testing.T) {
			stdout, stderr, code := execute(t, input)
			assert.Equal(t, model.ExitInvalidInput, code)
			assert.Equal(t, promptText, stdout)
			assert.NotContains(t, stdout, "Double your number is")
			assert.True(t, strings.HasPrefix(stderr, "Error: unhandled parse failure: invalid number"), stderr)
		})
	}
}

func TestRoot_InputClosed(t *testing.T) {
	stdout, stderr, code := execute(t, "")
	assert.Equal(t, model.ExitInputClosed, code)
	assert.Equal(t, promptText, stdout)
	assert.Contains(t, stderr, "no number was entered")
}

func TestRoot_RejectsArguments(t *testing.T) {
	_, stderr, code := execute(t, "1\n", "extra")
	assert.Equal(t, model.ExitGeneralError, code)
	assert.Contains(t, stderr, "Error:")
}

func TestRoot_Version(t *testing.T) {
	stdout, _, code := execute(t, "", "--version")
	assert.Equal(t, model.ExitSuccess, code)
	assert.Contains(t, stdout, "dev")
}

func TestRoot_JSONResult(t *testing.T) {
	stdout, _, code := execute(t, "12\n", "--json")
	require.Equal(t, model.ExitSuccess, code)

	var got resultJSON
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(stdout, promptText)), &got))
	assert.Equal(t, resultJSON{Value: 12, Double: 24}, got)
}

func TestRoot_JSONError(t *testing.T) {
	_, stderr, code := execute(t, "abc\n", "--json")
	require.Equal(t, model.ExitInvalidInput, code)

	var got struct {
		Error struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(stderr), &got))
	assert.Equal(t, "unhandled parse failure", got.Error.Message)
	assert.Contains(t, got.Error.Detail, `"abc"`)
}

// TestRetry covers the retrying driver end to end.
func TestRetry(t *testing.T) {
	notANumber := config.DefaultNotANumber + "\n"

	t.Run("first attempt succeeds", func(t *testing.T) {
		stdout, _, code := execute(t, "7\n", "retry")
		assert.Equal(t, model.ExitSuccess, code)
		assert.Equal(t, promptText+"Double your number is 14\n", stdout)
	})

	t.Run("retries after not a number", func(t *testing.T) {
		stdout, _, code := execute(t, "abc\n12\n", "retry")
		assert.Equal(t, model.ExitSuccess, code)
		assert.Equal(t, promptText+notANumber+promptText+"Double your number is 24\n", stdout)
	})

	t.Run("one message per invalid attempt", func(t *testing.T) {
		stdout, _, code := execute(t, "\nabc\n3\n", "retry")
		assert.Equal(t, model.ExitSuccess, code)
		assert.Equal(t, 2, strings.Count(stdout, config.DefaultNotANumber))
		assert.Equal(t, 3, strings.Count(stdout, promptText))
		assert.True(t, strings.HasSuffix(stdout, "Double your number is 6\n"), stdout)
	})

	t.Run("integer too big to double", func(t *testing.T) {
		stdout, _, code := execute(t, "9223372036854775807\n10\n", "retry")
		assert.Equal(t, model.ExitSuccess, code)
		assert.NotContains(t, stdout, config.DefaultNotANumber)
		assert.Equal(t, promptText+config.DefaultOutOfRange+"\n"+promptText+"Double your number is 20\n", stdout)
	})

	t.Run("input runs out", func(t *testing.T) {
		stdout, _, code := execute(t, "abc\n", "retry")
		assert.Equal(t, model.ExitInputClosed, code)
		assert.NotContains(t, stdout, "Double your number is")
	})
}

func TestInspect(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"5\n", "Input was 5\n"},
		{"abc\n", "Input was not a number\n"},
		{"  \n", "Input was not a number\n"},
		{"\n", "Input was not a number\n"},
		{"", "Input was empty\n"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			stdout, _, code := execute(t, tt.input, "inspect")
			assert.Equal(t, model.ExitSuccess, code)
			assert.Equal(t, promptText+tt.want, stdout)
		})
	}
}

func TestInspect_JSON(t *testing.T) {
	stdout, _, code := execute(t, "5\n", "inspect", "--json")
	require.Equal(t, model.ExitSuccess, code)

	var got inspectJSON
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(stdout, promptText)), &got))
	assert.Equal(t, string(model.InputOK), got.Kind)
	require.NotNil(t, got.Value)
	assert.Equal(t, int64(5), *got.Value)

	stdout, _, _ = execute(t, "abc\n", "inspect", "--json")
	got = inspectJSON{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(stdout, promptText)), &got))
	assert.Equal(t, string(model.InputNotNumber), got.Kind)
	assert.Nil(t, got.Value)
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml overrides prompt and messages", func(t *testing.T) {
		path := filepath.Join(dir, "doubler.yaml")
		require.NoError(t, os.WriteFile(path, []byte("prompt: \"> \"\nmessages:\n  notANumber: \"Try again.\"\n"), 0o644))

		stdout, _, code := execute(t, "x\n2\n", "--config", path, "retry")
		assert.Equal(t, model.ExitSuccess, code)
		assert.Equal(t, "> Try again.\n> Double your number is 4\n", stdout)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "doubler.ini")
		require.NoError(t, os.WriteFile(path, []byte("prompt=x"), 0o644))

		stdout, stderr, code := execute(t, "2\n", "--config", path)
		assert.Equal(t, model.ExitConfigError, code)
		assert.Empty(t, stdout)
		assert.Contains(t, stderr, "unsupported config file extension")
	})
}

// TestVerbose_LogsToStderr checks that diagnostics never mix with the
// transcript on stdout.
func TestVerbose_LogsToStderr(t *testing.T) {
	stdout, stderr, code := execute(t, "abc\n4\n", "retry", "-v")
	assert.Equal(t, model.ExitSuccess, code)
	assert.Contains(t, stderr, "attempt failed")
	assert.NotContains(t, stdout, "attempt failed")
}

func TestReportError(t *testing.T) {
	jsonOutput = false

	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer
		code := reportError(&buf, errors.New("boom"))
		assert.Equal(t, model.ExitGeneralError, code)
		assert.Equal(t, "Error: boom\n", buf.String())
	})

	t.Run("cli error", func(t *testing.T) {
		var buf bytes.Buffer
		code := reportError(&buf, model.NewCLIError(model.ExitInputClosed, "no number was entered"))
		assert.Equal(t, model.ExitInputClosed, code)
		assert.Equal(t, "Error: no number was entered\n", buf.String())
	})
}
