// Package config loads the optional configuration file for the doubler CLI.
//
// The file customizes the prompt text and the messages printed by the
// retrying prompt. Two formats are supported and selected by extension:
//
//   - .yaml / .yml    decoded with gopkg.in/yaml.v3
//   - .json / .jsonc  comments stripped with github.com/tidwall/jsonc,
//     then decoded with encoding/json
//
// Fields left empty in the file fall back to DefaultConfig.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/doubler/internal/model"
)

// Default message texts. These are the strings the program prints when no
// configuration file overrides them.
const (
	DefaultPrompt         = "Please enter a number: "
	DefaultNotANumber     = "That was not a number. Please try again."
	DefaultOutOfRange     = "That number is too big to double. Please try again."
	DefaultRuntimeFailure = "Some runtime error occurred."
	DefaultUnclassified   = "An error occurred."
)

// Config represents the CLI configuration.
type Config struct {
	// Prompt is written before every read, without a trailing newline.
	Prompt string `json:"prompt" yaml:"prompt"`

	// Messages holds the lines printed by the retrying prompt.
	Messages Messages `json:"messages" yaml:"messages"`
}

// Messages holds one retry message per failure kind.
type Messages struct {
	// NotANumber is printed after an invalid-format failure.
	NotANumber string `json:"notANumber" yaml:"notANumber"`

	// OutOfRange is printed when the input is an integer whose double
	// does not fit in 64 bits, in either direction.
	OutOfRange string `json:"outOfRange" yaml:"outOfRange"`

	// RuntimeFailure is printed after a runtime failure.
	RuntimeFailure string `json:"runtimeFailure" yaml:"runtimeFailure"`

	// Unclassified is printed after any other failure.
	Unclassified string `json:"unclassified" yaml:"unclassified"`
}

// For returns the message for the given failure kind. Unknown kinds get
// the unclassified message.
func (m Messages) For(kind model.FailureKind) string {
	switch kind {
	case model.KindInvalidFormat:
		return m.NotANumber
	case model.KindRuntime:
		return m.RuntimeFailure
	default:
		return m.Unclassified
	}
}

// ForError returns the message for a failed attempt. An out-of-range
// integer is still an invalid-format failure, but gets its own message so
// the user is not told a valid integer is not a number.
func (m Messages) ForError(err error) string {
	if errors.Is(err, model.ErrOutOfRange) {
		return m.OutOfRange
	}
	return m.For(model.Classify(err))
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Prompt: DefaultPrompt,
		Messages: Messages{
			NotANumber:     DefaultNotANumber,
			OutOfRange:     DefaultOutOfRange,
			RuntimeFailure: DefaultRuntimeFailure,
			Unclassified:   DefaultUnclassified,
		},
	}
}

// Load reads the configuration file at path. An empty path returns the
// default configuration.
//
// Returns a CLIError with ExitConfigError if the file cannot be read, has
// an unsupported extension, or fails to decode.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(model.ExitConfigError,
				fmt.Sprintf("config file not found: %s", path), err)
		}
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	var file Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".json", ".jsonc":
		// jsonc.ToJSON strips // and /* */ comments and trailing commas so
		// that hand-edited files parse with encoding/json.
		err = json.Unmarshal(jsonc.ToJSON(data), &file)
	default:
		return nil, model.NewCLIError(model.ExitConfigError,
			fmt.Sprintf("unsupported config file extension %q (valid: .yaml, .yml, .json, .jsonc)", ext))
	}
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError,
			fmt.Sprintf("failed to parse config file %s", path), err)
	}

	cfg.merge(&file)
	return cfg, nil
}

// merge copies every non-empty field of other into c.
func (c *Config) merge(other *Config) {
	if other.Prompt != "" {
		c.Prompt = other.Prompt
	}
	if other.Messages.NotANumber != "" {
		c.Messages.NotANumber = other.Messages.NotANumber
	}
	if other.Messages.OutOfRange != "" {
		c.Messages.OutOfRange = other.Messages.OutOfRange
	}
	if other.Messages.RuntimeFailure != "" {
		c.Messages.RuntimeFailure = other.Messages.RuntimeFailure
	}
	if other.Messages.Unclassified != "" {
		c.Messages.Unclassified = other.Messages.Unclassified
	}
}
