// Package profile loads optional injection profiles for the m2creds CLI.
//
// A profile file carries the same settings as the inject command's flags,
// so a repository can check in its deployment configuration once instead
// of repeating flags in every CI script. JSONC (JSON with Comments) is
// supported via github.com/tidwall/jsonc, since checked-in config files
// tend to accumulate comments; YAML is supported via gopkg.in/yaml.v3 and
// selected by file extension.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/m2creds/internal/model"
)

// Profile holds the optional overrides for the inject command. Every field
// may be empty; empty fields fall back to the built-in defaults, and
// explicit command-line flags take precedence over profile values.
type Profile struct {
	// ServerID overrides the injected <id> (default "ossrh").
	ServerID string `json:"serverId" yaml:"serverId"`

	// Settings overrides the input settings file path. A leading "~/"
	// expands to the invoking user's home directory.
	Settings string `json:"settings" yaml:"settings"`

	// Output overrides the output file path. Supports "~/" like Settings.
	Output string `json:"output" yaml:"output"`

	// UsernameEnv and PasswordEnv override the environment variable names
	// the credential is read from.
	UsernameEnv string `json:"usernameEnv" yaml:"usernameEnv"`
	PasswordEnv string `json:"passwordEnv" yaml:"passwordEnv"`

	// GateEnv overrides the secure-variable gate name.
	GateEnv string `json:"gateEnv" yaml:"gateEnv"`
}

// Load reads a profile file, choosing the parser by extension:
// .json and .jsonc parse as JSONC, .yaml and .yml parse as YAML.
// Any other extension is an error: guessing a format for a credentials
// workflow invites silent misconfiguration.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read profile %s", path), err)
	}

	var p Profile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".jsonc":
		// Strip comments and trailing commas, then parse as plain JSON.
		if err := json.Unmarshal(jsonc.ToJSON(data), &p); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to parse profile %s", path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				fmt.Sprintf("failed to parse profile %s", path), err)
		}
	default:
		return nil, model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("unsupported profile format %q (expected .json, .jsonc, .yaml, or .yml)", ext))
	}

	// Expand home-relative paths once, at load time, so every consumer
	// sees absolute paths.
	if p.Settings, err = ExpandHome(p.Settings); err != nil {
		return nil, err
	}
	if p.Output, err = ExpandHome(p.Output); err != nil {
		return nil, err
	}

	return &p, nil
}

// ExpandHome replaces a leading "~/" (or a bare "~") with the invoking
// user's home directory. Paths without the prefix pass through unchanged,
// including empty strings.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError, "failed to resolve home directory", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}
