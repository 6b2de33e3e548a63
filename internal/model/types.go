// Package model defines the domain types for the m2creds CLI.
//
// All entities in this package represent the core data structures passed
// between the CLI layer, the environment resolver, and the settings
// document layer. There is no persistent state: a credential lives for
// exactly one invocation.
package model

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultServerID is the Maven server id injected when no override is
// given. It matches the <id> referenced by the parent POM's snapshot
// repository configuration (Sonatype OSSRH).
const DefaultServerID = "ossrh"

// Default environment variable names consumed by the inject command.
// They mirror the variables a Travis-style CI job exports for the
// deployment stage.
const (
	// DefaultGateEnv is the variable whose literal value "false" marks
	// a build where secure variables are unavailable (e.g. a pull
	// request from a fork). Any other value, including unset, means
	// injection proceeds.
	DefaultGateEnv = "TRAVIS_SECURE_ENV_VARS"

	// DefaultUsernameEnv holds the repository username.
	DefaultUsernameEnv = "SONATYPE_USERNAME"

	// DefaultPasswordEnv holds the repository password.
	DefaultPasswordEnv = "SONATYPE_PASSWORD"
)

// ServerCredential is a single Maven <server> credential record:
// the id that repository configuration elsewhere refers to, plus the
// username/password pair used to authenticate deployments.
type ServerCredential struct {
	// ID is the server id referenced by <repository>/<distributionManagement>
	// elements in a POM. Must be non-empty.
	ID string `json:"id"`

	// Username is the plaintext repository username.
	Username string `json:"username"`

	// Password is the plaintext repository password. It is written to the
	// output settings file but must never appear in logs or CLI output;
	// use String() for any display purpose.
	Password string `json:"-"`
}

// serverIDRegex validates Maven server ids: alphanumerics plus the
// separator characters commonly seen in the wild (dot, hyphen, underscore).
// Maven itself is laxer, but ids outside this set are almost always typos.
var serverIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// Validate checks that the credential is complete enough to inject.
// An empty username or password would produce a settings file that Maven
// accepts but that fails authentication much later, at deploy time, with
// a far less useful error, so it is rejected up front.
func (c *ServerCredential) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("server credential: id must not be empty")
	}
	if !serverIDRegex.MatchString(c.ID) {
		return fmt.Errorf("server credential: invalid id %q: must start with an alphanumeric and contain only alphanumerics, '.', '-', '_'", c.ID)
	}
	if c.Username == "" {
		return fmt.Errorf("server credential: username must not be empty")
	}
	if c.Password == "" {
		return fmt.Errorf("server credential: password must not be empty")
	}
	return nil
}

// String returns a loggable representation with the password masked.
// This satisfies fmt.Stringer so an accidental %v of a credential cannot
// leak the secret.
func (c *ServerCredential) String() string {
	return fmt.Sprintf("%s (user: %s, password: %s)", c.ID, c.Username, maskSecret(c.Password))
}

// maskSecret replaces a secret with a fixed-width placeholder. The real
// length is deliberately not preserved.
func maskSecret(s string) string {
	if s == "" {
		return "<unset>"
	}
	return strings.Repeat("*", 8)
}

// ServerInfo is the read-only projection of an existing <server> element
// in a settings file, as reported by the "servers" command. The password
// is intentionally absent from this type.
type ServerInfo struct {
	// ID is the text content of the entry's <id> child, if any.
	ID string `json:"id"`

	// Username is the text content of the entry's <username> child, if any.
	Username string `json:"username,omitempty"`

	// HasPassword reports whether the entry carries a non-empty <password>
	// child. The value itself is never exposed.
	HasPassword bool `json:"hasPassword"`
}

// ExitCode defines the CLI exit codes. These codes allow CI scripts to
// programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully, including
	// the intentional gate-skip path of the inject command.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitMissingEnv indicates a required environment variable
	// (username or password) was not set.
	ExitMissingEnv ExitCode = 2

	// ExitSettingsNotFound indicates the input settings file does not
	// exist or could not be read.
	ExitSettingsNotFound ExitCode = 3

	// ExitMalformedSettings indicates the input file is not well-formed
	// XML or lacks the <settings> root element.
	ExitMalformedSettings ExitCode = 4
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
