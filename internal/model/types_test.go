package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestServerCredential_Validate verifies credential validation for complete,
// partial, and malformed credentials.
func TestServerCredential_Validate(t *testing.T) {
	tests := []struct {
		name     string
		cred     ServerCredential
		hasError bool
	}{
		{
			name:     "complete credential",
			cred:     ServerCredential{ID: "ossrh", Username: "deployer", Password: "s3cret"},
			hasError: false,
		},
		{
			name:     "id with dots and hyphens",
			cred:     ServerCredential{ID: "sonatype-nexus.snapshots", Username: "u", Password: "p"},
			hasError: false,
		},
		{
			name:     "empty id",
			cred:     ServerCredential{ID: "", Username: "u", Password: "p"},
			hasError: true,
		},
		{
			name:     "id starting with separator",
			cred:     ServerCredential{ID: "-ossrh", Username: "u", Password: "p"},
			hasError: true,
		},
		{
			name:     "id with whitespace",
			cred:     ServerCredential{ID: "my server", Username: "u", Password: "p"},
			hasError: true,
		},
		{
			name:     "missing username",
			cred:     ServerCredential{ID: "ossrh", Username: "", Password: "p"},
			hasError: true,
		},
		{
			name:     "missing password",
			cred:     ServerCredential{ID: "ossrh", Username: "u", Password: ""},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cred.Validate()
			if tt.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestServerCredential_String verifies that the Stringer implementation
// never exposes the password, regardless of how the credential is formatted.
func TestServerCredential_String(t *testing.T) {
	cred := &ServerCredential{ID: "ossrh", Username: "deployer", Password: "hunter2"}

	s := cred.String()
	assert.NotContains(t, s, "hunter2", "String() must not leak the password")
	assert.Contains(t, s, "ossrh")
	assert.Contains(t, s, "deployer")

	// fmt verbs route through the Stringer for pointer receivers.
	formatted := fmt.Sprintf("%v", cred)
	assert.NotContains(t, formatted, "hunter2", "%%v must not leak the password")
}

// TestServerCredential_String_EmptyPassword verifies the placeholder used
// when no password is set.
func TestServerCredential_String_EmptyPassword(t *testing.T) {
	cred := &ServerCredential{ID: "ossrh", Username: "deployer"}
	assert.Contains(t, cred.String(), "<unset>")
}

// TestCLIError_Error verifies message formatting with and without an
// underlying error.
func TestCLIError_Error(t *testing.T) {
	plain := NewCLIError(ExitMissingEnv, "environment variable SONATYPE_USERNAME is not set")
	assert.Equal(t, "environment variable SONATYPE_USERNAME is not set", plain.Error())

	underlying := errors.New("open /home/ci/.m2/settings.xml: no such file or directory")
	wrapped := WrapCLIError(ExitSettingsNotFound, "failed to read settings file", underlying)
	assert.Equal(t, "failed to read settings file: open /home/ci/.m2/settings.xml: no such file or directory", wrapped.Error())
}

// TestCLIError_Unwrap verifies errors.Is/errors.As compatibility through
// the Unwrap method.
func TestCLIError_Unwrap(t *testing.T) {
	underlying := errors.New("root cause")
	wrapped := WrapCLIError(ExitGeneralError, "something failed", underlying)

	assert.True(t, errors.Is(wrapped, underlying), "errors.Is should see through CLIError")

	var cliErr *CLIError
	require.True(t, errors.As(error(wrapped), &cliErr))
	assert.Equal(t, ExitGeneralError, cliErr.Code)

	// A CLIError without an underlying error unwraps to nil.
	assert.Nil(t, NewCLIError(ExitSuccess, "ok").Unwrap())
}

// TestExitCodes pins the numeric values of the exit codes. CI scripts
// branch on these numbers, so changing them is a breaking change.
func TestExitCodes(t *testing.T) {
	assert.Equal(t, 0, int(ExitSuccess))
	assert.Equal(t, 1, int(ExitGeneralError))
	assert.Equal(t, 2, int(ExitMissingEnv))
	assert.Equal(t, 3, int(ExitSettingsNotFound))
	assert.Equal(t, 4, int(ExitMalformedSettings))
}

// TestDefaults pins the default server id and environment variable names.
// These are part of the tool's external contract with CI configuration.
func TestDefaults(t *testing.T) {
	assert.Equal(t, "ossrh", DefaultServerID)
	assert.Equal(t, "TRAVIS_SECURE_ENV_VARS", DefaultGateEnv)
	assert.Equal(t, "SONATYPE_USERNAME", DefaultUsernameEnv)
	assert.Equal(t, "SONATYPE_PASSWORD", DefaultPasswordEnv)
}
