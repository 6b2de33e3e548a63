package ci

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/m2creds/internal/model"
)

// TestShouldSkip verifies the gate semantics: only the literal "false"
// closes the gate; unset and any other value leave it open.
func TestShouldSkip(t *testing.T) {
	const gate = "M2CREDS_TEST_GATE"

	tests := []struct {
		name  string
		value string
		set   bool
		want  bool
	}{
		{name: "literal false skips", value: "false", set: true, want: true},
		{name: "true proceeds", value: "true", set: true, want: false},
		{name: "unset proceeds", set: false, want: false},
		{name: "empty proceeds", value: "", set: true, want: false},
		{name: "FALSE proceeds (case sensitive)", value: "FALSE", set: true, want: false},
		{name: "0 proceeds", value: "0", set: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.set {
				t.Setenv(gate, tt.value)
			}
			assert.Equal(t, tt.want, ShouldSkip(gate))
		})
	}
}

// TestResolveCredential_Success verifies env-sourced credential assembly.
func TestResolveCredential_Success(t *testing.T) {
	t.Setenv("M2CREDS_TEST_USER", "deployer")
	t.Setenv("M2CREDS_TEST_PASS", "s3cret")

	cred, err := ResolveCredential("ossrh", "M2CREDS_TEST_USER", "M2CREDS_TEST_PASS")
	require.NoError(t, err)
	assert.Equal(t, "ossrh", cred.ID)
	assert.Equal(t, "deployer", cred.Username)
	assert.Equal(t, "s3cret", cred.Password)
}

// TestResolveCredential_MissingUsername verifies the fatal path when the
// username variable is unset.
func TestResolveCredential_MissingUsername(t *testing.T) {
	t.Setenv("M2CREDS_TEST_PASS", "s3cret")

	_, err := ResolveCredential("ossrh", "M2CREDS_TEST_USER_UNSET", "M2CREDS_TEST_PASS")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitMissingEnv, cliErr.Code)
	assert.Contains(t, cliErr.Message, "M2CREDS_TEST_USER_UNSET")
}

// TestResolveCredential_MissingPassword verifies the fatal path when the
// password variable is unset, and that the username variable was checked
// first (error ordering matches the resolution order).
func TestResolveCredential_MissingPassword(t *testing.T) {
	t.Setenv("M2CREDS_TEST_USER", "deployer")

	_, err := ResolveCredential("ossrh", "M2CREDS_TEST_USER", "M2CREDS_TEST_PASS_UNSET")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitMissingEnv, cliErr.Code)
	assert.Contains(t, cliErr.Message, "M2CREDS_TEST_PASS_UNSET")
}

// TestResolveCredential_EmptyValue verifies that a set-but-empty secret is
// rejected like an unset one.
func TestResolveCredential_EmptyValue(t *testing.T) {
	t.Setenv("M2CREDS_TEST_USER", "")
	t.Setenv("M2CREDS_TEST_PASS", "s3cret")

	_, err := ResolveCredential("ossrh", "M2CREDS_TEST_USER", "M2CREDS_TEST_PASS")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitMissingEnv, cliErr.Code)
	assert.Contains(t, cliErr.Message, "empty")
}

// TestSkipMessage pins the exact skip line; CI logs are matched against it.
func TestSkipMessage(t *testing.T) {
	assert.Equal(t, "no secure env vars available, skipping deployment", SkipMessage)
}
