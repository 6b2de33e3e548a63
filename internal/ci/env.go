package ci

import (
	"fmt"
	"os"

	"github.com/mmr-tortoise/m2creds/internal/model"
)

// SkipMessage is the single line printed to stdout when injection is
// skipped because secure variables are unavailable. CI logs are grepped
// for this exact string, so it must not change.
const SkipMessage = "no secure env vars available, skipping deployment"

// ShouldSkip reports whether the secure-variable gate is closed.
//
// Only the literal value "false" closes the gate. An unset variable or any
// other value means the build proceeds to credential resolution, where it
// will fail with a missing-variable error if the secrets really are absent.
// Travis sets the variable to exactly "true" or "false", so the narrow
// comparison is intentional.
func ShouldSkip(gateEnv string) bool {
	return os.Getenv(gateEnv) == "false"
}

// ResolveCredential builds a ServerCredential from the environment,
// reading the username and password from the named variables.
//
// An unset variable is a fatal error (CLIError with ExitMissingEnv). An
// empty-but-set variable is treated the same way: an empty credential is
// never useful and usually means a CI secret was misconfigured.
func ResolveCredential(serverID, usernameEnv, passwordEnv string) (*model.ServerCredential, error) {
	username, err := requireEnv(usernameEnv)
	if err != nil {
		return nil, err
	}

	password, err := requireEnv(passwordEnv)
	if err != nil {
		return nil, err
	}

	cred := &model.ServerCredential{
		ID:       serverID,
		Username: username,
		Password: password,
	}
	if err := cred.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "resolved credential is invalid", err)
	}
	return cred, nil
}

// requireEnv returns the value of the named environment variable, or a
// CLIError with ExitMissingEnv when it is unset or empty.
func requireEnv(name string) (string, error) {
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", model.NewCLIError(model.ExitMissingEnv,
			fmt.Sprintf("environment variable %s is not set", name))
	}
	if value == "" {
		return "", model.NewCLIError(model.ExitMissingEnv,
			fmt.Sprintf("environment variable %s is empty", name))
	}
	return value, nil
}
