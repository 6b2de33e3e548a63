// Package cli — check.go implements the "m2creds check" command.
//
// The check command is a CI preflight: it reports whether an inject run
// would skip (gate closed) or fail (credential variables missing),
// without reading or writing any file. A missing variable makes the
// command exit non-zero so pipelines can fail fast, before Maven starts.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/m2creds/internal/ci"
	"github.com/mmr-tortoise/m2creds/internal/model"
	"github.com/mmr-tortoise/m2creds/internal/profile"
)

// checkFlags holds the flag values for the check command.
type checkFlags struct {
	usernameEnv string // --username-env: env var holding the username
	passwordEnv string // --password-env: env var holding the password
	gateEnv     string // --gate-env: secure-variable gate name
	profilePath string // --profile: optional profile file
}

// NewCheckCommand creates the "check" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that injection would succeed in this environment",
		Long: `Check the environment an inject run would see.

Reports whether the secure-variable gate is closed (inject would skip)
and whether the credential environment variables are set. Exits non-zero
when a variable required for injection is missing. No file is read or
written.

Examples:
  m2creds check
  m2creds check --username-env NEXUS_USER --password-env NEXUS_PASS`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.usernameEnv, "username-env", "", "Env var holding the username (default: SONATYPE_USERNAME)")
	cmd.Flags().StringVar(&flags.passwordEnv, "password-env", "", "Env var holding the password (default: SONATYPE_PASSWORD)")
	cmd.Flags().StringVar(&flags.gateEnv, "gate-env", "", "Env var gating injection (default: TRAVIS_SECURE_ENV_VARS)")
	cmd.Flags().StringVar(&flags.profilePath, "profile", "", "Profile file with defaults for the flags above")

	return cmd
}

// runCheck is the main logic function for the check command.
func runCheck(cmd *cobra.Command, flags *checkFlags) error {
	out := cmd.OutOrStdout()

	prof := &profile.Profile{}
	if flags.profilePath != "" {
		loaded, err := profile.Load(flags.profilePath)
		if err != nil {
			return err
		}
		prof = loaded
	}

	gateEnv := firstNonEmpty(flags.gateEnv, prof.GateEnv, model.DefaultGateEnv)
	usernameEnv := firstNonEmpty(flags.usernameEnv, prof.UsernameEnv, model.DefaultUsernameEnv)
	passwordEnv := firstNonEmpty(flags.passwordEnv, prof.PasswordEnv, model.DefaultPasswordEnv)

	skipped := ci.ShouldSkip(gateEnv)

	// Presence, not value: check never reads the secrets into memory
	// beyond the LookupEnv call, and never prints them.
	vars := map[string]bool{
		usernameEnv: envIsSet(usernameEnv),
		passwordEnv: envIsSet(passwordEnv),
	}

	if IsJSONOutput() {
		result := map[string]interface{}{
			"wouldSkip": skipped,
			"gate":      gateEnv,
			"vars":      vars,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(out, string(data))
	} else {
		if skipped {
			fmt.Fprintf(out, "gate %s=false: inject would skip\n", gateEnv)
		} else {
			fmt.Fprintf(out, "gate %s: open\n", gateEnv)
		}
		for _, name := range []string{usernameEnv, passwordEnv} {
			state := "missing"
			if vars[name] {
				state = "set"
			}
			fmt.Fprintf(out, "%s: %s\n", name, state)
		}
	}

	// A closed gate means inject would succeed (by skipping), so missing
	// variables are not an error in that case.
	if skipped {
		return nil
	}
	for _, name := range []string{usernameEnv, passwordEnv} {
		if !vars[name] {
			return model.NewCLIError(model.ExitMissingEnv,
				fmt.Sprintf("environment variable %s is not set", name))
		}
	}
	return nil
}

// envIsSet reports whether the named variable is set to a non-empty value.
// The same set-but-empty rule as credential resolution applies.
func envIsSet(name string) bool {
	value, ok := os.LookupEnv(name)
	return ok && value != ""
}
