// Package cli — inject.go implements the "m2creds inject" command.
//
// The inject command is the primary operation: it resolves deployment
// credentials from the environment and appends them as a <server> entry
// to a copy of the user's Maven settings file.
//
// Steps:
//  1. Check the secure-variable gate; skip cleanly when it is closed
//  2. Resolve credential values from environment variables
//  3. Load and parse the input settings.xml
//  4. Append the new server entry (creating <servers> if needed)
//  5. Write the patched document to the output file
//
// The original settings file is never modified.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/m2creds/internal/ci"
	"github.com/mmr-tortoise/m2creds/internal/model"
	"github.com/mmr-tortoise/m2creds/internal/profile"
	"github.com/mmr-tortoise/m2creds/internal/settings"
)

// injectFlags holds the flag values for the inject command.
// These are bound to cobra flags in NewInjectCommand. Empty values fall
// back first to the --profile file, then to the built-in defaults.
type injectFlags struct {
	settingsPath string // --settings: input settings.xml path
	outputPath   string // --output: patched output path
	serverID     string // --server-id: injected <id> value
	usernameEnv  string // --username-env: env var holding the username
	passwordEnv  string // --password-env: env var holding the password
	gateEnv      string // --gate-env: secure-variable gate name
	profilePath  string // --profile: optional profile file (.json/.jsonc/.yaml/.yml)
}

// NewInjectCommand creates the "inject" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewInjectCommand() *cobra.Command {
	flags := &injectFlags{}

	cmd := &cobra.Command{
		Use:   "inject",
		Short: "Append an env-sourced server credential to a settings.xml copy",
		Long: `Append a <server> credential entry to a copy of the Maven settings file.

The credential's username and password are read from environment variables
(SONATYPE_USERNAME and SONATYPE_PASSWORD by default). The patched document
is written to ~/.m2/snapshot-settings.xml; the original ~/.m2/settings.xml
is left untouched.

If the gate variable (TRAVIS_SECURE_ENV_VARS by default) has the literal
value "false", the command prints a notice and exits successfully without
touching any file.

Examples:
  m2creds inject
  m2creds inject --server-id sonatype-nexus-snapshots
  m2creds inject --settings ./ci/settings.xml --output ./ci/deploy-settings.xml
  m2creds inject --profile .m2creds.jsonc`,

		// No positional arguments are required for the inject command.
		Args: cobra.NoArgs,

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInject(cmd, flags)
		},
	}

	// Register command-specific flags. The displayed defaults live in the
	// help text rather than the flag defaults so the profile layer can tell
	// "unset" apart from "explicitly set to the default".
	cmd.Flags().StringVar(&flags.settingsPath, "settings", "", "Input settings file (default: ~/.m2/settings.xml)")
	cmd.Flags().StringVar(&flags.outputPath, "output", "", "Output file (default: ~/.m2/snapshot-settings.xml)")
	cmd.Flags().StringVar(&flags.serverID, "server-id", "", "Server id to inject (default: ossrh)")
	cmd.Flags().StringVar(&flags.usernameEnv, "username-env", "", "Env var holding the username (default: SONATYPE_USERNAME)")
	cmd.Flags().StringVar(&flags.passwordEnv, "password-env", "", "Env var holding the password (default: SONATYPE_PASSWORD)")
	cmd.Flags().StringVar(&flags.gateEnv, "gate-env", "", "Env var gating injection (default: TRAVIS_SECURE_ENV_VARS)")
	cmd.Flags().StringVar(&flags.profilePath, "profile", "", "Profile file with defaults for the flags above")

	return cmd
}

// runInject is the main orchestration function for the inject command.
func runInject(cmd *cobra.Command, flags *injectFlags) error {
	out := cmd.OutOrStdout()

	// Step 1: Load the profile, if one was given. Profile values fill in
	// for unset flags; explicit flags always win.
	prof := &profile.Profile{}
	if flags.profilePath != "" {
		loaded, err := profile.Load(flags.profilePath)
		if err != nil {
			return err
		}
		prof = loaded
		VerboseLog("Loaded profile: %s", flags.profilePath)
	}

	// Step 2: Check the secure-variable gate. Only the literal "false"
	// closes it; an unset gate proceeds (and fails later on missing
	// secrets if they really are absent).
	gateEnv := firstNonEmpty(flags.gateEnv, prof.GateEnv, model.DefaultGateEnv)
	if ci.ShouldSkip(gateEnv) {
		if IsJSONOutput() {
			printSkipJSON(cmd, gateEnv)
		} else {
			fmt.Fprintln(out, ci.SkipMessage)
		}
		return nil
	}
	VerboseLog("Gate %s is open, proceeding", gateEnv)

	// Step 3: Resolve the credential from the environment. Missing
	// variables are fatal here — nothing has been written yet.
	serverID := firstNonEmpty(flags.serverID, prof.ServerID, model.DefaultServerID)
	usernameEnv := firstNonEmpty(flags.usernameEnv, prof.UsernameEnv, model.DefaultUsernameEnv)
	passwordEnv := firstNonEmpty(flags.passwordEnv, prof.PasswordEnv, model.DefaultPasswordEnv)

	cred, err := ci.ResolveCredential(serverID, usernameEnv, passwordEnv)
	if err != nil {
		return err
	}
	VerboseLog("Resolved credential: %s", cred)

	// Step 4: Determine input and output paths. Flags beat profile values;
	// whatever is still unset falls back to the home-relative defaults.
	inputPath, outputPath, err := resolvePaths(flags, prof)
	if err != nil {
		return err
	}
	VerboseLog("Settings file: %s", inputPath)
	VerboseLog("Output file:   %s", outputPath)

	// Step 5: Load, patch, write.
	doc, err := settings.Load(inputPath)
	if err != nil {
		return err
	}

	if err := doc.AppendServer(cred); err != nil {
		return err
	}

	if err := doc.Write(outputPath); err != nil {
		return err
	}

	// Step 6: Output results.
	infos, err := doc.Servers()
	if err != nil {
		return err
	}
	printInjectResult(cmd, cred.ID, inputPath, outputPath, len(infos))
	return nil
}

// resolvePaths layers the input/output paths: flag > profile > default.
// Flag values get the same "~/" expansion as profile values, for users who
// quote paths in CI YAML where the shell never sees the tilde.
func resolvePaths(flags *injectFlags, prof *profile.Profile) (input, output string, err error) {
	input, err = profile.ExpandHome(firstNonEmpty(flags.settingsPath, prof.Settings))
	if err != nil {
		return "", "", err
	}
	output, err = profile.ExpandHome(firstNonEmpty(flags.outputPath, prof.Output))
	if err != nil {
		return "", "", err
	}

	if input == "" || output == "" {
		defaultInput, defaultOutput, derr := settings.DefaultPaths()
		if derr != nil {
			return "", "", derr
		}
		if input == "" {
			input = defaultInput
		}
		if output == "" {
			output = defaultOutput
		}
	}
	return input, output, nil
}

// firstNonEmpty returns the first non-empty string in the argument list,
// or "" when all are empty.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// printSkipJSON emits the structured form of the skip notice.
func printSkipJSON(cmd *cobra.Command, gateEnv string) {
	result := map[string]interface{}{
		"skipped": true,
		"gate":    gateEnv,
		"reason":  ci.SkipMessage,
	}
	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
}

// printInjectResult outputs the inject command results in text or JSON
// format. The password never appears in either form.
func printInjectResult(cmd *cobra.Command, serverID, inputPath, outputPath string, serverCount int) {
	out := cmd.OutOrStdout()

	if IsJSONOutput() {
		result := map[string]interface{}{
			"skipped":     false,
			"serverId":    serverID,
			"settings":    inputPath,
			"output":      outputPath,
			"serverCount": serverCount,
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(out, string(data))
		return
	}

	fmt.Fprintf(out, "Injected server %q into a copy of the settings file\n", serverID)
	fmt.Fprintf(out, "  Settings: %s (unchanged)\n", inputPath)
	fmt.Fprintf(out, "  Output:   %s\n", outputPath)
	fmt.Fprintf(out, "  Servers:  %d\n", serverCount)
}
