// Package cli — servers.go implements the "m2creds servers" command.
//
// The servers command is read-only: it parses a Maven settings file and
// lists the <server> entries it contains, as a text table or a JSON array
// depending on the --json flag. Passwords are reduced to a presence
// marker and never printed.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/m2creds/internal/model"
	"github.com/mmr-tortoise/m2creds/internal/profile"
	"github.com/mmr-tortoise/m2creds/internal/settings"
)

// serversFlags holds the flag values for the servers command.
type serversFlags struct {
	settingsPath string // --settings: settings.xml path to inspect
}

// NewServersCommand creates the "servers" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewServersCommand() *cobra.Command {
	flags := &serversFlags{}

	cmd := &cobra.Command{
		Use:   "servers",
		Short: "List server entries in a Maven settings file",
		Long: `List the <server> credential entries of a Maven settings file.

Each entry is shown with its id, username, and whether a password is
present. Password values are never printed.

Examples:
  m2creds servers
  m2creds servers --settings ~/.m2/snapshot-settings.xml
  m2creds servers --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runServers(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.settingsPath, "settings", "", "Settings file to inspect (default: ~/.m2/settings.xml)")

	return cmd
}

// runServers is the main logic function for the servers command.
func runServers(cmd *cobra.Command, flags *serversFlags) error {
	path, err := profile.ExpandHome(flags.settingsPath)
	if err != nil {
		return err
	}
	if path == "" {
		defaultInput, _, derr := settings.DefaultPaths()
		if derr != nil {
			return derr
		}
		path = defaultInput
	}
	VerboseLog("Inspecting settings file: %s", path)

	doc, err := settings.Load(path)
	if err != nil {
		return err
	}

	infos, err := doc.Servers()
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		printServersJSON(cmd.OutOrStdout(), infos)
	} else {
		printServersText(cmd.OutOrStdout(), path, infos)
	}
	return nil
}

// printServersJSON outputs the entries as a JSON array. An empty list
// serializes as [] rather than null for stable consumer behavior.
func printServersJSON(out io.Writer, infos []model.ServerInfo) {
	if infos == nil {
		infos = []model.ServerInfo{}
	}
	data, _ := json.MarshalIndent(infos, "", "  ")
	fmt.Fprintln(out, string(data))
}

// printServersText outputs the entries as a simple aligned table.
func printServersText(out io.Writer, path string, infos []model.ServerInfo) {
	if len(infos) == 0 {
		fmt.Fprintf(out, "No server entries found in %s\n", path)
		return
	}

	fmt.Fprintf(out, "%-28s %-20s %s\n", "ID", "USERNAME", "PASSWORD")
	for _, info := range infos {
		id := info.ID
		if id == "" {
			id = "-"
		}
		username := info.Username
		if username == "" {
			username = "-"
		}
		password := "-"
		if info.HasPassword {
			password = "set"
		}
		fmt.Fprintf(out, "%-28s %-20s %s\n", id, username, password)
	}
}
