package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"

	"github.com/mmr-tortoise/m2creds/internal/model"
)

// Default locations of the input and output files, relative to the home
// directory. The output sits next to the input so the deploy step can pass
// it to Maven with `mvn -s ~/.m2/snapshot-settings.xml deploy`.
const (
	// DefaultInputRelPath is the standard per-user Maven settings location.
	DefaultInputRelPath = ".m2/settings.xml"

	// DefaultOutputRelPath is where the patched copy is written.
	DefaultOutputRelPath = ".m2/snapshot-settings.xml"
)

// DefaultPaths resolves the invoking user's home directory and returns the
// default input and output file paths.
func DefaultPaths() (input, output string, err error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", model.WrapCLIError(model.ExitGeneralError, "failed to resolve home directory", err)
	}
	return filepath.Join(home, filepath.FromSlash(DefaultInputRelPath)),
		filepath.Join(home, filepath.FromSlash(DefaultOutputRelPath)),
		nil
}

// Document is an in-memory Maven settings.xml document. It wraps the
// parsed XML tree and exposes the small set of mutations this tool needs.
type Document struct {
	doc *etree.Document
}

// Load reads and parses a settings file.
//
// Returns a CLIError with ExitSettingsNotFound if the file cannot be read,
// and ExitMalformedSettings if it is not well-formed XML. The <settings>
// root is looked up lazily by the mutation methods, not here, so read-only
// callers can still inspect fragments Maven itself would reject.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitSettingsNotFound,
				fmt.Sprintf("settings file not found: %s", path),
				err,
			)
		}
		return nil, model.WrapCLIError(model.ExitSettingsNotFound,
			fmt.Sprintf("failed to read settings file %s", path), err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, model.WrapCLIError(model.ExitMalformedSettings,
			fmt.Sprintf("failed to parse settings file %s", path), err)
	}

	return &Document{doc: doc}, nil
}

// root returns the <settings> root element.
// The lookup matches the unprefixed tag, which covers both plain documents
// and ones declaring the default Maven namespace
// (xmlns="http://maven.apache.org/SETTINGS/1.0.0").
func (d *Document) root() (*etree.Element, error) {
	root := d.doc.SelectElement("settings")
	if root == nil {
		return nil, model.NewCLIError(model.ExitMalformedSettings,
			"settings file has no <settings> root element")
	}
	return root, nil
}

// AppendServer appends a new <server> element carrying the given credential
// to the document's <servers> container. The container is created (and
// appended to <settings>) if it does not exist yet; if several exist, the
// first one is used.
//
// The entry is always appended as the last child. Existing entries are left
// untouched even when one already carries the same id — deduplication is
// deliberately not performed, matching the append-only contract of the
// inject command.
func (d *Document) AppendServer(cred *model.ServerCredential) error {
	if err := cred.Validate(); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid server credential", err)
	}

	root, err := d.root()
	if err != nil {
		return err
	}

	servers := root.SelectElement("servers")
	if servers == nil {
		servers = root.CreateElement("servers")
	}

	// CreateElement appends the new child at the end of the parent,
	// which is exactly the ordering contract we need.
	server := servers.CreateElement("server")
	server.CreateElement("id").SetText(cred.ID)
	server.CreateElement("username").SetText(cred.Username)
	server.CreateElement("password").SetText(cred.Password)

	return nil
}

// Servers returns a read-only projection of the existing <server> entries.
// A document without a <servers> container yields an empty slice, not an
// error. Passwords are reduced to a presence flag and never surfaced.
func (d *Document) Servers() ([]model.ServerInfo, error) {
	root, err := d.root()
	if err != nil {
		return nil, err
	}

	servers := root.SelectElement("servers")
	if servers == nil {
		return []model.ServerInfo{}, nil
	}

	entries := servers.SelectElements("server")
	infos := make([]model.ServerInfo, 0, len(entries))
	for _, entry := range entries {
		infos = append(infos, model.ServerInfo{
			ID:          childText(entry, "id"),
			Username:    childText(entry, "username"),
			HasPassword: childText(entry, "password") != "",
		})
	}
	return infos, nil
}

// childText returns the text content of the named child element, or ""
// when the child is absent.
func childText(parent *etree.Element, tag string) string {
	child := parent.SelectElement(tag)
	if child == nil {
		return ""
	}
	return child.Text()
}

// Bytes serializes the document to its textual XML form. All content and
// formatting read from the input is preserved; only the inserted elements
// are new.
func (d *Document) Bytes() ([]byte, error) {
	data, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to serialize settings document", err)
	}
	return data, nil
}

// Write serializes the document and writes it to outputPath, overwriting
// any existing file and creating parent directories as needed.
//
// The file is written with 0600 permissions: it carries a plaintext
// password, so the group/other read bits usual for config files stay off.
func (d *Document) Write(outputPath string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to create directory %s", dir), err)
	}

	if err := os.WriteFile(outputPath, data, 0o600); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to write settings file %s", outputPath), err)
	}

	return nil
}
