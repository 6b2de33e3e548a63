// Package settings handles loading, mutating, and writing Maven
// settings.xml documents for the m2creds CLI.
//
// The package works on a full DOM (github.com/beevik/etree) rather than
// a struct mapping, because a user's settings.xml routinely carries
// content this tool knows nothing about (mirrors, proxies, profiles,
// plugin groups, comments, attributes), and all of it must survive the
// round trip with only the inserted element added.
//
// The original settings file is NEVER modified. Mutations are applied to
// the in-memory document and written to a separate output file.
package settings
