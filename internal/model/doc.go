// Package model defines the domain types and value objects for the
// m2creds CLI.
//
// This package contains pure data structures with no external dependencies.
// The central entity is ServerCredential — the id/username/password triple
// that gets injected into a Maven settings document as a <server> element.
// Credentials are transient: they are resolved from the process environment
// at runtime and never persisted by this tool anywhere except the patched
// output file.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
