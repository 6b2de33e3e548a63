// Package ci reads deployment credentials and the secure-variable gate
// from the process environment.
//
// CI systems withhold secret variables from untrusted builds (pull
// requests from forks) and expose a marker variable instead. The gate in
// this package recognizes that marker so the inject command can skip
// cleanly rather than fail on absent secrets.
package ci
