// Package app wires application dependencies for the CLI and HTTP server.
//
// It resolves Config from defaults, an optional YAML file and REWARDTRACK_*
// environment variables, then builds the snapshot store, ledger, metrics and
// rewards service, exposing them via App for commands to use.
package app
