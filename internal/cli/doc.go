// Package cli wires together the Cobra command tree for the prbot binary.
//
// It defines the root command and its subcommands (review, prompt, version),
// binds flags, loads configuration from the environment, runs the review
// orchestrator, and maps failures to exit codes and stderr diagnostics.
package cli
