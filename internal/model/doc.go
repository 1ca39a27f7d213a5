// Package model defines the domain types and value objects for the
// doubler CLI.
//
// This package contains pure data structures with no external dependencies.
// The only domain entity is Reading, a transient integer parsed from user
// input. It is created by a successful parse, doubled and printed by the
// driver, then discarded.
//
// The package also defines the failure taxonomy (FailureKind, InputKind and
// the sentinel errors behind them), exit codes (ExitCode) and a custom error
// type (CLIError) that carries exit codes for proper OS process exit handling.
package model
