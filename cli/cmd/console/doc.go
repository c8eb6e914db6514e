// Package console implements an interactive terminal console for editing the
// flags of a registry.
//
// Lines typed in flag mode are parsed as command line flags and applied to
// the registry immediately. Pressing Esc toggles command mode, which offers
// snapshots (save, restore, reset), listing, and flag file import and export.
// Flag names complete with fuzzy matching, and input history persists across
// sessions.
package console
