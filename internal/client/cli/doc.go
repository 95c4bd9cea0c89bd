// Package cli provides the interactive SavvySnip command-line client.
//
// It wires configuration, the local session store, the gRPC client, the
// services and the view-models, and exposes them through a cobra command
// tree and an interactive REPL. Typical flow: resume the stored session,
// start a background connectivity watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout, password reset and account deletion
//   - Categories: list, add, rename, move, delete
//   - Snips: list, add, edit, delete, export a category as JSON
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewRootCommand, StartOnlineStatusWatcher and runREPL for details.
package cli
