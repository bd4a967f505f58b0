// Package cli provides the interactive ForKa command-line client.
//
// It wires configuration, local storage, the API client, and an interactive
// REPL. Typical flow: restore the persisted session, then execute user
// commands against the forum.
//
// Key features:
//   - Login / Logout with a locally persisted session
//   - Registration with emailed 6-digit verification codes
//   - Password reset with emailed codes and a strength gate
//   - Browse, search, create and moderate posts and comments
//   - Offline browsing of the most recently fetched post list
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
