// Package cli provides the interactive NutriCare command-line client.
//
// It wires configuration, the local token database, the REST client and the
// stores, then serves a REPL. Every page of the web client has a path and a
// short alias; both go through a Router that enforces the login guard.
//
// Key features:
//   - Login / signup / logout, profile and password changes
//   - Discussion board with comments and image attachments
//   - Photo upload with skin analysis, history by date
//   - Diet recommendations and recipe video lookup
//
// The REPL is started via App.Run(ctx), which restores a stored session
// first and blocks until the user exits.
package cli
