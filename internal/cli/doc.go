// Package cli provides the interactive posterm command-line client.
//
// It wires configuration, the local session database, the HTTP API client,
// the navigation guard and the domain stores into an interactive REPL.
// Typical flow: restore the previous session, prompt for credentials if
// needed, and execute user commands against the cached stores.
//
// Key features:
//   - Login / Register / Logout with a durable session
//   - Dashboard with sales summary and daily revenue
//   - Inventory management: list, add, update, delete, bulk import, categories
//   - Store settings view and update
//   - PDF report export (inventory and sales)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
