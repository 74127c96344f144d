// Package cli provides the interactive Estudio terminal client.
//
// It wires configuration, the saved session, the REST API client and the
// caching store into a REPL. On start the saved token is checked with the
// server; commands then manage subjects, notes and events and show a month
// calendar of upcoming events.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
