// Package cli provides the interactive WatchB command-line client.
//
// It wires configuration, the local movie cache, the REST API binding, the
// session store, and an interactive REPL. Typical flow: attempt a silent
// login from the saved refresh cookie, then execute user commands.
//
// Key features:
//   - Register / Login / Logout
//   - View and edit the profile, change email and password
//   - Upload or remove avatar and background images
//   - Look up movie details (served from the local cache when fresh)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
