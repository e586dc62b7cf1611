// Package cli provides the interactive pdfdrop command-line client.
//
// It wires configuration, the local session database, the API client, the
// transfer executor and the upload queue behind a small REPL. Typical flow:
// login, add one or more PDF paths, list, upload, watch the progress lines
// and the final summary.
//
// Commands:
//   - login / logout / status
//   - add <path>... / list / remove <n|id> / clear
//   - upload (Ctrl-C cancels the current transfer)
//   - hash-password (development servers only)
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
