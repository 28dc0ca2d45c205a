// Package cli provides the interactive GophDrop command-line client.
//
// It wires configuration and the gRPC API client into a REPL. A background
// watcher pings the server and shows whether the session is online.
//
// Commands:
//   - register / login / logout
//   - upload <path> [public|private] [--if-absent]
//   - list, search <query>
//   - delete <name>, download <name> [dest]
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
