// Package client contains the client-side API of GophDrop.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) to talk
//     to the GophDrop backend: Register/Login/Logout, Ping, and the file
//     operations Upload, List, Search, Delete and Download.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, injects an access token via an interceptor, transparently
//     refreshes expired tokens, and maps gRPC status codes to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrForbidden,
// ErrAlreadyExists, ErrInvalidArgument.
//
// Concurrency & Contexts
//
// GRPCClient keeps the token pair in memory and is meant for a single
// interactive session. All operations accept context.Context and honor
// cancellation/timeouts.
package client
