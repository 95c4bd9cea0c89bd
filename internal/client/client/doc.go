// Package client contains client-side building blocks for SavvySnip.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     identity, categories, snips and exports.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, injects an access token via an interceptor, transparently
//     refreshes an expired token once, and maps gRPC statuses back to the
//     sentinel errors in package common.
//  3. Local persistence bootstrap utilities (InitDatabase, RunMigrations) for
//     the CLI, wiring an SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Statuses whose message is a known sentinel text come back as that sentinel.
// Unreachable servers and timeouts yield ErrUnavailable, which matches
// common.ErrNetwork under errors.Is.
package client
